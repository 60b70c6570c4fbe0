package notify

import (
	"fmt"
	"io"

	"github.com/aalvaropc/modreg/internal/domain"
)

// Printer returns an observer that writes one line per notice change.
func Printer(w io.Writer) func(domain.Notice) {
	return func(n domain.Notice) {
		fmt.Fprintf(w, "%s %s\n", marker(n.Kind), n.Message)
	}
}

func marker(k domain.NoticeKind) string {
	switch k {
	case domain.NoticeLoading:
		return "…"
	case domain.NoticeSuccess:
		return "✓"
	case domain.NoticeError:
		return "✗"
	default:
		return "-"
	}
}
