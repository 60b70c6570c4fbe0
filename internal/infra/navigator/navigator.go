package navigator

import (
	"fmt"
	"io"

	"github.com/aalvaropc/modreg/internal/ports"
)

// Func adapts a plain function to ports.Navigator.
type Func func(dest string)

func (f Func) Navigate(dest string) { f(dest) }

var _ ports.Navigator = Func(nil)

// Writer reports the destination on w instead of moving anywhere.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Navigate(dest string) {
	fmt.Fprintf(n.w, "Continue to login: %s\n", dest)
}

var _ ports.Navigator = (*Writer)(nil)

// Chan hands destinations to an event loop that drains it. A send that would
// block is dropped, so Navigate is safe to call from inside that loop.
type Chan chan string

func NewChan() Chan {
	return make(Chan, 1)
}

func (c Chan) Navigate(dest string) {
	select {
	case c <- dest:
	default:
	}
}

// Pending returns a queued destination without waiting.
func (c Chan) Pending() (string, bool) {
	select {
	case dest := <-c:
		return dest, true
	default:
		return "", false
	}
}

var _ ports.Navigator = Chan(nil)
