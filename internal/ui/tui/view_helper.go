package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/modreg/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func (m model) renderNotice() string {
	if m.deps.Notices == nil {
		return ""
	}
	n, ok := m.deps.Notices.Current()
	if !ok {
		return ""
	}

	msg := n.Message
	if m.width > 8 {
		msg = clampString(msg, m.width-8)
	}

	switch n.Kind {
	case domain.NoticeLoading:
		return m.theme.NoticeLoading.Render(m.spin.View() + " " + msg)
	case domain.NoticeSuccess:
		return m.theme.NoticeSuccess.Render("✓ " + msg)
	case domain.NoticeError:
		return m.theme.NoticeError.Render("✗ " + msg)
	default:
		return msg
	}
}

func (m model) renderLabel(text string, f focus) string {
	if m.focus == f {
		return m.theme.Focused.Render("› " + text)
	}
	return m.theme.Label.Render("  " + text)
}

// renderFieldError shows a required-field message once the user has tried
// to submit, the same moment the form library would.
func (m model) renderFieldError(f domain.Field) string {
	if !m.attempted {
		return ""
	}
	msg := m.snap.Validation.Error(f)
	if msg == "" {
		return ""
	}
	return "\n  " + m.theme.FieldErr.Render(msg)
}

func (m model) renderTerms() string {
	box := "[ ]"
	if m.snap.Draft.AcceptedTerms {
		box = "[x]"
	}
	return m.renderLabel(box+" I accept the terms and policy", focusTerms) +
		m.renderFieldError(domain.FieldAcceptedTerms)
}

func (m model) renderButton() string {
	if m.snap.Lifecycle.Submitting() {
		return m.theme.Disabled.Render(m.spin.View() + " Registering...")
	}
	label := "Register"
	if m.focus == focusSubmit {
		label = "› " + label + " ‹"
	}
	return m.theme.Button.Render(label)
}
