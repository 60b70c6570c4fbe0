package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	FieldErr lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style

	NoticeLoading lipgloss.Style
	NoticeSuccess lipgloss.Style
	NoticeError   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Label:    lipgloss.NewStyle(),
		Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		FieldErr: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63")),
		Disabled: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("238")),

		NoticeLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		NoticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		NoticeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}
