package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/usecase"
)

type screen int

const (
	screenForm screen = iota
	screenLogin
)

type focus int

const (
	focusUsername focus = iota
	focusPassword
	focusConfirm
	focusTerms
	focusSubmit
	focusCount
)

// inputFields maps the text inputs, in focus order, to draft fields.
var inputFields = []domain.Field{
	domain.FieldUsername,
	domain.FieldPassword,
	domain.FieldConfirmPassword,
}

func (f focus) input() (int, bool) {
	if f >= focusUsername && f <= focusConfirm {
		return int(f), true
	}
	return 0, false
}

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger
	ctx   context.Context

	scr    screen
	inputs []textinput.Model
	focus  focus
	spin   spinner.Model
	width  int

	snap      usecase.Snapshot
	attempted bool
	lastErr   string
	loginDest string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := model{
		theme: DefaultTheme(),
		deps:  deps,
		log:   log,
		ctx:   ctx,
		scr:   screenForm,
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	placeholders := []string{"Username", "Password", "Confirm Password"}
	m.inputs = make([]textinput.Model, len(inputFields))
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = "  "
		in.CharLimit = 256
		in.Width = 40
		in.EchoCharacter = '•'
		if inputFields[i] != domain.FieldUsername {
			in.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = in
	}
	m.inputs[0].Focus()

	tok := deps.Registration.Initialize(deps.Location)
	m.log.Info("tui.open", "token", tok.String(), "debug", deps.Debug)

	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickNotices())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 12
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		for i := range m.inputs {
			m.inputs[i].Width = w
		}
		return m, nil

	case noticeTickMsg:
		return m, tickNotices()

	case spinner.TickMsg:
		if !m.snap.Lifecycle.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submitDoneMsg:
		return m.finish(msg.res)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scr == screenLogin {
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		return m.moveFocus(1)

	case "shift+tab", "up":
		return m.moveFocus(-1)

	case "ctrl+p":
		visible := m.deps.Registration.TogglePasswordVisibility()
		m.log.Debug("tui.toggle_visibility", "field", string(domain.FieldPassword), "visible", visible)
		m.refresh()
		return m, nil

	case "ctrl+o":
		visible := m.deps.Registration.ToggleConfirmVisibility()
		m.log.Debug("tui.toggle_visibility", "field", string(domain.FieldConfirmPassword), "visible", visible)
		m.refresh()
		return m, nil

	case "ctrl+s":
		return m.submit()

	case "enter":
		if m.focus == focusSubmit {
			return m.submit()
		}
		return m.moveFocus(1)

	case " ", "space":
		switch m.focus {
		case focusTerms:
			return m.toggleTerms()
		case focusSubmit:
			return m.submit()
		}
	}

	return m.updateInput(msg)
}

func (m model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := (int(m.focus) + delta + int(focusCount)) % int(focusCount)
	m.focus = focus(next)

	var cmd tea.Cmd
	for i := range m.inputs {
		if i == next {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	idx, ok := m.focus.input()
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)

	field := inputFields[idx]
	if v := m.inputs[idx].Value(); v != textValue(m.snap.Draft, field) {
		if err := m.deps.Registration.UpdateField(field, v); err != nil {
			m.log.Error("tui.update_field.failed", "field", string(field), "err", err)
		}
		m.refresh()
	}
	return m, cmd
}

func (m model) toggleTerms() (tea.Model, tea.Cmd) {
	if err := m.deps.Registration.UpdateField(domain.FieldAcceptedTerms, !m.snap.Draft.AcceptedTerms); err != nil {
		m.log.Error("tui.update_field.failed", "field", string(domain.FieldAcceptedTerms), "err", err)
	}
	m.refresh()
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	m.attempted = true
	if m.snap.Lifecycle.Submitting() {
		return m, nil
	}
	// Incomplete forms are answered by the inline field errors alone.
	if !m.snap.Validation.FieldsValid() {
		return m, nil
	}

	att, err := m.deps.Registration.Begin()
	m.refresh()
	if err != nil {
		m.log.Debug("tui.submit.rejected", "err", err)
		return m, nil
	}

	m.lastErr = ""
	return m, tea.Batch(m.spin.Tick, cmdSend(m.ctx, att))
}

func (m model) finish(res usecase.Result) (tea.Model, tea.Cmd) {
	life, err := m.deps.Registration.Finish(res)
	m.lastErr = userMessage(err)
	m.refresh()

	if life.Phase == domain.PhaseSucceeded {
		m.attempted = false
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
	}

	if m.deps.Navigations != nil {
		if dest, ok := m.deps.Navigations.Pending(); ok {
			m.scr = screenLogin
			m.loginDest = dest
		}
	}
	return m, nil
}

// refresh re-reads the controller and mirrors echo modes onto the inputs.
func (m *model) refresh() {
	m.snap = m.deps.Registration.Snapshot()

	echo := func(visible bool) textinput.EchoMode {
		if visible {
			return textinput.EchoNormal
		}
		return textinput.EchoPassword
	}
	m.inputs[focusPassword].EchoMode = echo(m.snap.Visibility.Password)
	m.inputs[focusConfirm].EchoMode = echo(m.snap.Visibility.ConfirmPassword)
}

func textValue(d domain.Draft, f domain.Field) string {
	switch f {
	case domain.FieldUsername:
		return d.Username
	case domain.FieldPassword:
		return d.Password
	case domain.FieldConfirmPassword:
		return d.ConfirmPassword
	default:
		return ""
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("Register as a moderator") + "\n" +
		m.theme.Subtitle.Render("Create your account from the invite you received") + "\n"

	if notice := m.renderNotice(); notice != "" {
		header += "\n" + notice + "\n"
	}

	switch m.scr {
	case screenForm:
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.formView()) + "\n" + m.helpView())

	case screenLogin:
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				m.theme.Title.Render("Registration complete"),
				"Continue to login: "+m.loginDest,
				m.theme.Help.Render("enter/q quit"),
			),
		)
		return wrap.Render(header + "\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func (m model) formView() string {
	var b strings.Builder

	if !m.snap.Token.Usable() {
		b.WriteString(m.theme.FieldErr.Render("⚠ This link has no invite token."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLabel("Username", focusUsername))
	b.WriteString("\n")
	b.WriteString(m.inputs[focusUsername].View())
	b.WriteString(m.renderFieldError(domain.FieldUsername))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Password", focusPassword))
	b.WriteString("  ")
	b.WriteString(m.theme.Help.Render(visibilityHint("ctrl+p", m.snap.Visibility.Password)))
	b.WriteString("\n")
	b.WriteString(m.inputs[focusPassword].View())
	b.WriteString(m.renderFieldError(domain.FieldPassword))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Confirm Password", focusConfirm))
	b.WriteString("  ")
	b.WriteString(m.theme.Help.Render(visibilityHint("ctrl+o", m.snap.Visibility.ConfirmPassword)))
	b.WriteString("\n")
	b.WriteString(m.inputs[focusConfirm].View())
	b.WriteString(m.renderFieldError(domain.FieldConfirmPassword))
	if !m.snap.Validation.PasswordsMatch {
		b.WriteString("\n  ")
		b.WriteString(m.theme.FieldErr.Render(domain.MsgPasswordsMismatch))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTerms())
	b.WriteString("\n\n")

	b.WriteString(m.renderButton())
	if m.lastErr != "" {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Help.Render(m.lastErr))
	}
	return b.String()
}

func (m model) helpView() string {
	return m.theme.Help.Render("tab/↑/↓ move • space toggle terms • enter/ctrl+s register • esc quit")
}

func visibilityHint(key string, visible bool) string {
	if visible {
		return key + " hide"
	}
	return key + " show"
}
