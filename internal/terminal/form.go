package terminal

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

var (
	colorAccent = lipgloss.Color("#61AFEF")
	colorMuted  = lipgloss.Color("#5C6370")
	colorGreen  = lipgloss.Color("#98C379")

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C678DD")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3F4451")).
			Padding(0, 1)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted)
)

type formKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Focus  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultFormKeys() formKeyMap {
	return formKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

type focus int

const (
	focusOptions focus = iota
	focusText
)

// formModel is the bubbletea model behind FormPrompter.
type formModel struct {
	req      feedback.Request
	keys     formKeyMap
	cursor   int
	selected *feedback.SelectionSet
	text     textarea.Model
	focus    focus

	submitted bool
	cancelled bool
}

func newFormModel(req feedback.Request) formModel {
	ta := textarea.New()
	ta.Placeholder = "Type your feedback..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(6)

	m := formModel{
		req:      req,
		keys:     defaultFormKeys(),
		selected: feedback.NewSelectionSet(len(req.Options)),
		text:     ta,
	}
	if len(req.Options) == 0 {
		m.focus = focusText
		m.text.Focus()
	}
	return m
}

func (m formModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.text.SetWidth(min(msg.Width-4, 100))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus) && len(m.req.Options) > 0:
			if m.focus == focusOptions {
				m.focus = focusText
				cmd := m.text.Focus()
				return m, cmd
			}
			m.focus = focusOptions
			m.text.Blur()
			return m, nil
		}

		if m.focus == focusOptions {
			switch {
			case key.Matches(msg, m.keys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, m.keys.Down):
				if m.cursor < len(m.req.Options)-1 {
					m.cursor++
				}
			case key.Matches(msg, m.keys.Toggle):
				m.selected.Toggle(m.cursor)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Interactive Feedback"))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(m.req.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.req.Options {
		pointer := "  "
		if m.focus == focusOptions && i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ] "
		line := opt
		if m.selected.Contains(i) {
			box = "[x] "
			line = selectedStyle.Render(opt)
		}
		b.WriteString(pointer + box + line + "\n")
	}
	if len(m.req.Options) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.text.View())
	b.WriteString("\n\n")

	help := []string{"ctrl+s submit", "esc cancel"}
	if len(m.req.Options) > 0 {
		help = append([]string{"↑/↓ move", "space toggle", "tab switch focus"}, help...)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

// result is the composed answer; empty when cancelled.
func (m formModel) result() feedback.Result {
	if m.cancelled || !m.submitted {
		return feedback.Empty()
	}
	return feedback.Result{InteractiveFeedback: feedback.Compose(m.req.Options, m.selected, m.text.Value())}
}

// FormPrompter is the full-screen bubbletea form used on an interactive terminal.
type FormPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *FormPrompter) Prompt(ctx context.Context, req feedback.Request) (feedback.Result, error) {
	prog := tea.NewProgram(
		newFormModel(req),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	final, err := prog.Run()
	if ctx.Err() != nil {
		return feedback.Empty(), ctx.Err()
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return feedback.Empty(), context.Canceled
		}
		return feedback.Empty(), err
	}

	m, ok := final.(formModel)
	if !ok {
		return feedback.Empty(), nil
	}
	return m.result(), nil
}
