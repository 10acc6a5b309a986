// Package tui implements the interactive template picker.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ignorehub/ignorehub/internal/templates"
	"github.com/ignorehub/ignorehub/internal/tui/components"
	"github.com/ignorehub/ignorehub/internal/tui/styles"
)

// Config configures the picker program.
type Config struct {
	Templates []templates.Template
	Theme     string
}

// RunPicker launches the picker and returns the chosen templates plus
// whether the user confirmed with enter.
func RunPicker(cfg Config) ([]templates.Template, bool, error) {
	program := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(model)
	if !ok {
		return nil, false, nil
	}
	if !m.confirmed {
		return nil, false, nil
	}
	return m.picker.Selected(), true, nil
}

type model struct {
	width     int
	height    int
	styles    styles.Styles
	picker    *components.TemplatePicker
	confirmed bool
}

const (
	minWidth  = 40
	minHeight = 10
)

func initialModel(cfg Config) model {
	theme, ok := styles.Themes[cfg.Theme]
	if !ok {
		theme = styles.DefaultTheme
	}

	picker := components.NewTemplatePicker()
	picker.SetTemplates(cfg.Templates)

	return model{
		styles: styles.BuildStyles(theme),
		picker: picker,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "ctrl+p":
			m.picker.Move(-1)
		case "down", "ctrl+n":
			m.picker.Move(1)
		case "tab", " ":
			m.picker.Toggle()
		case "backspace":
			m.picker.Backspace()
		default:
			if msg.Type == tea.KeyRunes {
				m.picker.AppendQuery(string(msg.Runes))
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	lines := []string{
		m.styles.Title.Render("Pick templates"),
		"",
	}
	lines = append(lines, m.picker.Render(m.styles, m.listRows())...)
	lines = append(lines, "", m.styles.Muted.Render(m.footerLine()))

	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press esc to quit."),
	}
}

func (m model) footerLine() string {
	return fmt.Sprintf(
		"%d selected | space toggle | enter generate | esc cancel | type to filter",
		m.picker.SelectedCount(),
	)
}

// listRows reserves lines for the title, query, and footer chrome.
func (m model) listRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	return rows
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
