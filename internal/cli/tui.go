package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// serviceAll is the picker entry for skipping the service filter.
const serviceAll = "All services"

// =============================================================================
// ServiceListModel - Interactive service period selection
// =============================================================================

// ServiceListModel is the bubbletea model for picking a service period.
type ServiceListModel struct {
	Services []string
	Cursor   int
	Selected string
}

// NewServiceListModel creates a picker over the given service labels, with
// an "all" entry prepended.
func NewServiceListModel(services []string) ServiceListModel {
	return ServiceListModel{
		Services: append([]string{serviceAll}, services...),
	}
}

func (m ServiceListModel) Init() tea.Cmd {
	return nil
}

func (m ServiceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Services)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Services[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ServiceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Service"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, s := range m.Services {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(s) + "\n")
	}

	return b.String()
}
