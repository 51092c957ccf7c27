package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mente/internal/ui/theme"
)

// ConfirmResultMsg is emitted when the dialog closes. Tag identifies which
// question was answered.
type ConfirmResultMsg struct {
	Tag       string
	Confirmed bool
}

var (
	confirmStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(1, 2)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Confirm is a modal yes/no question.
type Confirm struct {
	tag      string
	question string
	visible  bool
	width    int
}

func NewConfirm() Confirm {
	return Confirm{}
}

func (c Confirm) Visible() bool { return c.visible }

// Ask shows the dialog with question.
func (c *Confirm) Ask(tag, question string) {
	c.tag = tag
	c.question = question
	c.visible = true
}

func (c *Confirm) SetWidth(w int) { c.width = w }

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch strings.ToLower(keyMsg.String()) {
	case "y", "s", "enter":
		return c.close(true)
	case "n", "esc", "q":
		return c.close(false)
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	body := theme.Hot.Render(c.question) + "\n\n" + hintStyle.Render("y/enter: sí   n/esc: no")
	w := c.width
	if w < 20 {
		w = 56
	}
	return confirmStyle.Width(w - 2).Render(body)
}

func (c Confirm) close(confirmed bool) (Confirm, tea.Cmd) {
	c.visible = false
	tag := c.tag
	return c, func() tea.Msg { return ConfirmResultMsg{Tag: tag, Confirmed: confirmed} }
}
