package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Mauve    = lipgloss.Color("#cba6f7")
	Teal     = lipgloss.Color("#94e2d5")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Correct = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Wrong   = lipgloss.NewStyle().Foreground(Red).Bold(true)

	CellOn  = lipgloss.NewStyle().Background(Lavender).Foreground(Base).Padding(0, 1)
	CellOff = lipgloss.NewStyle().Background(Surface0).Foreground(Subtext0).Padding(0, 1)
)

var categoryColors = map[string]lipgloss.Color{
	"memory":      Mauve,
	"language":    Sapphire,
	"calculation": Green,
	"attention":   Yellow,
	"logic":       Peach,
	"perception":  Teal,
}

// Category returns the accent colour for a category id.
func Category(id string) lipgloss.Color {
	if c, ok := categoryColors[id]; ok {
		return c
	}
	return Lavender
}

// Chip renders a category label, highlighted when active.
func Chip(id, label string, active bool) string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return style.Background(Category(id)).Foreground(Base).Bold(true).Render(label)
	}
	return style.Foreground(Category(id)).Render(label)
}
