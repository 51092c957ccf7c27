package catalogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cataloguedto "mente/internal/modules/catalogue/dto"
	"mente/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CataloguePort interface {
	Filter(ctx context.Context, category, query string) ([]cataloguedto.ExerciseOutput, error)
	Categories(ctx context.Context) ([]cataloguedto.CategoryOutput, error)
	IsCompleted(ctx context.Context, id string) bool
}

// ─── messages ────────────────────────────────────────────────────────────────

type CategoriesLoadedMsg struct {
	Categories []cataloguedto.CategoryOutput
	Err        error
}

type ExercisesLoadedMsg struct {
	Exercises []cataloguedto.ExerciseOutput
	Completed map[string]bool
	Err       error
}

// OpenExerciseMsg asks the app to start a session on ID.
type OpenExerciseMsg struct {
	ID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type exerciseItem struct {
	exercise cataloguedto.ExerciseOutput
	done     bool
}

func (i exerciseItem) Title() string {
	mark := "○ "
	if i.done {
		mark = "✓ "
	}
	return mark + i.exercise.Title
}

func (i exerciseItem) Description() string {
	return lipgloss.NewStyle().Foreground(theme.Category(i.exercise.Category)).Render(i.exercise.CategoryLabel) +
		"  " + i.exercise.Description
}

func (i exerciseItem) FilterValue() string { return i.exercise.Title }

// ─── model ───────────────────────────────────────────────────────────────────

const allCategory = "all"

type Model struct {
	port       CataloguePort
	list       list.Model
	search     textinput.Model
	categories []cataloguedto.CategoryOutput
	active     int
	width      int
	height     int
	status     string
}

func New(port CataloguePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Ejercicios"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	// Search is the substring match on title and description, not the list's fuzzy filter.
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "buscar ejercicios…"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return Model{port: port, list: l, search: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCategoriesCmd(), m.Refresh())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case CategoriesLoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		all := cataloguedto.CategoryOutput{ID: allCategory, Label: "Todos los ejercicios"}
		for _, c := range msg.Categories {
			all.Count += c.Count
		}
		m.categories = append([]cataloguedto.CategoryOutput{all}, msg.Categories...)

	case ExercisesLoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = ""
		items := make([]list.Item, len(msg.Exercises))
		for i, ex := range msg.Exercises {
			items[i] = exerciseItem{exercise: ex, done: msg.Completed[ex.ID]}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.search.Blur()
				return m, nil
			}
			before := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			if m.search.Value() != before {
				cmds = append(cmds, m.Refresh())
			}
			return m, tea.Batch(cmds...)
		}
		switch msg.String() {
		case "/":
			cmd := m.search.Focus()
			return m, cmd
		case "left", "h":
			m.cycle(-1)
			return m, m.Refresh()
		case "right", "l":
			m.cycle(1)
			return m, m.Refresh()
		case "enter":
			if id, ok := m.SelectedID(); ok {
				return m, func() tea.Msg { return OpenExerciseMsg{ID: id} }
			}
			return m, nil
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	chips := m.renderChips()
	search := m.search.View()
	if m.status != "" {
		search += "  " + theme.Wrong.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, chips, search, m.list.View())
}

// Refresh reloads the visible exercises for the current category and query.
func (m Model) Refresh() tea.Cmd {
	category := m.Category()
	query := m.search.Value()
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		exercises, err := port.Filter(ctx, category, query)
		if err != nil {
			return ExercisesLoadedMsg{Err: err}
		}
		done := make(map[string]bool, len(exercises))
		for _, ex := range exercises {
			if port.IsCompleted(ctx, ex.ID) {
				done[ex.ID] = true
			}
		}
		return ExercisesLoadedMsg{Exercises: exercises, Completed: done}
	}
}

// Category is the id of the active category chip.
func (m Model) Category() string {
	if m.active <= 0 || m.active >= len(m.categories) {
		return allCategory
	}
	return m.categories[m.active].ID
}

func (m Model) Query() string { return m.search.Value() }

// Searching reports whether the search box has focus; global keys must yield.
func (m Model) Searching() bool { return m.search.Focused() }

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(exerciseItem); ok {
		return item.exercise.ID, true
	}
	return "", false
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) cycle(step int) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	m.active = (m.active + step + n) % n
}

func (m *Model) resize() {
	// chips and search box take two lines
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width, h)
	m.search.Width = m.width - 4
}

func (m Model) renderChips() string {
	if len(m.categories) == 0 {
		return theme.Muted.Render("cargando categorías…")
	}
	parts := make([]string, len(m.categories))
	for i, c := range m.categories {
		parts[i] = theme.Chip(c.ID, fmt.Sprintf("%s %d", c.Label, c.Count), i == m.active)
	}
	return strings.Join(parts, " ")
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		cats, err := port.Categories(context.Background())
		return CategoriesLoadedMsg{Categories: cats, Err: err}
	}
}
