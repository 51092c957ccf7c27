package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cataloguedto "mente/internal/modules/catalogue/dto"
	progressdto "mente/internal/modules/progress/dto"
	"mente/internal/ui/components"
	"mente/internal/ui/theme"
	catalogueview "mente/internal/ui/views/catalogue"
	exerciseview "mente/internal/ui/views/exercise"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type cataloguePort interface {
	Filter(ctx context.Context, category, query string) ([]cataloguedto.ExerciseOutput, error)
	Categories(ctx context.Context) ([]cataloguedto.CategoryOutput, error)
	Count(ctx context.Context) (int, error)
}

type progressPort interface {
	IsCompleted(ctx context.Context, id string) bool
	Summary(ctx context.Context, total int) progressdto.SummaryOutput
	Reset(ctx context.Context, confirmed bool) progressdto.ResetOutput
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenCatalogue screenID = iota
	screenExercise
)

const resetTag = "reset"

// ─── async messages ──────────────────────────────────────────────────────────

type summaryLoadedMsg struct {
	summary progressdto.SummaryOutput
	err     error
}

type resetDoneMsg struct {
	out progressdto.ResetOutput
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Open     key.Binding
	Search   key.Binding
	Category key.Binding
	Close    key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		Category: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "categoría")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cerrar ejercicio")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reiniciar progreso")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Search, k.Category},
		{k.Close, k.Reset},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between the catalogue and the
// open exercise, owns the progress header and the reset confirmation.
type Model struct {
	catalogue cataloguePort
	progress  progressPort

	catView catalogueview.Model
	exView  exerciseview.Model

	screen   screenID
	keys     keyMap
	help     help.Model
	showHelp bool
	confirm  components.Confirm
	bar      progress.Model
	summary  progressdto.SummaryOutput
	status   string
	width    int
	height   int
}

func NewModel(catalogue cataloguePort, progressUC progressPort, session exerciseview.SessionPort) Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)), progress.WithoutPercentage())
	bar.Width = 30
	return Model{
		catalogue: catalogue,
		progress:  progressUC,
		catView:   catalogueview.New(cataloguePortBridge{catalogue: catalogue, progress: progressUC}),
		exView:    exerciseview.New(session),
		screen:    screenCatalogue,
		keys:      defaultKeys(),
		help:      help.New(),
		confirm:   components.NewConfirm(),
		bar:       bar,
		status:    "listo",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.catView.Init(), m.loadSummaryCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The confirmation dialog intercepts keys while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.confirm.SetWidth(min(msg.Width-4, 60))
		m.bar.Width = min(msg.Width/3, 40)
		m.propagateSize()
		return m, nil

	case summaryLoadedMsg:
		if msg.err != nil {
			m.status = "progreso: " + msg.err.Error()
		} else {
			m.summary = msg.summary
		}
		return m, nil

	case resetDoneMsg:
		if msg.out.Reset {
			m.status = "progreso reiniciado"
		}
		return m, tea.Batch(m.loadSummaryCmd(), m.catView.Refresh())

	case components.ConfirmResultMsg:
		if msg.Tag == resetTag {
			if !msg.Confirmed {
				m.status = "reinicio cancelado"
				return m, nil
			}
			return m, m.resetCmd()
		}
		return m, nil

	case catalogueview.OpenExerciseMsg:
		m.screen = screenExercise
		m.status = ""
		return m, m.exView.Open(msg.ID)

	case exerciseview.ClosedMsg:
		m.screen = screenCatalogue
		switch {
		case msg.Err != nil:
			m.status = msg.Err.Error()
		case msg.CompletedID != "":
			m.status = "¡Ejercicio completado!"
		default:
			m.status = "listo"
		}
		return m, tea.Batch(m.loadSummaryCmd(), m.catView.Refresh())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.screen == screenExercise {
			var cmd tea.Cmd
			m.exView, cmd = m.exView.Update(msg)
			return m, cmd
		}
		// Yield to the search box while it has focus.
		if !m.catView.Searching() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "R":
				m.confirm.Ask(resetTag, "¿Seguro que quieres borrar todo tu progreso?")
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.catView, cmd = m.catView.Update(msg)
		return m, cmd
	}

	// Everything else (loads, timers, spinner ticks) reaches both views.
	var cCmd, eCmd tea.Cmd
	m.catView, cCmd = m.catView.Update(msg)
	m.exView, eCmd = m.exView.Update(msg)
	cmds = append(cmds, cCmd, eCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.screen == screenExercise:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.exView.View())
	default:
		content = m.catView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	s := m.summary
	left := theme.Hot.Render("Mente Activa") + "  " +
		m.bar.ViewAs(float64(s.Percent)/100) +
		fmt.Sprintf(" %d%%  %d/%d  %s", s.Percent, s.Completed, s.Total, theme.Title.Render(fmt.Sprintf("%d pts", s.Points)))
	right := theme.Muted.Render(s.Message)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if left == "" && m.screen == screenCatalogue {
		if q := m.catView.Query(); q != "" {
			left = theme.Muted.Render(fmt.Sprintf("búsqueda: %q", q))
		}
	}
	right := theme.Muted.Render("?:ayuda  /:buscar  ←/→:categoría  R:reiniciar  q:salir")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.catView, _ = m.catView.Update(sz)
	m.exView, _ = m.exView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadSummaryCmd() tea.Cmd {
	catalogue, progressUC := m.catalogue, m.progress
	return func() tea.Msg {
		ctx := context.Background()
		total, err := catalogue.Count(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}
		return summaryLoadedMsg{summary: progressUC.Summary(ctx, total)}
	}
}

func (m Model) resetCmd() tea.Cmd {
	progressUC := m.progress
	return func() tea.Msg {
		return resetDoneMsg{out: progressUC.Reset(context.Background(), true)}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type cataloguePortBridge struct {
	catalogue cataloguePort
	progress  progressPort
}

func (b cataloguePortBridge) Filter(ctx context.Context, category, query string) ([]cataloguedto.ExerciseOutput, error) {
	return b.catalogue.Filter(ctx, category, query)
}
func (b cataloguePortBridge) Categories(ctx context.Context) ([]cataloguedto.CategoryOutput, error) {
	return b.catalogue.Categories(ctx)
}
func (b cataloguePortBridge) IsCompleted(ctx context.Context, id string) bool {
	return b.progress.IsCompleted(ctx, id)
}
