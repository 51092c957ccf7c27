package exercise

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mente/internal/modules/session/domain"
	sessiondto "mente/internal/modules/session/dto"
	apperrors "mente/internal/platform/errors"
	"mente/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Open(ctx context.Context, exerciseID string) (sessiondto.SnapshotOutput, error)
	Choose(ctx context.Context, index int) (sessiondto.SnapshotOutput, error)
	Answer(ctx context.Context, text string) (sessiondto.SnapshotOutput, error)
	Acknowledge(ctx context.Context) (sessiondto.SnapshotOutput, error)
	Fire(ctx context.Context, timer sessiondto.Timer) (sessiondto.SnapshotOutput, error)
	Close(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type SnapshotMsg struct {
	Snapshot sessiondto.SnapshotOutput
	Err      error
}

// TimerMsg carries a session timer back into the event loop once it is due.
type TimerMsg struct {
	Timer sessiondto.Timer
}

// ClosedMsg reports that the session ended. CompletedID is empty when the
// user left without finishing.
type ClosedMsg struct {
	CompletedID string
	Err         error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SessionPort
	snap    sessiondto.SnapshotOutput
	cursor  int
	answer  textinput.Model
	spinner spinner.Model
	status  string
	width   int
	height  int
}

func New(port SessionPort) Model {
	ti := textinput.New()
	ti.Placeholder = "escribe la palabra…"
	ti.CharLimit = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, answer: ti, spinner: sp}
}

// Open starts a session on id.
func (m *Model) Open(id string) tea.Cmd {
	m.snap = sessiondto.SnapshotOutput{}
	m.cursor = 0
	m.status = ""
	m.answer.SetValue("")
	port := m.port
	return func() tea.Msg {
		snap, err := port.Open(context.Background(), id)
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

func (m Model) Active() bool { return m.snap.Active }

func (m Model) Snapshot() sessiondto.SnapshotOutput { return m.snap }

// Typing reports whether the answer box has focus; global keys must yield.
func (m Model) Typing() bool { return m.snap.Active && m.isScramble() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.answer.Width = min(msg.Width-4, 40)
		return m, nil

	case SnapshotMsg:
		return m.applySnapshot(msg)

	case TimerMsg:
		// A tick from a closed or replaced session must not reach the port.
		if !m.snap.Active || msg.Timer.Token != m.snap.Token {
			return m, nil
		}
		port := m.port
		timer := msg.Timer
		return m, func() tea.Msg {
			snap, err := port.Fire(context.Background(), timer)
			return SnapshotMsg{Snapshot: snap, Err: err}
		}

	case spinner.TickMsg:
		if !m.snap.Revealing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.snap.Active {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, m.closeCmd()
		}
		switch {
		case m.isChoice():
			return m.updateChoice(msg)
		case m.isGrid():
			return m.updateGrid(msg)
		case m.isScramble():
			return m.updateScramble(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.snap.Active {
		return ""
	}
	var sb strings.Builder
	accent := lipgloss.NewStyle().Foreground(theme.Category(m.snap.Category)).Bold(true)
	sb.WriteString(accent.Render(m.snap.Title) + "\n")
	sb.WriteString(m.snap.Description + "\n\n")

	switch {
	case m.isChoice():
		sb.WriteString(m.renderChoice())
	case m.isGrid():
		sb.WriteString(m.renderGrid())
	case m.isScramble():
		sb.WriteString(m.answer.View() + "\n")
	}

	sb.WriteString("\n" + m.renderFeedback())
	if m.status != "" {
		sb.WriteString("\n" + theme.Muted.Render(m.status))
	}
	sb.WriteString("\n\n" + theme.Muted.Render(m.hint()))

	w := m.width
	if w < 20 {
		w = 72
	}
	return theme.PaneActive.Width(w - 4).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) applySnapshot(msg SnapshotMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, apperrors.ErrFeedbackPending):
			return m, nil
		case errors.Is(msg.Err, apperrors.ErrRevealInProgress):
			m.status = "espera a que se oculte el patrón"
			return m, nil
		case errors.Is(msg.Err, apperrors.ErrNotFound):
			m.snap = sessiondto.SnapshotOutput{}
			err := msg.Err
			return m, func() tea.Msg { return ClosedMsg{Err: err} }
		}
		m.status = msg.Err.Error()
		if !msg.Snapshot.Active && !m.snap.Active {
			return m, nil
		}
	}

	opening := m.snap.Token != msg.Snapshot.Token
	m.snap = msg.Snapshot
	if !m.snap.Active {
		m.answer.Blur()
		completed := msg.Snapshot.CompletedID
		return m, func() tea.Msg { return ClosedMsg{CompletedID: completed} }
	}

	var cmds []tea.Cmd
	if opening {
		m.status = ""
		if m.isScramble() {
			m.answer.SetValue(m.snap.Input)
			cmds = append(cmds, m.answer.Focus())
		}
		if m.snap.Revealing {
			cmds = append(cmds, m.spinner.Tick)
		}
	}
	if m.snap.Pending != nil {
		timer := *m.snap.Pending
		cmds = append(cmds, tea.Tick(timer.Delay, func(time.Time) tea.Msg { return TimerMsg{Timer: timer} }))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateChoice(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.Options)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.chooseCmd(m.cursor)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.snap.Options) {
			m.cursor = n - 1
			return m, m.chooseCmd(n - 1)
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		port := m.port
		return m, func() tea.Msg {
			snap, err := port.Acknowledge(context.Background())
			return SnapshotMsg{Snapshot: snap, Err: err}
		}
	}
	return m, nil
}

func (m Model) updateScramble(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.answer.Value())
		if text == "" {
			return m, nil
		}
		port := m.port
		return m, func() tea.Msg {
			snap, err := port.Answer(context.Background(), text)
			return SnapshotMsg{Snapshot: snap, Err: err}
		}
	}
	if m.snap.Phase != string(domain.PhasePresenting) {
		return m, nil
	}
	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m Model) chooseCmd(index int) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		snap, err := port.Choose(context.Background(), index)
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

func (m Model) closeCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		err := port.Close(context.Background())
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			err = nil
		}
		return ClosedMsg{Err: err}
	}
}

func (m Model) isChoice() bool   { return len(m.snap.Options) > 0 }
func (m Model) isGrid() bool     { return m.snap.GridSize > 0 }
func (m Model) isScramble() bool { return !m.isChoice() && !m.isGrid() }

func (m Model) renderChoice() string {
	var sb strings.Builder
	if len(m.snap.Preview) > 0 {
		sb.WriteString(theme.Muted.Render("Lista: ") + strings.Join(m.snap.Preview, ", ") + "\n\n")
	}
	for i, opt := range m.snap.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case i == m.snap.Selected && m.snap.Feedback == string(domain.FeedbackCorrect):
			line = theme.Correct.Render("▸ " + line)
		case i == m.snap.Selected && m.snap.Feedback == string(domain.FeedbackWrong):
			line = theme.Wrong.Render("▸ " + line)
		case i == m.cursor:
			line = theme.Hot.Render("› " + line)
		default:
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m Model) renderGrid() string {
	size := m.snap.GridSize
	rows := make([]string, 0, size)
	for r := 0; r < size; r++ {
		cells := make([]string, 0, size)
		for c := 0; c < size; c++ {
			idx := r*size + c
			if m.snap.Revealing && slices.Contains(m.snap.Cells, idx) {
				cells = append(cells, theme.CellOn.Render("■"))
			} else {
				cells = append(cells, theme.CellOff.Render("·"))
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	grid := strings.Join(rows, "\n")
	if m.snap.Revealing {
		secs := m.snap.RevealRemaining.Seconds()
		grid += "\n\n" + m.spinner.View() + fmt.Sprintf(" memoriza el patrón (%.1fs)", secs)
	}
	return grid + "\n"
}

func (m Model) renderFeedback() string {
	switch m.snap.Feedback {
	case string(domain.FeedbackCorrect):
		return theme.Correct.Render("¡Correcto! +10 puntos")
	case string(domain.FeedbackWrong):
		return theme.Wrong.Render("Incorrecto, inténtalo de nuevo")
	}
	return ""
}

func (m Model) hint() string {
	switch {
	case m.isChoice():
		return "↑/↓ mover  enter/1-9 responder  esc cerrar"
	case m.isGrid():
		if m.snap.Revealing {
			return "esc cerrar"
		}
		return "enter ¡Lo recuerdo!  esc cerrar"
	default:
		return "enter comprobar  esc cerrar"
	}
}
