package catalogue_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	cataloguedto "mente/internal/modules/catalogue/dto"
	"mente/internal/ui/views/catalogue"
)

type filterCall struct {
	category string
	query    string
}

type fakePort struct {
	calls []filterCall
	done  map[string]bool
}

func (p *fakePort) Filter(_ context.Context, category, query string) ([]cataloguedto.ExerciseOutput, error) {
	p.calls = append(p.calls, filterCall{category: category, query: query})
	return []cataloguedto.ExerciseOutput{
		{ID: "calc-1", Category: "calculation", CategoryLabel: "Cálculo", Title: "Suma Mental", Description: "¿Cuánto es 1 + 3?"},
		{ID: "logic-q-0", Category: "logic", CategoryLabel: "Lógica", Title: "Acertijo", Description: "Piensa un poco"},
	}, nil
}

func (p *fakePort) Categories(context.Context) ([]cataloguedto.CategoryOutput, error) {
	return []cataloguedto.CategoryOutput{
		{ID: "calculation", Label: "Cálculo", Count: 1},
		{ID: "logic", Label: "Lógica", Count: 1},
	}, nil
}

func (p *fakePort) IsCompleted(_ context.Context, id string) bool { return p.done[id] }

func (p *fakePort) last() filterCall {
	if len(p.calls) == 0 {
		return filterCall{}
	}
	return p.calls[len(p.calls)-1]
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command batched inside it, returning the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func loaded(t *testing.T, msgs []tea.Msg) catalogue.ExercisesLoadedMsg {
	t.Helper()
	for _, msg := range msgs {
		if l, ok := msg.(catalogue.ExercisesLoadedMsg); ok {
			return l
		}
	}
	t.Fatalf("expected exercises to be reloaded, got %#v", msgs)
	return catalogue.ExercisesLoadedMsg{}
}

func newLoaded(t *testing.T, port *fakePort) catalogue.Model {
	t.Helper()
	m := catalogue.New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	cats, err := port.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	m, _ = m.Update(catalogue.CategoriesLoadedMsg{Categories: cats})
	return m
}

func TestCategoryChipsCycleAndReload(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newLoaded(t, port)
	if m.Category() != "all" {
		t.Fatalf("expected all as the initial chip, got %s", m.Category())
	}
	if !strings.Contains(m.View(), "Todos los ejercicios 2") {
		t.Fatalf("expected aggregated chip, got:\n%s", m.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Category() != "calculation" {
		t.Fatalf("expected calculation after right, got %s", m.Category())
	}
	loaded(t, drain(cmd))
	if got := port.last(); got.category != "calculation" {
		t.Fatalf("expected reload for calculation, got %+v", got)
	}

	m, _ = m.Update(runes("l"))
	if m.Category() != "logic" {
		t.Fatalf("expected logic after l, got %s", m.Category())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Category() != "all" {
		t.Fatalf("expected wrap to all, got %s", m.Category())
	}
	m, _ = m.Update(runes("h"))
	if m.Category() != "logic" {
		t.Fatalf("expected wrap back to logic, got %s", m.Category())
	}
}

func TestSearchTypingRefreshesWithQuery(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newLoaded(t, port)

	m, _ = m.Update(runes("/"))
	if !m.Searching() {
		t.Fatalf("expected search focus after /")
	}
	m, _ = m.Update(runes("s"))
	m, cmd := m.Update(runes("u"))
	if m.Query() != "su" {
		t.Fatalf("expected query su, got %q", m.Query())
	}
	loaded(t, drain(cmd))
	if got := port.last(); got.query != "su" || got.category != "all" {
		t.Fatalf("expected reload with query, got %+v", got)
	}

	calls := len(port.calls)
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Searching() || cmd != nil {
		t.Fatalf("enter must only leave the search box")
	}
	if len(port.calls) != calls {
		t.Fatalf("leaving search must not reload")
	}
	if m.Query() != "su" {
		t.Fatalf("query must survive blur, got %q", m.Query())
	}
}

func TestEnterOpensSelectedExerciseWithCompletionMarks(t *testing.T) {
	t.Parallel()
	port := &fakePort{done: map[string]bool{"calc-1": true}}
	m := newLoaded(t, port)

	m, _ = m.Update(loaded(t, drain(m.Refresh())))
	if !strings.Contains(m.View(), "✓ Suma Mental") || !strings.Contains(m.View(), "○ Acertijo") {
		t.Fatalf("expected completion marks, got:\n%s", m.View())
	}
	if id, ok := m.SelectedID(); !ok || id != "calc-1" {
		t.Fatalf("expected calc-1 selected, got %q", id)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected open command")
	}
	open, ok := cmd().(catalogue.OpenExerciseMsg)
	if !ok || open.ID != "calc-1" {
		t.Fatalf("unexpected open message %#v", open)
	}
}
