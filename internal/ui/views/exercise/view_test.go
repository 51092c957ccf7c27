package exercise_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	catalogue "mente/internal/modules/catalogue/domain"
	sessionin "mente/internal/modules/session/adapter/in"
	"mente/internal/modules/session/service"
	"mente/internal/modules/session/usecase"
	"mente/internal/platform/clock"
	apperrors "mente/internal/platform/errors"
	"mente/internal/platform/id"
	"mente/internal/platform/random"
	"mente/internal/ui/views/exercise"
)

type source map[string]catalogue.Exercise

func (s source) Exercise(_ context.Context, id string) (catalogue.Exercise, error) {
	ex, ok := s[id]
	if !ok {
		return catalogue.Exercise{}, fmt.Errorf("exercise %s: %w", id, apperrors.ErrNotFound)
	}
	return ex, nil
}

type recorder struct{ ids []string }

func (r *recorder) RecordCompletion(_ context.Context, id string) error {
	r.ids = append(r.ids, id)
	return nil
}

func newView(rec *recorder) exercise.Model {
	ex := source{
		"calc-1": {
			ID: "calc-1", Category: catalogue.CategoryCalculation, Title: "Suma Mental", Description: "¿Cuánto es 1 + 3?",
			Type: catalogue.TypeMultipleChoice, Content: catalogue.MultipleChoice{Options: []string{"2", "4", "1", "6"}, CorrectIndex: 1},
		},
	}
	svc := service.NewSessionService(clock.Fixed(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)), id.UUID{}, random.Seeded(1))
	uc := usecase.NewInteractor(svc, ex, rec, nil)
	return exercise.New(sessionin.NewCLIHandler(uc))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestChoiceFlowCompletesThroughTimer(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	m := newView(rec)

	open := m.Open("calc-1")
	m, _ = m.Update(open())
	if !m.Active() || !strings.Contains(m.View(), "Suma Mental") {
		t.Fatalf("expected exercise rendered, got %q", m.View())
	}

	_, cmd := m.Update(runes("2"))
	if cmd == nil {
		t.Fatalf("expected choose command")
	}
	m, _ = m.Update(cmd())
	pending := m.Snapshot().Pending
	if pending == nil || m.Snapshot().Feedback != "correct" {
		t.Fatalf("expected correct feedback with pending timer, got %+v", m.Snapshot())
	}
	if len(rec.ids) != 0 {
		t.Fatalf("completion must wait for the timer")
	}

	_, fire := m.Update(exercise.TimerMsg{Timer: *pending})
	m, closeCmd := m.Update(fire())
	if m.Active() || closeCmd == nil {
		t.Fatalf("expected session closed")
	}
	closed, ok := closeCmd().(exercise.ClosedMsg)
	if !ok || closed.CompletedID != "calc-1" {
		t.Fatalf("expected closed message with completion, got %#v", closed)
	}
	if len(rec.ids) != 1 {
		t.Fatalf("expected one completion, got %v", rec.ids)
	}
}

func TestUnknownExerciseRendersNothing(t *testing.T) {
	t.Parallel()
	m := newView(&recorder{})
	open := m.Open("missing")
	m, cmd := m.Update(open())
	if m.Active() || m.View() != "" {
		t.Fatalf("expected empty view for unknown exercise")
	}
	if cmd == nil {
		t.Fatalf("expected closed message")
	}
	if closed, ok := cmd().(exercise.ClosedMsg); !ok || closed.Err == nil {
		t.Fatalf("expected closed message carrying the error, got %#v", closed)
	}
}

func TestEscClosesSession(t *testing.T) {
	t.Parallel()
	m := newView(&recorder{})
	open := m.Open("calc-1")
	m, _ = m.Update(open())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	closed, ok := cmd().(exercise.ClosedMsg)
	if !ok || closed.Err != nil || closed.CompletedID != "" {
		t.Fatalf("unexpected close result %#v", closed)
	}
}

func TestTimerFromClosedSessionIsDropped(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	m := newView(rec)

	open := m.Open("calc-1")
	m, _ = m.Update(open())
	_, cmd := m.Update(runes("1"))
	m, _ = m.Update(cmd())
	pending := m.Snapshot().Pending
	if pending == nil || m.Snapshot().Feedback != "wrong" {
		t.Fatalf("expected wrong feedback with pending retry, got %+v", m.Snapshot())
	}
	stale := *pending

	_, closeCmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := closeCmd().(exercise.ClosedMsg); !ok {
		t.Fatalf("expected closed message")
	}

	reopen := m.Open("calc-1")
	m, fire := m.Update(exercise.TimerMsg{Timer: stale})
	if fire != nil {
		t.Fatalf("stale timer must not reach the session")
	}

	m, _ = m.Update(reopen())
	if !m.Active() || m.Snapshot().Token == stale.Token {
		t.Fatalf("expected a fresh session, got %+v", m.Snapshot())
	}
	if m.Snapshot().Feedback != "" || m.Snapshot().Selected != -1 {
		t.Fatalf("fresh session must start clean, got %+v", m.Snapshot())
	}

	m, fire = m.Update(exercise.TimerMsg{Timer: stale})
	if fire != nil {
		t.Fatalf("timer of the previous session must be dropped after reopen")
	}
	if !m.Active() {
		t.Fatalf("view must stay on the reopened session")
	}
	if len(rec.ids) != 0 {
		t.Fatalf("no completion expected, got %v", rec.ids)
	}
}
