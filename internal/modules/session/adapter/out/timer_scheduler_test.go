package out_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	catalogue "mente/internal/modules/catalogue/domain"
	sessionadapter "mente/internal/modules/session/adapter/out"
	"mente/internal/modules/session/domain"
	sessiondto "mente/internal/modules/session/dto"
	"mente/internal/modules/session/service"
	"mente/internal/modules/session/usecase"
	"mente/internal/platform/clock"
	"mente/internal/platform/id"
	"mente/internal/platform/random"
)

func TestTimerSchedulerFiresAndPublishes(t *testing.T) {
	t.Parallel()
	s := sessionadapter.NewTimerScheduler()
	var hits atomic.Int32
	timer := domain.Timer{Token: "tok", Kind: domain.TimerRetry, Delay: time.Millisecond}
	s.Schedule(timer, func() { hits.Add(1) })

	select {
	case got := <-s.Fired():
		if got != timer {
			t.Fatalf("unexpected fired timer %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timer never fired")
	}
	if hits.Load() != 1 || s.Pending("tok") != 0 {
		t.Fatalf("expected one hit and nothing pending, got %d/%d", hits.Load(), s.Pending("tok"))
	}
}

func TestTimerSchedulerCancelByToken(t *testing.T) {
	t.Parallel()
	s := sessionadapter.NewTimerScheduler()
	var hits atomic.Int32
	s.Schedule(domain.Timer{Token: "old", Kind: domain.TimerComplete, Delay: 50 * time.Millisecond}, func() { hits.Add(1) })
	s.Schedule(domain.Timer{Token: "new", Kind: domain.TimerRetry, Delay: time.Millisecond}, func() { hits.Add(10) })
	s.Cancel("old")

	select {
	case got := <-s.Fired():
		if got.Token != "new" {
			t.Fatalf("expected only the new token to fire, got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timer never fired")
	}
	time.Sleep(100 * time.Millisecond)
	if hits.Load() != 10 {
		t.Fatalf("cancelled timer ran, hits=%d", hits.Load())
	}
}

type recorder struct {
	done chan string
}

func (r recorder) RecordCompletion(_ context.Context, id string) error {
	r.done <- id
	return nil
}

type source struct{}

func (source) Exercise(context.Context, string) (catalogue.Exercise, error) {
	return catalogue.Exercise{
		ID: "calc-1", Category: catalogue.CategoryCalculation, Title: "Suma Mental", Description: "¿Cuánto es 1 + 1?",
		Type: catalogue.TypeMultipleChoice, Content: catalogue.MultipleChoice{Options: []string{"2", "3"}, CorrectIndex: 0},
	}, nil
}

func TestSchedulerDrivesSessionCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sched := sessionadapter.NewTimerScheduler()
	defer sched.Stop()
	rec := recorder{done: make(chan string, 1)}
	svc := service.NewSessionService(clock.SystemClock{}, id.UUID{}, random.System{})
	uc := usecase.NewInteractor(svc, source{}, rec, sched)

	if _, err := uc.Open(ctx, sessiondto.OpenInput{ExerciseID: "calc-1"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := uc.Choose(ctx, sessiondto.ChooseInput{Index: 0}); err != nil {
		t.Fatalf("choose: %v", err)
	}
	select {
	case got := <-rec.done:
		if got != "calc-1" {
			t.Fatalf("unexpected completion %s", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("completion never recorded")
	}
	<-sched.Fired()
	if uc.Snapshot(ctx).Active {
		t.Fatalf("expected session closed after completion")
	}
}
