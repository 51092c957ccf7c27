package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	catalogue "mente/internal/modules/catalogue/domain"
	"mente/internal/modules/session/domain"
	sessiondto "mente/internal/modules/session/dto"
	sessionin "mente/internal/modules/session/port/in"
	sessionout "mente/internal/modules/session/port/out"
	"mente/internal/modules/session/service"
	apperrors "mente/internal/platform/errors"
)

// Interactor holds at most one open session. A nil scheduler leaves timers to
// the caller, which reads them from SnapshotOutput.Pending and calls Fire.
type Interactor struct {
	svc       *service.SessionService
	source    sessionout.ExerciseSource
	recorder  sessionout.CompletionRecorder
	scheduler sessionout.Scheduler

	mu     sync.Mutex
	active *domain.Session
}

func NewInteractor(svc *service.SessionService, source sessionout.ExerciseSource, recorder sessionout.CompletionRecorder, scheduler sessionout.Scheduler) sessionin.Usecase {
	return &Interactor{svc: svc, source: source, recorder: recorder, scheduler: scheduler}
}

func (i *Interactor) Open(ctx context.Context, input sessiondto.OpenInput) (sessiondto.SnapshotOutput, error) {
	if input.ExerciseID == "" {
		return sessiondto.SnapshotOutput{}, fmt.Errorf("%w: exercise id is required", apperrors.ErrInvalidInput)
	}
	ex, err := i.source.Exercise(ctx, input.ExerciseID)
	if err != nil {
		return sessiondto.SnapshotOutput{}, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.closeLocked()
	session, outcome := i.svc.Open(ex)
	i.active = session
	slog.Debug("session opened", "exercise_id", ex.ID, "token", session.Token)
	return i.applyLocked(ctx, outcome)
}

func (i *Interactor) Choose(ctx context.Context, input sessiondto.ChooseInput) (sessiondto.SnapshotOutput, error) {
	return i.respond(ctx, func(s *domain.Session) (domain.Outcome, error) {
		return s.Choose(input.Index)
	})
}

func (i *Interactor) SetAnswer(ctx context.Context, input sessiondto.AnswerInput) (sessiondto.SnapshotOutput, error) {
	return i.respond(ctx, func(s *domain.Session) (domain.Outcome, error) {
		return domain.Outcome{}, s.SetInput(input.Text)
	})
}

func (i *Interactor) Submit(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return i.respond(ctx, func(s *domain.Session) (domain.Outcome, error) {
		return s.Submit()
	})
}

func (i *Interactor) Acknowledge(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return i.respond(ctx, func(s *domain.Session) (domain.Outcome, error) {
		return s.Acknowledge()
	})
}

func (i *Interactor) Fire(ctx context.Context, timer sessiondto.Timer) (sessiondto.SnapshotOutput, error) {
	return i.fire(ctx, domain.Timer{Token: timer.Token, Kind: domain.TimerKind(timer.Kind), Delay: timer.Delay})
}

func (i *Interactor) fire(ctx context.Context, timer domain.Timer) (sessiondto.SnapshotOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active == nil {
		return i.snapshotLocked(), nil
	}
	outcome, applied := i.active.Fire(timer)
	if !applied {
		slog.Debug("stale timer ignored", "kind", string(timer.Kind), "token", timer.Token)
		return i.snapshotLocked(), nil
	}
	return i.applyLocked(ctx, outcome)
}

func (i *Interactor) Close(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active == nil {
		return apperrors.ErrNoActiveSession
	}
	i.closeLocked()
	return nil
}

func (i *Interactor) Snapshot(_ context.Context) sessiondto.SnapshotOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.snapshotLocked()
}

func (i *Interactor) respond(ctx context.Context, step func(*domain.Session) (domain.Outcome, error)) (sessiondto.SnapshotOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active == nil {
		return sessiondto.SnapshotOutput{}, apperrors.ErrNoActiveSession
	}
	outcome, err := step(i.active)
	if err != nil {
		return i.snapshotLocked(), err
	}
	return i.applyLocked(ctx, outcome)
}

func (i *Interactor) applyLocked(ctx context.Context, outcome domain.Outcome) (sessiondto.SnapshotOutput, error) {
	var recordErr error
	if outcome.CompletedID != "" && i.recorder != nil {
		if err := i.recorder.RecordCompletion(ctx, outcome.CompletedID); err != nil {
			recordErr = fmt.Errorf("record completion: %w", err)
		}
	}
	if outcome.Close {
		i.closeLocked()
	}
	snapshot := i.snapshotLocked()
	snapshot.CompletedID = outcome.CompletedID
	if outcome.Timer != nil {
		timer := *outcome.Timer
		snapshot.Pending = &sessiondto.Timer{Token: timer.Token, Kind: string(timer.Kind), Delay: timer.Delay}
		if i.scheduler != nil {
			i.scheduler.Schedule(timer, func() {
				if _, err := i.fire(context.Background(), timer); err != nil {
					slog.Warn("scheduled transition failed", "kind", string(timer.Kind), "error", err)
				}
			})
		}
	}
	return snapshot, recordErr
}

func (i *Interactor) closeLocked() {
	if i.active == nil {
		return
	}
	if i.scheduler != nil {
		i.scheduler.Cancel(i.active.Token)
	}
	slog.Debug("session closed", "exercise_id", i.active.Exercise.ID, "token", i.active.Token)
	i.active = nil
}

func (i *Interactor) snapshotLocked() sessiondto.SnapshotOutput {
	s := i.active
	if s == nil {
		return sessiondto.SnapshotOutput{Phase: string(domain.PhaseIdle), Selected: domain.NoSelection}
	}
	out := sessiondto.SnapshotOutput{
		Active:      true,
		Token:       s.Token,
		ExerciseID:  s.Exercise.ID,
		Title:       s.Exercise.Title,
		Description: s.Exercise.Description,
		Category:    string(s.Exercise.Category),
		Type:        string(s.Exercise.Type),
		Phase:       string(s.Phase),
		Feedback:    string(s.Feedback),
		Selected:    s.Selected,
		Input:       s.Input,
		Revealing:   s.Revealing,
	}
	switch c := s.Exercise.Content.(type) {
	case catalogue.MultipleChoice:
		out.Options = append([]string(nil), c.Options...)
		out.Preview = append([]string(nil), c.Preview...)
	case catalogue.GridMemory:
		out.GridSize = c.Size
		out.Cells = append([]int(nil), s.Cells...)
		if s.Revealing {
			if left := s.OpenedAt.Add(domain.RevealDuration).Sub(i.svc.Now()); left > 0 {
				out.RevealRemaining = left
			}
		}
	}
	return out
}
