package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"mente/internal/modules/progress/domain"
	"mente/internal/modules/progress/dto"
	progressin "mente/internal/modules/progress/port/in"
	"mente/internal/modules/progress/service"
	apperrors "mente/internal/platform/errors"
)

// Interactor owns the in-memory progress. Completion callbacks may arrive from
// timer goroutines, so every access holds mu.
type Interactor struct {
	svc *service.ProgressService

	mu    sync.Mutex
	state domain.Progress
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc, state: domain.Empty()}
}

func (i *Interactor) Load(ctx context.Context) dto.ProgressOutput {
	loaded := i.svc.Load(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = loaded
	return toOutput(i.state)
}

func (i *Interactor) Get(_ context.Context) dto.ProgressOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return toOutput(i.state)
}

func (i *Interactor) IsCompleted(_ context.Context, id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.IsCompleted(id)
}

func (i *Interactor) MarkComplete(ctx context.Context, id string) (dto.MarkCompleteOutput, error) {
	if strings.TrimSpace(id) == "" {
		return dto.MarkCompleteOutput{}, fmt.Errorf("%w: exercise id is required", apperrors.ErrInvalidInput)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	added := i.state.MarkComplete(id)
	if added {
		i.persist(ctx)
		slog.Info("exercise completed", "exercise_id", id, "total_points", i.state.TotalPoints)
	}
	return dto.MarkCompleteOutput{Added: added, Progress: toOutput(i.state)}, nil
}

func (i *Interactor) Reset(ctx context.Context, input dto.ResetInput) dto.ResetOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !input.Confirmed {
		return dto.ResetOutput{Reset: false, Progress: toOutput(i.state)}
	}
	i.state = domain.Empty()
	i.persist(ctx)
	slog.Info("progress reset")
	return dto.ResetOutput{Reset: true, Progress: toOutput(i.state)}
}

func (i *Interactor) Summary(_ context.Context, total int) dto.SummaryOutput {
	i.mu.Lock()
	s := domain.Summarize(i.state, total)
	i.mu.Unlock()
	return dto.SummaryOutput{
		Completed: s.Completed,
		Total:     s.Total,
		Points:    s.Points,
		Percent:   s.Percent,
		Tier:      string(s.Tier),
		Message:   s.Tier.Message(),
	}
}

// persist must be called with mu held. Storage failures keep the in-memory
// state and are only logged.
func (i *Interactor) persist(ctx context.Context) {
	if err := i.svc.Save(ctx, i.state); err != nil {
		slog.Warn("persist progress failed", "key", domain.StorageKey, "error", err)
	}
}

func toOutput(p domain.Progress) dto.ProgressOutput {
	clone := p.Clone()
	return dto.ProgressOutput{CompletedIDs: clone.CompletedIDs, TotalPoints: clone.TotalPoints}
}
