package in

import (
	"context"

	"mente/internal/modules/progress/dto"
)

type Usecase interface {
	// Load rehydrates the state from storage. It never fails; unreadable
	// state falls back to empty progress.
	Load(ctx context.Context) dto.ProgressOutput
	Get(ctx context.Context) dto.ProgressOutput
	IsCompleted(ctx context.Context, id string) bool
	MarkComplete(ctx context.Context, id string) (dto.MarkCompleteOutput, error)
	Reset(ctx context.Context, input dto.ResetInput) dto.ResetOutput
	Summary(ctx context.Context, total int) dto.SummaryOutput
}
