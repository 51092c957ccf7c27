package in

import (
	"context"

	"mente/internal/modules/session/dto"
)

type Usecase interface {
	Open(ctx context.Context, input dto.OpenInput) (dto.SnapshotOutput, error)
	Choose(ctx context.Context, input dto.ChooseInput) (dto.SnapshotOutput, error)
	SetAnswer(ctx context.Context, input dto.AnswerInput) (dto.SnapshotOutput, error)
	Submit(ctx context.Context) (dto.SnapshotOutput, error)
	Acknowledge(ctx context.Context) (dto.SnapshotOutput, error)
	// Fire delivers a timer. Timers of a closed or replaced session are ignored.
	Fire(ctx context.Context, timer dto.Timer) (dto.SnapshotOutput, error)
	Close(ctx context.Context) error
	Snapshot(ctx context.Context) dto.SnapshotOutput
}
