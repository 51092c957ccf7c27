package out

import (
	"context"

	progressin "mente/internal/modules/progress/port/in"
	sessionout "mente/internal/modules/session/port/out"
)

type ProgressRecorder struct {
	progress progressin.Usecase
}

func NewProgressRecorder(progress progressin.Usecase) sessionout.CompletionRecorder {
	return ProgressRecorder{progress: progress}
}

func (r ProgressRecorder) RecordCompletion(ctx context.Context, exerciseID string) error {
	_, err := r.progress.MarkComplete(ctx, exerciseID)
	return err
}
