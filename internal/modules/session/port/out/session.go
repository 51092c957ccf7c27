package out

import (
	"context"

	catalogue "mente/internal/modules/catalogue/domain"
	"mente/internal/modules/session/domain"
)

type ExerciseSource interface {
	Exercise(ctx context.Context, id string) (catalogue.Exercise, error)
}

// CompletionRecorder receives every completed exercise exactly once per session.
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, exerciseID string) error
}

// Scheduler runs fire after timer.Delay unless the timer's token is cancelled first.
type Scheduler interface {
	Schedule(timer domain.Timer, fire func())
	Cancel(token string)
}
