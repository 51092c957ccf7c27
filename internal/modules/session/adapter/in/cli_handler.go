package in

import (
	"context"

	"mente/internal/modules/session/dto"
	sessionin "mente/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context, exerciseID string) (dto.SnapshotOutput, error) {
	return h.usecase.Open(ctx, dto.OpenInput{ExerciseID: exerciseID})
}

func (h CLIHandler) Choose(ctx context.Context, index int) (dto.SnapshotOutput, error) {
	return h.usecase.Choose(ctx, dto.ChooseInput{Index: index})
}

// Answer stores text and submits it in one step.
func (h CLIHandler) Answer(ctx context.Context, text string) (dto.SnapshotOutput, error) {
	if _, err := h.usecase.SetAnswer(ctx, dto.AnswerInput{Text: text}); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return h.usecase.Submit(ctx)
}

func (h CLIHandler) Acknowledge(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Acknowledge(ctx)
}

func (h CLIHandler) Fire(ctx context.Context, timer dto.Timer) (dto.SnapshotOutput, error) {
	return h.usecase.Fire(ctx, timer)
}

func (h CLIHandler) Close(ctx context.Context) error {
	return h.usecase.Close(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context) dto.SnapshotOutput {
	return h.usecase.Snapshot(ctx)
}
