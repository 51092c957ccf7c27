package in

import (
	"context"

	"mente/internal/modules/progress/dto"
	progressin "mente/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) dto.ProgressOutput {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) IsCompleted(ctx context.Context, id string) bool {
	return h.usecase.IsCompleted(ctx, id)
}

func (h CLIHandler) Summary(ctx context.Context, total int) dto.SummaryOutput {
	return h.usecase.Summary(ctx, total)
}

func (h CLIHandler) Reset(ctx context.Context, confirmed bool) dto.ResetOutput {
	return h.usecase.Reset(ctx, dto.ResetInput{Confirmed: confirmed})
}
