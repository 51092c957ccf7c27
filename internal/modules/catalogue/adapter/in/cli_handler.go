package in

import (
	"context"

	"mente/internal/modules/catalogue/dto"
	cataloguein "mente/internal/modules/catalogue/port/in"
)

type CLIHandler struct {
	usecase cataloguein.Usecase
}

func NewCLIHandler(usecase cataloguein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Filter(ctx context.Context, category, query string) ([]dto.ExerciseOutput, error) {
	return h.usecase.Filter(ctx, dto.FilterInput{Category: category, Query: query})
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ExerciseDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Categories(ctx context.Context) ([]dto.CategoryOutput, error) {
	return h.usecase.Categories(ctx)
}

func (h CLIHandler) Count(ctx context.Context) (int, error) {
	return h.usecase.Count(ctx)
}
