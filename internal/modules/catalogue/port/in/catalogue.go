package in

import (
	"context"

	"mente/internal/modules/catalogue/domain"
	"mente/internal/modules/catalogue/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ExerciseOutput, error)
	Filter(ctx context.Context, input dto.FilterInput) ([]dto.ExerciseOutput, error)
	Get(ctx context.Context, id string) (dto.ExerciseDetailOutput, error)
	Categories(ctx context.Context) ([]dto.CategoryOutput, error)
	Count(ctx context.Context) (int, error)
	// Exercise returns the full record, answer included, for the session module.
	Exercise(ctx context.Context, id string) (domain.Exercise, error)
}
