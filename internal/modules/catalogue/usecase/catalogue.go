package usecase

import (
	"context"
	"fmt"

	"mente/internal/modules/catalogue/domain"
	"mente/internal/modules/catalogue/dto"
	cataloguein "mente/internal/modules/catalogue/port/in"
	apperrors "mente/internal/platform/errors"
)

type Interactor struct {
	catalogue *domain.Catalogue
}

func NewInteractor(catalogue *domain.Catalogue) cataloguein.Usecase {
	return &Interactor{catalogue: catalogue}
}

func (i *Interactor) List(_ context.Context) ([]dto.ExerciseOutput, error) {
	return toOutputs(i.catalogue.All()), nil
}

func (i *Interactor) Filter(_ context.Context, input dto.FilterInput) ([]dto.ExerciseOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return toOutputs(i.catalogue.Filter(category, input.Query)), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ExerciseDetailOutput, error) {
	ex, err := i.Exercise(ctx, id)
	if err != nil {
		return dto.ExerciseDetailOutput{}, err
	}
	out := dto.ExerciseDetailOutput{ExerciseOutput: toOutput(ex)}
	switch c := ex.Content.(type) {
	case domain.MultipleChoice:
		out.Options = c.Options
		out.Preview = c.Preview
	case domain.GridMemory:
		out.GridSize = c.Size
		out.GridCount = c.Count
	}
	return out, nil
}

func (i *Interactor) Categories(_ context.Context) ([]dto.CategoryOutput, error) {
	counts := i.catalogue.CountByCategory()
	out := make([]dto.CategoryOutput, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		out = append(out, dto.CategoryOutput{ID: string(c), Label: c.Label(), Count: counts[c]})
	}
	return out, nil
}

func (i *Interactor) Count(_ context.Context) (int, error) {
	return i.catalogue.Len(), nil
}

func (i *Interactor) Exercise(_ context.Context, id string) (domain.Exercise, error) {
	ex, ok := i.catalogue.Get(id)
	if !ok {
		return domain.Exercise{}, fmt.Errorf("exercise %s: %w", id, apperrors.ErrNotFound)
	}
	return ex, nil
}

func toOutput(ex domain.Exercise) dto.ExerciseOutput {
	return dto.ExerciseOutput{
		ID:            ex.ID,
		Category:      string(ex.Category),
		CategoryLabel: ex.Category.Label(),
		Title:         ex.Title,
		Description:   ex.Description,
		Type:          string(ex.Type),
	}
}

func toOutputs(exercises []domain.Exercise) []dto.ExerciseOutput {
	out := make([]dto.ExerciseOutput, 0, len(exercises))
	for _, ex := range exercises {
		out = append(out, toOutput(ex))
	}
	return out
}
