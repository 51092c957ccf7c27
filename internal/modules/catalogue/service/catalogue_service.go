package service

import (
	"context"
	"fmt"
	"log/slog"

	"mente/internal/modules/catalogue/domain"
	catalogueout "mente/internal/modules/catalogue/port/out"
	"mente/internal/platform/random"
)

type CatalogueService struct {
	rng       random.Source
	packs     catalogueout.PackStore
	mathCount int
}

func NewCatalogueService(rng random.Source, packs catalogueout.PackStore, mathCount int) *CatalogueService {
	return &CatalogueService{rng: rng, packs: packs, mathCount: mathCount}
}

// Build assembles the built-in exercises, the generated arithmetic set and
// any pack exercises into one catalogue. Ids must be unique across all of them.
func (s *CatalogueService) Build(ctx context.Context) (*domain.Catalogue, error) {
	if s.mathCount < 0 {
		return nil, fmt.Errorf("math exercise count must be non-negative")
	}
	var exercises []domain.Exercise
	exercises = append(exercises, languageExercises()...)
	exercises = append(exercises, memoryExercises(s.rng)...)
	exercises = append(exercises, GenerateMath(s.rng, s.mathCount, 0)...)
	exercises = append(exercises, attentionExercisesFrom(s.rng)...)
	exercises = append(exercises, logicExercises()...)
	exercises = append(exercises, perceptionExercises()...)

	if s.packs != nil {
		extra, err := s.packs.LoadPacks(ctx)
		if err != nil {
			return nil, fmt.Errorf("load exercise packs: %w", err)
		}
		if len(extra) > 0 {
			slog.Info("exercise packs loaded", "exercises", len(extra))
		}
		exercises = append(exercises, extra...)
	}

	catalogue, err := domain.NewCatalogue(exercises)
	if err != nil {
		return nil, fmt.Errorf("build catalogue: %w", err)
	}
	return catalogue, nil
}
