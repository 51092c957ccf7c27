package out

import (
	"context"

	catalogue "mente/internal/modules/catalogue/domain"
	cataloguein "mente/internal/modules/catalogue/port/in"
	sessionout "mente/internal/modules/session/port/out"
)

type CatalogueSource struct {
	catalogue cataloguein.Usecase
}

func NewCatalogueSource(catalogue cataloguein.Usecase) sessionout.ExerciseSource {
	return CatalogueSource{catalogue: catalogue}
}

func (s CatalogueSource) Exercise(ctx context.Context, id string) (catalogue.Exercise, error) {
	return s.catalogue.Exercise(ctx, id)
}
