package out

import (
	"context"

	"mente/internal/modules/catalogue/domain"
)

// PackStore supplies exercises defined outside the built-in set.
type PackStore interface {
	LoadPacks(ctx context.Context) ([]domain.Exercise, error)
}
