package service

import (
	"context"
	"errors"
	"log/slog"

	"mente/internal/modules/progress/domain"
	progressout "mente/internal/modules/progress/port/out"
	apperrors "mente/internal/platform/errors"
)

type ProgressService struct {
	store progressout.StateStore
}

func NewProgressService(store progressout.StateStore) *ProgressService {
	return &ProgressService{store: store}
}

// Load reads the stored blob. Missing, unreadable or malformed state yields
// empty progress.
func (s *ProgressService) Load(ctx context.Context) domain.Progress {
	if s.store == nil {
		return domain.Empty()
	}
	raw, err := s.store.Get(ctx, domain.StorageKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrKeyNotFound) {
			slog.Warn("progress state unreadable, starting empty", "key", domain.StorageKey, "error", err)
		}
		return domain.Empty()
	}
	p, err := domain.Decode(raw)
	if err != nil {
		slog.Warn("progress state malformed, starting empty", "key", domain.StorageKey, "error", err)
		return domain.Empty()
	}
	return p
}

func (s *ProgressService) Save(ctx context.Context, p domain.Progress) error {
	if s.store == nil {
		return nil
	}
	raw, err := domain.Encode(p)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, domain.StorageKey, raw)
}
