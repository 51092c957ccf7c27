package service

import (
	"slices"
	"time"

	catalogue "mente/internal/modules/catalogue/domain"
	"mente/internal/modules/session/domain"
	"mente/internal/platform/clock"
	"mente/internal/platform/id"
	"mente/internal/platform/random"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	rng   random.Source
}

func NewSessionService(clock clock.Clock, idGen id.Generator, rng random.Source) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, rng: rng}
}

// Open mints a token and, for grid exercises, draws the highlighted cells.
func (s *SessionService) Open(ex catalogue.Exercise) (*domain.Session, domain.Outcome) {
	var cells []int
	if grid, ok := ex.Content.(catalogue.GridMemory); ok {
		cells = random.Pick(s.rng, grid.Cells(), grid.Count)
		slices.Sort(cells)
	}
	return domain.Open(s.idGen.New(), ex, cells, s.clock.Now())
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}
