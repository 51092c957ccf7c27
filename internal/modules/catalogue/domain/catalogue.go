package domain

import (
	"fmt"

	apperrors "mente/internal/platform/errors"
)

// Catalogue is the immutable, ordered set of exercises built at startup.
type Catalogue struct {
	exercises []Exercise
	index     map[string]int
}

func NewCatalogue(exercises []Exercise) (*Catalogue, error) {
	c := &Catalogue{
		exercises: make([]Exercise, 0, len(exercises)),
		index:     make(map[string]int, len(exercises)),
	}
	for _, ex := range exercises {
		if err := ex.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.index[ex.ID]; ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateExercise, ex.ID)
		}
		c.index[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}
	return c, nil
}

func (c *Catalogue) All() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

func (c *Catalogue) Get(id string) (Exercise, bool) {
	i, ok := c.index[id]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[i], true
}

func (c *Catalogue) Len() int {
	return len(c.exercises)
}

func (c *Catalogue) Filter(category Category, query string) []Exercise {
	return Filter(c.exercises, category, query)
}

func (c *Catalogue) CountByCategory() map[Category]int {
	out := make(map[Category]int, len(Categories()))
	for _, ex := range c.exercises {
		out[ex.Category]++
	}
	return out
}
