package domain

import (
	"fmt"
	"strings"
)

type ContentKind string

const (
	KindChoice   ContentKind = "choice"
	KindScramble ContentKind = "scramble"
	KindGrid     ContentKind = "grid"
)

// Content is the interaction payload of an exercise. The set of variants is
// closed: MultipleChoice, WordScramble and GridMemory.
type Content interface {
	Kind() ContentKind
	validate() error
}

type MultipleChoice struct {
	Options      []string
	CorrectIndex int
	// Preview is shown before the options, e.g. the list to memorise.
	Preview []string
}

func (MultipleChoice) Kind() ContentKind { return KindChoice }

func (c MultipleChoice) validate() error {
	if len(c.Options) == 0 {
		return fmt.Errorf("options are required")
	}
	if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Options) {
		return fmt.Errorf("correct index %d out of range [0,%d)", c.CorrectIndex, len(c.Options))
	}
	return nil
}

// IsCorrect reports whether index selects the right option.
func (c MultipleChoice) IsCorrect(index int) bool {
	return index == c.CorrectIndex
}

type WordScramble struct {
	Word string
}

func (WordScramble) Kind() ContentKind { return KindScramble }

func (c WordScramble) validate() error {
	if strings.TrimSpace(c.Word) == "" {
		return fmt.Errorf("word is required")
	}
	return nil
}

// IsCorrect compares the answer with the word ignoring case.
func (c WordScramble) IsCorrect(answer string) bool {
	return strings.EqualFold(answer, c.Word)
}

type GridMemory struct {
	Size  int
	Count int
}

func (GridMemory) Kind() ContentKind { return KindGrid }

func (c GridMemory) validate() error {
	if c.Size < 2 {
		return fmt.Errorf("grid size must be at least 2")
	}
	if c.Count < 1 || c.Count > c.Cells() {
		return fmt.Errorf("grid count %d out of range [1,%d]", c.Count, c.Cells())
	}
	return nil
}

func (c GridMemory) Cells() int {
	return c.Size * c.Size
}
