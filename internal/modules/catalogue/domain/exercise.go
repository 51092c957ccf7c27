package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryMemory      Category = "memory"
	CategoryLanguage    Category = "language"
	CategoryCalculation Category = "calculation"
	CategoryAttention   Category = "attention"
	CategoryLogic       Category = "logic"
	CategoryPerception  Category = "perception"

	// CategoryAll is the filter sentinel matching every category.
	CategoryAll Category = "all"
)

var categoryLabels = map[Category]string{
	CategoryMemory:      "Memoria",
	CategoryLanguage:    "Lenguaje",
	CategoryCalculation: "Cálculo",
	CategoryAttention:   "Atención",
	CategoryLogic:       "Lógica",
	CategoryPerception:  "Percepción",
	CategoryAll:         "Todos los ejercicios",
}

// Categories returns the six exercise categories in display order.
func Categories() []Category {
	return []Category{
		CategoryMemory,
		CategoryLanguage,
		CategoryCalculation,
		CategoryAttention,
		CategoryLogic,
		CategoryPerception,
	}
}

func (c Category) Validate() error {
	switch c {
	case CategoryMemory, CategoryLanguage, CategoryCalculation, CategoryAttention, CategoryLogic, CategoryPerception:
		return nil
	default:
		return fmt.Errorf("unsupported category %q", string(c))
	}
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory accepts a category id or its label, case-insensitively.
// An empty string means CategoryAll.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryAll, nil
	}
	for c, label := range categoryLabels {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, label) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported category %q", s)
}

type Type string

const (
	TypeMultipleChoice     Type = "multiple_choice"
	TypeGridMemory         Type = "grid_memory"
	TypeWordScramble       Type = "word_scramble"
	TypeClockReading       Type = "clock_reading"
	TypeSequenceCompletion Type = "sequence_completion"
	TypeMathPuzzle         Type = "math_puzzle"
)

// ContentKind reports which content variant an exercise of this type carries.
// Clock, sequence and math puzzle exercises are answered like multiple choice.
func (t Type) ContentKind() (ContentKind, error) {
	switch t {
	case TypeMultipleChoice, TypeClockReading, TypeSequenceCompletion, TypeMathPuzzle:
		return KindChoice, nil
	case TypeWordScramble:
		return KindScramble, nil
	case TypeGridMemory:
		return KindGrid, nil
	default:
		return "", fmt.Errorf("unsupported exercise type %q", string(t))
	}
}

type Exercise struct {
	ID          string
	Category    Category
	Title       string
	Description string
	Type        Type
	Content     Content
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if err := e.Category.Validate(); err != nil {
		return fmt.Errorf("exercise %s: %w", e.ID, err)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("exercise %s: title is required", e.ID)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("exercise %s: description is required", e.ID)
	}
	want, err := e.Type.ContentKind()
	if err != nil {
		return fmt.Errorf("exercise %s: %w", e.ID, err)
	}
	if e.Content == nil {
		return fmt.Errorf("exercise %s: content is required", e.ID)
	}
	if got := e.Content.Kind(); got != want {
		return fmt.Errorf("exercise %s: type %s needs %s content, got %s", e.ID, e.Type, want, got)
	}
	if err := e.Content.validate(); err != nil {
		return fmt.Errorf("exercise %s: %w", e.ID, err)
	}
	return nil
}

// Matches applies the catalogue filter rule to a single exercise.
func (e Exercise) Matches(category Category, query string) bool {
	if category != CategoryAll && category != e.Category {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

// Filter keeps the exercises matching category and query, preserving order.
func Filter(exercises []Exercise, category Category, query string) []Exercise {
	out := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if ex.Matches(category, query) {
			out = append(out, ex)
		}
	}
	return out
}
