package dto

type FilterInput struct {
	Category string
	Query    string
}

type ExerciseOutput struct {
	ID            string
	Category      string
	CategoryLabel string
	Title         string
	Description   string
	Type          string
}

// ExerciseDetailOutput never carries the answer.
type ExerciseDetailOutput struct {
	ExerciseOutput
	Options   []string
	Preview   []string
	GridSize  int
	GridCount int
}

type CategoryOutput struct {
	ID    string
	Label string
	Count int
}
