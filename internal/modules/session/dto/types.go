package dto

import "time"

type OpenInput struct {
	ExerciseID string
}

type ChooseInput struct {
	Index int
}

type AnswerInput struct {
	Text string
}

// Timer is a delayed transition. Without a scheduler the caller waits Delay
// and hands it back through Fire.
type Timer struct {
	Token string
	Kind  string
	Delay time.Duration
}

// SnapshotOutput is everything a view needs to render the open exercise.
// Active is false once the session has closed.
type SnapshotOutput struct {
	Active      bool
	Token       string
	ExerciseID  string
	Title       string
	Description string
	Category    string
	Type        string
	Phase       string
	Feedback    string
	Selected    int

	Options []string
	Preview []string
	Input   string

	GridSize        int
	Cells           []int
	Revealing       bool
	RevealRemaining time.Duration

	Pending *Timer
	// CompletedID is set on the transition that completed an exercise.
	CompletedID string
}
