package domain

import (
	"fmt"
	"time"

	catalogue "mente/internal/modules/catalogue/domain"
	apperrors "mente/internal/platform/errors"
)

const (
	FeedbackDelay  = 1500 * time.Millisecond
	RevealDuration = 2500 * time.Millisecond

	// NoSelection marks that no option has been chosen.
	NoSelection = -1
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePresenting Phase = "presenting"
	PhaseEvaluating Phase = "evaluating"
	PhaseCompleted  Phase = "completed"
)

type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackCorrect Feedback = "correct"
	FeedbackWrong   Feedback = "wrong"
)

type TimerKind string

const (
	// TimerRetry clears a wrong answer.
	TimerRetry TimerKind = "retry"
	// TimerComplete records a correct answer and closes the session.
	TimerComplete TimerKind = "complete"
	// TimerRevealEnd hides the grid pattern.
	TimerRevealEnd TimerKind = "reveal_end"
)

// Timer is a delayed transition owned by the session that scheduled it.
type Timer struct {
	Token string
	Kind  TimerKind
	Delay time.Duration
}

// Outcome is what a transition asks the caller to do next.
type Outcome struct {
	Timer       *Timer
	CompletedID string
	Close       bool
}

// Session is the state of the one exercise currently open.
type Session struct {
	Token     string
	Exercise  catalogue.Exercise
	Phase     Phase
	Feedback  Feedback
	Selected  int
	Input     string
	Cells     []int
	Revealing bool
	OpenedAt  time.Time
}

// Open starts a session on ex. cells are the highlighted grid indices and are
// ignored for other content.
func Open(token string, ex catalogue.Exercise, cells []int, now time.Time) (*Session, Outcome) {
	s := &Session{
		Token:    token,
		Exercise: ex,
		Phase:    PhasePresenting,
		Selected: NoSelection,
		OpenedAt: now,
	}
	if _, ok := ex.Content.(catalogue.GridMemory); ok {
		s.Cells = append([]int(nil), cells...)
		s.Revealing = true
		return s, Outcome{Timer: s.timer(TimerRevealEnd, RevealDuration)}
	}
	return s, Outcome{}
}

// Choose answers a multiple-choice exercise.
func (s *Session) Choose(index int) (Outcome, error) {
	content, ok := s.Exercise.Content.(catalogue.MultipleChoice)
	if !ok {
		return Outcome{}, fmt.Errorf("choose option on %s: %w", s.Exercise.Type, apperrors.ErrWrongInteraction)
	}
	if err := s.awaitingResponse(); err != nil {
		return Outcome{}, err
	}
	if index < 0 || index >= len(content.Options) {
		return Outcome{}, fmt.Errorf("%w: option %d out of range", apperrors.ErrInvalidInput, index)
	}
	s.Selected = index
	return s.judge(content.IsCorrect(index)), nil
}

// SetInput replaces the typed answer of a word scramble.
func (s *Session) SetInput(text string) error {
	if _, ok := s.Exercise.Content.(catalogue.WordScramble); !ok {
		return fmt.Errorf("type answer on %s: %w", s.Exercise.Type, apperrors.ErrWrongInteraction)
	}
	if err := s.awaitingResponse(); err != nil {
		return err
	}
	s.Input = text
	return nil
}

// Submit judges the typed answer of a word scramble.
func (s *Session) Submit() (Outcome, error) {
	content, ok := s.Exercise.Content.(catalogue.WordScramble)
	if !ok {
		return Outcome{}, fmt.Errorf("submit answer on %s: %w", s.Exercise.Type, apperrors.ErrWrongInteraction)
	}
	if err := s.awaitingResponse(); err != nil {
		return Outcome{}, err
	}
	return s.judge(content.IsCorrect(s.Input)), nil
}

// Acknowledge completes a grid exercise once the pattern is hidden. Recall is
// not checked.
func (s *Session) Acknowledge() (Outcome, error) {
	if _, ok := s.Exercise.Content.(catalogue.GridMemory); !ok {
		return Outcome{}, fmt.Errorf("acknowledge %s: %w", s.Exercise.Type, apperrors.ErrWrongInteraction)
	}
	if s.Revealing {
		return Outcome{}, apperrors.ErrRevealInProgress
	}
	if err := s.awaitingResponse(); err != nil {
		return Outcome{}, err
	}
	s.Feedback = FeedbackCorrect
	s.Phase = PhaseCompleted
	return Outcome{CompletedID: s.Exercise.ID, Close: true}, nil
}

// Fire applies a timer. It reports false when the timer belongs to another
// session or no longer matches the current phase.
func (s *Session) Fire(t Timer) (Outcome, bool) {
	if t.Token != s.Token {
		return Outcome{}, false
	}
	switch t.Kind {
	case TimerRetry:
		if s.Phase != PhaseEvaluating {
			return Outcome{}, false
		}
		s.Phase = PhasePresenting
		s.Feedback = FeedbackNone
		s.Selected = NoSelection
		return Outcome{}, true
	case TimerComplete:
		if s.Phase != PhaseCompleted {
			return Outcome{}, false
		}
		return Outcome{CompletedID: s.Exercise.ID, Close: true}, true
	case TimerRevealEnd:
		if !s.Revealing {
			return Outcome{}, false
		}
		s.Revealing = false
		return Outcome{}, true
	default:
		return Outcome{}, false
	}
}

// Awaiting reports whether the session accepts a response right now.
func (s *Session) Awaiting() bool {
	return s.awaitingResponse() == nil && !s.Revealing
}

func (s *Session) awaitingResponse() error {
	if s.Phase != PhasePresenting {
		return apperrors.ErrFeedbackPending
	}
	return nil
}

// judge settles a response. Evaluating only holds wrong answers waiting for
// their retry; a correct one is final and goes straight to Completed.
func (s *Session) judge(correct bool) Outcome {
	if correct {
		s.Feedback = FeedbackCorrect
		s.Phase = PhaseCompleted
		return Outcome{Timer: s.timer(TimerComplete, FeedbackDelay)}
	}
	s.Feedback = FeedbackWrong
	s.Phase = PhaseEvaluating
	return Outcome{Timer: s.timer(TimerRetry, FeedbackDelay)}
}

func (s *Session) timer(kind TimerKind, delay time.Duration) *Timer {
	return &Timer{Token: s.Token, Kind: kind, Delay: delay}
}
