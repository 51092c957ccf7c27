package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrDuplicateExercise = errors.New("duplicate exercise id")
	ErrNoActiveSession   = errors.New("no active session")
	ErrFeedbackPending   = errors.New("feedback is still showing")
	ErrRevealInProgress  = errors.New("grid is still being revealed")
	ErrWrongInteraction  = errors.New("interaction not supported by exercise")
)
