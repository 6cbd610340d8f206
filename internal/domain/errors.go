package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSlotTaken       = errors.New("slot already taken by another player")
	ErrNotHost         = errors.New("only the host can perform this action")
	ErrNotYourTurn     = errors.New("not your turn to give a clue")
	ErrPlayersNotReady = errors.New("all players must be ready to start")
	ErrInvalidPhase    = errors.New("invalid action for current phase")
)

// ValidationKind identifies which join field failed validation
type ValidationKind string

const (
	InvalidName ValidationKind = "INVALID_NAME"
	InvalidSlot ValidationKind = "INVALID_SLOT"
)

// ValidationError is returned for malformed join requests. It is surfaced to
// the requester only and never mutates session state.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error of the given kind
func NewValidationError(kind ValidationKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}
