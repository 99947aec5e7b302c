package utils

import (
	"errors"
	"fmt"
)

var (
	// validation
	ErrInvalidInput        = errors.New("invalid input")
	ErrValueOutOfRange     = errors.New("numeric value outside the question scale")
	ErrTypeMismatch        = errors.New("sessions belong to different diagnostic types")
	ErrInvalidQuestionKind = errors.New("invalid question kind")
	ErrInvalidAreaWeight   = errors.New("area weight must be between 0 and 1")

	// not found
	ErrDiagnosticTypeNotFound = errors.New("diagnostic type not found")
	ErrAreaNotFound           = errors.New("evaluation area not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrSessionNotFound        = errors.New("diagnostic session not found")
	ErrProfileNotFound        = errors.New("business profile not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrRuleNotFound           = errors.New("recommendation rule not found")
	ErrNoRecommendations      = errors.New("no recommendations stored for session")

	// permission
	ErrNotSessionOwner    = errors.New("session does not belong to user")
	ErrNotProfileOwner    = errors.New("business profile does not belong to user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")

	// state
	ErrSessionNotInProgress   = errors.New("session is not in progress")
	ErrSessionNotCompleted    = errors.New("session is not completed")
	ErrSessionAlreadyFinished = errors.New("session is already completed")
	ErrTypeInactive           = errors.New("diagnostic type is not active")
	ErrTypeInUse              = errors.New("diagnostic type is referenced by sessions")

	// persistence
	ErrDatabaseError = errors.New("database error")
)

// IncompleteSessionError reports a finalize attempt on a session that still
// has unanswered mandatory questions.
type IncompleteSessionError struct {
	Missing int
}

func (e *IncompleteSessionError) Error() string {
	return fmt.Sprintf("session incomplete: %d mandatory questions unanswered", e.Missing)
}
