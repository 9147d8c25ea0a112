package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrInvalidState      = errors.New("operation not valid in current proposal state")
	ErrInvalidTransition = errors.New("invalid proposal state transition")
	ErrDuplicateVote     = errors.New("voter has already voted on this proposal")
	ErrDeadlinePassed    = errors.New("voting deadline has passed")
	ErrVotingStillOpen   = errors.New("voting is still open and quorum has not been reached")
	ErrPriceTooLow       = errors.New("max price is below the current auction price")
	ErrSoldOut           = errors.New("no auction supply remaining")
	ErrConflict          = errors.New("conflicting concurrent update")
	ErrExternalService   = errors.New("external collaborator failure")
)

// TransitionError names the current and requested states for a rejected
// lifecycle transition. It unwraps to ErrInvalidTransition so callers can
// match with errors.Is.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid proposal state transition from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func NewTransitionError(from string, to string) error {
	return &TransitionError{From: from, To: to}
}
