package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. State is never touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

type PreconditionReason string

const (
	ReasonDayNotStarted    PreconditionReason = "day_not_started"
	ReasonNotFound         PreconditionReason = "not_found"
	ReasonAlreadyCompleted PreconditionReason = "already_completed"
)

// PreconditionError indicates the record is not in a state that allows the operation.
type PreconditionError struct {
	Reason  PreconditionReason
	Message string
}

func (e PreconditionError) Error() string {
	return e.Message
}

// InsufficientError is returned when a spend exceeds what the player holds.
type InsufficientError struct {
	Resource  string
	Requested int
	Available int
}

func (e InsufficientError) Error() string {
	return fmt.Sprintf("not enough %s (requested %d, have %d)", e.Resource, e.Requested, e.Available)
}

func errDayNotStarted() error {
	return PreconditionError{Reason: ReasonDayNotStarted, Message: "day not started"}
}

func errNotFound(what, id string) error {
	return PreconditionError{Reason: ReasonNotFound, Message: fmt.Sprintf("%s %s not found", what, id)}
}

type OutcomeKind string

const (
	OutcomeOK           OutcomeKind = "ok"
	OutcomeValidation   OutcomeKind = "validation"
	OutcomePrecondition OutcomeKind = "precondition"
	OutcomeInsufficient OutcomeKind = "insufficient"
	OutcomeInternal     OutcomeKind = "internal"
)

// Outcome is the tagged result handed across the engine boundary.
type Outcome struct {
	OK      bool               `json:"ok"`
	Kind    OutcomeKind        `json:"kind"`
	Reason  PreconditionReason `json:"reason,omitempty"`
	Message string             `json:"message,omitempty"`
}

// OutcomeOf classifies err. A nil error is a successful outcome.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Outcome{OK: true, Kind: OutcomeOK}
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return Outcome{Kind: OutcomeValidation, Message: ve.Message}
	}
	var pe PreconditionError
	if errors.As(err, &pe) {
		return Outcome{Kind: OutcomePrecondition, Reason: pe.Reason, Message: pe.Message}
	}
	var ie InsufficientError
	if errors.As(err, &ie) {
		return Outcome{Kind: OutcomeInsufficient, Message: ie.Error()}
	}
	return Outcome{Kind: OutcomeInternal, Message: err.Error()}
}
