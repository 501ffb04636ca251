package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPattern = errors.New("invalid pattern")
)

type RejectionKind string

const (
	InvalidOwner   RejectionKind = "invalid_owner"
	InvalidBody    RejectionKind = "invalid_body"
	NegativeOffset RejectionKind = "negative_offset"
	NegativePeriod RejectionKind = "negative_period"
)

// Message returns the human readable description for k.
func (k RejectionKind) Message() string {
	switch k {
	case InvalidOwner:
		return "the task cannot be created: the owner of the task is absent or invalid"
	case InvalidBody:
		return "the task cannot be created: the body of the task is absent"
	case NegativeOffset:
		return "the task cannot be created: the offset of the task is negative"
	case NegativePeriod:
		return "the task cannot be created: the period of the task is negative"
	}
	return "the task cannot be created"
}

// RejectionError describes why a registration request was refused.
// Owner is the id of the requesting owner, empty if the owner itself is the problem.
type RejectionError struct {
	Owner string
	Kind  RejectionKind
	Raw   error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf(
		"error: kind = %s, owner = %s, raw error = %+v",
		e.Kind,
		e.Owner,
		e.Raw,
	)
}

func IsRejectionErr(err error, kind RejectionKind) bool {
	if err == nil {
		return false
	}
	for {
		rejErr, ok := err.(*RejectionError)
		if ok {
			return rejErr.Kind == kind
		}
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			err = x.Unwrap()
			if err == nil {
				return false
			}
		case interface{ Unwrap() []error }:
			for _, err := range x.Unwrap() {
				if IsRejectionErr(err, kind) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
}

func IsInvalidOwner(err error) bool {
	return IsRejectionErr(err, InvalidOwner)
}
func IsInvalidBody(err error) bool {
	return IsRejectionErr(err, InvalidBody)
}
func IsNegativeOffset(err error) bool {
	return IsRejectionErr(err, NegativeOffset)
}
func IsNegativePeriod(err error) bool {
	return IsRejectionErr(err, NegativePeriod)
}

// RecoveredError wraps a panic that escaped a task body.
// The dispatch loop recovers it and treats the run as failed.
type RecoveredError struct {
	OriginalErr any
}

func (re *RecoveredError) Error() string {
	return fmt.Sprintf(
		"recovered error: the task body panicked and was recovered in the dispatch loop. original err = %s",
		re.OriginalErr,
	)
}
