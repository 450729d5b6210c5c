package feedback

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable failure category. Every kind degrades to an empty Result
// at the RPC boundary; the kind only shows up in logs.
type Kind string

const (
	KindNoBackendAvailable               Kind = "no_backend_available"
	KindBackendLaunchFailed              Kind = "backend_launch_failed"
	KindResultArtifactMissingOrMalformed Kind = "result_artifact_missing_or_malformed"
	KindTimeout                          Kind = "timeout"
)

// Sentinel errors, matchable with errors.Is against any *Error of the same kind.
var (
	ErrNoBackendAvailable         = errors.New("feedback: no suitable backend available")
	ErrBackendLaunchFailed        = errors.New("feedback: backend launch failed")
	ErrArtifactMissingOrMalformed = errors.New("feedback: result artifact missing or malformed")
	ErrTimeout                    = errors.New("feedback: timed out waiting for feedback")
)

var sentinels = map[Kind]error{
	KindNoBackendAvailable:               ErrNoBackendAvailable,
	KindBackendLaunchFailed:              ErrBackendLaunchFailed,
	KindResultArtifactMissingOrMalformed: ErrArtifactMissingOrMalformed,
	KindTimeout:                          ErrTimeout,
}

// Error wraps an underlying cause with a kind and a human-friendly message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrTimeout) and friends match by kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func Wrap(kind Kind, msg string, err error) *Error { return &Error{Kind: kind, Message: msg, Err: err} }
func NewError(kind Kind, msg string) *Error        { return &Error{Kind: kind, Message: msg} }

// KindOf extracts the failure kind from an error chain. Returns "" when none is present.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	for kind, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}
