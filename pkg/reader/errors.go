package reader

import (
	"errors"
	"fmt"
)

// ProtocolErrorKind enumerates the closed set of engine-level failures that
// are not transport or frame-parse errors (spec.md §7).
type ProtocolErrorKind int

const (
	ErrKindOpcodeMismatch ProtocolErrorKind = iota
	ErrKindBusyReentrance
	ErrKindInvalidArgument
)

func (k ProtocolErrorKind) String() string {
	switch k {
	case ErrKindOpcodeMismatch:
		return "opcode mismatch"
	case ErrKindBusyReentrance:
		return "reader busy"
	case ErrKindInvalidArgument:
		return "invalid argument"
	default:
		return "protocol error"
	}
}

// ProtocolError wraps an engine-level failure with its Kind.
type ProtocolError struct {
	Kind ProtocolErrorKind
	Err  error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reader: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("reader: %s", e.Kind)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func (e *ProtocolError) Is(target error) bool {
	var t *ProtocolError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func newProtocolError(kind ProtocolErrorKind, err error) *ProtocolError {
	return &ProtocolError{Kind: kind, Err: err}
}

// Sentinel errors for use with errors.Is.
var (
	ErrOpcodeMismatch = &ProtocolError{Kind: ErrKindOpcodeMismatch}
	ErrBusyReentrance = &ProtocolError{Kind: ErrKindBusyReentrance}
	ErrInvalidArgument = &ProtocolError{Kind: ErrKindInvalidArgument}
)

// ErrCancelled names the outcome of a streaming operation cancelled via
// StopInventory (spec.md §7). No operation in this package returns it: a
// cancelled stream simply ends, with Next returning ok=false, err=nil.
var ErrCancelled = errors.New("reader: streaming call cancelled")
