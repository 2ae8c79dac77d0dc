package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can react without string matching.
type ErrorKind int

const (
	// KindUserInput covers missing markers, selections or documents.
	// The operation is aborted and no state is changed.
	KindUserInput ErrorKind = iota
	// KindGeometry covers degenerate selections and zero-area crops.
	KindGeometry
	// KindLowConfidence marks detections that are unreliable but not fatal.
	KindLowConfidence
	// KindMapping marks an approximate pixel-to-document mapping.
	KindMapping
	// KindDependencyMissing marks an optional backend that was not built in.
	KindDependencyMissing
)

// String returns a short name for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindUserInput:
		return "user input"
	case KindGeometry:
		return "geometry"
	case KindLowConfidence:
		return "low confidence"
	case KindMapping:
		return "mapping"
	case KindDependencyMissing:
		return "dependency missing"
	default:
		return "unknown"
	}
}

// Error is a classified error returned by tabgrid operations.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind and the operation that failed
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string
func Errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
