// Package status classifies failures into a small, portable set of kinds.
//
// Every error produced by the filestore and store packages carries one of
// the kinds below, independent of the operating system error that caused it.
// Callers branch on the kind rather than on platform error codes:
//
//	if errors.Is(err, status.NotFound) {
//	    // nothing written yet
//	}
//	if status.KindOf(err) == status.Internal {
//	    // corruption, do not retry
//	}
package status

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind is the classification of an error. A Kind is itself an error so it
// can be used as an errors.Is target.
type Kind int

const (
	OK Kind = iota
	Cancelled
	Unknown
	InvalidArgument
	DeadlineExceeded
	NotFound
	AlreadyExists
	PermissionDenied
	ResourceExhausted
	FailedPrecondition
	Aborted
	OutOfRange
	Unimplemented
	Internal
	Unavailable
)

var kindNames = [...]string{
	OK:                 "ok",
	Cancelled:          "cancelled",
	Unknown:            "unknown",
	InvalidArgument:    "invalid-argument",
	DeadlineExceeded:   "deadline-exceeded",
	NotFound:           "not-found",
	AlreadyExists:      "already-exists",
	PermissionDenied:   "permission-denied",
	ResourceExhausted:  "resource-exhausted",
	FailedPrecondition: "failed-precondition",
	Aborted:            "aborted",
	OutOfRange:         "out-of-range",
	Unimplemented:      "unimplemented",
	Internal:           "internal",
	Unavailable:        "unavailable",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error implements error so a bare Kind can be compared with errors.Is.
func (k Kind) Error() string {
	return k.String()
}

// Error is a classified error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a target Kind against the error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New returns an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err with kind. Returns nil if err is nil. Wrapping an
// already classified error reclassifies it: the result matches only kind,
// while the inner error text and its unclassified cause are kept.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: reclassify(err)}
}

// Wrapf is Wrap with formatting.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: reclassify(err)}
}

// reclassified hides the kinds of a wrapped error from errors.Is and
// errors.As, unwrapping straight to the first unclassified cause.
type reclassified struct {
	text  string
	cause error
}

func (r *reclassified) Error() string { return r.text }

func (r *reclassified) Unwrap() error { return r.cause }

func reclassify(err error) error {
	var se *Error
	if !errors.As(err, &se) {
		return err
	}
	cause := se.Err
	for errors.As(cause, &se) {
		cause = se.Err
	}
	return &reclassified{text: err.Error(), cause: cause}
}

// KindOf returns the kind of err: OK for nil, Unknown when err was never
// classified. The outermost classification wins.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
