package bsonjson

import "fmt"

// Kind identifies a category of transcoding error. Callers can compare a
// returned error's Kind with errors.Is against the sentinel Kind values
// below, e.g. `errors.Is(err, bsonjson.ErrBadStringLength)`.
type Kind string

// Sentinel error kinds, one per distinct failure condition.
// ErrBadArrayTerminator and ErrAllocationFailure are declared but never
// returned by this package.
const (
	ErrInputTooShort      Kind = "input too short"
	ErrBadDocumentSize    Kind = "bad document size"
	ErrBadStringLength    Kind = "bad string length"
	ErrTruncatedValue     Kind = "truncated value"
	ErrTruncatedKey       Kind = "truncated key"
	ErrBadArrayTerminator Kind = "bad array terminator"
	ErrUnsupportedType    Kind = "unsupported BSON type"
	ErrUnknownType        Kind = "unknown BSON type"
	ErrMaxDepthExceeded   Kind = "maximum nesting depth exceeded"
	ErrAllocationFailure  Kind = "allocation failure"
	ErrStreamCancelled    Kind = "stream cancelled"
)

// Error implements the error interface so a Kind can be returned (and
// compared via errors.Is) directly where convenient.
func (k Kind) Error() string { return string(k) }

// TranscodeError records a transcoding failure. It carries a Kind for
// programmatic handling and a human-readable message with context (e.g.
// the byte offset or field name involved).
type TranscodeError struct {
	Kind Kind
	msg  string
}

func (e *TranscodeError) Error() string {
	if e.msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Is reports whether target is the same Kind as e, so errors.Is(err,
// bsonjson.ErrTruncatedValue) works against a returned *TranscodeError.
func (e *TranscodeError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(kind Kind, format string, args ...interface{}) *TranscodeError {
	return &TranscodeError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}
