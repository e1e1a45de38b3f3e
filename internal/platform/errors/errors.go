// Package errors provides a structured error type with wrapping and metadata
//
// Import it as perr (or perrs) so it never shadows the standard library
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error
// values go over the wire; never renumber
type ErrorCode uint16

const (
	ErrorCodeUnknown            ErrorCode = 0
	ErrorCodePanic              ErrorCode = 1
	ErrorCodeUnavailable        ErrorCode = 2 // a dependency failed; retrying may work
	ErrorCodeTooManyRequests    ErrorCode = 3
	ErrorCodeConflict           ErrorCode = 4 // state conflict other than a unique key
	ErrorCodeInvalidArgument    ErrorCode = 7
	ErrorCodeValidation         ErrorCode = 8
	ErrorCodeJSON               ErrorCode = 9
	ErrorCodeNotFound           ErrorCode = 10
	ErrorCodeDuplicateKey       ErrorCode = 11
	ErrorCodeDB                 ErrorCode = 12
	ErrorCodeFailedPrecondition ErrorCode = 13 // e.g. resolving before two meals are staged
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:           http.StatusNotFound,
	ErrorCodeInvalidArgument:    http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:       http.StatusConflict,
	ErrorCodeConflict:           http.StatusConflict,
	ErrorCodeValidation:         http.StatusBadRequest,
	ErrorCodeJSON:               http.StatusBadRequest,
	ErrorCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrorCodeFailedPrecondition: http.StatusPreconditionFailed,
	ErrorCodeUnavailable:        http.StatusServiceUnavailable,
}

// HTTPStatusCode maps a code to its http status; anything unmapped is a 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is what store lookups return when no row matched
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a client safe message and an optional cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the client facing shape; the cause never leaves the process
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// Op is the operation label, if set
func (e *Error) Op() string { return e.op }

// ToWire drops the cause
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// As returns the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost *Error, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WireFrom builds the client payload; foreign errors become Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// WithField returns a copy of err naming the offending input; foreign errors pass through
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp returns a copy of err labelled with op; foreign errors pass through
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap records orig as the cause of a new *Error
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// DuplicateKeyf returns a duplicate key error
func DuplicateKeyf(format string, a ...any) error { return Newf(ErrorCodeDuplicateKey, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// FailedPreconditionf returns a failed precondition error
func FailedPreconditionf(format string, a ...any) error {
	return Newf(ErrorCodeFailedPrecondition, format, a...)
}
