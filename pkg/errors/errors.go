// Package errors carries structured errors between the timing pipeline
// and the two surfaces that report them.
//
// Every failure that can reach a user is tagged with a Code. The CLI
// prints UserMessage and keeps the code out of sight; the HTTP API maps
// the code to a status and returns both in the response body. Layers in
// between use Wrap so the original cause stays on the chain for the
// standard errors.Is and errors.As.
//
//	if err := fetch(url); err != nil {
//	    return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure category across process boundaries. The
// strings are stable: the API serializes them into error responses and
// clients switch on them.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"   // request or flag value rejected
	ErrCodeInvalidLevel  Code = "INVALID_LEVEL"   // level content unusable
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"  // unknown output format
	ErrCodeInvalidPath   Code = "INVALID_PATH"    // local path rejected
	ErrCodeNotFound      Code = "NOT_FOUND"       // resource missing, no better category
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"  // level file missing on disk
	ErrCodeLevelNotFound Code = "LEVEL_NOT_FOUND" // archived level id unknown
	ErrCodeNetwork       Code = "NETWORK_ERROR"   // fetch failed
	ErrCodeTimeout       Code = "TIMEOUT"         // operation exceeded its deadline
	ErrCodeRateLimited   Code = "RATE_LIMITED"    // level host asked us to back off
	ErrCodeStore         Code = "STORE_ERROR"     // archive store unavailable
	ErrCodeInternal      Code = "INTERNAL_ERROR"  // bug, not a user problem
	ErrCodeUnsupported   Code = "UNSUPPORTED"     // feature not implemented
)

// Error pairs a Code with a message and, when wrapping, a cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New builds an *Error from a code and a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with the cause attached. The cause stays reachable
// through Unwrap, so matching against sentinel errors still works.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// asError finds the first *Error on the chain, or nil.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the chain carries the given code.
func Is(err error, code Code) bool {
	e := asError(err)
	return e != nil && e.Code == code
}

// GetCode returns the chain's code, or "" for plain errors.
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Plain
// errors pass through unchanged.
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError is attached as the cause of a rate-limited fetch
// error when the level host sent a Retry-After header.
type RateLimitedError struct {
	RetryAfter int // seconds, 0 when the host gave no hint
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code lets callers map this error without unwrapping the chain.
func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }
