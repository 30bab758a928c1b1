package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class. Tests and the CLI switch on codes,
// never on messages.
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrPathNotFound: a declared path has no case-insensitive match under
	// the package root. Raised by the resolver and by folder installs.
	ErrPathNotFound ErrorCode = "PATH_NOT_FOUND"
	// ErrMalformedExpression: a dependency node of unknown kind, operator or
	// file state. It means the package description is broken, so callers
	// surface it instead of recovering.
	ErrMalformedExpression ErrorCode = "MALFORMED_EXPRESSION"
	// ErrIOFailure: a directory listing or stat failed. Never retried.
	ErrIOFailure ErrorCode = "IO_FAILURE"

	// ErrPackageInvalid: ModuleConfig.xml is missing or not a <config>
	// document, or the package dependencies are not met.
	ErrPackageInvalid ErrorCode = "PACKAGE_INVALID"

	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrAnswersInvalid ErrorCode = "ANSWERS_INVALID"
)

// FomodError is the error returned across package boundaries. The installer
// propagates it unchanged from the resolver, walker and evaluator, so the
// code seen by a caller of Next is the code of the step that failed. Details
// carry the offending path, segment or expression kind for rendering.
type FomodError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *FomodError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *FomodError) Unwrap() error {
	return e.Wrapped
}

// Is matches any FomodError carrying the same code.
func (e *FomodError) Is(target error) bool {
	var other *FomodError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

func build(code ErrorCode, message string, wrapped error) *FomodError {
	return &FomodError{
		Code:    code,
		Message: message,
		Details: map[string]interface{}{},
		Wrapped: wrapped,
	}
}

func New(code ErrorCode, message string) *FomodError {
	return build(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...interface{}) *FomodError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap returns nil for a nil err so call sites can wrap unconditionally.
func Wrap(err error, code ErrorCode, message string) *FomodError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FomodError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail records key on the error and returns it for chaining.
func (e *FomodError) WithDetail(key string, value interface{}) *FomodError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func find(err error) *FomodError {
	var fe *FomodError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// IsErrorCode reports whether any FomodError in err's chain has code.
func IsErrorCode(err error, code ErrorCode) bool {
	fe := find(err)
	return fe != nil && fe.Code == code
}

// GetErrorCode returns the outermost code in err's chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if fe := find(err); fe != nil {
		return fe.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost details in err's chain.
func GetErrorDetails(err error) map[string]interface{} {
	if fe := find(err); fe != nil {
		return fe.Details
	}
	return nil
}
