package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Not found errors (lifecycle preconditions)
	ErrRuleNotFound   ErrorCode = "RULE_NOT_FOUND"
	ErrRuleNotEnabled ErrorCode = "RULE_NOT_ENABLED"
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// Validation errors
	ErrInvalidProtocol ErrorCode = "INVALID_PROTOCOL"
	ErrInvalidSID      ErrorCode = "INVALID_SID"
	ErrInvalidRev      ErrorCode = "INVALID_REV"
	ErrInvalidField    ErrorCode = "INVALID_FIELD"
	ErrInvalidRuleName ErrorCode = "INVALID_RULE_NAME"
	ErrSIDConflict     ErrorCode = "SID_CONFLICT"
	ErrTreeInvalid     ErrorCode = "TREE_INVALID"

	// FileSystem errors
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrFileRead      ErrorCode = "FILE_READ"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileMove      ErrorCode = "FILE_MOVE"
	ErrArchive       ErrorCode = "ARCHIVE"
	ErrPathCollision ErrorCode = "PATH_COLLISION"
)

// Kind groups error codes into the categories callers branch on
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindIO         Kind = "io_failure"
	KindConfig     Kind = "config"
	KindOther      Kind = "other"
)

var codeKinds = map[ErrorCode]Kind{
	ErrRuleNotFound:    KindNotFound,
	ErrRuleNotEnabled:  KindNotFound,
	ErrFileNotFound:    KindNotFound,
	ErrInvalidInput:    KindValidation,
	ErrInvalidProtocol: KindValidation,
	ErrInvalidSID:      KindValidation,
	ErrInvalidRev:      KindValidation,
	ErrInvalidField:    KindValidation,
	ErrInvalidRuleName: KindValidation,
	ErrSIDConflict:     KindValidation,
	ErrTreeInvalid:     KindValidation,
	ErrDirCreate:       KindIO,
	ErrFileRead:        KindIO,
	ErrFileWrite:       KindIO,
	ErrFileCopy:        KindIO,
	ErrFileMove:        KindIO,
	ErrArchive:         KindIO,
	ErrPathCollision:   KindIO,
	ErrConfigLoad:      KindConfig,
	ErrConfigParse:     KindConfig,
	ErrConfigInvalid:   KindConfig,
}

// Kind returns the category of a code
func (c ErrorCode) Kind() Kind {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return KindOther
}

// SnortError represents a structured error with code and details
type SnortError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SnortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SnortError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SnortError) Is(target error) bool {
	var targetErr *SnortError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SnortError with the given code and message
func New(code ErrorCode, message string) *SnortError {
	return &SnortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SnortError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SnortError {
	return &SnortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SnortError
func Wrap(err error, code ErrorCode, message string) *SnortError {
	if err == nil {
		return nil
	}
	return &SnortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SnortError {
	if err == nil {
		return nil
	}
	return &SnortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SnortError) WithDetail(key string, value interface{}) *SnortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SnortError) WithDetails(details map[string]interface{}) *SnortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var snortErr *SnortError
	if errors.As(err, &snortErr) {
		return snortErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SnortError
func GetErrorCode(err error) ErrorCode {
	var snortErr *SnortError
	if errors.As(err, &snortErr) {
		return snortErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SnortError
func GetErrorDetails(err error) map[string]interface{} {
	var snortErr *SnortError
	if errors.As(err, &snortErr) {
		return snortErr.Details
	}
	return nil
}

// GetKind returns the category of err, KindOther for foreign errors
func GetKind(err error) Kind {
	if err == nil {
		return KindOther
	}
	return GetErrorCode(err).Kind()
}

// IsNotFound reports whether a lifecycle precondition failed
func IsNotFound(err error) bool { return GetKind(err) == KindNotFound }

// IsValidation reports whether input was rejected before any mutation
func IsValidation(err error) bool { return GetKind(err) == KindValidation }

// IsIOFailure reports whether a filesystem operation failed
func IsIOFailure(err error) bool { return GetKind(err) == KindIO }
