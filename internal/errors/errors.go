package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error. Callers branch on
// codes, never on message text, so retryable faults stay distinguishable
// from fatal misconfiguration.
type ErrorCode string

const (
	// ErrCodeConfig indicates missing or invalid static configuration.
	// Fatal at startup or first use; never retried.
	ErrCodeConfig ErrorCode = "config"
	// ErrCodeStateMismatch indicates an OIDC callback whose state did not
	// match any pending login. Possible CSRF; logged at security severity.
	ErrCodeStateMismatch ErrorCode = "state_mismatch"
	// ErrCodeReplayedCallback indicates a callback reusing an already
	// consumed state. Authorization codes are single-use.
	ErrCodeReplayedCallback ErrorCode = "replayed_callback"
	// ErrCodeIdpDenied indicates the identity provider returned an error
	// parameter on the callback.
	ErrCodeIdpDenied ErrorCode = "idp_denied"
	// ErrCodeTokenExchange indicates the code-for-token exchange failed at
	// the network or HTTP level. The user must re-initiate login.
	ErrCodeTokenExchange ErrorCode = "token_exchange"
	// ErrCodeClaimsInvalid indicates the ID token or its claims failed
	// validation (signature, issuer, audience, nonce, or claim shape).
	ErrCodeClaimsInvalid ErrorCode = "claims_invalid"
	// ErrCodeFederation indicates credential federation failed. The session
	// stays authenticated; document access is degraded.
	ErrCodeFederation ErrorCode = "federation"
	// ErrCodePathTraversal indicates a resource path escaped the role's
	// allowed folder prefix.
	ErrCodePathTraversal ErrorCode = "path_traversal"
	// ErrCodeRoleNotPermitted indicates the role lacks the capability the
	// requested operation needs.
	ErrCodeRoleNotPermitted ErrorCode = "role_not_permitted"
	// ErrCodeUnauthenticated indicates no valid session accompanied the request.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use
// with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Config creates a new configuration error.
func Config(message string) *AppError {
	return New(ErrCodeConfig, message)
}

// Configf creates a new configuration error with formatted message.
func Configf(format string, args ...any) *AppError {
	return Newf(ErrCodeConfig, format, args...)
}

// MissingField creates a configuration error for a required field that is empty.
func MissingField(name string) *AppError {
	return &AppError{Code: ErrCodeConfig, Message: "required configuration field is empty", Field: name}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return Newf(ErrCodeNotFound, format, args...)
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message)
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

// Deny creates an authorization denial with the given code.
// Denials are binary per request and never downgraded to another path.
func Deny(code ErrorCode, message string) *AppError {
	return New(code, message)
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool { return isCode(err, ErrCodeConfig) }

// IsStateMismatch checks if an error is a state-mismatch error.
func IsStateMismatch(err error) bool { return isCode(err, ErrCodeStateMismatch) }

// IsReplayedCallback checks if an error is a replayed-callback error.
func IsReplayedCallback(err error) bool { return isCode(err, ErrCodeReplayedCallback) }

// IsFederation checks if an error is a credential-federation error.
func IsFederation(err error) bool { return isCode(err, ErrCodeFederation) }

// IsDenial checks if an error is an authorization denial.
func IsDenial(err error) bool {
	return isCode(err, ErrCodePathTraversal) || isCode(err, ErrCodeRoleNotPermitted)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
