// Package errors holds the error types shared by the client and the CLI.
package errors

import (
	"errors"
	"fmt"
)

// UserError is an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps err with a user-facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

// AuthError represents a missing or unusable integration token.
type AuthError struct {
	Reason     string
	Suggestion string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication error: %s: %v", e.Reason, e.Err)
	}
	return "authentication error: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AuthRequiredError wraps err with the standard "no token" guidance.
func AuthRequiredError(err error) error {
	return &AuthError{
		Reason:     "authentication required",
		Suggestion: "Run 'ntn auth add-token' or set NOTION_TOKEN",
		Err:        err,
	}
}

func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// UserSuggestion returns the suggestion carried by a UserError or AuthError.
func UserSuggestion(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Suggestion
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Suggestion
	}
	return ""
}

// ContextualError wraps an error with the HTTP request that produced it.
type ContextualError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

// WrapContext wraps err with request context. statusCode is 0 when the
// request never completed. Returns nil if err is nil.
func WrapContext(method, url string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &ContextualError{Method: method, URL: url, StatusCode: statusCode, Err: err}
}

func (e *ContextualError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s (%d): %s", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *ContextualError) Unwrap() error {
	return e.Err
}

// IsContextualError reports whether err carries request context.
func IsContextualError(err error) bool {
	var ce *ContextualError
	return errors.As(err, &ce)
}

// NotFoundError wraps err for an object the integration cannot see.
// kind is the object name ("page", "block", "database", "user").
func NotFoundError(err error, kind, id string) error {
	return WrapUserError(err, fmt.Sprintf("%s %q not found", kind, id),
		fmt.Sprintf("Check the ID, and share the %s with your integration in Notion", kind))
}
