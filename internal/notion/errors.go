package notion

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIErrorCode is the "code" field of an API error response.
type APIErrorCode string

// Error codes documented by the API.
// See: https://developers.notion.com/reference/errors
const (
	CodeUnauthorized        APIErrorCode = "unauthorized"
	CodeRestrictedResource  APIErrorCode = "restricted_resource"
	CodeObjectNotFound      APIErrorCode = "object_not_found"
	CodeRateLimited         APIErrorCode = "rate_limited"
	CodeInvalidJSON         APIErrorCode = "invalid_json"
	CodeInvalidRequestURL   APIErrorCode = "invalid_request_url"
	CodeInvalidRequest      APIErrorCode = "invalid_request"
	CodeValidationError     APIErrorCode = "validation_error"
	CodeConflictError       APIErrorCode = "conflict_error"
	CodeInternalServerError APIErrorCode = "internal_server_error"
	CodeServiceUnavailable  APIErrorCode = "service_unavailable"
)

var apiErrorCodes = map[APIErrorCode]struct{}{
	CodeUnauthorized:        {},
	CodeRestrictedResource:  {},
	CodeObjectNotFound:      {},
	CodeRateLimited:         {},
	CodeInvalidJSON:         {},
	CodeInvalidRequestURL:   {},
	CodeInvalidRequest:      {},
	CodeValidationError:     {},
	CodeConflictError:       {},
	CodeInternalServerError: {},
	CodeServiceUnavailable:  {},
}

// IsAPIErrorCode reports whether code is one of the documented API error codes.
func IsAPIErrorCode(code string) bool {
	_, ok := apiErrorCodes[APIErrorCode(code)]
	return ok
}

// ErrorResponse represents a Notion API error response
type ErrorResponse struct {
	Object  string       `json:"object"`
	Status  int          `json:"status"`
	Code    APIErrorCode `json:"code"`
	Message string       `json:"message"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("notion API error %d (%s): %s", e.Status, e.Code, e.Message)
}

// APIError is a non-2xx response. Response is nil when the body did not carry
// a recognised API error code; Body then holds the raw text.
type APIError struct {
	StatusCode int
	Response   *ErrorResponse
	Body       string
	Header     http.Header
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Response != nil {
		return e.Response.Error()
	}
	return fmt.Sprintf("notion API error %d", e.StatusCode)
}

// Code returns the API error code, or "" for plain HTTP failures.
func (e *APIError) Code() APIErrorCode {
	if e.Response == nil {
		return ""
	}
	return e.Response.Code
}

// TimeoutError reports a request that did not complete within the client timeout.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return "request to Notion API has timed out"
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err carries an APIError with the given code.
func HasCode(err error, code APIErrorCode) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code() == code
}

// IsNotFound reports whether err is an object_not_found or a plain 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || apiErr.Code() == CodeObjectNotFound
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
