package cmd

import (
	"context"
	"errors"
	"net/http"

	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
)

const (
	ExitOK        = 0
	ExitSystem    = 1
	ExitUser      = 2
	ExitAuth      = 3
	ExitNotFound  = 4
	ExitRateLimit = 5
	ExitTemp      = 6
	ExitDecode    = 7
	ExitCanceled  = 130
)

// ExitCode maps a command error to a stable process exit code for automation.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}

	var apiErr *notion.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			return ExitNotFound
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return ExitRateLimit
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return ExitAuth
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return ExitUser
		default:
			return ExitSystem
		}
	}

	var decErr *model.DecodeError
	if errors.As(err, &decErr) {
		return ExitDecode
	}
	if notion.IsTimeout(err) || errors.Is(err, notion.ErrCircuitOpen) || errors.Is(err, context.DeadlineExceeded) {
		return ExitTemp
	}
	if clierrors.IsAuthError(err) {
		return ExitAuth
	}
	if clierrors.IsUserError(err) {
		return ExitUser
	}
	return ExitSystem
}
