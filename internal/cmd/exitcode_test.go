package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"canceled", context.Canceled, ExitCanceled},
		{"wrapped_canceled", fmt.Errorf("get: %w", context.Canceled), ExitCanceled},
		{"user", clierrors.NewUserError("bad", "hint"), ExitUser},
		{"auth", &clierrors.AuthError{Reason: "no token"}, ExitAuth},
		{"auth_required", clierrors.AuthRequiredError(nil), ExitAuth},
		{"api_404", &notion.APIError{StatusCode: 404}, ExitNotFound},
		{"api_404_in_user_error", clierrors.NotFoundError(&notion.APIError{StatusCode: 404}, "page", "p1"), ExitNotFound},
		{"api_429", &notion.APIError{StatusCode: 429}, ExitRateLimit},
		{"api_401", &notion.APIError{StatusCode: 401}, ExitAuth},
		{"api_403", &notion.APIError{StatusCode: 403}, ExitAuth},
		{"api_400", &notion.APIError{StatusCode: 400}, ExitUser},
		{"api_500", &notion.APIError{StatusCode: 500}, ExitSystem},
		{"decode", fmt.Errorf("failed to decode page: %w", &model.DecodeError{Kind: model.KindMissingField, Field: "id"}), ExitDecode},
		{"timeout", &notion.TimeoutError{Err: context.DeadlineExceeded}, ExitTemp},
		{"circuit_open", fmt.Errorf("get: %w", notion.ErrCircuitOpen), ExitTemp},
		{"other", errors.New("boom"), ExitSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrintCommandError(t *testing.T) {
	var buf bytes.Buffer
	printCommandError(&buf, clierrors.NewUserError("page not found", "Share the page"))
	if got := buf.String(); got != "Error: page not found\nHint: Share the page\n" {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	decErr := &model.DecodeError{Kind: model.KindMalformedValue, Path: "results/1", Field: "id"}
	printCommandError(&buf, fmt.Errorf("failed to decode list: %w", decErr))
	if !strings.Contains(buf.String(), "Location: results/1") {
		t.Errorf("missing location: %q", buf.String())
	}

	buf.Reset()
	printCommandError(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("nil error printed %q", buf.String())
	}
}
