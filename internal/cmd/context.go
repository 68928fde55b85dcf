package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/salmonumbrella/notion-sdk-go/internal/auth"
	"github.com/salmonumbrella/notion-sdk-go/internal/config"
	"github.com/salmonumbrella/notion-sdk-go/internal/debug"
	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
	"github.com/salmonumbrella/notion-sdk-go/internal/output"
)

// runtimeState is what the root pre-run hands to every subcommand.
type runtimeState struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	cfg       *config.Config
	workspace string
	version   string
}

type runtimeKey struct{}

func withRuntime(ctx context.Context, rt *runtimeState) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

func runtimeFromContext(ctx context.Context) *runtimeState {
	if rt, ok := ctx.Value(runtimeKey{}).(*runtimeState); ok {
		return rt
	}
	return &runtimeState{cfg: &config.Config{}}
}

func printerForContext(ctx context.Context) *output.Printer {
	return output.NewPrinter(runtimeFromContext(ctx).stdout, output.FormatFromContext(ctx))
}

// clientFromContext builds a client from the resolved workspace settings.
func clientFromContext(ctx context.Context) (*notion.Client, error) {
	rt := runtimeFromContext(ctx)
	settings, err := rt.cfg.Resolve(rt.workspace)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "failed to select workspace", "Run 'ntn config show' to list workspaces")
	}
	token, err := auth.ResolveToken(settings.TokenSource, settings.Workspace)
	if err != nil {
		return nil, clierrors.AuthRequiredError(err)
	}

	return newClient(rt, settings, token, debug.IsDebug(ctx)), nil
}

func newClient(rt *runtimeState, settings config.Settings, token string, debugHTTP bool) *notion.Client {
	client := notion.NewClient(token).
		WithUserAgent(fmt.Sprintf("notion-sdk-go/%s", rt.version)).
		EnableCircuitBreaker()
	if settings.APIURL != "" {
		client = client.WithBaseURL(settings.APIURL)
	}
	if settings.NotionVersion != "" {
		client = client.WithVersion(settings.NotionVersion)
	}
	if settings.Timeout > 0 {
		client = client.WithTimeout(settings.Timeout)
	}
	if debugHTTP {
		client = client.WithDebugOutput(rt.stderr)
	}
	return client
}

// describeNotFound turns a 404 into a user error naming the object.
func describeNotFound(err error, kind, id string) error {
	if notion.IsNotFound(err) {
		return clierrors.NotFoundError(err, kind, id)
	}
	return err
}

var errNothingToDo = errors.New("nothing to update")
