package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/notion-sdk-go/internal/auth"
	"github.com/salmonumbrella/notion-sdk-go/internal/config"
	"github.com/salmonumbrella/notion-sdk-go/internal/debug"
	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/ui"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage integration tokens",
		Long: `Store, inspect, and remove integration tokens.

Tokens live in the system keyring, one per workspace (see --workspace).
NOTION_TOKEN overrides any stored token.`,
	}
	cmd.AddCommand(newAuthAddTokenCmd())
	cmd.AddCommand(newAuthRemoveCmd())
	cmd.AddCommand(newAuthStatusCmd())
	return cmd
}

// workspaceName is the keyring slot a command operates on.
func workspaceName(rt *runtimeState) string {
	if rt.workspace != "" {
		return rt.workspace
	}
	if env := os.Getenv(config.EnvWorkspace); env != "" {
		return env
	}
	if rt.cfg.DefaultWorkspace != "" {
		return rt.cfg.DefaultWorkspace
	}
	return auth.DefaultWorkspace
}

func newAuthAddTokenCmd() *cobra.Command {
	var noVerify bool
	cmd := &cobra.Command{
		Use:   "add-token [token]",
		Short: "Store an integration token in the keyring",
		Long: `Store an internal integration token. Without an argument the token is
read from stdin (no echo on a terminal). The token is checked against the
API before it is saved unless --no-verify is set.

Example:
  ntn auth add-token
  ntn auth add-token --workspace work < token.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt := runtimeFromContext(ctx)
			u := ui.FromContext(ctx)
			name := workspaceName(rt)

			var token string
			if len(args) == 1 {
				token = strings.TrimSpace(args[0])
			} else {
				var err error
				token, err = u.ReadSecret("Integration token: ")
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
			}
			if token == "" {
				return clierrors.NewUserError("token cannot be empty", "Create one at https://www.notion.so/my-integrations")
			}

			rec := auth.TokenRecord{Token: token}
			if !noVerify {
				settings := config.Settings{Workspace: name, APIURL: os.Getenv(config.EnvAPIURL), NotionVersion: os.Getenv(config.EnvVersion)}
				if ws, ok := rt.cfg.Workspaces[name]; ok {
					if ws.APIURL != "" && settings.APIURL == "" {
						settings.APIURL = ws.APIURL
					}
					if ws.NotionVersion != "" && settings.NotionVersion == "" {
						settings.NotionVersion = ws.NotionVersion
					}
				}
				bot, err := newClient(rt, settings, token, debug.IsDebug(ctx)).GetSelf(ctx)
				if err != nil {
					return &clierrors.AuthError{Reason: "token was rejected", Suggestion: "Check the token, or pass --no-verify", Err: err}
				}
				rec.BotID = bot.Base().ID
				rec.BotName = bot.Base().Name
			}

			store, err := auth.Open()
			if err != nil {
				return err
			}
			if err := store.Save(name, rec); err != nil {
				return err
			}
			if rec.BotName != "" {
				u.Success("Stored token for %q (bot: %s)", name, rec.BotName)
			} else {
				u.Success("Stored token for %q", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Save without checking the token")
	return cmd
}

func newAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm", "logout"},
		Short:   "Remove the stored token for a workspace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := workspaceName(runtimeFromContext(ctx))
			store, err := auth.Open()
			if err != nil {
				return err
			}
			if err := store.Remove(name); err != nil {
				return err
			}
			ui.FromContext(ctx).Success("Removed token for %q", name)
			return nil
		},
	}
}

// authStatus is what `auth status` reports.
type authStatus struct {
	Workspace   string     `json:"workspace" yaml:"workspace"`
	TokenSource string     `json:"token_source" yaml:"token_source"`
	Token       string     `json:"token,omitempty" yaml:"token,omitempty"`
	BotName     string     `json:"bot_name,omitempty" yaml:"bot_name,omitempty"`
	StoredAt    *time.Time `json:"stored_at,omitempty" yaml:"stored_at,omitempty"`
	APIURL      string     `json:"api_url,omitempty" yaml:"api_url,omitempty"`
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which token would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt := runtimeFromContext(ctx)
			settings, err := rt.cfg.Resolve(rt.workspace)
			if err != nil {
				return clierrors.WrapUserError(err, "failed to select workspace", "Run 'ntn config show' to list workspaces")
			}
			if settings.Workspace == "" {
				settings.Workspace = auth.DefaultWorkspace
			}

			status := authStatus{Workspace: settings.Workspace, TokenSource: settings.TokenSource, APIURL: settings.APIURL}
			switch {
			case settings.TokenSource == "" || settings.TokenSource == "keyring":
				status.TokenSource = "keyring"
				store, err := auth.Open()
				if err != nil {
					return err
				}
				rec, err := store.Load(settings.Workspace)
				if errors.Is(err, auth.ErrNoToken) {
					return clierrors.AuthRequiredError(err)
				}
				if err != nil {
					return err
				}
				status.Token = rec.Masked()
				status.BotName = rec.BotName
				status.StoredAt = &rec.StoredAt
			case strings.HasPrefix(settings.TokenSource, "env:"):
				token, err := auth.ResolveToken(settings.TokenSource, settings.Workspace)
				if err != nil {
					return clierrors.AuthRequiredError(err)
				}
				status.Token = auth.TokenRecord{Token: token}.Masked()
			default:
				status.TokenSource = "config"
				status.Token = auth.TokenRecord{Token: settings.TokenSource}.Masked()
			}
			return printerForContext(ctx).Print(ctx, status)
		},
	}
}
