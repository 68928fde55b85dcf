package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/notion-sdk-go/internal/config"
	"github.com/salmonumbrella/notion-sdk-go/internal/output"
	"github.com/salmonumbrella/notion-sdk-go/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the config file",
	}
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetWorkspaceCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(runtimeFromContext(cmd.Context()).stdout, path)
			return err
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the loaded configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt := runtimeFromContext(ctx)
			if output.FormatFromContext(ctx) == output.FormatText {
				data, err := yaml.Marshal(rt.cfg)
				if err != nil {
					return err
				}
				_, err = rt.stdout.Write(data)
				return err
			}
			return printerForContext(ctx).Print(ctx, rt.cfg)
		},
	}
}

func newConfigSetWorkspaceCmd() *cobra.Command {
	var (
		ws         config.Workspace
		setDefault bool
	)
	cmd := &cobra.Command{
		Use:   "set-workspace <name>",
		Short: "Add or replace a workspace",
		Long: `Add or replace a named workspace.

Example:
  ntn config set-workspace work --token-source keyring --timeout 30s --default`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := runtimeFromContext(ctx).cfg
			if err := cfg.SetWorkspace(args[0], ws); err != nil {
				return err
			}
			if setDefault {
				cfg.DefaultWorkspace = args[0]
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			ui.FromContext(ctx).Success("Saved workspace %q", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&ws.TokenSource, "token-source", "keyring", "keyring, env:VAR, or a literal token")
	cmd.Flags().StringVar(&ws.APIURL, "api-url", "", "API base URL")
	cmd.Flags().StringVar(&ws.NotionVersion, "notion-version", "", "Notion-Version header")
	cmd.Flags().StringVar(&ws.Timeout, "timeout", "", "Request timeout, e.g. 30s")
	cmd.Flags().BoolVar(&setDefault, "default", false, "Make this the default workspace")
	return cmd
}
