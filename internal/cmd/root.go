// Package cmd implements the ntn command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/notion-sdk-go/internal/config"
	"github.com/salmonumbrella/notion-sdk-go/internal/debug"
	"github.com/salmonumbrella/notion-sdk-go/internal/logging"
	"github.com/salmonumbrella/notion-sdk-go/internal/output"
	"github.com/salmonumbrella/notion-sdk-go/internal/ui"
)

type globalFlags struct {
	output      string
	query       string
	jsonPath    string
	compactJSON bool
	debug       bool
	workspace   string
	color       string
	logFormat   string
}

func newRootCmd(app *App) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "ntn",
		Short:         "Typed command-line client for the Notion API",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			pick := func(name, flagValue, configValue string) string {
				if cmd.Flags().Changed(name) || configValue == "" {
					return flagValue
				}
				return configValue
			}

			logFormat, err := logging.ParseFormat(pick("log-format", flags.logFormat, cfg.LogFormat))
			if err != nil {
				return err
			}
			logging.Setup(logging.Options{Debug: flags.debug, Format: logFormat, Writer: app.Stderr})

			format, err := output.ParseFormat(pick("output", flags.output, cfg.Output))
			if err != nil {
				return err
			}
			colorMode, err := ui.ParseColorMode(pick("color", flags.color, cfg.Color))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctx = output.WithFormat(ctx, format)
			ctx = output.WithQuery(ctx, flags.query)
			ctx = output.WithJSONPath(ctx, flags.jsonPath)
			ctx = output.WithCompactJSON(ctx, flags.compactJSON)
			ctx = debug.WithDebug(ctx, flags.debug)
			u := ui.NewWithWriter(app.Stderr, colorMode)
			u.SetInput(app.Stdin)
			ctx = ui.WithUI(ctx, u)
			ctx = withRuntime(ctx, &runtimeState{
				stdin:     app.Stdin,
				stdout:    app.Stdout,
				stderr:    app.Stderr,
				cfg:       cfg,
				workspace: flags.workspace,
				version:   app.Version,
			})
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("ntn %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.output, "output", "o", "text", "Output format: text|json|yaml")
	pf.StringVarP(&flags.query, "query", "q", "", "jq expression applied to the output")
	pf.StringVar(&flags.jsonPath, "jsonpath", "", "JSONPath expression applied to the output (e.g. $.results[0].id)")
	pf.BoolVar(&flags.compactJSON, "compact-json", false, "Single-line JSON output")
	pf.BoolVar(&flags.debug, "debug", false, "Log HTTP traffic and debug messages to stderr")
	pf.StringVarP(&flags.workspace, "workspace", "w", "", "Workspace from the config file (overrides NOTION_WORKSPACE)")
	pf.StringVar(&flags.color, "color", "auto", "Color mode: auto|always|never")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format: text|json")

	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newBlockCmd())
	rootCmd.AddCommand(newPageCmd())
	rootCmd.AddCommand(newDBCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
