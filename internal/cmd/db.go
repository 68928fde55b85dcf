package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/notion-sdk-go/internal/cmdutil"
	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
	"github.com/salmonumbrella/notion-sdk-go/internal/ui"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "db",
		Aliases: []string{"database", "databases"},
		Short:   "Inspect, query, and create databases",
	}
	cmd.AddCommand(newDBGetCmd())
	cmd.AddCommand(newDBListCmd())
	cmd.AddCommand(newDBQueryCmd())
	cmd.AddCommand(newDBCreateCmd())
	return cmd
}

func newDBGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <database-id>",
		Short: "Get a database and its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dbID, err := cmdutil.NormalizeID(args[0])
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			db, err := client.GetDatabase(ctx, dbID)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to get database: %w", err), "database", dbID)
			}
			return printerForContext(ctx).Print(ctx, db)
		},
	}
}

func newDBListCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List databases shared with the integration",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := flags.validate(); err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			return runList(ctx, &flags, func(ctx context.Context, cursor string) (model.List[model.Database], error) {
				return client.ListDatabases(ctx, &notion.PageOptions{StartCursor: cursor, PageSize: flags.effectivePageSize()})
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newDBQueryCmd() *cobra.Command {
	var (
		flags     listFlags
		filterArg string
		sortsArg  string
	)
	cmd := &cobra.Command{
		Use:     "query <database-id>",
		Aliases: []string{"q"},
		Short:   "Query database rows",
		Long: `Query a database with an optional filter and sorts, both as JSON.

Example:
  ntn db query <db-id> --filter '{"property":"Done","checkbox":{"equals":false}}'
  ntn db query <db-id> --sorts '[{"property":"Due","direction":"ascending"}]' --all -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := flags.validate(); err != nil {
				return err
			}
			dbID, err := cmdutil.NormalizeID(args[0])
			if err != nil {
				return err
			}

			base := notion.QueryDatabaseRequest{}
			if filterArg != "" {
				if err := cmdutil.UnmarshalJSONArg(filterArg, cmd.InOrStdin(), &base.Filter); err != nil {
					return clierrors.WrapUserError(err, "invalid --filter", "Pass a JSON filter object")
				}
			}
			if sortsArg != "" {
				if err := cmdutil.UnmarshalJSONArg(sortsArg, cmd.InOrStdin(), &base.Sorts); err != nil {
					return clierrors.WrapUserError(err, "invalid --sorts", "Pass a JSON array of sort objects")
				}
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			err = runList(ctx, &flags, func(ctx context.Context, cursor string) (model.List[model.Page], error) {
				req := base
				req.StartCursor = cursor
				req.PageSize = flags.effectivePageSize()
				return client.QueryDatabase(ctx, dbID, &req)
			})
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to query database: %w", err), "database", dbID)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&filterArg, "filter", "", "Filter object as JSON (inline, @file, or -)")
	cmd.Flags().StringVar(&sortsArg, "sorts", "", "Sort array as JSON (inline, @file, or -)")
	return cmd
}

func newDBCreateCmd() *cobra.Command {
	var (
		parentPage    string
		title         string
		propertiesArg string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a database under a page",
		Long: `Create a database. --properties is the schema as JSON; a title property
named "Name" is added when the schema has none.

Example:
  ntn db create --parent-page <page-id> --title Tasks \
    --properties '{"Done":{"checkbox":{}}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pageID, err := cmdutil.NormalizeID(parentPage)
			if err != nil {
				return clierrors.WrapUserError(err, "--parent-page is required", "")
			}

			req := &notion.CreateDatabaseRequest{
				Parent:     map[string]any{"type": "page_id", "page_id": pageID},
				Properties: map[string]any{},
			}
			if title != "" {
				req.Title = []map[string]any{{"type": "text", "text": map[string]any{"content": title}}}
			}
			if propertiesArg != "" {
				if err := cmdutil.UnmarshalJSONArg(propertiesArg, cmd.InOrStdin(), &req.Properties); err != nil {
					return clierrors.WrapUserError(err, "invalid --properties", "Pass the schema as a JSON object")
				}
			}
			if !hasTitleProperty(req.Properties) {
				req.Properties["Name"] = map[string]any{"title": map[string]any{}}
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			db, err := client.CreateDatabase(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			ui.FromContext(ctx).Success("Created database %s", db.ID)
			return printerForContext(ctx).Print(ctx, db)
		},
	}
	cmd.Flags().StringVar(&parentPage, "parent-page", "", "Parent page ID or URL")
	cmd.Flags().StringVar(&title, "title", "", "Database title")
	cmd.Flags().StringVar(&propertiesArg, "properties", "", "Schema as JSON (inline, @file, or -)")
	return cmd
}

func hasTitleProperty(props map[string]any) bool {
	for _, p := range props {
		if m, ok := p.(map[string]any); ok {
			if _, ok := m["title"]; ok {
				return true
			}
		}
	}
	return false
}
