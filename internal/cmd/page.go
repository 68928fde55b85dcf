package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/notion-sdk-go/internal/cmdutil"
	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
	"github.com/salmonumbrella/notion-sdk-go/internal/ui"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "page",
		Aliases: []string{"pages", "p"},
		Short:   "Read, create, and update pages",
	}
	cmd.AddCommand(newPageGetCmd())
	cmd.AddCommand(newPageCreateCmd())
	cmd.AddCommand(newPageUpdateCmd())
	return cmd
}

// textTitle builds a title property value holding plain text.
func textTitle(title string) map[string]any {
	return map[string]any{
		"title": []map[string]any{
			{"type": "text", "text": map[string]any{"content": title}},
		},
	}
}

func newPageGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <page-id>",
		Short: "Get a page and its properties",
		Long: `Retrieve a page by ID or URL.

Example:
  ntn page get https://www.notion.so/acme/Roadmap-12345678123412341234123456789012`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pageID, err := cmdutil.NormalizeID(args[0])
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			page, err := client.GetPage(ctx, pageID)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to get page: %w", err), "page", pageID)
			}
			return printerForContext(ctx).Print(ctx, page)
		},
	}
}

func newPageCreateCmd() *cobra.Command {
	var (
		parentPage    string
		parentDB      string
		title         string
		titleProperty string
		propertiesArg string
		childrenArg   string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page",
		Long: `Create a page under a page (--parent-page) or as a database row (--database).

Example:
  ntn page create --parent-page <page-id> --title "Meeting notes"
  ntn page create --database <db-id> --title-property Name --title "Ship v2" \
    --properties '{"Status":{"select":{"name":"Doing"}}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if (parentPage == "") == (parentDB == "") {
				return clierrors.NewUserError("exactly one of --parent-page or --database is required", "")
			}

			req := &notion.CreatePageRequest{Properties: map[string]any{}}
			if parentPage != "" {
				id, err := cmdutil.NormalizeID(parentPage)
				if err != nil {
					return err
				}
				req.Parent = map[string]any{"page_id": id}
			} else {
				id, err := cmdutil.NormalizeID(parentDB)
				if err != nil {
					return err
				}
				req.Parent = map[string]any{"database_id": id}
			}

			if propertiesArg != "" {
				if err := cmdutil.UnmarshalJSONArg(propertiesArg, cmd.InOrStdin(), &req.Properties); err != nil {
					return clierrors.WrapUserError(err, "invalid --properties", "Pass a JSON object keyed by property name")
				}
			}
			if title != "" {
				req.Properties[titleProperty] = textTitle(title)
			}
			if childrenArg != "" {
				if err := cmdutil.UnmarshalJSONArg(childrenArg, cmd.InOrStdin(), &req.Children); err != nil {
					return clierrors.WrapUserError(err, "invalid --children", "Pass a JSON array of block objects")
				}
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			page, err := client.CreatePage(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create page: %w", err)
			}
			ui.FromContext(ctx).Success("Created page %s", page.ID)
			return printerForContext(ctx).Print(ctx, page)
		},
	}
	cmd.Flags().StringVar(&parentPage, "parent-page", "", "Parent page ID or URL")
	cmd.Flags().StringVar(&parentDB, "database", "", "Parent database ID or URL")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&titleProperty, "title-property", "title", "Name of the title property")
	cmd.Flags().StringVar(&propertiesArg, "properties", "", "Property values as JSON (inline, @file, or -)")
	cmd.Flags().StringVar(&childrenArg, "children", "", "Initial content as a JSON array of blocks")
	return cmd
}

func newPageUpdateCmd() *cobra.Command {
	var (
		propertiesArg string
		archived      bool
	)
	cmd := &cobra.Command{
		Use:   "update <page-id>",
		Short: "Update page properties or archive a page",
		Long: `Update a page's property values, or archive/restore it.

Example:
  ntn page update <page-id> --properties '{"Done":{"checkbox":true}}'
  ntn page update <page-id> --archived`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pageID, err := cmdutil.NormalizeID(args[0])
			if err != nil {
				return err
			}

			req := &notion.UpdatePageRequest{}
			if propertiesArg != "" {
				if err := cmdutil.UnmarshalJSONArg(propertiesArg, cmd.InOrStdin(), &req.Properties); err != nil {
					return clierrors.WrapUserError(err, "invalid --properties", "Pass a JSON object keyed by property name")
				}
			}
			if cmd.Flags().Changed("archived") {
				req.Archived = &archived
			}
			if req.Properties == nil && req.Archived == nil {
				return clierrors.WrapUserError(errNothingToDo, "nothing to update", "Pass --properties or --archived")
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			page, err := client.UpdatePage(ctx, pageID, req)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to update page: %w", err), "page", pageID)
			}
			return printerForContext(ctx).Print(ctx, page)
		},
	}
	cmd.Flags().StringVar(&propertiesArg, "properties", "", "Property values as JSON (inline, @file, or -)")
	cmd.Flags().BoolVar(&archived, "archived", false, "Archive (true) or restore (false) the page")
	return cmd
}
