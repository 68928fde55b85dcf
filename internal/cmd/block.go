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

func newBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "block",
		Aliases: []string{"blocks", "b"},
		Short:   "Read and edit blocks",
	}
	cmd.AddCommand(newBlockGetCmd())
	cmd.AddCommand(newBlockChildrenCmd())
	cmd.AddCommand(newBlockTreeCmd())
	cmd.AddCommand(newBlockAppendCmd())
	cmd.AddCommand(newBlockUpdateCmd())
	cmd.AddCommand(newBlockDeleteCmd())
	return cmd
}

// blockIDArg normalizes args[0]; page IDs are valid block IDs.
func blockIDArg(args []string) (string, error) {
	return cmdutil.NormalizeID(args[0])
}

func newBlockGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <block-id>",
		Short: "Get a block by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			block, err := client.GetBlock(ctx, blockID)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to get block: %w", err), "block", blockID)
			}
			return printerForContext(ctx).Print(ctx, block)
		},
	}
}

func newBlockChildrenCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:     "children <block-id>",
		Aliases: []string{"ls"},
		Short:   "List the direct children of a block or page",
		Long: `List one level of children under a block or page.

Example:
  ntn block children 12345678123412341234123456789012
  ntn block children https://www.notion.so/acme/Notes-12345678123412341234123456789012 --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := flags.validate(); err != nil {
				return err
			}
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			err = runList(ctx, &flags, func(ctx context.Context, cursor string) (model.List[model.Block], error) {
				return client.GetBlockChildren(ctx, blockID, &notion.PageOptions{StartCursor: cursor, PageSize: flags.effectivePageSize()})
			})
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to list children: %w", err), "block", blockID)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBlockTreeCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree <block-id>",
		Short: "Fetch a block with its nested children",
		Long: `Fetch a block and recursively fetch its children down to --depth levels.

Example:
  ntn block tree 12345678123412341234123456789012 --depth 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if depth < 0 {
				return fmt.Errorf("depth must not be negative")
			}
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			block, err := client.GetBlockTree(ctx, blockID, depth)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to get block tree: %w", err), "block", blockID)
			}
			return printerForContext(ctx).Print(ctx, block)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 3, "Levels of children to fetch")
	return cmd
}

func newBlockAppendCmd() *cobra.Command {
	var childrenArg string
	cmd := &cobra.Command{
		Use:   "append <block-id>",
		Short: "Append child blocks",
		Long: `Append blocks to a block or page. --children takes a JSON array of block
objects, inline, as @file, or - for stdin.

Example:
  ntn block append <page-id> --children '[{"object":"block","type":"paragraph","paragraph":{"text":[{"type":"text","text":{"content":"Hello"}}]}}]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			var children []map[string]any
			if err := cmdutil.UnmarshalJSONArg(childrenArg, cmd.InOrStdin(), &children); err != nil {
				return clierrors.WrapUserError(err, "invalid --children", "Pass a JSON array of block objects")
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			parent, err := client.AppendBlockChildren(ctx, blockID, &notion.AppendBlockChildrenRequest{Children: children})
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to append children: %w", err), "block", blockID)
			}
			ui.FromContext(ctx).Success("Appended %d block(s)", len(children))
			return printerForContext(ctx).Print(ctx, parent)
		},
	}
	cmd.Flags().StringVar(&childrenArg, "children", "", "JSON array of blocks (inline, @file, or -)")
	_ = cmd.MarkFlagRequired("children")
	return cmd
}

func newBlockUpdateCmd() *cobra.Command {
	var (
		blockType  string
		contentArg string
		archived   bool
	)
	cmd := &cobra.Command{
		Use:   "update <block-id>",
		Short: "Update a block's content or archived flag",
		Long: `Update a block. --content is the type-specific object, sent under --type.

Example:
  ntn block update <id> --type to_do --content '{"checked":true}'
  ntn block update <id> --archived`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}

			req := &notion.UpdateBlockRequest{}
			if contentArg != "" {
				if blockType == "" {
					return clierrors.NewUserError("--content requires --type", "Pass the block type, e.g. --type paragraph")
				}
				if err := cmdutil.UnmarshalJSONArg(contentArg, cmd.InOrStdin(), &req.Content); err != nil {
					return clierrors.WrapUserError(err, "invalid --content", "Pass a JSON object")
				}
				req.Type = model.BlockType(blockType)
			}
			if cmd.Flags().Changed("archived") {
				req.Archived = &archived
			}
			if req.Content == nil && req.Archived == nil {
				return clierrors.WrapUserError(errNothingToDo, "nothing to update", "Pass --content with --type, or --archived")
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			block, err := client.UpdateBlock(ctx, blockID, req)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to update block: %w", err), "block", blockID)
			}
			return printerForContext(ctx).Print(ctx, block)
		},
	}
	cmd.Flags().StringVar(&blockType, "type", "", "Block type the content belongs to")
	cmd.Flags().StringVar(&contentArg, "content", "", "Type-specific JSON object (inline, @file, or -)")
	cmd.Flags().BoolVar(&archived, "archived", false, "Archive (true) or restore (false) the block")
	return cmd
}

func newBlockDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <block-id>",
		Aliases: []string{"rm"},
		Short:   "Archive a block",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			block, err := client.DeleteBlock(ctx, blockID)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to delete block: %w", err), "block", blockID)
			}
			ui.FromContext(ctx).Success("Archived block %s", blockID)
			return printerForContext(ctx).Print(ctx, block)
		},
	}
}
