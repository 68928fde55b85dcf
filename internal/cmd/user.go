package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/notion-sdk-go/internal/cmdutil"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users", "u"},
		Short:   "Retrieve workspace users",
	}
	cmd.AddCommand(newUserGetCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserMeCmd())
	return cmd
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Get a user by ID",
		Long: `Retrieve a Notion user by ID.

Example:
  ntn user get 12345678-1234-1234-1234-123456789012`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := cmdutil.NormalizeID(args[0])
			if err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			user, err := client.GetUser(ctx, userID)
			if err != nil {
				return describeNotFound(fmt.Errorf("failed to get user: %w", err), "user", userID)
			}
			return printerForContext(ctx).Print(ctx, user)
		},
	}
}

func newUserListCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users in the workspace",
		Long: `List the people and bots in the workspace.

Example:
  ntn user list
  ntn user list --page-size 50 --cursor abc123
  ntn user list --all -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := flags.validate(); err != nil {
				return err
			}
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			return runList(ctx, &flags, func(ctx context.Context, cursor string) (model.List[model.User], error) {
				return client.ListUsers(ctx, &notion.PageOptions{StartCursor: cursor, PageSize: flags.effectivePageSize()})
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newUserMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the bot user behind the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			user, err := client.GetSelf(ctx)
			if err != nil {
				return fmt.Errorf("failed to get bot user: %w", err)
			}
			return printerForContext(ctx).Print(ctx, user)
		},
	}
}
