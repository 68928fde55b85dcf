package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
)

func newSearchCmd() *cobra.Command {
	var (
		flags     listFlags
		objectArg string
		direction string
	)
	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s", "find"},
		Short:   "Search pages and databases by title",
		Long: `Search pages and databases shared with the integration.

Example:
  ntn search roadmap
  ntn search --filter database --all -o json
  ntn search meeting --sort ascending`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := flags.validate(); err != nil {
				return err
			}

			base := notion.SearchRequest{}
			if len(args) == 1 {
				base.Query = strings.TrimSpace(args[0])
			}
			switch objectArg {
			case "":
			case "page", "database":
				base.Filter = map[string]any{"property": "object", "value": objectArg}
			default:
				return clierrors.NewUserError(fmt.Sprintf("invalid --filter %q", objectArg), "Use page or database")
			}
			switch direction {
			case "":
			case "ascending", "descending":
				base.Sort = map[string]any{"timestamp": "last_edited_time", "direction": direction}
			default:
				return clierrors.NewUserError(fmt.Sprintf("invalid --sort %q", direction), "Use ascending or descending")
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}
			return runList(ctx, &flags, func(ctx context.Context, cursor string) (model.List[model.SearchResult], error) {
				req := base
				req.StartCursor = cursor
				req.PageSize = flags.effectivePageSize()
				return client.Search(ctx, &req)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&objectArg, "filter", "", "Only return this object type: page|database")
	cmd.Flags().StringVar(&direction, "sort", "", "Order by last edited time: ascending|descending")
	return cmd
}
