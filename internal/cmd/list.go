package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
	"github.com/salmonumbrella/notion-sdk-go/internal/notion"
)

// notionMaxPageSize is the page_size ceiling the API enforces.
const notionMaxPageSize = 100

type listFlags struct {
	cursor   string
	pageSize int
	all      bool
	limit    int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cursor, "cursor", "", "Start from this next_cursor value")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Results per page (max 100)")
	cmd.Flags().BoolVar(&f.all, "all", false, "Follow next_cursor and return every result")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "With --all, stop after this many results")
}

func (f *listFlags) validate() error {
	if f.pageSize < 0 || f.pageSize > notionMaxPageSize {
		return fmt.Errorf("page-size must be between 1 and %d", notionMaxPageSize)
	}
	if f.limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// effectivePageSize fills pages completely when walking every result.
func (f *listFlags) effectivePageSize() int {
	if f.all && f.pageSize == 0 {
		return notionMaxPageSize
	}
	return f.pageSize
}

// runList prints one page, or every page when --all is set.
func runList[T any](ctx context.Context, f *listFlags, fetch notion.PageFetcher[T]) error {
	printer := printerForContext(ctx)
	if f.all {
		start := f.cursor
		items, err := notion.CollectAll(ctx, func(ctx context.Context, cursor string) (model.List[T], error) {
			if cursor == "" {
				cursor = start
			}
			return fetch(ctx, cursor)
		}, f.limit)
		if err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		return printer.Print(ctx, items)
	}

	page, err := fetch(ctx, f.cursor)
	if err != nil {
		return err
	}
	return printer.Print(ctx, page)
}
