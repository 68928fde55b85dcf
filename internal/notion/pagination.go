package notion

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// maxPageSize is the largest page_size the API accepts.
const maxPageSize = 100

// PageOptions selects one page of a paginated endpoint.
// See: https://developers.notion.com/reference/pagination
type PageOptions struct {
	StartCursor string
	PageSize    int
}

func (o *PageOptions) validate() error {
	if o == nil {
		return nil
	}
	if o.PageSize < 0 || o.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
	}
	return nil
}

// query renders the options as URL parameters for GET endpoints.
func (o *PageOptions) query() (url.Values, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	if o == nil {
		return q, nil
	}
	if o.StartCursor != "" {
		q.Set("start_cursor", o.StartCursor)
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	return q, nil
}

// PageFetcher fetches the page that starts at cursor ("" for the first page).
type PageFetcher[T any] func(ctx context.Context, cursor string) (model.List[T], error)

// CollectAll follows next_cursor until has_more is false and returns every
// result in order. limit > 0 stops once that many results are collected.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T], limit int) ([]T, error) {
	var all []T
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if limit > 0 && len(all) >= limit {
			return all[:limit], nil
		}
		if !page.HasMore {
			return all, nil
		}
		if page.NextCursor == nil || *page.NextCursor == cursor {
			return nil, fmt.Errorf("pagination stalled at cursor %q", cursor)
		}
		cursor = *page.NextCursor
	}
}
