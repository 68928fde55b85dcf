package notion

import (
	"context"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// SearchRequest is the body of a search call.
// See: https://developers.notion.com/reference/post-search
type SearchRequest struct {
	Query       string         `json:"query,omitempty"`
	Sort        map[string]any `json:"sort,omitempty"`
	Filter      map[string]any `json:"filter,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

// Search finds pages and databases by title. Each result is a model.Page or
// a model.Database.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (model.List[model.SearchResult], error) {
	if req == nil {
		req = &SearchRequest{}
	}
	if err := (&PageOptions{PageSize: req.PageSize}).validate(); err != nil {
		return model.List[model.SearchResult]{}, err
	}
	ep := Endpoints.Search
	raw, err := c.do(ctx, ep, ep.Path, nil, req)
	if err != nil {
		return model.List[model.SearchResult]{}, err
	}
	return decodeResponse(raw, "search results", func(raw model.Raw) (model.List[model.SearchResult], error) {
		return model.DecodeList(raw, model.DecodeSearchResult)
	})
}
