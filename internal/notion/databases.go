package notion

import (
	"context"
	"fmt"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// CreateDatabaseRequest is the body of a create-database call.
// See: https://developers.notion.com/reference/create-a-database
type CreateDatabaseRequest struct {
	Parent     map[string]any   `json:"parent"`
	Title      []map[string]any `json:"title,omitempty"`
	Properties map[string]any   `json:"properties"`
}

// QueryDatabaseRequest is the body of a database query.
// See: https://developers.notion.com/reference/post-database-query
type QueryDatabaseRequest struct {
	Filter      map[string]any   `json:"filter,omitempty"`
	Sorts       []map[string]any `json:"sorts,omitempty"`
	StartCursor string           `json:"start_cursor,omitempty"`
	PageSize    int              `json:"page_size,omitempty"`
}

// GetDatabase retrieves a database and its schema.
// See: https://developers.notion.com/reference/retrieve-a-database
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (model.Database, error) {
	if databaseID == "" {
		return model.Database{}, fmt.Errorf("database ID is required")
	}
	ep := Endpoints.Databases.Get
	raw, err := c.do(ctx, ep, ep.With(databaseID), nil, nil)
	if err != nil {
		return model.Database{}, err
	}
	return decodeResponse(raw, "database", model.DecodeDatabase)
}

// CreateDatabase creates a database under a page.
func (c *Client) CreateDatabase(ctx context.Context, req *CreateDatabaseRequest) (model.Database, error) {
	if req == nil {
		return model.Database{}, fmt.Errorf("create database request is required")
	}
	if len(req.Parent) == 0 {
		return model.Database{}, fmt.Errorf("parent is required")
	}
	if len(req.Properties) == 0 {
		return model.Database{}, fmt.Errorf("properties are required")
	}
	ep := Endpoints.Databases.Create
	raw, err := c.do(ctx, ep, ep.Path, nil, req)
	if err != nil {
		return model.Database{}, err
	}
	return decodeResponse(raw, "database", model.DecodeDatabase)
}

// ListDatabases lists the databases shared with the integration.
func (c *Client) ListDatabases(ctx context.Context, opts *PageOptions) (model.List[model.Database], error) {
	query, err := opts.query()
	if err != nil {
		return model.List[model.Database]{}, err
	}
	ep := Endpoints.Databases.List
	raw, err := c.do(ctx, ep, ep.Path, query, nil)
	if err != nil {
		return model.List[model.Database]{}, err
	}
	return decodeResponse(raw, "database list", func(raw model.Raw) (model.List[model.Database], error) {
		return model.DecodeList(raw, model.DecodeDatabase)
	})
}

// QueryDatabase returns one page of the database rows matching req.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *QueryDatabaseRequest) (model.List[model.Page], error) {
	if databaseID == "" {
		return model.List[model.Page]{}, fmt.Errorf("database ID is required")
	}
	if req == nil {
		req = &QueryDatabaseRequest{}
	}
	if err := (&PageOptions{PageSize: req.PageSize}).validate(); err != nil {
		return model.List[model.Page]{}, err
	}
	ep := Endpoints.Databases.Query
	raw, err := c.do(ctx, ep, ep.With(databaseID), nil, req)
	if err != nil {
		return model.List[model.Page]{}, err
	}
	return decodeResponse(raw, "query results", func(raw model.Raw) (model.List[model.Page], error) {
		return model.DecodeList(raw, model.DecodePage)
	})
}
