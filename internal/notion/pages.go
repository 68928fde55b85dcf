package notion

import (
	"context"
	"fmt"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// CreatePageRequest is the body of a create-page call.
// See: https://developers.notion.com/reference/post-page
type CreatePageRequest struct {
	Parent     map[string]any   `json:"parent"`
	Properties map[string]any   `json:"properties"`
	Children   []map[string]any `json:"children,omitempty"`
}

// UpdatePageRequest is the body of an update-page call.
type UpdatePageRequest struct {
	Properties map[string]any `json:"properties,omitempty"`
	Archived   *bool          `json:"archived,omitempty"`
}

// GetPage retrieves a page by ID.
// See: https://developers.notion.com/reference/retrieve-a-page
func (c *Client) GetPage(ctx context.Context, pageID string) (model.Page, error) {
	if pageID == "" {
		return model.Page{}, fmt.Errorf("page ID is required")
	}
	ep := Endpoints.Pages.Get
	raw, err := c.do(ctx, ep, ep.With(pageID), nil, nil)
	if err != nil {
		return model.Page{}, err
	}
	return decodeResponse(raw, "page", model.DecodePage)
}

// CreatePage creates a page under a page or database parent.
func (c *Client) CreatePage(ctx context.Context, req *CreatePageRequest) (model.Page, error) {
	if req == nil {
		return model.Page{}, fmt.Errorf("create page request is required")
	}
	if len(req.Parent) == 0 {
		return model.Page{}, fmt.Errorf("parent is required")
	}
	if req.Properties == nil {
		req.Properties = map[string]any{}
	}
	ep := Endpoints.Pages.Create
	raw, err := c.do(ctx, ep, ep.Path, nil, req)
	if err != nil {
		return model.Page{}, err
	}
	return decodeResponse(raw, "page", model.DecodePage)
}

// UpdatePage updates page properties or archives the page.
// See: https://developers.notion.com/reference/patch-page
func (c *Client) UpdatePage(ctx context.Context, pageID string, req *UpdatePageRequest) (model.Page, error) {
	if pageID == "" {
		return model.Page{}, fmt.Errorf("page ID is required")
	}
	if req == nil || (req.Properties == nil && req.Archived == nil) {
		return model.Page{}, fmt.Errorf("properties or archived is required")
	}
	ep := Endpoints.Pages.Update
	raw, err := c.do(ctx, ep, ep.With(pageID), nil, req)
	if err != nil {
		return model.Page{}, err
	}
	return decodeResponse(raw, "page", model.DecodePage)
}
