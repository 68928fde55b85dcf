package notion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// UpdateBlockRequest is the body of an update-block call. Content is sent
// under the Type key, e.g. {"paragraph": {"text": [...]}}.
type UpdateBlockRequest struct {
	Type     model.BlockType
	Content  map[string]any
	Archived *bool
}

// MarshalJSON nests Content under its block type.
func (r UpdateBlockRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if r.Type != "" && r.Content != nil {
		body[string(r.Type)] = r.Content
	}
	if r.Archived != nil {
		body["archived"] = *r.Archived
	}
	return json.Marshal(body)
}

// AppendBlockChildrenRequest is the body of an append-children call.
type AppendBlockChildrenRequest struct {
	Children []map[string]any `json:"children"`
}

// GetBlock retrieves a block by ID.
// See: https://developers.notion.com/reference/retrieve-a-block
func (c *Client) GetBlock(ctx context.Context, blockID string) (model.Block, error) {
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	ep := Endpoints.Blocks.Get
	raw, err := c.do(ctx, ep, ep.With(blockID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw, "block", model.DecodeBlock)
}

// UpdateBlock updates a block's content or archived flag.
// See: https://developers.notion.com/reference/update-a-block
func (c *Client) UpdateBlock(ctx context.Context, blockID string, req *UpdateBlockRequest) (model.Block, error) {
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	if req == nil {
		return nil, fmt.Errorf("update block request is required")
	}
	ep := Endpoints.Blocks.Update
	raw, err := c.do(ctx, ep, ep.With(blockID), nil, req)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw, "block", model.DecodeBlock)
}

// DeleteBlock archives a block and returns it.
// See: https://developers.notion.com/reference/delete-a-block
func (c *Client) DeleteBlock(ctx context.Context, blockID string) (model.Block, error) {
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	ep := Endpoints.Blocks.Delete
	raw, err := c.do(ctx, ep, ep.With(blockID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw, "block", model.DecodeBlock)
}

// GetBlockChildren retrieves one page of a block's children.
// See: https://developers.notion.com/reference/get-block-children
func (c *Client) GetBlockChildren(ctx context.Context, blockID string, opts *PageOptions) (model.List[model.Block], error) {
	if blockID == "" {
		return model.List[model.Block]{}, fmt.Errorf("block ID is required")
	}
	raw, err := c.blockChildrenRaw(ctx, blockID, opts)
	if err != nil {
		return model.List[model.Block]{}, err
	}
	return decodeResponse(raw, "block children", func(raw model.Raw) (model.List[model.Block], error) {
		return model.DecodeList(raw, model.DecodeBlock)
	})
}

// AppendBlockChildren appends blocks to a parent and returns the parent.
// See: https://developers.notion.com/reference/patch-block-children
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, req *AppendBlockChildrenRequest) (model.Block, error) {
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	if req == nil || len(req.Children) == 0 {
		return nil, fmt.Errorf("children are required")
	}
	ep := Endpoints.Blocks.Append
	raw, err := c.do(ctx, ep, ep.With(blockID), nil, req)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw, "block", model.DecodeBlock)
}

// GetBlockTree retrieves a block together with its descendants, down to
// depth levels (depth <= 0 fetches the block alone). Children are spliced
// into the raw payload before one recursive decode, so the result is a single
// block value whose ChildrenOf tree mirrors the server.
func (c *Client) GetBlockTree(ctx context.Context, blockID string, depth int) (model.Block, error) {
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	ep := Endpoints.Blocks.Get
	raw, err := c.do(ctx, ep, ep.With(blockID), nil, nil)
	if err != nil {
		return nil, err
	}
	if err := c.spliceChildren(ctx, raw, depth); err != nil {
		return nil, err
	}
	return decodeResponse(raw, "block tree", model.DecodeBlock)
}

// spliceChildren fetches the raw children of block and stores them under
// block[type].children, recursing depth-1 levels.
func (c *Client) spliceChildren(ctx context.Context, block model.Raw, depth int) error {
	if depth <= 0 {
		return nil
	}
	hasChildren, _ := block["has_children"].(bool)
	typ, _ := block["type"].(string)
	id, _ := block["id"].(string)
	if !hasChildren || id == "" || !model.NestsChildren(model.BlockType(typ)) {
		return nil
	}
	content, ok := block[typ].(map[string]any)
	if !ok {
		return nil
	}

	children, err := CollectAll[model.Raw](ctx, func(ctx context.Context, cursor string) (model.List[model.Raw], error) {
		raw, err := c.blockChildrenRaw(ctx, id, &PageOptions{StartCursor: cursor, PageSize: maxPageSize})
		if err != nil {
			return model.List[model.Raw]{}, err
		}
		return decodeResponse(raw, "block children", func(raw model.Raw) (model.List[model.Raw], error) {
			return model.DecodeList(raw, func(r model.Raw) (model.Raw, error) { return r, nil })
		})
	}, 0)
	if err != nil {
		return fmt.Errorf("failed to get children of block %s: %w", id, err)
	}

	items := make([]any, 0, len(children))
	for _, child := range children {
		if err := c.spliceChildren(ctx, child, depth-1); err != nil {
			return err
		}
		items = append(items, child)
	}
	content["children"] = items
	return nil
}

func (c *Client) blockChildrenRaw(ctx context.Context, blockID string, opts *PageOptions) (model.Raw, error) {
	query, err := opts.query()
	if err != nil {
		return nil, err
	}
	ep := Endpoints.Blocks.Children
	return c.do(ctx, ep, ep.With(blockID), query, nil)
}
