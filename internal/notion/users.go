package notion

import (
	"context"
	"fmt"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// GetUser retrieves a user by ID.
// See: https://developers.notion.com/reference/get-user
func (c *Client) GetUser(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	ep := Endpoints.Users.Get
	raw, err := c.do(ctx, ep, ep.With(userID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw, "user", model.DecodeUser)
}

// ListUsers lists the users of the workspace.
// See: https://developers.notion.com/reference/get-users
func (c *Client) ListUsers(ctx context.Context, opts *PageOptions) (model.List[model.User], error) {
	query, err := opts.query()
	if err != nil {
		return model.List[model.User]{}, err
	}
	ep := Endpoints.Users.List
	raw, err := c.do(ctx, ep, ep.Path, query, nil)
	if err != nil {
		return model.List[model.User]{}, err
	}
	return decodeResponse(raw, "user list", func(raw model.Raw) (model.List[model.User], error) {
		return model.DecodeList(raw, model.DecodeUser)
	})
}

// GetSelf retrieves the bot user associated with the API token.
// See: https://developers.notion.com/reference/get-self
func (c *Client) GetSelf(ctx context.Context) (model.User, error) {
	ep := Endpoints.Users.Me
	raw, err := c.do(ctx, ep, ep.Path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw, "user", model.DecodeUser)
}
