package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListTags returns all tags owned by the signed-in user.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag returns a single tag by id.
func (c *Client) GetTag(ctx context.Context, id string) (*Tag, error) {
	var tag Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags/"+url.PathEscape(id), nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag creates a tag and returns the server's copy.
func (c *Client) CreateTag(ctx context.Context, req TagCreate) (*Tag, error) {
	var tag Tag
	if err := c.do(ctx, http.MethodPost, "/api/tags", req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// UpdateTag applies a partial update and returns the updated tag.
func (c *Client) UpdateTag(ctx context.Context, id string, req TagUpdate) (*Tag, error) {
	var tag Tag
	if err := c.do(ctx, http.MethodPut, "/api/tags/"+url.PathEscape(id), req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag deletes a tag. Tasks keep their snapshot copies until refetched.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tags/"+url.PathEscape(id), nil, nil)
}
