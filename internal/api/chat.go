package api

import (
	"context"
	"net/http"
	"net/url"
)

// SendChat sends one message to the assistant on behalf of userID.
func (c *Client) SendChat(ctx context.Context, userID string, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(userID)+"/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChatHistory returns the stored conversation for userID.
func (c *Client) GetChatHistory(ctx context.Context, userID string) (*ChatHistory, error) {
	var history ChatHistory
	if err := c.do(ctx, http.MethodGet, "/api/"+url.PathEscape(userID)+"/chat/history", nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// ClearChat deletes the stored conversation for userID.
func (c *Client) ClearChat(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/"+url.PathEscape(userID)+"/chat/clear", nil, nil)
}
