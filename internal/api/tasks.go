package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListTasks returns all tasks for the signed-in user. status optionally
// narrows the result server-side; pass "" for everything.
func (c *Client) ListTasks(ctx context.Context, status string) ([]Task, error) {
	path := "/api/tasks"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task and returns the server's authoritative copy.
func (c *Client) CreateTask(ctx context.Context, req TaskCreate) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id string, req TaskUpdate) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask advances a task's status server-side along the fixed cycle
// pending -> in_progress -> done -> pending. Cancelled tasks reset to pending.
func (c *Client) ToggleTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task. The service answers 204 on success.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}
