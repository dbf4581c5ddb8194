package todo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
)

func strptr(s string) *string { return &s }

func TestTaskFromWireCompletedMatchesStatus(t *testing.T) {
	for _, status := range models.Statuses {
		got := todo.TaskFromWire(api.Task{
			ID:        "1",
			Title:     "x",
			Status:    string(status),
			Priority:  "medium",
			CreatedAt: "2026-08-01T10:00:00Z",
			UpdatedAt: "2026-08-01T10:00:00Z",
		})
		assert.Equal(t, status == models.StatusDone, got.Completed(), "status %s", status)
		assert.Equal(t, status, got.Status)
	}
}

func TestTaskFromWireOptionalFields(t *testing.T) {
	got := todo.TaskFromWire(api.Task{
		ID:        "1",
		Title:     "x",
		Status:    "pending",
		Priority:  "high",
		DueDate:   strptr("2026-09-01T09:00:00Z"),
		CreatedAt: "2026-08-01T10:00:00.123456", // naive timestamp from the service clock
		UpdatedAt: "2026-08-01T10:00:00Z",
		Tags: []api.Tag{
			{ID: "t1", UserID: "u1", Name: "Work", Color: "#ff0000", CreatedAt: "2026-07-01T00:00:00Z"},
		},
	})

	require.NotNil(t, got.DueDate)
	assert.Equal(t, 2026, got.DueDate.Year())
	assert.False(t, got.CreatedAt.IsZero())
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Work", got.Tags[0].Name)
	assert.Equal(t, "Work", got.Category())
}

func TestTaskFromWireDefaults(t *testing.T) {
	got := todo.TaskFromWire(api.Task{ID: "1", Title: "x", Status: "weird", Priority: ""})
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.Empty(t, got.Description)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, models.FallbackCategory, got.Category())
}
