package todo_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
)

func wireTask(id, title, status, priority string) map[string]any {
	return map[string]any{
		"id":          id,
		"user_id":     "u1",
		"title":       title,
		"description": nil,
		"status":      status,
		"priority":    priority,
		"due_date":    nil,
		"created_at":  "2026-08-01T10:00:00Z",
		"updated_at":  "2026-08-01T10:00:00Z",
		"tags":        []any{},
	}
}

func TestStoreLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)
		json.NewEncoder(w).Encode([]any{
			wireTask("1", "first", "pending", "high"),
			wireTask("2", "second", "done", "low"),
		})
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))

	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, 0, tasks[0].Order)
	assert.Equal(t, 1, tasks[1].Order)
	assert.True(t, tasks[1].Completed())
}

func TestStoreLoadFailureKeepsPriorState(t *testing.T) {
	failing := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]any{wireTask("1", "first", "pending", "high")})
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))

	failing = true
	require.Error(t, store.Load(context.Background()))
	assert.Len(t, store.Tasks(), 1, "failed load must not clobber the list")
	assert.NotEmpty(t, store.LastError())
}

func TestStoreCreateAppends(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Buy groceries", req["title"])
		assert.Equal(t, "urgent", req["priority"])
		json.NewEncoder(w).Encode(wireTask("9", "Buy groceries", "pending", "urgent"))
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	err := store.Create(context.Background(), todo.Draft{
		Title:    "Buy groceries",
		Priority: models.PriorityUrgent,
	})
	require.NoError(t, err)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "9", tasks[0].ID)
}

func TestStoreUpdateSendsOnlyChangedFields(t *testing.T) {
	var body map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]any{wireTask("1", "old", "pending", "medium")})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			json.NewEncoder(w).Encode(wireTask("1", "new title", "pending", "medium"))
		}
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))

	title := "new title"
	require.NoError(t, store.Update(context.Background(), "1", todo.Patch{Title: &title}))

	require.Contains(t, body, "title")
	assert.NotContains(t, body, "status")
	assert.NotContains(t, body, "priority")
	assert.NotContains(t, body, "due_date")

	tasks := store.Tasks()
	assert.Equal(t, "new title", tasks[0].Title)
	assert.Equal(t, 0, tasks[0].Order, "merge keeps the local manual order")
}

func TestStoreFailedUpdateLeavesTaskUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]any{wireTask("1", "original", "pending", "medium")})
		case http.MethodPut:
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"detail": [{"msg": "title must not be empty"}]}`)
		}
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))

	empty := ""
	err := store.Update(context.Background(), "1", todo.Patch{Title: &empty})
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))

	tasks := store.Tasks()
	assert.Equal(t, "original", tasks[0].Title, "no partial overwrite on failure")
	assert.Equal(t, "title must not be empty", store.LastError())
}

func TestStoreErrorClearedOnNextSuccess(t *testing.T) {
	failing := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.Error(t, store.Load(context.Background()))
	require.NotEmpty(t, store.LastError())

	failing = false
	require.NoError(t, store.Load(context.Background()))
	assert.Empty(t, store.LastError())
}

func TestStoreDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]any{
				wireTask("1", "keep", "pending", "low"),
				wireTask("2", "drop", "pending", "low"),
			})
		case http.MethodDelete:
			require.Equal(t, "/api/tasks/2", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.Delete(context.Background(), "2"))

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "1", tasks[0].ID)
}

func TestStoreToggleMergesServerStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]any{wireTask("1", "x", "pending", "low")})
		case r.Method == http.MethodPatch:
			require.Equal(t, "/api/tasks/1/toggle", r.URL.Path)
			json.NewEncoder(w).Encode(wireTask("1", "x", "in_progress", "low"))
		}
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.Toggle(context.Background(), "1"))

	tasks := store.Tasks()
	assert.Equal(t, models.StatusInProgress, tasks[0].Status)
	assert.False(t, tasks[0].Completed())
}

func TestStoreSetStatus(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]any{wireTask("1", "x", "pending", "low")})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			json.NewEncoder(w).Encode(wireTask("1", "x", "cancelled", "low"))
		}
	}))
	defer server.Close()

	store := todo.NewStore(api.NewClient(server.URL))
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.SetStatus(context.Background(), "1", models.StatusCancelled))

	assert.Equal(t, "cancelled", body["status"])
	assert.Equal(t, models.StatusCancelled, store.Tasks()[0].Status)
}
