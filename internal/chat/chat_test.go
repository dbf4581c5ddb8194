package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/chat"
	"github.com/taskdeck/taskdeck/internal/models"
)

func TestLoadHistorySynthesizesWelcomeOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "no session"}`))
	}))
	defer server.Close()

	store := chat.NewStore(api.NewClient(server.URL), "u1")
	store.LoadHistory(context.Background())

	messages := store.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleAssistant, messages[0].Role)
	assert.Empty(t, store.LastError(), "missing history is not an error")
}

func TestLoadHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/u1/chat/history", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"session_id": "s1",
			"messages": []any{
				map[string]any{"id": "m1", "role": "user", "content": "hi", "timestamp": "2026-08-01T10:00:00Z"},
				map[string]any{"id": "m2", "role": "assistant", "content": "hello", "timestamp": "2026-08-01T10:00:01Z"},
			},
		})
	}))
	defer server.Close()

	store := chat.NewStore(api.NewClient(server.URL), "u1")
	store.LoadHistory(context.Background())

	messages := store.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[1].Content)
}

func TestSendAppendsUserMessageBeforeResponse(t *testing.T) {
	var wg sync.WaitGroup
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(map[string]any{
			"response":        "done!",
			"conversation_id": "c1",
			"message_id":      "m9",
		})
	}))
	defer server.Close()

	store := chat.NewStore(api.NewClient(server.URL), "u1")

	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Send(context.Background(), "Add a task")
	}()

	// The user message must be visible while the request is still in flight.
	assert.Eventually(t, func() bool {
		messages := store.Messages()
		return len(messages) == 1 && messages[0].Role == models.RoleUser
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, store.Sending())

	close(release)
	wg.Wait()

	messages := store.Messages()
	require.Len(t, messages, 2, "exactly one assistant message per successful response")
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.Equal(t, "m9", messages[1].ID)
	assert.False(t, store.Sending())
}

func TestSendFailureAppendsErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "assistant unavailable"}`))
	}))
	defer server.Close()

	store := chat.NewStore(api.NewClient(server.URL), "u1")
	err := store.Send(context.Background(), "hello")
	require.Error(t, err)

	messages := store.Messages()
	require.Len(t, messages, 2, "user message stays, error surfaces as assistant text")
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.Contains(t, messages[1].Content, "assistant unavailable")
	assert.Equal(t, "assistant unavailable", store.LastError())
}

func TestSendIgnoresBlankInput(t *testing.T) {
	store := chat.NewStore(api.NewClient("http://127.0.0.1:0"), "u1")
	require.NoError(t, store.Send(context.Background(), "   "))
	assert.Empty(t, store.Messages())
}

func TestClearOnlyEmptiesOnSuccess(t *testing.T) {
	failing := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{
				"response": "ok", "conversation_id": "c1", "message_id": "m1",
			})
		case failing:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	store := chat.NewStore(api.NewClient(server.URL), "u1")
	require.NoError(t, store.Send(context.Background(), "hi"))
	require.Len(t, store.Messages(), 2)

	require.Error(t, store.Clear(context.Background()))
	assert.Len(t, store.Messages(), 2, "failed clear keeps the local history")

	failing = false
	require.NoError(t, store.Clear(context.Background()))
	assert.Empty(t, store.Messages())
}

func TestSendThreadsConversationID(t *testing.T) {
	var conversationIDs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		id, _ := req["conversation_id"].(string)
		conversationIDs = append(conversationIDs, id)
		json.NewEncoder(w).Encode(map[string]any{
			"response": "ok", "conversation_id": "c1", "message_id": "m1",
		})
	}))
	defer server.Close()

	store := chat.NewStore(api.NewClient(server.URL), "u1")
	require.NoError(t, store.Send(context.Background(), "first"))
	require.NoError(t, store.Send(context.Background(), "second"))

	require.Len(t, conversationIDs, 2)
	assert.Empty(t, conversationIDs[0], "first send has no conversation yet")
	assert.Equal(t, "c1", conversationIDs[1])
}
