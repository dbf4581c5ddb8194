package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/state"
)

func testUserJSON() map[string]any {
	return map[string]any{
		"id": "u1", "email": "a@b.c", "name": "Ada",
		"created_at": "2026-01-01T00:00:00Z",
	}
}

// newSession wires client, state store, and session together the way main
// does: the session is the client's token source and 401 hook.
func newSession(t *testing.T, handler http.Handler) (*session.Session, *state.DB, *api.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := state.OpenPath(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var sess *session.Session
	client := api.NewClient(server.URL,
		api.WithTokenSource(func() string { return sess.Token() }),
		api.WithUnauthorizedHook(func() { sess.HandleUnauthorized() }),
	)
	sess = session.New(client, store)
	return sess, store, client
}

// seedSession stores a token and user as if a previous run had signed in.
func seedSession(t *testing.T, store *state.DB) {
	t.Helper()
	require.NoError(t, store.SaveSession("tok123", models.User{ID: "u1", Email: "a@b.c", Name: "Ada"}))
}

func TestRestoreWithoutTokenIsUnauthenticated(t *testing.T) {
	sess, _, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without a stored token")
	}))

	require.Equal(t, session.StatusLoading, sess.Status())
	sess.Restore(context.Background())
	assert.Equal(t, session.StatusUnauthenticated, sess.Status())
}

func TestLoginStoresSession(t *testing.T) {
	sess, store, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok123",
			"token_type":   "bearer",
			"user":         testUserJSON(),
		})
	}))

	require.NoError(t, sess.Login(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, session.StatusAuthenticated, sess.Status())
	require.NotNil(t, sess.User())
	assert.Equal(t, "u1", sess.User().ID)
	assert.Equal(t, "tok123", store.Token())
}

func TestLoginFailureRecordsError(t *testing.T) {
	sess, _, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "bad credentials"}`))
	}))

	err := sess.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.Equal(t, session.StatusUnauthenticated, sess.Status())
	assert.NotEmpty(t, sess.LastError())
}

func TestSignupRegistersThenLogsIn(t *testing.T) {
	var paths []string
	sess, _, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/api/auth/register":
			json.NewEncoder(w).Encode(testUserJSON())
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok123",
				"token_type":   "bearer",
				"user":         testUserJSON(),
			})
		}
	}))

	require.NoError(t, sess.Signup(context.Background(), "a@b.c", "pw", "Ada"))
	assert.Equal(t, []string{"/api/auth/register", "/api/auth/login"}, paths)
	assert.Equal(t, session.StatusAuthenticated, sess.Status())
}

func TestRestoreValidTokenAuthenticates(t *testing.T) {
	sess, store, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(testUserJSON())
	}))

	seedSession(t, store)
	sess.Restore(context.Background())
	assert.Equal(t, session.StatusAuthenticated, sess.Status())
}

func TestRestoreRejectedTokenClearsStorage(t *testing.T) {
	sess, store, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "expired"}`))
	}))

	seedSession(t, store)
	sess.Restore(context.Background())
	assert.Equal(t, session.StatusUnauthenticated, sess.Status())
	assert.Empty(t, store.Token(), "rejected token must be evicted")
	assert.Nil(t, store.User())
}

func TestAnyUnauthorizedResponseEvictsSession(t *testing.T) {
	calls := 0
	sess, store, client := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			json.NewEncoder(w).Encode(testUserJSON())
			return
		}
		// A later, unrelated call hits a 401.
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "expired"}`))
	}))

	seedSession(t, store)
	sess.Restore(context.Background())
	require.Equal(t, session.StatusAuthenticated, sess.Status())

	// The 401 hook fires on any authenticated endpoint, not just auth ones.
	_, err := client.ListTasks(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, session.StatusUnauthenticated, sess.Status())
	assert.Empty(t, store.Token())
}

func TestLogout(t *testing.T) {
	sess, store, _ := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testUserJSON())
	}))

	seedSession(t, store)
	sess.Restore(context.Background())
	require.Equal(t, session.StatusAuthenticated, sess.Status())

	sess.Logout()
	assert.Equal(t, session.StatusUnauthenticated, sess.Status())
	assert.Empty(t, store.Token())
	assert.Nil(t, sess.User())
}
