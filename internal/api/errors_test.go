package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/api"
)

func errorServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestErrorStringDetail(t *testing.T) {
	server := errorServer(t, http.StatusNotFound, `{"detail": "task not found"}`)
	client := api.NewClient(server.URL)

	_, err := client.GetTask(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.EqualError(t, err, "task not found")
}

func TestErrorObjectDetail(t *testing.T) {
	server := errorServer(t, http.StatusConflict, `{"detail": {"error": "email already registered"}}`)
	client := api.NewClient(server.URL)

	_, err := client.Register(context.Background(), api.RegisterRequest{Email: "a@b.c"})
	require.Error(t, err)
	assert.True(t, api.IsConflict(err))
	assert.EqualError(t, err, "email already registered")
}

func TestErrorValidationDetailList(t *testing.T) {
	server := errorServer(t, http.StatusUnprocessableEntity,
		`{"detail": [{"msg": "title too short"}, {"msg": "bad priority"}]}`)
	client := api.NewClient(server.URL)

	_, err := client.CreateTask(context.Background(), api.TaskCreate{})
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.EqualError(t, err, "title too short, bad priority")
}

func TestErrorGenericWithoutBody(t *testing.T) {
	server := errorServer(t, http.StatusBadGateway, "")
	client := api.NewClient(server.URL)

	_, err := client.ListTasks(context.Background(), "")
	require.Error(t, err)
	assert.EqualError(t, err, "HTTP 502: Bad Gateway")
}

func TestUnauthorizedFiresHookAndHasFixedMessage(t *testing.T) {
	server := errorServer(t, http.StatusUnauthorized, `{"detail": "token expired"}`)

	fired := 0
	client := api.NewClient(server.URL, api.WithUnauthorizedHook(func() { fired++ }))

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, 1, fired, "hook fires exactly once per 401")
}

func TestBearerTokenHeader(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, api.WithTokenSource(func() string { return "tok123" }))
	_, err := client.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", got)
}

func TestNoContentDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	assert.NoError(t, client.DeleteTask(context.Background(), "1"))
}
