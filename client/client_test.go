package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PayRam/go-team-tree/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTeamTree(t *testing.T) {
	const payload = `{"member_id":"r","email":"r@x.com","nickname":"Root","user_type":"agent","amount":"1","create_time":1000,"children":[]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/member/team-tree", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"project":"team"}`, string(body))

		w.Write([]byte(payload))
	}))
	defer server.Close()

	c := client.New(server.URL, "token-123")
	raw, err := c.FetchTeamTree(context.Background(), "team")
	require.NoError(t, err)
	assert.Equal(t, payload, string(raw), "body must pass through untouched")
}

func TestFetchTeamTreeNoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := client.New(server.URL, "").FetchTeamTree(context.Background(), "team")
	require.NoError(t, err)
}

func TestFetchTeamTreeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := client.New(server.URL, "t").FetchTeamTree(context.Background(), "team")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchTeamTreeCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.New(server.URL, "t").FetchTeamTree(ctx, "team")
	assert.Error(t, err)
}
