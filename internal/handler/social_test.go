package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Single-player mode: a nil sync client disables every social endpoint
// except the status probe.
func newSinglePlayerRouter(t *testing.T) *chi.Mux {
	t.Helper()
	h := NewSocialHandler(nil, nil)

	r := chi.NewRouter()
	r.Get("/social/status", h.HandleSyncStatus)
	r.Get("/social/friends", h.HandleFriends)
	r.Post("/social/friends/request", h.HandleSendFriendRequest)
	r.Get("/social/chat", h.HandleChatHistory)
	r.Post("/social/chat", h.HandleSendMessage)
	r.Post("/social/visit/request", h.HandleRequestVisit)
	return r
}

func TestSyncStatusDisabled(t *testing.T) {
	r := newSinglePlayerRouter(t)

	w := doJSON(t, r, http.MethodGet, "/social/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data SyncStatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "disabled", resp.Data.State)
	assert.False(t, resp.Data.Connected)
}

func TestSocialEndpointsUnavailableWithoutSync(t *testing.T) {
	r := newSinglePlayerRouter(t)

	paths := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/social/friends", ""},
		{http.MethodPost, "/social/friends/request", `{"username":"rosa"}`},
		{http.MethodGet, "/social/chat", ""},
		{http.MethodPost, "/social/chat", `{"text":"hi"}`},
		{http.MethodPost, "/social/visit/request", `{"peer_id":"p1"}`},
	}
	for _, p := range paths {
		w := doJSON(t, r, p.method, p.path, p.body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", p.method, p.path)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ErrMsgMultiplayerDisabled, resp.Error)
	}
}
