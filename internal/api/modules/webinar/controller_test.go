package webinar

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/livekit"
	store "github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/sdk"
)

// newTestRouter wires the module over an in-memory store
func newTestRouter(s store.Store, minter *livekit.TokenMinter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), NewController(s, minter))
	return engine
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateWebinarRoute(t *testing.T) {
	t.Run("creates with generated room name", func(t *testing.T) {
		s := store.NewInMemoryStore()
		router := newTestRouter(s, nil)

		w := doJSON(router, http.MethodPost, "/api/webinars", sdk.CreateWebinarRequest{
			HostID:          "host-1",
			Title:           "Intro to Go",
			ScheduledAt:     time.Now().UTC().Add(time.Hour),
			DurationMinutes: 60,
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.Webinar]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Intro to Go", resp.Data.Title)
		assert.Equal(t, "upcoming", resp.Data.Status)
		assert.NotEmpty(t, resp.Data.ID)
		assert.Contains(t, resp.Data.RoomName, "webinar-")
	})

	t.Run("missing required fields", func(t *testing.T) {
		s := store.NewInMemoryStore()
		router := newTestRouter(s, nil)

		w := doJSON(router, http.MethodPost, "/api/webinars", map[string]string{"title": "No host"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetWebinarRoute(t *testing.T) {
	s := store.NewInMemoryStore()
	created := &store.Webinar{HostID: "h1", Title: "Lookup", ScheduledAt: time.Now().UTC()}
	require.NoError(t, s.CreateWebinar(context.Background(), created))
	router := newTestRouter(s, nil)

	t.Run("found", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/webinars/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.Webinar]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Lookup", resp.Data.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/webinars/8a2e9d52-0000-4000-8000-000000000000", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/webinars/nope", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateStatusRoute(t *testing.T) {
	s := store.NewInMemoryStore()
	created := &store.Webinar{HostID: "h1", Title: "Transitions", ScheduledAt: time.Now().UTC()}
	require.NoError(t, s.CreateWebinar(context.Background(), created))
	router := newTestRouter(s, nil)

	t.Run("valid transition", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/webinars/"+created.ID.String()+"/status", sdk.UpdateStatusRequest{Status: "live"})
		require.Equal(t, http.StatusOK, w.Code)

		got, err := s.GetWebinar(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, store.StatusLive, got.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/api/webinars/"+created.ID.String()+"/status", sdk.UpdateStatusRequest{Status: "paused"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterAndNotifyRoutes(t *testing.T) {
	s := store.NewInMemoryStore()
	created := &store.Webinar{HostID: "h1", Title: "Signups", ScheduledAt: time.Now().UTC()}
	require.NoError(t, s.CreateWebinar(context.Background(), created))
	router := newTestRouter(s, nil)

	for _, user := range []string{"u1", "u2", "u3"} {
		w := doJSON(router, http.MethodPost, "/api/webinars/"+created.ID.String()+"/register", sdk.RegisterRequest{UserID: user})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(router, http.MethodPost, "/api/webinars/"+created.ID.String()+"/notify", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.ApiResponse[sdk.NotifyResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.Count)
}

func TestTokenRoute(t *testing.T) {
	s := store.NewInMemoryStore()
	created := &store.Webinar{HostID: "h1", Title: "Room", ScheduledAt: time.Now().UTC(), RoomName: "webinar-room"}
	require.NoError(t, s.CreateWebinar(context.Background(), created))

	t.Run("mints a token", func(t *testing.T) {
		minter, err := livekit.NewTokenMinter("key", "secret", time.Hour)
		require.NoError(t, err)
		router := newTestRouter(s, minter)

		w := doJSON(router, http.MethodPost, "/api/webinars/"+created.ID.String()+"/token", sdk.TokenRequest{
			Identity:     "user-1",
			CanPublish:   false,
			CanSubscribe: true,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.TokenResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.Token)
	})

	t.Run("unavailable without credentials", func(t *testing.T) {
		router := newTestRouter(s, nil)

		w := doJSON(router, http.MethodPost, "/api/webinars/"+created.ID.String()+"/token", sdk.TokenRequest{Identity: "user-1"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestChatRoutes(t *testing.T) {
	s := store.NewInMemoryStore()
	created := &store.Webinar{HostID: "h1", Title: "Chat", ScheduledAt: time.Now().UTC()}
	require.NoError(t, s.CreateWebinar(context.Background(), created))
	router := newTestRouter(s, nil)

	for _, text := range []string{"first", "second"} {
		w := doJSON(router, http.MethodPost, "/api/webinars/"+created.ID.String()+"/chat", sdk.PostChatRequest{
			UserID: "u1",
			Text:   text,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(router, http.MethodGet, "/api/webinars/"+created.ID.String()+"/chat", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.ApiResponse[[]sdk.ChatMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "first", resp.Data[0].Text)
	assert.Equal(t, "second", resp.Data[1].Text)
}
