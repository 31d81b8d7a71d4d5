package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/news"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	events []events.EventData
}

func (r *recordingEmitter) EmitTyped(module string, data events.EventData) {
	r.events = append(r.events, data)
}

func writeFeed(t *testing.T, n int) string {
	t.Helper()
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"headline": "story %d"}`, i+1)
	}
	path := filepath.Join(t.TempDir(), "news.json")
	require.NoError(t, os.WriteFile(path, []byte("["+strings.Join(items, ",")+"]"), 0o644))
	return path
}

func newTestRouter(t *testing.T, path string) (http.Handler, *recordingEmitter) {
	t.Helper()
	logger := zerolog.New(nil).Level(zerolog.Disabled)

	feed := news.NewFeed(news.NewFileSource(path), logger)
	_ = feed.Reload(context.Background())

	emitter := &recordingEmitter{}
	handler := NewHandler(feed, emitter, news.DefaultPageSize, logger)

	r := chi.NewRouter()
	r.Route("/api", handler.RegisterRoutes)
	return r, emitter
}

type pageResponse struct {
	Data news.Page `json:"data"`
}

func TestHandleGetNews(t *testing.T) {
	router, _ := newTestRouter(t, writeFeed(t, 40))

	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedFirst string
	}{
		{name: "default page", query: "", expectedPage: 1, expectedFirst: "story 1"},
		{name: "second page", query: "?page=2", expectedPage: 2, expectedFirst: "story 16"},
		{name: "past the end", query: "?page=99", expectedPage: 3, expectedFirst: "story 31"},
		{name: "not a number", query: "?page=next", expectedPage: 1, expectedFirst: "story 1"},
		{name: "archive date resets", query: "?page=3&date=2026-10-18", expectedPage: 1, expectedFirst: "story 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/news"+tt.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var resp pageResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedPage, resp.Data.Page)
			assert.Equal(t, 3, resp.Data.TotalPages)
			assert.Equal(t, tt.expectedFirst, resp.Data.Items[0].Headline)
		})
	}
}

func TestHandleGetNews_MissingFeed(t *testing.T) {
	router, _ := newTestRouter(t, filepath.Join(t.TempDir(), "absent.json"))

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp pageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Page 1 / 1 • 0 items", resp.Data.Info)
	assert.Equal(t, news.EmptyMessage, resp.Data.EmptyMessage)
}

func TestHandleReload(t *testing.T) {
	path := writeFeed(t, 3)
	router, emitter := newTestRouter(t, path)

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/news/reload", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, float64(3), data["items"])
		assert.Equal(t, false, data["degraded"])
	})

	t.Run("degraded", func(t *testing.T) {
		require.NoError(t, os.Remove(path))

		req := httptest.NewRequest(http.MethodPost, "/api/news/reload", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["items"])
		assert.Equal(t, true, data["degraded"])
		assert.NotEmpty(t, data["reason"])
	})

	require.Len(t, emitter.events, 2)
	assert.True(t, emitter.events[1].(*events.NewsReloadedData).Degraded)
}
