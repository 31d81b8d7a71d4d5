package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/decisionlens/internal/modules/watchlist"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	handler := NewHandler(watchlist.Sample(), logger)

	r := chi.NewRouter()
	r.Route("/api", handler.RegisterRoutes)
	return r
}

func TestHandleGetWatchlist(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name         string
		query        string
		expectedTab  string
		expectedRows int
		emptyMessage string
	}{
		{name: "default", query: "", expectedTab: "btc", expectedRows: 3},
		{name: "eth", query: "?tab=eth", expectedTab: "eth", expectedRows: 3},
		{name: "ind", query: "?tab=ind", expectedTab: "ind", expectedRows: 2},
		{name: "unknown", query: "?tab=memes", expectedTab: "memes", expectedRows: 0, emptyMessage: watchlist.EmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/watchlist"+tt.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Data watchlist.View `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedTab, resp.Data.Tab)
			assert.Len(t, resp.Data.Rows, tt.expectedRows)
			assert.Equal(t, tt.emptyMessage, resp.Data.EmptyMessage)
		})
	}
}

func TestHandleGetTabs(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist/tabs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "btc", resp.Data[0]["key"])
	assert.Equal(t, true, resp.Data[0]["default"])
	assert.Equal(t, false, resp.Data[2]["default"])
	assert.Equal(t, float64(2), resp.Data[2]["count"])
}
