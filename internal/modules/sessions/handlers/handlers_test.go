package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/sessions"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// 10:00 in New York on a Tuesday
var testNow = time.Date(2024, 1, 16, 15, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, profile sessions.Profile) (http.Handler, *events.Bus) {
	t.Helper()
	logger := zerolog.New(nil).Level(zerolog.Disabled)

	service, err := sessions.NewSessionService(sessions.DefaultMarkets(), profile, logger)
	require.NoError(t, err)

	bus := events.NewBus()
	handler := NewHandler(service, bus, logger)
	handler.now = func() time.Time { return testNow }

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.RegisterStreamRoutes(r)
		handler.RegisterRoutes(r)
	})
	return r, bus
}

func karachiProfile(t *testing.T) sessions.Profile {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Karachi")
	require.NoError(t, err)
	return sessions.FixedProfile(loc)
}

type snapshotResponse struct {
	Data  Snapshot `json:"data"`
	Error string   `json:"error"`
}

func TestHandleGetSessions(t *testing.T) {
	tests := []struct {
		name           string
		profile        func(t *testing.T) sessions.Profile
		query          string
		expectedStatus int
		validate       func(*testing.T, snapshotResponse)
	}{
		{
			name:           "fixed profile",
			profile:        karachiProfile,
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp snapshotResponse) {
				assert.Equal(t, "fixed", resp.Data.Profile)
				assert.Equal(t, "Asia/Karachi", resp.Data.Timezone)
				assert.Equal(t, "Jan 16, 2024 • 8:00 PM PKT", resp.Data.NowLabel)
				assert.Equal(t, 3, resp.Data.OpenMarkets)

				keys := make([]string, 0, len(resp.Data.Sessions))
				for _, v := range resp.Data.Sessions {
					keys = append(keys, v.Key)
				}
				assert.Equal(t, []string{"syd", "tok", "lon", "ny", "crypto"}, keys)

				ny := resp.Data.Sessions[3]
				assert.Equal(t, sessions.StateOpen, ny.State)
				assert.Equal(t, "Closes in 6h 0m", ny.Countdown)
				assert.Equal(t, "7:30 PM", ny.OpensAt)
				assert.Equal(t, "2:00 AM", ny.ClosesAt)
				assert.Equal(t, "US", ny.Country)

				crypto := resp.Data.Sessions[4]
				assert.Equal(t, "24/7", crypto.Countdown)
				assert.Equal(t, sessions.Placeholder, crypto.OpensAt)
			},
		},
		{
			name:           "fixed profile ignores viewer zone",
			profile:        karachiProfile,
			query:          "?tz=America/Los_Angeles",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp snapshotResponse) {
				assert.Equal(t, "Asia/Karachi", resp.Data.Timezone)
			},
		},
		{
			name:           "viewer profile uses tz",
			profile:        func(*testing.T) sessions.Profile { return sessions.ViewerProfile() },
			query:          "?tz=Asia/Tokyo",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp snapshotResponse) {
				assert.Equal(t, "viewer", resp.Data.Profile)
				assert.Equal(t, "Asia/Tokyo", resp.Data.Timezone)
				assert.Equal(t, "Jan 17, 2024 • 12:00 AM JST", resp.Data.NowLabel)
			},
		},
		{
			name:           "viewer profile defaults to UTC",
			profile:        func(*testing.T) sessions.Profile { return sessions.ViewerProfile() },
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, resp snapshotResponse) {
				assert.Equal(t, "UTC", resp.Data.Timezone)
			},
		},
		{
			name:           "invalid tz",
			profile:        karachiProfile,
			query:          "?tz=Mars/Olympus",
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, resp snapshotResponse) {
				assert.Contains(t, resp.Error, "Mars/Olympus")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, tt.profile(t))
			req := httptest.NewRequest(http.MethodGet, "/api/sessions"+tt.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp snapshotResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			tt.validate(t, resp)
		})
	}
}

func TestHandleGetSession(t *testing.T) {
	router, _ := newTestRouter(t, karachiProfile(t))

	t.Run("known market", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/lon", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data sessions.SessionView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "lon", resp.Data.Key)
		assert.Equal(t, "Open", resp.Data.Label)
		assert.Equal(t, "Closes in 1h 30m", resp.Data.Countdown)
	})

	t.Run("unknown market", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/fra", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleStream(t *testing.T) {
	router, bus := newTestRouter(t, karachiProfile(t))
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var first Snapshot
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	assert.Len(t, first.Sessions, 5)
	assert.Equal(t, 3, first.OpenMarkets)

	bus.Publish(&events.Event{Type: events.SessionsRefreshed})

	var second Snapshot
	require.NoError(t, wsjson.Read(ctx, conn, &second))
	assert.Equal(t, first.NowLabel, second.NowLabel)
	assert.Equal(t, 1, bus.SubscriberCount(events.SessionsRefreshed))
}
