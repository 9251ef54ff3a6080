package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/logging"
	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/pathutil"
	"github.com/slihbo/WinTrace/internal/testutil"
	"github.com/slihbo/WinTrace/sampler"
	"github.com/slihbo/WinTrace/server"
	"github.com/slihbo/WinTrace/store"
	"github.com/slihbo/WinTrace/tracker"
)

func newAPI(t *testing.T) (*httptest.Server, *tracker.Tracker) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Paths: (&pathutil.Paths{}).WithDataDir(dir),
		Tracking: config.TrackingConfig{
			TickInterval:  10 * time.Millisecond,
			SampleTimeout: 5 * time.Millisecond,
			SaveInterval:  time.Hour,
		},
	}

	backend := store.NewJSONFile(cfg.Paths.ArchiveFile, cfg.Paths.OverridesFile)
	require.NoError(t, backend.SaveArchive(testutil.Archive(testutil.Days{
		"2024-01-01": {"chrome.exe": 3600, "code.exe": 1800},
	})))

	st := store.New(backend, logging.Discard())

	s := sampler.Func(func(context.Context) (string, error) {
		return "code.exe", nil
	})

	tr := tracker.New(cfg, s, st, logging.Discard())

	srv := httptest.NewServer(server.NewHandler(tr, logging.Discard()).Router())

	t.Cleanup(func() {
		srv.Close()
		_ = tr.Stop()
	})

	return srv, tr
}

func clientFor(srv *httptest.Server) *server.Client {
	return server.NewClient(strings.TrimPrefix(srv.URL, "http://"))
}

func TestHealth(t *testing.T) {
	srv, _ := newAPI(t)

	h, err := clientFor(srv).Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, config.Version, h.Version)
	assert.False(t, h.Tracking)
}

func TestHealthUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	_, err := server.NewClient(addr).Health(context.Background())
	assert.ErrorIs(t, err, server.ErrUnavailable)
}

func TestStatsAndSetCategory(t *testing.T) {
	srv, _ := newAPI(t)
	c := clientFor(srv)
	ctx := context.Background()

	stats, err := c.Stats(ctx, "daily", "2024-01-01", "", "")
	require.NoError(t, err)

	assert.InDelta(t, 5400, stats.TotalSeconds, 0)
	require.Len(t, stats.Apps, 2)
	assert.Equal(t, "chrome.exe", stats.Apps[0].ID)
	assert.Equal(t, "code.exe", stats.Apps[1].ID)
	assert.Equal(t, map[models.Category]int{
		models.CategoryBrowsing:    67,
		models.CategoryDevelopment: 33,
	}, percentages(stats.CategoryBreakdown))

	ok, err := c.SetCategory(ctx, "chrome.exe", "development")
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err = c.Stats(ctx, "daily", "2024-01-01", "", "")
	require.NoError(t, err)
	assert.Equal(t, map[models.Category]int{
		models.CategoryDevelopment: 100,
	}, percentages(stats.CategoryBreakdown))

	overrides, err := c.Overrides(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Overrides{"chrome.exe": models.CategoryDevelopment}, overrides)

	ok, err = c.SetCategory(ctx, "chrome.exe", "Nope")
	assert.False(t, ok)
	require.ErrorIs(t, err, server.ErrAPI)
	assert.Contains(t, err.Error(), "400")
}

func percentages(s []models.CategoryShare) map[models.Category]int {
	out := map[models.Category]int{}
	for _, c := range s {
		out[c.Category] = c.Percentage
	}

	return out
}

func TestBadRequests(t *testing.T) {
	srv, _ := newAPI(t)

	testCases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"invalid range", http.MethodGet, "/api/stats?mode=custom&start=2024-02-01&end=2024-01-01", "", http.StatusBadRequest},
		{"unknown mode", http.MethodGet, "/api/stats?mode=hourly", "", http.StatusBadRequest},
		{"bad date", http.MethodGet, "/api/stats?date=zzzz", "", http.StatusBadRequest},
		{"bad year", http.MethodGet, "/api/recap?year=abc", "", http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/categories", "{", http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/categories", `{"app":"x"}`, http.StatusBadRequest},
		{"empty id", http.MethodPost, "/api/categories", `{"id":"","category":"Games"}`, http.StatusBadRequest},
		{"custom range", http.MethodGet, "/api/stats?mode=custom&start=2024-01-01&end=2024-01-02", "", http.StatusOK},
		{"recap", http.MethodGet, "/api/recap?year=2024", "", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			if tc.status == http.StatusBadRequest {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestRecap(t *testing.T) {
	srv, _ := newAPI(t)

	recap, err := clientFor(srv).YearlyRecap(context.Background(), "2024")
	require.NoError(t, err)

	assert.Equal(t, 2024, recap.Year)
	assert.Len(t, recap.MonthlyUsage, 12)
	assert.Len(t, recap.DailyAverages, 7)
	require.NotNil(t, recap.TopApp)
	assert.Equal(t, "chrome.exe", recap.TopApp.ID)
}

func TestTrackingLifecycle(t *testing.T) {
	srv, tr := newAPI(t)
	c := clientFor(srv)
	ctx := context.Background()

	tracking, err := c.StartTracking(ctx)
	require.NoError(t, err)
	assert.True(t, tracking)

	assert.Eventually(t, func() bool {
		snap, err := c.Snapshot(ctx)
		return err == nil && snap.Tracking && snap.Usage["code.exe"] > 0
	}, 2*time.Second, 10*time.Millisecond)

	tracking, err = c.StopTracking(ctx)
	require.NoError(t, err)
	assert.False(t, tracking)
	assert.False(t, tr.Running())
}

func TestRequestID(t *testing.T) {
	srv, _ := newAPI(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)

	const id = "6f1c2f4e-8f57-4a3f-9a55-3c1d1e0f9b2a"
	req.Header.Set("X-Request-ID", id)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get("X-Request-ID"))
}
