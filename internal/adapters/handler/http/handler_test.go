package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/Rowdraraz100/RazNotes/internal/adapters/handler/http"
	"github.com/Rowdraraz100/RazNotes/internal/adapters/metrics"
	"github.com/Rowdraraz100/RazNotes/internal/adapters/repository"
	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
}

type heatmapBody struct {
	Start domain.DayKey `json:"start"`
	Cells []struct {
		Day    domain.DayKey `json:"day"`
		Count  int           `json:"count"`
		Bucket string        `json:"bucket"`
	} `json:"cells"`
}

// flakyStore fails on demand once the engine has loaded.
type flakyStore struct {
	*repository.InMemoryStateStore
	failing atomic.Bool
}

func (s *flakyStore) Save(ctx context.Context, data *domain.AppData) error {
	if s.failing.Load() {
		return errors.New("disk full")
	}
	return s.InMemoryStateStore.Save(ctx, data)
}

func (s *flakyStore) Ping(ctx context.Context) error {
	if s.failing.Load() {
		return errors.New("disk full")
	}
	return nil
}

func setupRouter(t *testing.T) (*gin.Engine, *services.Engine) {
	return setupRouterWith(t, repository.NewInMemoryStateStore())
}

func setupRouterWith(t *testing.T, store repository.Store) (*gin.Engine, *services.Engine) {
	gin.SetMode(gin.TestMode)

	engine, err := services.NewEngine(context.Background(), domain.DefaultCatalog(), store, services.WithClock(fixedClock))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	engine.Subscribe(collector.Observe)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(engine),
		StatsHandler: adapterHTTP.NewStatsHandler(services.NewStatsService(engine)),
		StateHandler: adapterHTTP.NewStateHandler(engine),
		LiveHandler:  adapterHTTP.NewLiveHandler(engine),
		Store:        store,
		Metrics:      metrics.Handler(reg),
		StartTime:    time.Now(),
	})
	return router, engine
}

func do(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListHabits(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/v1/habits")
	assert.Equal(t, http.StatusOK, w.Code)

	var snap domain.AppData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Habits, 6)
	assert.Equal(t, domain.DayKey("2024-06-10"), snap.LastDate)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestToggleHabit(t *testing.T) {
	t.Run("Success: 200 with updated snapshot", func(t *testing.T) {
		router, engine := setupRouter(t)

		w := do(router, http.MethodPost, "/api/v1/habits/reading/toggle")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"2024-06-10":1`)
		assert.Contains(t, w.Body.String(), `"streak":1`)

		assert.True(t, engine.Snapshot().Habits[1].Completed)
	})

	t.Run("Fail: 404 Unknown habit", func(t *testing.T) {
		router, engine := setupRouter(t)

		w := do(router, http.MethodPost, "/api/v1/habits/gaming/toggle")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, engine.Snapshot().History)
	})
}

func TestStatsAndHeatmap(t *testing.T) {
	router, _ := setupRouter(t)
	do(router, http.MethodPost, "/api/v1/habits/coding/toggle")
	do(router, http.MethodPost, "/api/v1/habits/health/toggle")

	t.Run("Stats", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/stats")
		assert.Equal(t, http.StatusOK, w.Code)

		var stats domain.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 1, stats.TotalActiveDays)
		assert.Equal(t, 2, stats.CompletedToday)
		assert.Equal(t, "Jun 10", stats.TodayLabel)
	})

	t.Run("Heatmap defaults to a year ending today", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/heatmap")
		assert.Equal(t, http.StatusOK, w.Code)

		var hm heatmapBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hm))
		require.Len(t, hm.Cells, 365)
		assert.Equal(t, domain.DayKey("2024-06-10"), hm.Cells[364].Day)
		assert.Equal(t, 2, hm.Cells[364].Count)
		assert.Equal(t, "low", hm.Cells[364].Bucket)
	})

	t.Run("Heatmap with explicit range", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/v1/heatmap?end=2024-01-31&days=31")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"start":"2024-01-01"`)
	})

	t.Run("Fail: 400 on bad input", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/v1/heatmap?end=yesterday").Code)
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/v1/heatmap?days=abc").Code)
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/v1/heatmap?days=1000").Code)
	})
}

func TestResetState(t *testing.T) {
	router, engine := setupRouter(t)
	do(router, http.MethodPost, "/api/v1/habits/coding/toggle")

	t.Run("Fail: 412 without confirmation", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/api/v1/state")
		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
		assert.Equal(t, 1, engine.Snapshot().Streak)
	})

	t.Run("Success: confirmed reset wipes history", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/api/v1/state?confirm=true")
		assert.Equal(t, http.StatusOK, w.Code)

		snap := engine.Snapshot()
		assert.Empty(t, snap.History)
		assert.Equal(t, 0, snap.MaxStreak)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := setupRouter(t)
	do(router, http.MethodPost, "/api/v1/habits/coding/toggle")

	w := do(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"store":"connected"`)

	w = do(router, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `raz_habits_toggles_total{habit="coding"} 1`)
}

func TestLiveUpdates(t *testing.T) {
	router, engine := setupRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	type message struct {
		Event string         `json:"event"`
		Habit string         `json:"habit"`
		State domain.AppData `json:"state"`
	}

	var first message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first.Event)

	_, err = engine.Toggle(context.Background(), "building")
	require.NoError(t, err)

	var update message
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "toggled", update.Event)
	assert.Equal(t, "building", update.Habit)
	assert.True(t, update.State.Habits[2].Completed)
}

func TestStoreFailures(t *testing.T) {
	store := &flakyStore{InMemoryStateStore: repository.NewInMemoryStateStore()}
	router, _ := setupRouterWith(t, store)
	store.failing.Store(true)

	t.Run("Toggle reports 503 with the request id", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/habits/coding/toggle")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "state store unavailable", body["error"])
		assert.Equal(t, w.Header().Get("X-Request-ID"), body["request_id"])
		assert.NotEmpty(t, body["request_id"])
	})

	t.Run("Health reports degraded", func(t *testing.T) {
		w := do(router, http.MethodGet, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
		assert.Contains(t, w.Body.String(), `"store":"unreachable"`)
	})
}
