package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dportela/procura/backend/internal/alerts"
	"github.com/dportela/procura/backend/internal/contracts"
	"github.com/dportela/procura/backend/pkg/config"
	"github.com/dportela/procura/backend/pkg/logger"
	"github.com/dportela/procura/backend/pkg/redis"
)

type stubOrderRepo struct {
	orders []contracts.RawOrder
	err    error
}

func (r *stubOrderRepo) ListAll(ctx context.Context) ([]contracts.RawOrder, error) {
	return r.orders, r.err
}

type stubSupplierRepo struct{}

func (r *stubSupplierRepo) ListAll(ctx context.Context) ([]contracts.Supplier, error) {
	return nil, nil
}

func newTestHandler(t *testing.T, repo *stubOrderRepo) *AlertHandler {
	t.Helper()

	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
		Redis:     config.RedisConfig{Enabled: false},
	}
	log := logger.New(cfg)

	client, err := redis.New(cfg)
	require.NoError(t, err)
	cache := redis.NewCache(client, "test")

	engine := alerts.NewEngine(alerts.DefaultConfig(), log.Zerolog())
	svc := alerts.NewService(engine, repo, &stubSupplierRepo{}, cache, time.Minute, log.Zerolog())
	svc.WithClock(func() time.Time {
		return time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	})

	return NewAlertHandler(svc, log)
}

func TestGetSummary(t *testing.T) {
	repo := &stubOrderRepo{orders: []contracts.RawOrder{
		{ID: 1, OrderNumber: "PO-001", Amount: "100", PromisedDate: "2024-06-05"},
	}}
	handler := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()

	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var summary contracts.AlertSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))

	assert.Equal(t, "2024-06-10", summary.ReferenceDate.Format("2006-01-02"))
	require.Len(t, summary.DelayedOrders, 1)
	assert.Equal(t, "PO-001", summary.DelayedOrders[0].OrderNumber)
	assert.Equal(t, 5, summary.DelayedOrders[0].DaysOverdue)
}

func TestGetSummaryExplicitDate(t *testing.T) {
	repo := &stubOrderRepo{orders: []contracts.RawOrder{
		{ID: 1, OrderNumber: "PO-001", Amount: "100", PromisedDate: "2024-06-05"},
	}}
	handler := newTestHandler(t, repo)

	// On June 1st the order is not due yet and outside the horizon
	req := httptest.NewRequest(http.MethodGet, "/api/alerts?date=2024-06-01", nil)
	rec := httptest.NewRecorder()

	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var summary contracts.AlertSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))

	assert.Empty(t, summary.DelayedOrders)
	assert.Empty(t, summary.UpcomingOrders)
}

func TestGetSummaryInvalidDate(t *testing.T) {
	handler := newTestHandler(t, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/alerts?date=10-06-2024", nil)
	rec := httptest.NewRecorder()

	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "date")
}

func TestGetSummaryRepoFailure(t *testing.T) {
	repo := &stubOrderRepo{err: errors.New("connection refused")}
	handler := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()

	handler.GetSummary(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetBadge(t *testing.T) {
	// The expensive order sets the value threshold but sits outside the
	// horizon, so nothing lands in the critical bucket.
	repo := &stubOrderRepo{orders: []contracts.RawOrder{
		{ID: 1, Amount: "100", PromisedDate: "2024-06-05"},
		{ID: 2, Amount: "900", PromisedDate: "2024-06-20"},
		{ID: 3, Amount: "50", PromisedDate: "2024-06-12"},
	}}
	handler := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/badge", nil)
	rec := httptest.NewRecorder()

	handler.GetBadge(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	// One delayed, one upcoming
	assert.Equal(t, 2, body["total"])
}

func TestGetCounts(t *testing.T) {
	repo := &stubOrderRepo{orders: []contracts.RawOrder{
		{ID: 1, Amount: "100", PromisedDate: "2024-06-05"},
		{ID: 2, Amount: "900", PromisedDate: "2024-06-20"},
		{ID: 3, Amount: "50", PromisedDate: "2024-06-12"},
	}}
	handler := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/summary", nil)
	rec := httptest.NewRecorder()

	handler.GetCounts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var counts contracts.AlertCounts
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&counts))

	assert.Equal(t, 1, counts.Delayed)
	assert.Equal(t, 1, counts.Upcoming)
	assert.Equal(t, 0, counts.Critical)
	assert.Equal(t, 2, counts.Total)
}
