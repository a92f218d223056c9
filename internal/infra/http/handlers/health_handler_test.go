package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestHealthNothingConfigured(t *testing.T) {
	code, resp := getHealth(t, NewHealthHandler(nil, nil, nil))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, StatusNotConfigured, resp.Dependencies["database"])
	assert.Equal(t, StatusNotConfigured, resp.Dependencies["redis"])
	assert.Empty(t, resp.Sinks)
}

func TestHealthAllUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	sinks := map[string]string{"sheets": SinkEnabled, "forms": "FORM_ENTRY_MAP is not set"}
	code, resp := getHealth(t, NewHealthHandler(db, rdb, sinks))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, StatusHealthy, resp.Dependencies["database"])
	assert.Equal(t, StatusHealthy, resp.Dependencies["redis"])
	assert.Equal(t, sinks, resp.Sinks)
}

func TestHealthDegraded(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	code, resp := getHealth(t, NewHealthHandler(db, rdb, nil))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Contains(t, resp.Dependencies["database"], "unhealthy")
	assert.Contains(t, resp.Dependencies["redis"], "unhealthy")
}
