package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

func TestExportHandlerWritesCSV(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, exportLimit).Return([]entity.Lead{
		{
			ID:              "2",
			Name:            "O'Brien, \"Sons\"",
			Phone:           "9876543210",
			Email:           "ob@example.com",
			State:           "KA",
			DistrictPin:     "560001",
			InvestmentRange: "25L+",
			Timeline:        "now",
			ExperienceYears: "5",
			BusinessType:    "distributor",
			Priority:        entity.PriorityHigh,
			CreatedAt:       time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		},
		{ID: "1", Name: "Asha Rao", Phone: "9999999999", Priority: entity.PriorityMedium},
	}, nil)

	h := NewExportHandler(repo, logger.NewNoOpLogger())
	h.now = func() time.Time { return time.Date(2024, 5, 3, 23, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/leads/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="london-slush-leads-2024-05-03.csv"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{
		"2", "O'Brien, \"Sons\"", "9876543210", "ob@example.com", "KA - 560001",
		"25L+", "now", "5", "distributor", "HIGH", "2024-05-02T09:00:00Z",
	}, records[1])
	assert.Equal(t, "Not specified", records[2][4])
}

func TestExportHandlerLimit(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, 25).Return([]entity.Lead{}, nil)
	h := NewExportHandler(repo, logger.NewNoOpLogger())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/leads/export?limit=25", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/leads/export?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerFailures(t *testing.T) {
	t.Run("no database", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewExportHandler(nil, logger.NewNoOpLogger()).Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/leads/export", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Database not configured")
	})

	t.Run("query error", func(t *testing.T) {
		repo := new(MockLeadRepository)
		repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		rec := httptest.NewRecorder()
		NewExportHandler(repo, logger.NewNoOpLogger()).Handle(rec, httptest.NewRequest(http.MethodGet, "/admin/leads/export", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Error exporting leads")
	})
}
