package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccrualHandler_RunCycle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		scheduler := new(MockAccrualScheduler)
		handler := NewAccrualHandler(scheduler, zap.NewNop())

		report := &domain.AccrualReport{
			OrdersProcessed: 12,
			TotalCredited:   600.5,
			OrdersExpired:   2,
			OrdersSkipped:   3,
			OrdersFailed:    1,
			Timestamp:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		}
		scheduler.On("RunAccrualCycle", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(report, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/accrual/run", nil)
		w := httptest.NewRecorder()

		handler.RunCycle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(12), response["processedRewards"])
		assert.Equal(t, "600.50", response["totalRewardAmount"])
		assert.Equal(t, float64(2), response["expiredOrders"])
		assert.Equal(t, float64(3), response["skippedOrders"])
		assert.Equal(t, float64(1), response["failedOrders"])
		assert.Equal(t, "2024-03-15T00:00:00Z", response["timestamp"])

		scheduler.AssertExpectations(t)
	})

	t.Run("Cycle failure", func(t *testing.T) {
		scheduler := new(MockAccrualScheduler)
		handler := NewAccrualHandler(scheduler, zap.NewNop())

		scheduler.On("RunAccrualCycle", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/accrual/run", nil)
		w := httptest.NewRecorder()

		handler.RunCycle(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAccrualHandler_Status(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		scheduler := new(MockAccrualScheduler)
		handler := NewAccrualHandler(scheduler, zap.NewNop())

		status := &domain.AccrualStatus{
			ActiveOrders:     42,
			TodayRewardTotal: 1234.5,
			Timestamp:        time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC),
		}
		scheduler.On("Status", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(status, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/accrual/status", nil)
		w := httptest.NewRecorder()

		handler.Status(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(42), response["activeOrders"])
		assert.Equal(t, "1234.50", response["todayRewardTotal"])
		assert.Equal(t, "2024-03-15T12:30:00Z", response["timestamp"])
	})

	t.Run("Status failure", func(t *testing.T) {
		scheduler := new(MockAccrualScheduler)
		handler := NewAccrualHandler(scheduler, zap.NewNop())

		scheduler.On("Status", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/accrual/status", nil)
		w := httptest.NewRecorder()

		handler.Status(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
