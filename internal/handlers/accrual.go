package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"go.uber.org/zap"
)

// AccrualScheduler определяет запуск цикла начислений.
type AccrualScheduler interface {
	RunAccrualCycle(ctx context.Context, now time.Time) (*domain.AccrualReport, error)
	Status(ctx context.Context, now time.Time) (*domain.AccrualStatus, error)
}

// AccrualHandler обрабатывает запуск цикла начислений и запрос состояния
type AccrualHandler struct {
	scheduler AccrualScheduler
	logger    *zap.Logger
}

// NewAccrualHandler создает новый AccrualHandler
func NewAccrualHandler(scheduler AccrualScheduler, logger *zap.Logger) *AccrualHandler {
	return &AccrualHandler{
		scheduler: scheduler,
		logger:    logger,
	}
}

type accrualReportResponse struct {
	ProcessedRewards  int    `json:"processedRewards"`
	TotalRewardAmount string `json:"totalRewardAmount"`
	ExpiredOrders     int    `json:"expiredOrders"`
	SkippedOrders     int    `json:"skippedOrders"`
	FailedOrders      int    `json:"failedOrders"`
	Timestamp         string `json:"timestamp"`
}

// RunCycle запускает цикл начислений вручную и возвращает отчет
func (h *AccrualHandler) RunCycle(w http.ResponseWriter, r *http.Request) {
	report, err := h.scheduler.RunAccrualCycle(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("accrual cycle failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	response := accrualReportResponse{
		ProcessedRewards:  report.OrdersProcessed,
		TotalRewardAmount: strconv.FormatFloat(report.TotalCredited, 'f', 2, 64),
		ExpiredOrders:     report.OrdersExpired,
		SkippedOrders:     report.OrdersSkipped,
		FailedOrders:      report.OrdersFailed,
		Timestamp:         report.Timestamp.UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode accrual report", zap.Error(err))
	}
}

type accrualStatusResponse struct {
	ActiveOrders     int64  `json:"activeOrders"`
	TodayRewardTotal string `json:"todayRewardTotal"`
	Timestamp        string `json:"timestamp"`
}

// Status возвращает текущее состояние движка без мутаций
func (h *AccrualHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.scheduler.Status(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("failed to get accrual status", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	response := accrualStatusResponse{
		ActiveOrders:     status.ActiveOrders,
		TodayRewardTotal: strconv.FormatFloat(status.TodayRewardTotal, 'f', 2, 64),
		Timestamp:        status.Timestamp.UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode accrual status", zap.Error(err))
	}
}
