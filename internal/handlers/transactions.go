package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HistoryService определяет методы чтения журнала операций.
type HistoryService interface {
	GetTransactions(ctx context.Context, userID int64) ([]*domain.Transaction, error)
}

// TransactionsHandler обрабатывает запросы журнала операций
type TransactionsHandler struct {
	historyService HistoryService
	logger         *zap.Logger
}

// NewTransactionsHandler создает новый TransactionsHandler
func NewTransactionsHandler(historyService HistoryService, logger *zap.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// GetTransactions возвращает журнал операций пользователя
func (h *TransactionsHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	transactions, err := h.historyService.GetTransactions(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get transactions", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(transactions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(transactions); err != nil {
		h.logger.Error("failed to encode transactions response", zap.Error(err))
	}
}
