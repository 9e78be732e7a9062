package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LedgerService определяет методы работы со счетом пользователя.
type LedgerService interface {
	GetBalances(ctx context.Context, userID int64) (*domain.Balances, error)
	Withdraw(ctx context.Context, userID int64, amount domain.Money) error
}

// BalanceHandler обрабатывает запросы к счету пользователя
type BalanceHandler struct {
	ledgerService LedgerService
	logger        *zap.Logger
}

// NewBalanceHandler создает новый BalanceHandler
func NewBalanceHandler(ledgerService LedgerService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// GetBalances возвращает поля баланса пользователя
func (h *BalanceHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	balances, err := h.ledgerService.GetBalances(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get balances", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(balances); err != nil {
		h.logger.Error("failed to encode balances response", zap.Error(err))
	}
}

type withdrawRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Withdraw создает заявку на вывод средств в пределах reward-баланса
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	err = h.ledgerService.Withdraw(r.Context(), userID, domain.Money{Amount: req.Amount, Currency: req.Currency})
	if err != nil {
		if errors.Is(err, domain.ErrNonPositiveAmount) || errors.Is(err, domain.ErrCurrencyMismatch) {
			http.Error(w, "Unprocessable Entity", http.StatusUnprocessableEntity)
			return
		}
		if errors.Is(err, domain.ErrInsufficientRewardFunds) {
			http.Error(w, "Payment Required", http.StatusPaymentRequired)
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to withdraw", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
