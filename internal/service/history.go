package service

import (
	"context"
	"fmt"

	"github.com/avc/reward-engine/internal/domain"
)

// TransactionRepository определяет методы чтения журнала операций.
type TransactionRepository interface {
	GetTransactionsByUserID(ctx context.Context, userID int64) ([]*domain.Transaction, error)
}

// HistoryService предоставляет чтение журнала операций по счету
type HistoryService struct {
	transactionRepo TransactionRepository
}

// NewHistoryService создает новый HistoryService
func NewHistoryService(transactionRepo TransactionRepository) *HistoryService {
	return &HistoryService{
		transactionRepo: transactionRepo,
	}
}

// GetTransactions возвращает журнал операций пользователя,
// от новых к старым
func (s *HistoryService) GetTransactions(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetTransactionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("history service: failed to get transactions for user %d: %w", userID, err)
	}

	return transactions, nil
}
