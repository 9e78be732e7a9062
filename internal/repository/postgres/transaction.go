package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/avc/reward-engine/internal/domain"
)

// TransactionRepository реализует domain.TransactionRepository
type TransactionRepository struct {
	db DBTX
}

// NewTransactionRepository создает новый TransactionRepository
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactionsByUserID получает историю операций пользователя
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, currency, status, order_id, product_id, description, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to get transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx := &domain.Transaction{}
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Currency, &tx.Status,
			&tx.OrderID, &tx.ProductID, &tx.Description, &tx.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating transactions: %w", err)
	}

	return transactions, nil
}

// RewardTotalForDay получает сумму reward-начислений за календарный день
func (r *TransactionRepository) RewardTotalForDay(ctx context.Context, day time.Time) (float64, error) {
	dayStart := domain.StartOfDay(day)
	dayEnd := dayStart.Add(24 * time.Hour)

	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE type = $1 AND created_at >= $2 AND created_at < $3`,
		domain.TransactionTypeReward, dayStart, dayEnd,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to get reward total for day: %w", err)
	}

	return total, nil
}
