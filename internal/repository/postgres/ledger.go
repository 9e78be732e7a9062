package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository реализует domain.LedgerRepository
type LedgerRepository struct {
	db DBTX
}

// NewLedgerRepository создает новый LedgerRepository
func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreditReward начисляет дневное вознаграждение по заказу как единую транзакцию БД:
// обновление заказа, увеличение balance и reward_balance на одну и ту же сумму
// и запись reward-транзакции применяются вместе либо не применяются вовсе.
//
// Условие на last_reward_date в UPDATE заказа одновременно обеспечивает
// идемпотентность (не более одного начисления за календарный день) и закрывает
// гонку двух параллельных циклов: второй UPDATE не найдет строку и вернет 0.
func (r *LedgerRepository) CreditReward(ctx context.Context, order *domain.Order, amount domain.Money, now time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin reward transaction for order %d: %w", order.ID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	dayStart := domain.StartOfDay(now)

	result, err := tx.Exec(ctx,
		`UPDATE orders
		 SET last_reward_date = $1, rewards_generated = rewards_generated + $2
		 WHERE id = $3 AND status = $4
		   AND (last_reward_date IS NULL OR last_reward_date < $5)`,
		now, amount.Amount, order.ID, domain.OrderStatusActive, dayStart,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update order %d accrual fields: %w", order.ID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAlreadyCredited
	}

	// Проверяем валюту счета до изменения балансов
	var userCurrency string
	err = tx.QueryRow(ctx,
		`SELECT currency FROM users WHERE id = $1`,
		order.UserID,
	).Scan(&userCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: failed to get user %d currency: %w", order.UserID, err)
	}
	if userCurrency != amount.Currency {
		return domain.ErrCurrencyMismatch
	}

	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET balance = balance + $1, reward_balance = reward_balance + $1
		 WHERE id = $2`,
		amount.Amount, order.UserID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to credit reward to user %d: %w", order.UserID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (user_id, type, amount, currency, status, order_id, product_id, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.UserID, domain.TransactionTypeReward, amount.Amount, amount.Currency,
		domain.TransactionStatusCompleted, order.ID, order.ProductID, "daily order reward", now,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert reward transaction for order %d: %w", order.ID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit reward transaction for order %d: %w", order.ID, err)
	}

	return nil
}

// Withdraw списывает средства со счета пользователя с блокировкой.
// Вывод разрешен только в пределах reward_balance; balance и reward_balance
// уменьшаются на одну и ту же сумму, транзакция создается в статусе pending
// до ручного подтверждения выплаты.
func (r *LedgerRepository) Withdraw(ctx context.Context, userID int64, amount domain.Money) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin withdrawal for user %d: %w", userID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	// Advisory lock по user_id против параллельных списаний
	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID)
	if err != nil {
		return fmt.Errorf("repository: failed to acquire lock for user %d: %w", userID, err)
	}

	var rewardBalance float64
	var userCurrency string
	err = tx.QueryRow(ctx,
		`SELECT reward_balance, currency FROM users WHERE id = $1`,
		userID,
	).Scan(&rewardBalance, &userCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: failed to get balances for user %d: %w", userID, err)
	}

	if userCurrency != amount.Currency {
		return domain.ErrCurrencyMismatch
	}
	if rewardBalance < amount.Amount {
		return domain.ErrInsufficientRewardFunds
	}

	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET balance = balance - $1, reward_balance = reward_balance - $1
		 WHERE id = $2`,
		amount.Amount, userID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to debit user %d: %w", userID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (user_id, type, amount, currency, status, description)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, domain.TransactionTypeWithdraw, amount.Amount, amount.Currency,
		domain.TransactionStatusPending, "withdrawal request",
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert withdrawal transaction for user %d: %w", userID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit withdrawal for user %d: %w", userID, err)
	}

	return nil
}

// CreditDeposit зачисляет одобренный депозит: balance и deposit_balance
// увеличиваются вместе, reward_balance не затрагивается
func (r *LedgerRepository) CreditDeposit(ctx context.Context, userID int64, amount domain.Money) error {
	return r.credit(ctx, userID, amount,
		`UPDATE users
		 SET balance = balance + $1, deposit_balance = deposit_balance + $1
		 WHERE id = $2 AND currency = $3`,
		domain.TransactionTypeDeposit, "approved deposit")
}

// CreditReferral зачисляет реферальное вознаграждение: balance и reward_balance
// увеличиваются вместе, как и при начислении по заказу
func (r *LedgerRepository) CreditReferral(ctx context.Context, userID int64, amount domain.Money, description string) error {
	return r.credit(ctx, userID, amount,
		`UPDATE users
		 SET balance = balance + $1, reward_balance = reward_balance + $1
		 WHERE id = $2 AND currency = $3`,
		domain.TransactionTypeReferral, description)
}

// credit применяет зачисление и запись в журнал как единую транзакцию БД
func (r *LedgerRepository) credit(ctx context.Context, userID int64, amount domain.Money, updateSQL string, txType domain.TransactionType, description string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin %s credit for user %d: %w", txType, userID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	result, err := tx.Exec(ctx, updateSQL, amount.Amount, userID, amount.Currency)
	if err != nil {
		return fmt.Errorf("repository: failed to credit user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		// Либо пользователя нет, либо валюта счета не совпадает
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return fmt.Errorf("repository: failed to check user %d: %w", userID, err)
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		return domain.ErrCurrencyMismatch
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (user_id, type, amount, currency, status, description)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, txType, amount.Amount, amount.Currency, domain.TransactionStatusCompleted, description,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert %s transaction for user %d: %w", txType, userID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit %s credit for user %d: %w", txType, userID, err)
	}

	return nil
}

// GetBalances получает поля баланса пользователя
func (r *LedgerRepository) GetBalances(ctx context.Context, userID int64) (*domain.Balances, error) {
	balances := &domain.Balances{}

	err := r.db.QueryRow(ctx,
		`SELECT balance, deposit_balance, reward_balance, currency
		 FROM users
		 WHERE id = $1`,
		userID,
	).Scan(&balances.Balance, &balances.DepositBalance, &balances.RewardBalance, &balances.Currency)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get balances for user %d: %w", userID, err)
	}

	return balances, nil
}
