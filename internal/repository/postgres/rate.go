package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// RateRepository реализует domain.RateRepository
type RateRepository struct {
	db DBTX
}

// NewRateRepository создает новый RateRepository
func NewRateRepository(db DBTX) *RateRepository {
	return &RateRepository{db: db}
}

// GetActivePlatformRate получает активную ставку платформы.
// Отсутствие активной ставки — не ошибка: возвращается 0, и заказы
// без ставки продукта будут пропущены как пробел конфигурации.
func (r *RateRepository) GetActivePlatformRate(ctx context.Context) (float64, error) {
	var rate float64

	err := r.db.QueryRow(ctx,
		`SELECT rate
		 FROM platform_rates
		 WHERE is_active
		 ORDER BY updated_at DESC
		 LIMIT 1`,
	).Scan(&rate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("repository: failed to get active platform rate: %w", err)
	}

	return rate, nil
}
