package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/jackc/pgx/v5"
)

// OrderRepository реализует domain.OrderRepository
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository создает новый OrderRepository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetOrderByID получает заказ по идентификатору
func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, product_id, purchase_amount, currency, purchase_date, expiry_date, status, last_reward_date, rewards_generated
		 FROM orders
		 WHERE id = $1`,
		id,
	).Scan(&order.ID, &order.UserID, &order.ProductID, &order.PurchaseAmount.Amount, &order.PurchaseAmount.Currency,
		&order.PurchaseDate, &order.ExpiryDate, &order.Status, &order.LastRewardDate, &order.RewardsGenerated)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to get order %d: %w", id, err)
	}

	return order, nil
}

// FindActiveOrders получает все активные заказы, срок которых еще не истек
func (r *OrderRepository) FindActiveOrders(ctx context.Context, now time.Time) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, product_id, purchase_amount, currency, purchase_date, expiry_date, status, last_reward_date, rewards_generated
		 FROM orders
		 WHERE status = $1 AND expiry_date > $2
		 ORDER BY id ASC`,
		domain.OrderStatusActive, now,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to find active orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(&order.ID, &order.UserID, &order.ProductID, &order.PurchaseAmount.Amount, &order.PurchaseAmount.Currency,
			&order.PurchaseDate, &order.ExpiryDate, &order.Status, &order.LastRewardDate, &order.RewardsGenerated)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating active orders: %w", err)
	}

	return orders, nil
}

// ExpireOrders переводит в expired все активные заказы с истекшим сроком.
// Операция идемпотентна: повторный вызов для уже истекших заказов ничего не меняет.
func (r *OrderRepository) ExpireOrders(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE orders
		 SET status = $1
		 WHERE status = $2 AND expiry_date <= $3`,
		domain.OrderStatusExpired, domain.OrderStatusActive, cutoff,
	)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to expire orders: %w", err)
	}

	return result.RowsAffected(), nil
}

// CountActiveOrders возвращает количество активных заказов
func (r *OrderRepository) CountActiveOrders(ctx context.Context, now time.Time) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM orders
		 WHERE status = $1 AND expiry_date > $2`,
		domain.OrderStatusActive, now,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to count active orders: %w", err)
	}

	return count, nil
}
