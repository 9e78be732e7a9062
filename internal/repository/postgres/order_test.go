package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_GetOrderByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderID := int64(1)
		purchaseDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		expiryDate := purchaseDate.AddDate(0, 0, 30)

		rows := pgxmock.NewRows([]string{
			"id", "user_id", "product_id", "purchase_amount", "currency",
			"purchase_date", "expiry_date", "status", "last_reward_date", "rewards_generated",
		}).AddRow(orderID, int64(10), int64(5), 1000.0, "USD",
			purchaseDate, expiryDate, domain.OrderStatusActive, nil, 0.0)

		mock.ExpectQuery(`SELECT id, user_id, product_id`).
			WithArgs(orderID).
			WillReturnRows(rows)

		order, err := repo.GetOrderByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, int64(10), order.UserID)
		assert.Equal(t, domain.Money{Amount: 1000.0, Currency: "USD"}, order.PurchaseAmount)
		assert.Nil(t, order.LastRewardDate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, product_id`).
			WithArgs(int64(999)).
			WillReturnError(pgx.ErrNoRows)

		order, err := repo.GetOrderByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.Nil(t, order)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_FindActiveOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Success - with orders", func(t *testing.T) {
		purchaseDate := now.AddDate(0, 0, -1)
		lastReward := now.AddDate(0, 0, -1)

		rows := pgxmock.NewRows([]string{
			"id", "user_id", "product_id", "purchase_amount", "currency",
			"purchase_date", "expiry_date", "status", "last_reward_date", "rewards_generated",
		}).
			AddRow(int64(1), int64(10), int64(5), 1000.0, "USD",
				purchaseDate, now.AddDate(0, 0, 29), domain.OrderStatusActive, &lastReward, 50.0).
			AddRow(int64(2), int64(11), int64(6), 500.0, "EUR",
				purchaseDate, now.AddDate(0, 0, 10), domain.OrderStatusActive, nil, 0.0)

		mock.ExpectQuery(`SELECT id, user_id, product_id`).
			WithArgs(domain.OrderStatusActive, now).
			WillReturnRows(rows)

		orders, err := repo.FindActiveOrders(ctx, now)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, int64(1), orders[0].ID)
		assert.NotNil(t, orders[0].LastRewardDate)
		assert.Nil(t, orders[1].LastRewardDate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - no orders", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{
			"id", "user_id", "product_id", "purchase_amount", "currency",
			"purchase_date", "expiry_date", "status", "last_reward_date", "rewards_generated",
		})

		mock.ExpectQuery(`SELECT id, user_id, product_id`).
			WithArgs(domain.OrderStatusActive, now).
			WillReturnRows(rows)

		orders, err := repo.FindActiveOrders(ctx, now)
		require.NoError(t, err)
		assert.Empty(t, orders)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, product_id`).
			WithArgs(domain.OrderStatusActive, now).
			WillReturnError(errors.New("database error"))

		orders, err := repo.FindActiveOrders(ctx, now)
		assert.Error(t, err)
		assert.Nil(t, orders)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_ExpireOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	ctx := context.Background()
	cutoff := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Success - orders expired", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(domain.OrderStatusExpired, domain.OrderStatusActive, cutoff).
			WillReturnResult(pgxmock.NewResult("UPDATE", 3))

		count, err := repo.ExpireOrders(ctx, cutoff)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Idempotent - nothing to expire", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(domain.OrderStatusExpired, domain.OrderStatusActive, cutoff).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		count, err := repo.ExpireOrders(ctx, cutoff)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(domain.OrderStatusExpired, domain.OrderStatusActive, cutoff).
			WillReturnError(errors.New("database error"))

		count, err := repo.ExpireOrders(ctx, cutoff)
		assert.Error(t, err)
		assert.Equal(t, int64(0), count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_CountActiveOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"count"}).AddRow(int64(7))

		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(domain.OrderStatusActive, now).
			WillReturnRows(rows)

		count, err := repo.CountActiveOrders(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
