package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ProductRepository реализует domain.ProductRepository
type ProductRepository struct {
	db DBTX
}

// NewProductRepository создает новый ProductRepository
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProduct получает продукт по идентификатору
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product := &domain.Product{}

	err := r.db.QueryRow(ctx,
		`SELECT id, name, price, currency, commission_rate, deadline_days
		 FROM products
		 WHERE id = $1`,
		id,
	).Scan(&product.ID, &product.Name, &product.Price.Amount, &product.Price.Currency,
		&product.CommissionRate, &product.DeadlineDays)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("repository: failed to get product %d: %w", id, err)
	}

	return product, nil
}
