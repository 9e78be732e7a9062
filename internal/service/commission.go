package service

import (
	"context"
	"fmt"

	"github.com/avc/reward-engine/internal/domain"
)

// ProductRepository определяет методы для работы с каталогом продуктов.
type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// RateRepository определяет методы для работы со ставкой платформы.
type RateRepository interface {
	GetActivePlatformRate(ctx context.Context) (float64, error)
}

// ResolveDailyAmount вычисляет дневное вознаграждение по заказу.
// Ставка продукта имеет приоритет над ставкой платформы; нулевая ставка
// продукта означает "использовать ставку платформы". Каждый активный день
// приносит фиксированный процент от исходной суммы покупки — сумма не
// амортизируется по сроку действия заказа.
func ResolveDailyAmount(order *domain.Order, product *domain.Product, platformRate float64) domain.Money {
	rate := product.CommissionRate
	if rate <= 0 {
		rate = platformRate
	}

	return domain.Money{
		Amount:   order.PurchaseAmount.Amount * rate / 100,
		Currency: order.PurchaseAmount.Currency,
	}
}

// CommissionResolver определяет эффективное дневное вознаграждение по заказу
type CommissionResolver struct {
	productRepo ProductRepository
	rateRepo    RateRepository
}

// NewCommissionResolver создает новый CommissionResolver
func NewCommissionResolver(productRepo ProductRepository, rateRepo RateRepository) *CommissionResolver {
	return &CommissionResolver{
		productRepo: productRepo,
		rateRepo:    rateRepo,
	}
}

// DailyReward возвращает дневное вознаграждение по заказу в валюте покупки.
// Ставка платформы запрашивается при каждом вызове, а не читается из
// глобального состояния: изменение конфигурации действует со следующего расчета.
func (r *CommissionResolver) DailyReward(ctx context.Context, order *domain.Order) (domain.Money, error) {
	product, err := r.productRepo.GetProduct(ctx, order.ProductID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("commission resolver: failed to get product %d for order %d: %w", order.ProductID, order.ID, err)
	}

	platformRate, err := r.rateRepo.GetActivePlatformRate(ctx)
	if err != nil {
		return domain.Money{}, fmt.Errorf("commission resolver: failed to get platform rate: %w", err)
	}

	return ResolveDailyAmount(order, product, platformRate), nil
}
