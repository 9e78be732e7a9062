package domain

import (
	"context"
	"time"
)

// OrderRepository определяет методы для работы с заказами
type OrderRepository interface {
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	FindActiveOrders(ctx context.Context, now time.Time) ([]*Order, error)
	ExpireOrders(ctx context.Context, cutoff time.Time) (int64, error)
	CountActiveOrders(ctx context.Context, now time.Time) (int64, error)
}

// ProductRepository определяет методы для работы с каталогом продуктов
type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

// RateRepository определяет методы для работы со ставкой платформы
type RateRepository interface {
	// GetActivePlatformRate возвращает активную ставку платформы.
	// Если активной ставки нет, возвращает 0 без ошибки — это пробел
	// конфигурации, а не сбой.
	GetActivePlatformRate(ctx context.Context) (float64, error)
}

// LedgerRepository определяет методы мутации балансов пользователя.
// Каждая операция выполняется как единая транзакция БД: изменение балансов
// и запись в журнал операций либо применяются вместе, либо не применяются.
type LedgerRepository interface {
	CreditReward(ctx context.Context, order *Order, amount Money, now time.Time) error
	Withdraw(ctx context.Context, userID int64, amount Money) error
	CreditDeposit(ctx context.Context, userID int64, amount Money) error
	CreditReferral(ctx context.Context, userID int64, amount Money, description string) error
	GetBalances(ctx context.Context, userID int64) (*Balances, error)
}

// TransactionRepository определяет методы для чтения журнала операций
type TransactionRepository interface {
	GetTransactionsByUserID(ctx context.Context, userID int64) ([]*Transaction, error)
	RewardTotalForDay(ctx context.Context, day time.Time) (float64, error)
}

// CommissionResolver определяет расчет дневного вознаграждения по заказу
type CommissionResolver interface {
	DailyReward(ctx context.Context, order *Order) (Money, error)
}

// AccrualScheduler определяет запуск цикла начислений
type AccrualScheduler interface {
	RunAccrualCycle(ctx context.Context, now time.Time) (*AccrualReport, error)
	Status(ctx context.Context, now time.Time) (*AccrualStatus, error)
}
