package domain

import "time"

// OrderStatus представляет статус заказа
type OrderStatus string

const (
	OrderStatusActive  OrderStatus = "active"
	OrderStatusExpired OrderStatus = "expired"
)

// TransactionType представляет тип транзакции
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeReward   TransactionType = "reward"
	TransactionTypeReferral TransactionType = "referral"
)

// TransactionStatus представляет статус транзакции
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Money представляет денежную сумму с явным кодом валюты.
// Все суммы передаются вместе с валютой, чтобы исключить смешивание
// валют между заказом, продуктом и счетом пользователя.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// IsPositive возвращает true, если сумма больше нуля
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// SameCurrency возвращает true, если валюты сумм совпадают
func (m Money) SameCurrency(other Money) bool {
	return m.Currency == other.Currency
}

// Order представляет покупку продукта пользователем
type Order struct {
	ID               int64       `json:"id"`
	UserID           int64       `json:"-"`
	ProductID        int64       `json:"product_id"`
	PurchaseAmount   Money       `json:"purchase_amount"`
	PurchaseDate     time.Time   `json:"purchase_date"`
	ExpiryDate       time.Time   `json:"expiry_date"`
	Status           OrderStatus `json:"status"`
	LastRewardDate   *time.Time  `json:"last_reward_date,omitempty"` // Может быть null до первого начисления
	RewardsGenerated float64     `json:"rewards_generated"`
}

// Product представляет продукт из каталога
type Product struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          Money   `json:"price"`
	CommissionRate float64 `json:"commission_rate"` // 0 означает использование ставки платформы
	DeadlineDays   int     `json:"deadline_days"`
}

// PlatformRate представляет общеплатформенную ставку комиссии
type PlatformRate struct {
	Rate     float64 `json:"rate"`
	IsActive bool    `json:"is_active"`
}

// Balances представляет три поля баланса пользователя.
// Balance — общая сумма средств, DepositBalance — средства от депозитов,
// RewardBalance — средства от начислений, единственные доступные к выводу.
type Balances struct {
	Balance        float64 `json:"balance"`
	DepositBalance float64 `json:"deposit_balance"`
	RewardBalance  float64 `json:"reward_balance"`
	Currency       string  `json:"currency"`
}

// Transaction представляет запись в журнале операций по счету
type Transaction struct {
	ID          int64             `json:"-"`
	UserID      int64             `json:"-"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Status      TransactionStatus `json:"status"`
	OrderID     *int64            `json:"order_id,omitempty"`
	ProductID   *int64            `json:"product_id,omitempty"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
}

// AccrualReport представляет итог одного цикла начислений
type AccrualReport struct {
	OrdersProcessed int
	TotalCredited   float64
	OrdersExpired   int
	OrdersSkipped   int
	OrdersFailed    int
	Timestamp       time.Time
}

// AccrualStatus представляет текущее состояние движка без мутаций
type AccrualStatus struct {
	ActiveOrders     int64
	TodayRewardTotal float64
	Timestamp        time.Time
}

// SameCalendarDay возвращает true, если две метки времени приходятся
// на один календарный день в UTC. Проверка по дате, а не по интервалу:
// повторный запуск цикла в тот же день не приводит к повторному начислению.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay возвращает начало календарного дня в UTC для метки времени
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
