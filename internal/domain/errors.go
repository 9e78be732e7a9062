package domain

import "errors"

// Ошибки заказов и продуктов
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderExpired    = errors.New("order already expired")
)

// Ошибки начислений
var (
	ErrAlreadyCredited = errors.New("reward already credited for this day")
	ErrNoEffectiveRate = errors.New("no effective commission rate")
)

// Ошибки счета и журнала операций
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInsufficientRewardFunds = errors.New("insufficient reward balance")
	ErrCurrencyMismatch        = errors.New("currency mismatch")
	ErrNonPositiveAmount       = errors.New("amount must be positive")
)
