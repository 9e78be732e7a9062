package service

import (
	"context"
	"fmt"

	"github.com/avc/reward-engine/internal/domain"
)

// LedgerRepository определяет методы мутации балансов пользователя.
type LedgerRepository interface {
	Withdraw(ctx context.Context, userID int64, amount domain.Money) error
	CreditDeposit(ctx context.Context, userID int64, amount domain.Money) error
	CreditReferral(ctx context.Context, userID int64, amount domain.Money, description string) error
	GetBalances(ctx context.Context, userID int64) (*domain.Balances, error)
}

// LedgerService предоставляет операции со счетом пользователя.
type LedgerService struct {
	ledgerRepo LedgerRepository
}

// NewLedgerService создает новый LedgerService
func NewLedgerService(ledgerRepo LedgerRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
	}
}

// GetBalances получает поля баланса пользователя
func (s *LedgerService) GetBalances(ctx context.Context, userID int64) (*domain.Balances, error) {
	balances, err := s.ledgerRepo.GetBalances(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger service: failed to get balances for user %d: %w", userID, err)
	}

	return balances, nil
}

// Withdraw создает заявку на вывод средств.
// Разрешен вывод только в пределах reward_balance.
func (s *LedgerService) Withdraw(ctx context.Context, userID int64, amount domain.Money) error {
	if !amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	if err := s.ledgerRepo.Withdraw(ctx, userID, amount); err != nil {
		return fmt.Errorf("ledger service: failed to withdraw %.2f for user %d: %w", amount.Amount, userID, err)
	}

	return nil
}

// CreditDeposit зачисляет одобренный депозит на счет пользователя
func (s *LedgerService) CreditDeposit(ctx context.Context, userID int64, amount domain.Money) error {
	if !amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	if err := s.ledgerRepo.CreditDeposit(ctx, userID, amount); err != nil {
		return fmt.Errorf("ledger service: failed to credit deposit for user %d: %w", userID, err)
	}

	return nil
}

// CreditReferral зачисляет реферальное вознаграждение на счет пользователя
func (s *LedgerService) CreditReferral(ctx context.Context, userID int64, amount domain.Money, description string) error {
	if !amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	if err := s.ledgerRepo.CreditReferral(ctx, userID, amount, description); err != nil {
		return fmt.Errorf("ledger service: failed to credit referral for user %d: %w", userID, err)
	}

	return nil
}
