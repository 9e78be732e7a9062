package scheduler

import (
	"context"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActiveOrders(ctx context.Context, now time.Time) ([]*domain.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ExpireOrders(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountActiveOrders(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) CreditReward(ctx context.Context, order *domain.Order, amount domain.Money, now time.Time) error {
	args := m.Called(ctx, order, amount, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) Withdraw(ctx context.Context, userID int64, amount domain.Money) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockLedgerRepository) CreditDeposit(ctx context.Context, userID int64, amount domain.Money) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockLedgerRepository) CreditReferral(ctx context.Context, userID int64, amount domain.Money, description string) error {
	args := m.Called(ctx, userID, amount, description)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetBalances(ctx context.Context, userID int64) (*domain.Balances, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balances), args.Error(1)
}

// MockTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetTransactionsByUserID(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) RewardTotalForDay(ctx context.Context, day time.Time) (float64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(float64), args.Error(1)
}

// MockCommissionResolver
type MockCommissionResolver struct {
	mock.Mock
}

func (m *MockCommissionResolver) DailyReward(ctx context.Context, order *domain.Order) (domain.Money, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(domain.Money), args.Error(1)
}
