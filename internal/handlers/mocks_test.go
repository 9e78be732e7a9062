package handlers

import (
	"context"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockAccrualScheduler
type MockAccrualScheduler struct {
	mock.Mock
}

func (m *MockAccrualScheduler) RunAccrualCycle(ctx context.Context, now time.Time) (*domain.AccrualReport, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualReport), args.Error(1)
}

func (m *MockAccrualScheduler) Status(ctx context.Context, now time.Time) (*domain.AccrualStatus, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualStatus), args.Error(1)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalances(ctx context.Context, userID int64) (*domain.Balances, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balances), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, userID int64, amount domain.Money) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// MockHistoryService
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) GetTransactions(ctx context.Context, userID int64) ([]*domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}
