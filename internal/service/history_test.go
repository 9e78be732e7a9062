package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_GetTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		transactionRepo := new(MockTransactionRepo)
		svc := NewHistoryService(transactionRepo)

		transactions := []*domain.Transaction{
			{Type: domain.TransactionTypeReward, Amount: 50.0, Currency: "USD"},
			{Type: domain.TransactionTypeDeposit, Amount: 200.0, Currency: "USD"},
		}
		transactionRepo.On("GetTransactionsByUserID", mock.Anything, int64(10)).
			Return(transactions, nil).Once()

		result, err := svc.GetTransactions(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, transactions, result)

		transactionRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		transactionRepo := new(MockTransactionRepo)
		svc := NewHistoryService(transactionRepo)

		transactionRepo.On("GetTransactionsByUserID", mock.Anything, int64(10)).
			Return(nil, errors.New("db error")).Once()

		result, err := svc.GetTransactions(ctx, 10)
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
