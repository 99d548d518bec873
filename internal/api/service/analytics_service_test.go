package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsTx(date string, category, amount string, typ transaction.Type) *transaction.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return &transaction.Transaction{
		Date:     d,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Type:     typ,
	}
}

func TestAnalyticsService_SpendByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("month filter pushed to the store", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		svc := NewAnalyticsService(newTestLogger(), txRepo)

		month := transaction.Month{Year: 2024, Month: time.March}
		stored := []*transaction.Transaction{
			analyticsTx("2024-03-01", "Dining", "-4.50", transaction.TypeDebit),
			analyticsTx("2024-03-15", "Income", "2000.00", transaction.TypeCredit),
		}
		txRepo.On("List", ctx, transaction.ListFilter{Month: &month}).Return(stored, nil)

		spend, err := svc.SpendByCategory(ctx, &month)
		require.NoError(t, err)
		require.Len(t, spend, 1)
		assert.Equal(t, "Dining", spend[0].Category)
		assert.True(t, spend[0].Amount.Equal(decimal.RequireFromString("4.50")))
		txRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		svc := NewAnalyticsService(newTestLogger(), txRepo)

		expectedErr := errors.New("db error")
		txRepo.On("List", ctx, transaction.ListFilter{}).Return(nil, expectedErr)

		_, err := svc.SpendByCategory(ctx, nil)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestAnalyticsService_MonthlyCategoryTotals(t *testing.T) {
	ctx := context.Background()
	txRepo := new(MockTransactionRepository)
	svc := NewAnalyticsService(newTestLogger(), txRepo)

	stored := []*transaction.Transaction{
		analyticsTx("2024-03-01", "Dining", "-4.50", transaction.TypeDebit),
		analyticsTx("2024-04-02", "Salary", "1500.00", transaction.TypeCredit),
	}
	txRepo.On("List", ctx, transaction.ListFilter{}).Return(stored, nil)

	rows, err := svc.MonthlyCategoryTotals(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03", rows[0].Month)
	assert.Equal(t, "2024-04", rows[1].Month)
	assert.True(t, rows[1].Totals["Income"].Equal(decimal.RequireFromString("1500")))
	txRepo.AssertExpectations(t)
}
