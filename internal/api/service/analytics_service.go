package service

import (
	"context"
	"log/slog"

	"github.com/statement-ledger/internal/analytics"
	"github.com/statement-ledger/internal/domain/transaction"
)

// AnalyticsServiceImpl implements the AnalyticsService interface. It reads
// the store's current state and delegates the arithmetic to the analytics
// package; nothing is materialized.
type AnalyticsServiceImpl struct {
	txRepo transaction.Repository
	logger *slog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(logger *slog.Logger, txRepo transaction.Repository) AnalyticsService {
	return &AnalyticsServiceImpl{
		txRepo: txRepo,
		logger: logger,
	}
}

// SpendByCategory computes debit-only spend totals per category.
// The month filter is applied at the store so only relevant rows are read.
func (s *AnalyticsServiceImpl) SpendByCategory(ctx context.Context, month *transaction.Month) ([]analytics.CategorySpend, error) {
	txs, err := s.txRepo.List(ctx, transaction.ListFilter{Month: month})
	if err != nil {
		return nil, err
	}
	return analytics.SpendByCategory(txs, nil), nil
}

// MonthlyCategoryTotals computes the month-by-category matrix over the
// whole store.
func (s *AnalyticsServiceImpl) MonthlyCategoryTotals(ctx context.Context) ([]analytics.MonthRow, error) {
	txs, err := s.txRepo.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyCategoryTotals(txs), nil
}
