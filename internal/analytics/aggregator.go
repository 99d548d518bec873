// Package analytics computes read-side aggregates over the transaction
// store's current contents. All functions are pure: they derive views on
// demand and never mutate or materialize anything.
package analytics

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/statement-ledger/internal/domain/transaction"
)

// currencyScale is the rounding applied to every reported total. Sums use
// banker's (half-even) rounding, applied once after summation.
const currencyScale = 2

// IncomeCategory buckets every credit in the monthly view, matching how the
// client renders income as its own series.
const IncomeCategory = "Income"

// CategorySpend is one spend-by-category aggregate row.
type CategorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthRow carries per-category totals for one calendar month. Categories
// with no activity in the month are omitted rather than reported as zero;
// consumers treat a missing key as zero.
type MonthRow struct {
	Month  string
	Totals map[string]decimal.Decimal
}

// MarshalJSON flattens a month row into the wire shape the chart client
// expects: {"month": "2024-03", "Dining": 4.5, "Income": 2000}.
func (r MonthRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Totals)+1)
	flat["month"] = r.Month
	for category, total := range r.Totals {
		amount, _ := total.Float64()
		flat[category] = amount
	}
	return json.Marshal(flat)
}

// SpendByCategory sums spend magnitude per category for debit transactions,
// optionally restricted to one month. Credits (income) are excluded from
// spend totals. Rows are sorted largest spend first; an empty input yields
// an empty slice.
func SpendByCategory(txs []*transaction.Transaction, month *transaction.Month) []CategorySpend {
	sums := map[string]decimal.Decimal{}

	for _, t := range txs {
		if t.Type != transaction.TypeDebit {
			continue
		}
		if month != nil && !inMonth(t, *month) {
			continue
		}
		category := t.Category
		if category == "" {
			category = transaction.FallbackCategory
		}
		sums[category] = sums[category].Add(t.Amount.Abs())
	}

	result := make([]CategorySpend, 0, len(sums))
	for category, total := range sums {
		result = append(result, CategorySpend{
			Category: category,
			Amount:   total.RoundBank(currencyScale),
		})
	}

	sort.Slice(result, func(a, b int) bool {
		if !result[a].Amount.Equal(result[b].Amount) {
			return result[a].Amount.GreaterThan(result[b].Amount)
		}
		return result[a].Category < result[b].Category
	})

	return result
}

// MonthlyCategoryTotals buckets all transactions by calendar month and sums
// per category within each bucket: debits as positive spend under their own
// category, credits as positive totals under the income category. Months
// are ordered chronologically ascending; an empty input yields an empty
// slice.
func MonthlyCategoryTotals(txs []*transaction.Transaction) []MonthRow {
	buckets := map[string]map[string]decimal.Decimal{}

	for _, t := range txs {
		monthKey := t.Date.Format("2006-01")
		bucket, ok := buckets[monthKey]
		if !ok {
			bucket = map[string]decimal.Decimal{}
			buckets[monthKey] = bucket
		}

		switch t.Type {
		case transaction.TypeDebit:
			category := t.Category
			if category == "" {
				category = transaction.FallbackCategory
			}
			bucket[category] = bucket[category].Add(t.Amount.Abs())
		case transaction.TypeCredit:
			bucket[IncomeCategory] = bucket[IncomeCategory].Add(t.Amount.Abs())
		}
	}

	months := make([]string, 0, len(buckets))
	for monthKey := range buckets {
		months = append(months, monthKey)
	}
	sort.Strings(months)

	result := make([]MonthRow, 0, len(months))
	for _, monthKey := range months {
		totals := make(map[string]decimal.Decimal, len(buckets[monthKey]))
		for category, total := range buckets[monthKey] {
			totals[category] = total.RoundBank(currencyScale)
		}
		result = append(result, MonthRow{Month: monthKey, Totals: totals})
	}

	return result
}

func inMonth(t *transaction.Transaction, m transaction.Month) bool {
	return t.Date.Year() == m.Year && t.Date.Month() == m.Month
}
