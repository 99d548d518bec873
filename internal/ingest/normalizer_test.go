package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/statement-ledger/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRow(fields map[Column]string) RawRow {
	return RawRow{Line: 2, Fields: fields}
}

func TestNormalizeRow_Dates(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/01/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15-01-2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			c, err := NormalizeRow(rawRow(map[Column]string{
				ColDate:        tc.raw,
				ColDescription: "Coffee",
				ColAmount:      "-4.50",
			}))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(c.Date))
		})
	}

	t.Run("unparseable date", func(t *testing.T) {
		_, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "January 15th",
			ColAmount: "-4.50",
		}))
		var invalidDate InvalidDateError
		require.ErrorAs(t, err, &invalidDate)
		assert.Equal(t, "January 15th", invalidDate.Value)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := NormalizeRow(rawRow(map[Column]string{
			ColAmount: "-4.50",
		}))
		var invalidDate InvalidDateError
		require.ErrorAs(t, err, &invalidDate)
	})
}

func TestNormalizeRow_Amounts(t *testing.T) {
	t.Run("negative amount is a debit", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "-4.50",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeDebit, c.Type)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("-4.50")))
	})

	t.Run("positive amount is a credit", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "2000.00",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeCredit, c.Type)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("currency symbol and thousands separators", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "$1,234.56",
		}))
		require.NoError(t, err)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("1234.56")))
	})

	t.Run("accounting parentheses negate", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "($1,234.56)",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeDebit, c.Type)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("-1234.56")))
	})

	t.Run("unparseable amount", func(t *testing.T) {
		_, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "four fifty",
		}))
		var invalidAmount InvalidAmountError
		require.ErrorAs(t, err, &invalidAmount)
		assert.Equal(t, "four fifty", invalidAmount.Value)
	})
}

func TestNormalizeRow_DebitCreditColumns(t *testing.T) {
	t.Run("debit column yields negative amount", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:  "2024-01-15",
			ColDebit: "1500.00",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeDebit, c.Type)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("-1500")))
	})

	t.Run("credit column yields positive amount", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColCredit: "2000.00",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeCredit, c.Type)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("both populated is ambiguous", func(t *testing.T) {
		_, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColDebit:  "100.00",
			ColCredit: "200.00",
		}))
		var ambiguous AmbiguousAmountError
		require.ErrorAs(t, err, &ambiguous)
	})

	t.Run("neither populated is ambiguous", func(t *testing.T) {
		_, err := NormalizeRow(rawRow(map[Column]string{
			ColDate: "2024-01-15",
		}))
		var ambiguous AmbiguousAmountError
		require.ErrorAs(t, err, &ambiguous)
	})
}

func TestNormalizeRow_ExplicitType(t *testing.T) {
	t.Run("type column overrides sign", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "4.50",
			ColType:   "debit",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeDebit, c.Type)
		// Sign is forced consistent with the declared type
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("-4.50")))
	})

	t.Run("withdrawal and deposit aliases", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "-2000.00",
			ColType:   "Deposit",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeCredit, c.Type)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("unknown type falls back to sign", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:   "2024-01-15",
			ColAmount: "-4.50",
			ColType:   "purchase",
		}))
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeDebit, c.Type)
	})
}

func TestNormalizeRow_MerchantFallback(t *testing.T) {
	t.Run("merchant kept when present", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:        "2024-01-15",
			ColMerchant:    "STARBUCKS #1234",
			ColDescription: "Card purchase",
			ColAmount:      "-4.50",
		}))
		require.NoError(t, err)
		assert.Equal(t, "STARBUCKS #1234", c.Merchant)
		assert.Equal(t, "Card purchase", c.Description)
	})

	t.Run("merchant falls back to description", func(t *testing.T) {
		c, err := NormalizeRow(rawRow(map[Column]string{
			ColDate:        "2024-01-15",
			ColDescription: "STARBUCKS #1234",
			ColAmount:      "-4.50",
		}))
		require.NoError(t, err)
		assert.Equal(t, "STARBUCKS #1234", c.Merchant)
	})
}
