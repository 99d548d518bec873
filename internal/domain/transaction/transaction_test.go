package transaction

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := ParseMonth("2024-03")
		require.NoError(t, err)
		assert.Equal(t, 2024, m.Year)
		assert.Equal(t, time.March, m.Month)
		assert.Equal(t, "2024-03", m.String())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, bad := range []string{"", "2024", "2024-13", "03-2024", "2024-3", "March 2024"} {
			_, err := ParseMonth(bad)
			assert.Error(t, err, "input %q", bad)
		}
	})
}

func TestMonth_Bounds(t *testing.T) {
	t.Run("mid-year month", func(t *testing.T) {
		m := Month{Year: 2024, Month: time.March}
		start, end := m.Bounds()
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		m := Month{Year: 2024, Month: time.December}
		_, end := m.Bounds()
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("Dining"))
	assert.ErrorIs(t, ValidateCategory(""), ErrEmptyCategory)
	assert.ErrorIs(t, ValidateCategory("   "), ErrEmptyCategory)
	assert.ErrorIs(t, ValidateCategory("\t\n"), ErrEmptyCategory)
}

func TestNewFromCandidate(t *testing.T) {
	batchID := uuid.New()
	c := Candidate{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Merchant:    "STARBUCKS",
		Description: "Coffee",
		Amount:      decimal.RequireFromString("-4.50"),
		Type:        TypeDebit,
	}

	tx := NewFromCandidate(c, "Dining", batchID)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, c.Date, tx.Date)
	assert.Equal(t, "STARBUCKS", tx.Merchant)
	assert.Equal(t, "Dining", tx.Category)
	assert.False(t, tx.CategoryIsUserSet)
	assert.Equal(t, batchID, tx.BatchID)
	assert.False(t, tx.CreatedAt.IsZero())

	t.Run("empty category falls back", func(t *testing.T) {
		tx := NewFromCandidate(c, "", batchID)
		assert.Equal(t, FallbackCategory, tx.Category)
	})

	t.Run("each call mints a distinct identity", func(t *testing.T) {
		assert.NotEqual(t, NewFromCandidate(c, "Dining", batchID).ID, NewFromCandidate(c, "Dining", batchID).ID)
	})
}
