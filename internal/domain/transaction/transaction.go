package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FallbackCategory is the reserved label assigned when no categorization rule
// matches and the user has not set a category by hand.
const FallbackCategory = "Other"

// Type discriminates spend from income so that sign quirks in source files
// cannot corrupt aggregation.
type Type string

const (
	TypeDebit  Type = "debit"  // money spent
	TypeCredit Type = "credit" // money received
)

// Common errors
var (
	ErrEmptyCategory = errors.New("category cannot be empty or whitespace")
	ErrInvalidType   = errors.New("transaction type must be debit or credit")
)

// Transaction represents one normalized financial event derived from an
// uploaded statement row.
type Transaction struct {
	ID                uuid.UUID       `json:"id"`
	Date              time.Time       `json:"date"`
	Merchant          string          `json:"merchant"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Type              Type            `json:"type"`
	Category          string          `json:"category"`
	CategoryIsUserSet bool            `json:"category_is_user_set"`
	BatchID           uuid.UUID       `json:"source_batch_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Candidate is a transaction produced by normalization, before the store has
// assigned an identity and before a category has been decided.
type Candidate struct {
	Date        time.Time
	Merchant    string
	Description string
	Amount      decimal.Decimal
	Type        Type
}

// Month restricts a listing to one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM month filter value.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, errors.New("month must be in YYYY-MM format")
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the month back to its YYYY-MM wire form.
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Bounds returns the half-open interval [start, end) covering the month.
func (m Month) Bounds() (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// ListFilter narrows the result of a listing. The zero value selects everything.
type ListFilter struct {
	Month *Month
}

// ValidateCategory rejects empty or whitespace-only category labels.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// NewFromCandidate materializes a persistable transaction from a normalized
// candidate and its assigned category, minting a fresh identity.
func NewFromCandidate(c Candidate, category string, batchID uuid.UUID) *Transaction {
	if category == "" {
		category = FallbackCategory
	}
	return &Transaction{
		ID:          uuid.New(),
		Date:        c.Date,
		Merchant:    c.Merchant,
		Description: c.Description,
		Amount:      c.Amount,
		Type:        c.Type,
		Category:    category,
		BatchID:     batchID,
		CreatedAt:   time.Now().UTC(),
	}
}
