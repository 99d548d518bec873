package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/statement-ledger/internal/domain/transaction"
)

var errEmptyAmount = errors.New("empty amount")

// currencyReplacer strips decoration before amount parsing: symbols,
// thousands separators, and stray whitespace.
var currencyReplacer = strings.NewReplacer("$", "", ",", "", " ", "", " ", "")

// NormalizeRow maps one raw row into a transaction candidate: canonical
// date, trimmed text fields, and a resolved amount/type pair. The returned
// candidate always satisfies the sign convention: debit rows carry a
// non-positive amount, credit rows a non-negative one.
func NormalizeRow(row RawRow) (transaction.Candidate, error) {
	var c transaction.Candidate

	date, err := parseDate(row.Fields[ColDate])
	if err != nil {
		return c, err
	}

	description := strings.TrimSpace(row.Fields[ColDescription])
	merchant := strings.TrimSpace(row.Fields[ColMerchant])
	if merchant == "" {
		// Many exports carry the payee only in the memo text
		merchant = description
	}

	amount, typ, err := resolveAmount(row)
	if err != nil {
		return c, err
	}

	c.Date = date
	c.Merchant = merchant
	c.Description = description
	c.Amount = amount
	c.Type = typ
	return c, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, InvalidDateError{Value: raw}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, InvalidDateError{Value: raw}
}

// resolveAmount turns either a single signed amount column or a pair of
// debit/credit columns into an amount and a type. An explicit type column
// wins over the sign convention.
func resolveAmount(row RawRow) (decimal.Decimal, transaction.Type, error) {
	var amount decimal.Decimal
	var typ transaction.Type

	rawAmount, hasAmount := row.Fields[ColAmount]
	rawDebit := strings.TrimSpace(row.Fields[ColDebit])
	rawCredit := strings.TrimSpace(row.Fields[ColCredit])

	switch {
	case hasAmount && strings.TrimSpace(rawAmount) != "":
		v, err := parseAmount(rawAmount)
		if err != nil {
			return amount, typ, InvalidAmountError{Value: rawAmount}
		}
		amount = v
		if v.IsNegative() {
			typ = transaction.TypeDebit
		} else {
			typ = transaction.TypeCredit
		}

	case rawDebit != "" && rawCredit != "":
		return amount, typ, AmbiguousAmountError{Reason: "both debit and credit are populated"}

	case rawDebit != "":
		v, err := parseAmount(rawDebit)
		if err != nil {
			return amount, typ, InvalidAmountError{Value: rawDebit}
		}
		amount = v.Abs().Neg()
		typ = transaction.TypeDebit

	case rawCredit != "":
		v, err := parseAmount(rawCredit)
		if err != nil {
			return amount, typ, InvalidAmountError{Value: rawCredit}
		}
		amount = v.Abs()
		typ = transaction.TypeCredit

	default:
		return amount, typ, AmbiguousAmountError{Reason: "neither amount nor debit/credit is populated"}
	}

	// An explicit type column overrides the sign convention, and the sign is
	// made consistent with it so aggregation cannot be corrupted.
	if explicit, ok := parseType(row.Fields[ColType]); ok {
		typ = explicit
	}
	switch typ {
	case transaction.TypeDebit:
		if amount.IsPositive() {
			amount = amount.Neg()
		}
	case transaction.TypeCredit:
		if amount.IsNegative() {
			amount = amount.Abs()
		}
	}

	return amount, typ, nil
}

// parseAmount accepts plain signed decimals plus the usual statement
// decorations: currency symbols, thousands separators, and accounting-style
// parentheses for negatives, e.g. "(1,234.56)" -> -1234.56.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, errEmptyAmount
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = currencyReplacer.Replace(s)

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

func parseType(raw string) (transaction.Type, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debit", "withdrawal", "dr":
		return transaction.TypeDebit, true
	case "credit", "deposit", "cr":
		return transaction.TypeCredit, true
	default:
		return "", false
	}
}
