package ingest

import (
	"fmt"

	"github.com/statement-ledger/internal/domain/report"
)

// MalformedInputError indicates the file itself cannot be ingested, e.g.
// no column could plausibly be mapped to a date or an amount.
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
}

// InvalidDateError indicates a row's date field could not be parsed
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Value)
}

// InvalidAmountError indicates a row's amount is not a finite decimal
type InvalidAmountError struct {
	Value string
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %q", e.Value)
}

// AmbiguousAmountError indicates a row with separate debit/credit columns
// populated both or neither.
type AmbiguousAmountError struct {
	Reason string
}

func (e AmbiguousAmountError) Error() string {
	return "ambiguous amount: " + e.Reason
}

// PayloadTooLargeError indicates the upload exceeds the configured byte or
// row limit.
type PayloadTooLargeError struct {
	Limit  int64
	Actual int64
	Unit   string // "bytes" or "rows"
}

func (e PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d %s exceeds limit of %d", e.Actual, e.Unit, e.Limit)
}

// StrictModeError indicates the upload was rejected whole because strict
// mode is configured and at least one row failed normalization.
type StrictModeError struct {
	RowErrors []report.RowError
}

func (e StrictModeError) Error() string {
	return fmt.Sprintf("strict mode: %d row(s) failed normalization, upload rejected", len(e.RowErrors))
}
