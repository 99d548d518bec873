// Package ingest turns uploaded bank-statement CSVs into persisted
// transactions: parse raw bytes into rows, normalize rows into candidates,
// categorize, and insert the whole file as one atomic batch.
package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"time"
)

// Column names the canonical fields a source column can map to.
type Column string

const (
	ColDate        Column = "date"
	ColDescription Column = "description"
	ColMerchant    Column = "merchant"
	ColAmount      Column = "amount"
	ColDebit       Column = "debit"
	ColCredit      Column = "credit"
	ColType        Column = "type"
)

// headerAliases maps lower-cased source header names to canonical columns.
// Alias sets cover the common bank export variants.
var headerAliases = map[string]Column{
	"date":             ColDate,
	"transaction date": ColDate,
	"posted date":      ColDate,
	"description":      ColDescription,
	"details":          ColDescription,
	"memo":             ColDescription,
	"merchant":         ColMerchant,
	"name":             ColMerchant,
	"payee":            ColMerchant,
	"amount":           ColAmount,
	"amt":              ColAmount,
	"debit":            ColDebit,
	"withdrawal":       ColDebit,
	"credit":           ColCredit,
	"deposit":          ColCredit,
	"type":             ColType,
	"transaction type": ColType,
}

// dateLayouts are the date formats normalization will accept, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// RawRow is one parsed source row: canonical column to raw (trimmed) value.
type RawRow struct {
	Line   int // 1-based line number in the source file
	Fields map[Column]string
}

// ParseResult carries the ordered rows of one parsed file.
type ParseResult struct {
	Rows []RawRow
	// Empty is set when the file parsed cleanly but produced no rows;
	// callers report this as a warning, not an error.
	Empty bool
}

// Limits bound the size of an accepted upload.
type Limits struct {
	MaxBytes int64
	MaxRows  int
}

// ParseStatement parses raw uploaded bytes into an ordered sequence of raw
// rows. It tolerates variable header casing and order, separate debit/credit
// columns, and a missing header row. It fails with MalformedInputError when
// no column can plausibly be mapped to a date or an amount, and with
// PayloadTooLargeError when the upload exceeds the configured limits.
func ParseStatement(content []byte, limits Limits) (*ParseResult, error) {
	if limits.MaxBytes > 0 && int64(len(content)) > limits.MaxBytes {
		return nil, PayloadTooLargeError{Limit: limits.MaxBytes, Actual: int64(len(content)), Unit: "bytes"}
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // banks disagree on trailing columns
	reader.LazyQuotes = true

	first, err := reader.Read()
	if err == io.EOF {
		return &ParseResult{Rows: []RawRow{}, Empty: true}, nil
	}
	if err != nil {
		return nil, MalformedInputError{Line: 1, Reason: "not parseable as CSV: " + err.Error()}
	}

	columns, headerPresent, err := mapColumns(first)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Rows: []RawRow{}}
	line := 1

	appendRow := func(record []string, line int) {
		fields := make(map[Column]string, len(columns))
		for idx, col := range columns {
			if idx < len(record) {
				fields[col] = strings.TrimSpace(record[idx])
			}
		}
		result.Rows = append(result.Rows, RawRow{Line: line, Fields: fields})
	}

	if !headerPresent {
		appendRow(first, line)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, MalformedInputError{Line: line, Reason: "not parseable as CSV: " + err.Error()}
		}
		if isBlank(record) {
			continue
		}
		if limits.MaxRows > 0 && len(result.Rows) >= limits.MaxRows {
			return nil, PayloadTooLargeError{Limit: int64(limits.MaxRows), Actual: int64(len(result.Rows) + 1), Unit: "rows"}
		}
		appendRow(record, line)
	}

	result.Empty = len(result.Rows) == 0
	return result, nil
}

// mapColumns resolves the first record into a per-index column mapping.
// When the record contains recognizable header names it becomes the header;
// otherwise a positional fallback is attempted for headerless exports
// (date, description, amount, optional type).
func mapColumns(first []string) ([]Column, bool, error) {
	mapped := make([]Column, len(first))
	seen := map[Column]bool{}
	matches := 0
	for i, cell := range first {
		name := strings.ToLower(strings.TrimSpace(cell))
		if col, ok := headerAliases[name]; ok && !seen[col] {
			mapped[i] = col
			seen[col] = true
			matches++
		}
	}

	if matches > 0 {
		if !seen[ColDate] {
			return nil, false, MalformedInputError{Line: 1, Reason: "no column maps to a date"}
		}
		if !seen[ColAmount] && !seen[ColDebit] && !seen[ColCredit] {
			return nil, false, MalformedInputError{Line: 1, Reason: "no column maps to an amount"}
		}
		return mapped, true, nil
	}

	// Headerless fallback: accept the file when the first row already looks
	// like data (a date cell followed by something amount-shaped).
	if len(first) >= 3 && looksLikeDate(first[0]) && looksLikeAmount(first[2]) {
		positional := []Column{ColDate, ColDescription, ColAmount}
		if len(first) >= 4 {
			positional = append(positional, ColType)
		}
		cols := make([]Column, len(first))
		copy(cols, positional)
		return cols, false, nil
	}

	return nil, false, MalformedInputError{Line: 1, Reason: "no column can be mapped to date or amount"}
}

func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func looksLikeAmount(s string) bool {
	_, err := parseAmount(s)
	return err == nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
