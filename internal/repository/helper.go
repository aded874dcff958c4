package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors validation.ParseTime — both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// ParseSQLiteTimestamp parses the "2006-01-02 15:04:05" layout sqlite uses for
// CURRENT_TIMESTAMP columns.
func ParseSQLiteTimestamp(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return t.UTC(), nil
}

// ParseDecimal parses a decimal column stored as TEXT.
// Monetary values are stored as decimal strings so no precision is lost in the round trip.
func ParseDecimal(str string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal column: %w", err)
	}
	return d, nil
}

// ParseNullDecimal parses a nullable decimal column stored as TEXT.
// Returns nil when the column is NULL.
func ParseNullDecimal(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := ParseDecimal(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// NullDecimalString converts an optional decimal into a nullable TEXT column value.
func NullDecimalString(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
