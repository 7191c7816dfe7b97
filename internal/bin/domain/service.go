package domain

import "context"

// RowInput is a candidate bin row as submitted by a client.
type RowInput struct {
	MobileBin  string   `json:"mobile_bin"`
	TotalUnits *float64 `json:"total_units"`
	WeightKg   *float64 `json:"weight_kg"`
	DateLocal  string   `json:"date_local"`
}

type RowError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type PutResult struct {
	Upserted int        `json:"upserted"`
	Rejected int        `json:"rejected"`
	Errors   []RowError `json:"errors"`
}

type Service interface {
	// GetWeek returns all bin rows for the week ordered by mobile_bin.
	GetWeek(ctx context.Context, weekStart string) ([]Row, error)
	// PutWeek validates rows individually and upserts the valid ones as one
	// atomic batch keyed on (week_start, mobile_bin), fully replacing prior
	// field values per key. A mobile_bin repeated within one call keeps only
	// the last occurrence.
	PutWeek(ctx context.Context, weekStart string, rows []RowInput) (PutResult, error)
}
