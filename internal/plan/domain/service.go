package domain

import "context"

// LineInput is a candidate plan line as submitted by a client.
type LineInput struct {
	PONumber  string  `json:"po_number"`
	SKUCode   string  `json:"sku_code"`
	StartDate string  `json:"start_date"`
	DueDate   string  `json:"due_date"`
	TargetQty float64 `json:"target_qty"`
	Priority  string  `json:"priority"`
	Notes     string  `json:"notes"`
}

const DefaultRecentWeeks = 52

type Service interface {
	// GetWeek returns the stored lines for the week, or an empty list when
	// the week has never been written. Absence is not an error.
	GetWeek(ctx context.Context, weekStart string) ([]Line, error)
	// PutWeek replaces the week's entire line list atomically. Invalid lines
	// are filtered out, not reported.
	PutWeek(ctx context.Context, weekStart string, lines []LineInput) ([]Line, error)
	// ZeroWeek empties the week, equivalent to PutWeek with no lines.
	ZeroWeek(ctx context.Context, weekStart string) error
	// ListRecentWeeks returns week keys with their last-modified timestamps,
	// most recent first.
	ListRecentWeeks(ctx context.Context, limit int) ([]Week, error)
}
