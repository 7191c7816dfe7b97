package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type PatchRequest struct {
	ID    string
	Field string
	Value string
}

type CreateRequest struct {
	ID        string
	DateLocal string
	MobileBin string
	SSCCLabel string
	PONumber  string
	SKUCode   string
	UID       string
}

// ImportRow is a loosely-keyed row from an external sheet. Header names vary
// by source and are resolved through the alias table during normalization.
type ImportRow map[string]any

type ImportRowError struct {
	Index         int      `json:"index"`
	Reason        string   `json:"reason"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

type ImportResult struct {
	Inserted int              `json:"inserted"`
	Total    int              `json:"total"`
	Rejected int              `json:"rejected"`
	Errors   []ImportRowError `json:"errors"`
}

type QueryRequest struct {
	From   string
	To     string
	Status string
	Limit  int
}

type DeleteRequest struct {
	UID     string `json:"uid"`
	SKUCode string `json:"sku_code"`
}

type BatchDeleteItemResult struct {
	UID     string `json:"uid"`
	SKUCode string `json:"sku_code,omitempty"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

type BatchDeleteResult struct {
	TotalDeleted int64                   `json:"total_deleted"`
	Results      []BatchDeleteItemResult `json:"results"`
}

type Service interface {
	ApplyPatch(context.Context, PatchRequest) (Record, error)
	CreateByNaturalKey(context.Context, CreateRequest) (Record, error)
	Import(context.Context, []ImportRow) (ImportResult, error)
	Query(context.Context, QueryRequest) ([]Record, error)
	DeleteByNaturalKey(context.Context, DeleteRequest) (int64, error)
	BatchDelete(context.Context, []DeleteRequest) (BatchDeleteResult, error)
}

var (
	ErrMissingID    = errors.New("missing_id")
	ErrMissingField = errors.New("missing_field")
	ErrUnknownField = errors.New("unknown_field")
	ErrMissingUID   = errors.New("missing_uid")
	ErrNotFound     = errors.New("not_found")
)

// MissingFieldsError reports which required identity fields were blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing_fields: %s", strings.Join(e.Fields, ", "))
}
