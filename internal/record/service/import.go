package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/velozity/opsboard/internal/record/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fieldAliases maps each canonical field to its accepted header spellings,
// in priority order. Headers are compared after lowercasing and stripping
// spaces and underscores, so "PO Number", "po_number" and "ponumber" all
// resolve to the same alias.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{domain.FieldDateLocal, []string{"datelocal", "date", "scandate", "receiveddate"}},
	{domain.FieldPONumber, []string{"ponumber", "po#", "po", "purchaseorder"}},
	{domain.FieldSKUCode, []string{"skucode", "sku", "itemcode", "item"}},
	{domain.FieldUID, []string{"uid", "serial", "serialnumber", "unitid"}},
	{domain.FieldMobileBin, []string{"mobilebin", "bin", "binid"}},
	{domain.FieldSSCCLabel, []string{"sscclabel", "sscc", "label"}},
}

// Required identity fields for an imported row. mobile_bin may be blank on
// import and repaired later via field patch.
var importRequired = []string{
	domain.FieldDateLocal,
	domain.FieldPONumber,
	domain.FieldSKUCode,
	domain.FieldUID,
}

// Import normalizes loosely-keyed rows and commits the accepted ones as a
// single atomic batch with create/replace-by-natural-key semantics. Rejected
// rows are reported with their 0-based index and missing field names; they
// never abort the batch.
func (s *Service) Import(ctx context.Context, rows []domain.ImportRow) (domain.ImportResult, error) {
	result := domain.ImportResult{
		Total:  len(rows),
		Errors: []domain.ImportRowError{},
	}

	accepted := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		candidate, missing := normalizeRow(row)
		if len(missing) > 0 {
			result.Rejected++
			result.Errors = append(result.Errors, domain.ImportRowError{
				Index:         i,
				Reason:        "missing_fields",
				MissingFields: missing,
			})
			continue
		}
		accepted = append(accepted, candidate)
	}

	if len(accepted) == 0 {
		return result, nil
	}

	var pulses []time.Time
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, candidate := range accepted {
			_, pulseAt, err := s.upsertByNaturalKey(ctx, tx, candidate)
			if err != nil {
				return err
			}
			if pulseAt != nil {
				pulses = append(pulses, *pulseAt)
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, err
	}

	for _, ts := range pulses {
		s.hub.Publish(ts)
	}
	s.log.Info("import committed",
		zap.Int("inserted", result.Inserted),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}

func normalizeRow(row domain.ImportRow) (domain.Record, []string) {
	values := make(map[string]string, len(row))
	for key, raw := range row {
		normalized := normalizeHeader(key)
		if normalized == "" {
			continue
		}
		value := strings.TrimSpace(stringifyCell(raw))
		if value == "" {
			continue
		}
		// first non-blank occurrence wins
		if _, ok := values[normalized]; !ok {
			values[normalized] = value
		}
	}

	var candidate domain.Record
	for _, mapping := range fieldAliases {
		for _, alias := range mapping.aliases {
			if value, ok := values[alias]; ok {
				candidate.SetField(mapping.field, value)
				break
			}
		}
	}

	var missing []string
	for _, field := range importRequired {
		var present bool
		switch field {
		case domain.FieldDateLocal:
			present = candidate.DateLocal != ""
		case domain.FieldPONumber:
			present = candidate.PONumber != ""
		case domain.FieldSKUCode:
			present = candidate.SKUCode != ""
		case domain.FieldUID:
			present = candidate.UID != ""
		}
		if !present {
			missing = append(missing, field)
		}
	}

	return candidate, missing
}

func normalizeHeader(header string) string {
	lowered := strings.ToLower(strings.TrimSpace(header))
	lowered = strings.ReplaceAll(lowered, " ", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	lowered = strings.ReplaceAll(lowered, "-", "")
	return lowered
}

func stringifyCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
