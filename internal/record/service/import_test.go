package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velozity/opsboard/internal/record/domain"
)

func TestImportResolvesHeaderAliases(t *testing.T) {
	svc, db, hub := setupRecordService(t)
	ctx := context.Background()
	sub, err := hub.Subscribe()
	require.NoError(t, err)
	defer sub.Close()

	result, err := svc.Import(ctx, []domain.ImportRow{
		{
			"Date":      "2026-08-25",
			"PO Number": "PO-100",
			"SKU":       "SKU-100",
			"Serial":    "U-100",
			"Bin":       "BIN-4",
			"SSCC":      "SSCC-100",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 0, result.Rejected)

	records, err := svc.Query(ctx, domain.QueryRequest{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "2026-08-25", rec.DateLocal)
	assert.Equal(t, "PO-100", rec.PONumber)
	assert.Equal(t, "SKU-100", rec.SKUCode)
	assert.Equal(t, "U-100", rec.UID)
	assert.Equal(t, "BIN-4", rec.MobileBin)
	assert.Equal(t, "SSCC-100", rec.SSCCLabel)
	assert.Equal(t, domain.StatusComplete, rec.Status)
	drainPulse(t, sub)
	assert.EqualValues(t, 1, countRecords(t, db))
}

func TestImportStringifiesNumericCells(t *testing.T) {
	svc, _, _ := setupRecordService(t)
	ctx := context.Background()

	result, err := svc.Import(ctx, []domain.ImportRow{
		{
			"date":   "2026-08-25",
			"po":     float64(4500123), // JSON numbers decode as float64
			"sku":    12345,
			"serial": int64(990011),
			"bin":    "B-1",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Inserted)

	records, err := svc.Query(ctx, domain.QueryRequest{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "4500123", records[0].PONumber)
	assert.Equal(t, "12345", records[0].SKUCode)
	assert.Equal(t, "990011", records[0].UID)
}

func TestImportRejectsRowsWithMissingFields(t *testing.T) {
	svc, _, _ := setupRecordService(t)
	ctx := context.Background()

	result, err := svc.Import(ctx, []domain.ImportRow{
		{"date": "2026-08-25", "po": "PO-1", "sku": "S-1", "uid": "U-1"},
		{"date": "2026-08-25", "po": "PO-2", "sku": "S-2"}, // no uid
		{"sku": "S-3", "uid": "U-3"},                       // no date, no po
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 2, result.Rejected)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "missing_fields", result.Errors[0].Reason)
	assert.Equal(t, []string{domain.FieldUID}, result.Errors[0].MissingFields)

	assert.Equal(t, 2, result.Errors[1].Index)
	assert.ElementsMatch(t, []string{domain.FieldDateLocal, domain.FieldPONumber}, result.Errors[1].MissingFields)
}

func TestImportWithoutBinStaysDraft(t *testing.T) {
	svc, _, hub := setupRecordService(t)
	ctx := context.Background()
	sub, err := hub.Subscribe()
	require.NoError(t, err)
	defer sub.Close()

	result, err := svc.Import(ctx, []domain.ImportRow{
		{"date": "2026-08-25", "po": "PO-7", "sku": "S-7", "uid": "U-7"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Inserted)
	assertNoPulse(t, sub)

	records, err := svc.Query(ctx, domain.QueryRequest{Status: domain.StatusDraft})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.SyncPending, records[0].SyncState)

	// A later bin scan completes the imported row.
	rec, err := svc.ApplyPatch(ctx, domain.PatchRequest{
		ID:    records[0].ID,
		Field: domain.FieldMobileBin,
		Value: "BIN-9",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, rec.Status)
	drainPulse(t, sub)
}

func TestImportMergesByNaturalKey(t *testing.T) {
	svc, db, _ := setupRecordService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, []domain.ImportRow{
		{"date": "2026-08-24", "po": "PO-8", "sku": "S-8", "uid": "U-8"},
	})
	require.NoError(t, err)

	result, err := svc.Import(ctx, []domain.ImportRow{
		{"date": "2026-08-25", "po": "PO-8", "sku": "S-8", "uid": "U-8", "bin": "BIN-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	records, err := svc.Query(ctx, domain.QueryRequest{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-08-25", records[0].DateLocal)
	assert.Equal(t, "BIN-2", records[0].MobileBin)
	assert.Equal(t, domain.StatusComplete, records[0].Status)
	assert.EqualValues(t, 1, countRecords(t, db))
}

func TestImportAllRejectedIsNoop(t *testing.T) {
	svc, db, _ := setupRecordService(t)

	result, err := svc.Import(context.Background(), []domain.ImportRow{
		{"note": "nothing useful"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Rejected)
	assert.EqualValues(t, 0, countRecords(t, db))
}
