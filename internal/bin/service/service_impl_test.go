package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velozity/opsboard/internal/bin/domain"
	"github.com/velozity/opsboard/internal/bin/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBinService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Row{}))

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
}

func f(v float64) *float64 { return &v }

func TestPutWeekUpsertsRows(t *testing.T) {
	svc := setupBinService(t)
	ctx := context.Background()

	result, err := svc.PutWeek(ctx, "2026-08-24", []domain.RowInput{
		{MobileBin: "BIN-B", TotalUnits: f(40), WeightKg: f(12.5), DateLocal: "2026-08-24"},
		{MobileBin: "BIN-A", TotalUnits: f(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 0, result.Rejected)

	rows, err := svc.GetWeek(ctx, "2026-08-24")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BIN-A", rows[0].MobileBin, "rows come back ordered by mobile_bin")
	assert.Equal(t, "BIN-B", rows[1].MobileBin)
	assert.Nil(t, rows[0].WeightKg, "unweighed bins stay null")
}

func TestPutWeekReplacesExistingRow(t *testing.T) {
	svc := setupBinService(t)
	ctx := context.Background()

	_, err := svc.PutWeek(ctx, "2026-08-24", []domain.RowInput{
		{MobileBin: "BIN-1", TotalUnits: f(10), WeightKg: f(5)},
	})
	require.NoError(t, err)

	_, err = svc.PutWeek(ctx, "2026-08-24", []domain.RowInput{
		{MobileBin: "BIN-1", TotalUnits: f(25)},
	})
	require.NoError(t, err)

	rows, err := svc.GetWeek(ctx, "2026-08-24")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].TotalUnits)
	assert.Equal(t, float64(25), *rows[0].TotalUnits)
	assert.Nil(t, rows[0].WeightKg, "upsert replaces all value fields, not just the ones set")
}

func TestPutWeekValidation(t *testing.T) {
	svc := setupBinService(t)

	result, err := svc.PutWeek(context.Background(), "2026-08-24", []domain.RowInput{
		{MobileBin: "  ", TotalUnits: f(5)},
		{MobileBin: "BIN-1", TotalUnits: f(-1)},
		{MobileBin: "BIN-2", WeightKg: f(-0.5)},
		{MobileBin: "BIN-3", TotalUnits: f(0)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 3, result.Rejected)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, domain.RowError{Index: 0, Reason: "missing_mobile_bin"}, result.Errors[0])
	assert.Equal(t, domain.RowError{Index: 1, Reason: "negative_total_units"}, result.Errors[1])
	assert.Equal(t, domain.RowError{Index: 2, Reason: "negative_weight_kg"}, result.Errors[2])
}

func TestPutWeekDuplicateBinLastWins(t *testing.T) {
	svc := setupBinService(t)
	ctx := context.Background()

	result, err := svc.PutWeek(ctx, "2026-08-24", []domain.RowInput{
		{MobileBin: "BIN-1", TotalUnits: f(10)},
		{MobileBin: "BIN-1", TotalUnits: f(30)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upserted, "a repeated bin collapses to one row")
	assert.Equal(t, 0, result.Rejected, "duplicates are not rejections")

	rows, err := svc.GetWeek(ctx, "2026-08-24")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].TotalUnits)
	assert.Equal(t, float64(30), *rows[0].TotalUnits)
}

func TestWeeksAreIsolated(t *testing.T) {
	svc := setupBinService(t)
	ctx := context.Background()

	_, err := svc.PutWeek(ctx, "2026-08-17", []domain.RowInput{{MobileBin: "BIN-1", TotalUnits: f(7)}})
	require.NoError(t, err)
	_, err = svc.PutWeek(ctx, "2026-08-24", []domain.RowInput{{MobileBin: "BIN-1", TotalUnits: f(9)}})
	require.NoError(t, err)

	previous, err := svc.GetWeek(ctx, "2026-08-17")
	require.NoError(t, err)
	require.Len(t, previous, 1)
	require.NotNil(t, previous[0].TotalUnits)
	assert.Equal(t, float64(7), *previous[0].TotalUnits)
}

func TestGetWeekUnknownIsEmpty(t *testing.T) {
	svc := setupBinService(t)

	rows, err := svc.GetWeek(context.Background(), "2026-01-05")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
