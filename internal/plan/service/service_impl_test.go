package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velozity/opsboard/internal/plan/domain"
	"github.com/velozity/opsboard/internal/plan/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPlanService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Line{}, &domain.Week{}))

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
}

func TestPutWeekStoresNormalizedLines(t *testing.T) {
	svc := setupPlanService(t)
	ctx := context.Background()

	stored, err := svc.PutWeek(ctx, "2026-08-24", []domain.LineInput{
		{PONumber: " PO-1 ", SKUCode: "SKU-1", DueDate: "2026-08-28", TargetQty: 120},
		{PONumber: "PO-2", SKUCode: "SKU-2", DueDate: "2026-08-27", StartDate: "2026-08-25", TargetQty: -5},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "PO-1", stored[0].PONumber)
	assert.Equal(t, "2026-08-24", stored[0].StartDate, "start_date defaults to the week start")
	assert.Equal(t, float64(0), stored[1].TargetQty, "negative quantities clamp to zero")
	assert.Equal(t, "2026-08-25", stored[1].StartDate)

	lines, err := svc.GetWeek(ctx, "2026-08-24")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "PO-1", lines[0].PONumber)
	assert.Equal(t, "PO-2", lines[1].PONumber, "read order follows write order")
}

func TestPutWeekDropsInvalidLines(t *testing.T) {
	svc := setupPlanService(t)

	stored, err := svc.PutWeek(context.Background(), "2026-08-24", []domain.LineInput{
		{PONumber: "", SKUCode: "SKU-1", DueDate: "2026-08-28"},
		{PONumber: "PO-1", SKUCode: "", DueDate: "2026-08-28"},
		{PONumber: "PO-1", SKUCode: "SKU-1", DueDate: ""},
		{PONumber: "PO-OK", SKUCode: "SKU-OK", DueDate: "2026-08-28"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "PO-OK", stored[0].PONumber)
}

func TestPutWeekIsWholeReplace(t *testing.T) {
	svc := setupPlanService(t)
	ctx := context.Background()

	_, err := svc.PutWeek(ctx, "2026-08-24", []domain.LineInput{
		{PONumber: "PO-OLD-1", SKUCode: "S1", DueDate: "2026-08-28"},
		{PONumber: "PO-OLD-2", SKUCode: "S2", DueDate: "2026-08-28"},
	})
	require.NoError(t, err)

	_, err = svc.PutWeek(ctx, "2026-08-24", []domain.LineInput{
		{PONumber: "PO-NEW", SKUCode: "S3", DueDate: "2026-08-29"},
	})
	require.NoError(t, err)

	lines, err := svc.GetWeek(ctx, "2026-08-24")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "PO-NEW", lines[0].PONumber)
}

func TestPutWeekDoesNotTouchOtherWeeks(t *testing.T) {
	svc := setupPlanService(t)
	ctx := context.Background()

	_, err := svc.PutWeek(ctx, "2026-08-17", []domain.LineInput{
		{PONumber: "PO-PREV", SKUCode: "S1", DueDate: "2026-08-21"},
	})
	require.NoError(t, err)

	_, err = svc.PutWeek(ctx, "2026-08-24", []domain.LineInput{
		{PONumber: "PO-CUR", SKUCode: "S2", DueDate: "2026-08-28"},
	})
	require.NoError(t, err)

	previous, err := svc.GetWeek(ctx, "2026-08-17")
	require.NoError(t, err)
	require.Len(t, previous, 1)
	assert.Equal(t, "PO-PREV", previous[0].PONumber)
}

func TestZeroWeekEmptiesButKeepsWeekKnown(t *testing.T) {
	svc := setupPlanService(t)
	ctx := context.Background()

	_, err := svc.PutWeek(ctx, "2026-08-24", []domain.LineInput{
		{PONumber: "PO-1", SKUCode: "S1", DueDate: "2026-08-28"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ZeroWeek(ctx, "2026-08-24"))

	lines, err := svc.GetWeek(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Empty(t, lines)

	weeks, err := svc.ListRecentWeeks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, "2026-08-24", weeks[0].WeekStart)
}

func TestGetWeekUnknownIsEmptyNotError(t *testing.T) {
	svc := setupPlanService(t)

	lines, err := svc.GetWeek(context.Background(), "2026-01-05")
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestListRecentWeeksLimit(t *testing.T) {
	svc := setupPlanService(t)
	ctx := context.Background()

	for _, week := range []string{"2026-08-10", "2026-08-17", "2026-08-24"} {
		_, err := svc.PutWeek(ctx, week, []domain.LineInput{
			{PONumber: "PO", SKUCode: "S", DueDate: week},
		})
		require.NoError(t, err)
	}

	weeks, err := svc.ListRecentWeeks(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, weeks, 2)
}
