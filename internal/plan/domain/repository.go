package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindLines(ctx context.Context, db *gorm.DB, weekStart string) ([]Line, error)
	ReplaceWeek(ctx context.Context, db *gorm.DB, weekStart string, lines []Line) error
	ListWeeks(ctx context.Context, db *gorm.DB, limit int) ([]Week, error)
}
