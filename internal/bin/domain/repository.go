package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindRows(ctx context.Context, db *gorm.DB, weekStart string) ([]Row, error)
	UpsertRows(ctx context.Context, db *gorm.DB, rows []Row) error
}
