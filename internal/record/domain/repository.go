package domain

import (
	"context"

	"gorm.io/gorm"
)

type QueryFilter struct {
	From   string
	To     string
	Status string
	Limit  int
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Record, error)
	FindByNaturalKey(ctx context.Context, db *gorm.DB, key NaturalKey) (*Record, error)
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	Update(ctx context.Context, db *gorm.DB, record *Record) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	DeleteByNaturalKey(ctx context.Context, db *gorm.DB, uid, skuCode string) (int64, error)
	Query(ctx context.Context, db *gorm.DB, filter QueryFilter) ([]Record, error)
}
