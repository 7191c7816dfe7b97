package repository

import (
	"context"

	"github.com/velozity/opsboard/internal/bin/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindRows(ctx context.Context, db *gorm.DB, weekStart string) ([]domain.Row, error) {
	var rows []domain.Row
	err := db.WithContext(ctx).
		Where("week_start = ?", weekStart).
		Order("mobile_bin ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) UpsertRows(ctx context.Context, db *gorm.DB, rows []domain.Row) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "week_start"}, {Name: "mobile_bin"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_units", "weight_kg", "date_local", "updated_at"}),
		}).
		Create(&rows).Error
}
