package repository

import (
	"context"
	"time"

	"github.com/velozity/opsboard/internal/plan/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindLines(ctx context.Context, db *gorm.DB, weekStart string) ([]domain.Line, error) {
	var lines []domain.Line
	err := db.WithContext(ctx).
		Where("week_start = ?", weekStart).
		Order("position ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repo) ReplaceWeek(ctx context.Context, db *gorm.DB, weekStart string, lines []domain.Line) error {
	if err := db.WithContext(ctx).
		Where("week_start = ?", weekStart).
		Delete(&domain.Line{}).Error; err != nil {
		return err
	}
	if len(lines) > 0 {
		if err := db.WithContext(ctx).Create(&lines).Error; err != nil {
			return err
		}
	}
	week := domain.Week{WeekStart: weekStart, UpdatedAt: time.Now().UTC()}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(&week).Error
}

func (r *repo) ListWeeks(ctx context.Context, db *gorm.DB, limit int) ([]domain.Week, error) {
	var weeks []domain.Week
	stmt := db.WithContext(ctx).
		Model(&domain.Week{}).
		Order("updated_at DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Find(&weeks).Error; err != nil {
		return nil, err
	}
	return weeks, nil
}
