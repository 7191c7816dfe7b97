package repository

import (
	"context"
	"errors"

	"github.com/velozity/opsboard/internal/record/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Record, error) {
	var record domain.Record
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindByNaturalKey(ctx context.Context, db *gorm.DB, key domain.NaturalKey) (*domain.Record, error) {
	var record domain.Record
	err := db.WithContext(ctx).
		Where("po_number = ? AND sku_code = ? AND uid = ?", key.PONumber, key.SKUCode, key.UID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Record{}).Error
}

func (r *repo) DeleteByNaturalKey(ctx context.Context, db *gorm.DB, uid, skuCode string) (int64, error) {
	stmt := db.WithContext(ctx).Where("uid = ?", uid)
	if skuCode != "" {
		stmt = stmt.Where("sku_code = ?", skuCode)
	}
	result := stmt.Delete(&domain.Record{})
	return result.RowsAffected, result.Error
}

func (r *repo) Query(ctx context.Context, db *gorm.DB, filter domain.QueryFilter) ([]domain.Record, error) {
	var records []domain.Record
	stmt := db.WithContext(ctx).Model(&domain.Record{})
	if filter.From != "" {
		stmt = stmt.Where("date_local >= ?", filter.From)
	}
	if filter.To != "" {
		stmt = stmt.Where("date_local <= ?", filter.To)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = stmt.Order("completed_at DESC")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	if err := stmt.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
