package service

import (
	"context"
	"strings"
	"time"

	"github.com/velozity/opsboard/internal/bin/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("bin.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetWeek(ctx context.Context, weekStart string) ([]domain.Row, error) {
	rows, err := s.repo.FindRows(ctx, s.db, weekStart)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Row{}
	}
	return rows, nil
}

func (s *Service) PutWeek(ctx context.Context, weekStart string, inputs []domain.RowInput) (domain.PutResult, error) {
	result := domain.PutResult{Errors: []domain.RowError{}}

	// A mobile_bin repeated within one call keeps only the last occurrence;
	// earlier ones are discarded before persistence, not merged.
	byBin := make(map[string]domain.Row, len(inputs))
	order := make([]string, 0, len(inputs))
	now := time.Now().UTC()

	for i, input := range inputs {
		mobileBin := strings.TrimSpace(input.MobileBin)
		if mobileBin == "" {
			result.Rejected++
			result.Errors = append(result.Errors, domain.RowError{Index: i, Reason: "missing_mobile_bin"})
			continue
		}
		if input.TotalUnits != nil && *input.TotalUnits < 0 {
			result.Rejected++
			result.Errors = append(result.Errors, domain.RowError{Index: i, Reason: "negative_total_units"})
			continue
		}
		if input.WeightKg != nil && *input.WeightKg < 0 {
			result.Rejected++
			result.Errors = append(result.Errors, domain.RowError{Index: i, Reason: "negative_weight_kg"})
			continue
		}

		if _, seen := byBin[mobileBin]; !seen {
			order = append(order, mobileBin)
		}
		byBin[mobileBin] = domain.Row{
			WeekStart:  weekStart,
			MobileBin:  mobileBin,
			TotalUnits: input.TotalUnits,
			WeightKg:   input.WeightKg,
			DateLocal:  strings.TrimSpace(input.DateLocal),
			UpdatedAt:  now,
		}
	}

	rows := make([]domain.Row, 0, len(byBin))
	for _, mobileBin := range order {
		rows = append(rows, byBin[mobileBin])
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.UpsertRows(ctx, tx, rows)
	})
	if err != nil {
		return domain.PutResult{}, err
	}

	result.Upserted = len(rows)
	s.log.Debug("bin week written",
		zap.String("week_start", weekStart),
		zap.Int("upserted", result.Upserted),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}
