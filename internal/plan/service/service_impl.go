package service

import (
	"context"
	"strings"

	"github.com/velozity/opsboard/internal/plan/domain"
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
		log:  p.Log.Named("plan.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetWeek(ctx context.Context, weekStart string) ([]domain.Line, error) {
	lines, err := s.repo.FindLines(ctx, s.db, weekStart)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.Line{}
	}
	return lines, nil
}

// PutWeek replaces the week's entire line list. Lines missing po_number,
// sku_code or due_date are dropped before persistence.
func (s *Service) PutWeek(ctx context.Context, weekStart string, inputs []domain.LineInput) ([]domain.Line, error) {
	lines := make([]domain.Line, 0, len(inputs))
	for _, input := range inputs {
		line, ok := normalizeLine(weekStart, input)
		if !ok {
			continue
		}
		line.Position = len(lines)
		lines = append(lines, line)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.ReplaceWeek(ctx, tx, weekStart, lines)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("plan week written",
		zap.String("week_start", weekStart),
		zap.Int("lines", len(lines)),
		zap.Int("dropped", len(inputs)-len(lines)),
	)
	return lines, nil
}

func (s *Service) ZeroWeek(ctx context.Context, weekStart string) error {
	_, err := s.PutWeek(ctx, weekStart, nil)
	return err
}

func (s *Service) ListRecentWeeks(ctx context.Context, limit int) ([]domain.Week, error) {
	if limit <= 0 {
		limit = domain.DefaultRecentWeeks
	}
	weeks, err := s.repo.ListWeeks(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	if weeks == nil {
		weeks = []domain.Week{}
	}
	return weeks, nil
}

func normalizeLine(weekStart string, input domain.LineInput) (domain.Line, bool) {
	line := domain.Line{
		WeekStart: weekStart,
		PONumber:  strings.TrimSpace(input.PONumber),
		SKUCode:   strings.TrimSpace(input.SKUCode),
		StartDate: strings.TrimSpace(input.StartDate),
		DueDate:   strings.TrimSpace(input.DueDate),
		TargetQty: input.TargetQty,
		Priority:  strings.TrimSpace(input.Priority),
		Notes:     strings.TrimSpace(input.Notes),
	}
	if line.PONumber == "" || line.SKUCode == "" || line.DueDate == "" {
		return domain.Line{}, false
	}
	if line.StartDate == "" {
		line.StartDate = weekStart
	}
	if line.TargetQty < 0 {
		line.TargetQty = 0
	}
	return line, true
}
