package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/velozity/opsboard/internal/bizcal"
	"github.com/velozity/opsboard/internal/record/domain"
	"github.com/velozity/opsboard/internal/scanevents"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Hub   *scanevents.Hub
	Cal   *bizcal.Calendar
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	hub   *scanevents.Hub
	cal   *bizcal.Calendar
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("record.service"),
		genID: p.GenID,
		repo:  p.Repo,
		hub:   p.Hub,
		cal:   p.Cal,
	}
}

// ApplyPatch sets a single field on a record, creating a shell first when the
// id is unknown. The completion transition is monotonic: once complete, later
// patches never revert status or completed_at.
func (s *Service) ApplyPatch(ctx context.Context, req domain.PatchRequest) (domain.Record, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.Record{}, domain.ErrMissingID
	}
	field := strings.ToLower(strings.TrimSpace(req.Field))
	if field == "" {
		return domain.Record{}, domain.ErrMissingField
	}
	var probe domain.Record
	if !probe.SetField(field, "") {
		return domain.Record{}, domain.ErrUnknownField
	}

	var out domain.Record
	var pulseAt *time.Time
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		created := false
		if record == nil {
			now := time.Now().UTC()
			record = &domain.Record{
				ID:        id,
				DateLocal: s.cal.Today(),
				Status:    domain.StatusDraft,
				SyncState: domain.SyncPending,
				CreatedAt: now,
				UpdatedAt: now,
			}
			created = true
		}

		record.SetField(field, req.Value)

		if record.Status != domain.StatusComplete && record.FieldsComplete() {
			now := time.Now().UTC()
			record.Status = domain.StatusComplete
			record.CompletedAt = &now
			record.SyncState = domain.SyncSynced
			pulseAt = &now
		}

		// Duplicate-shell cleanup: a shell minted in this call whose key now
		// matches another record is discarded in favor of the survivor.
		if created && domain.IsNaturalKeyField(field) && strings.TrimSpace(req.Value) != "" {
			existing, err := s.repo.FindByNaturalKey(ctx, tx, record.NaturalKey())
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != record.ID {
				out = *existing
				pulseAt = nil
				return nil
			}
		}

		record.UpdatedAt = time.Now().UTC()
		if created {
			err = s.repo.Insert(ctx, tx, record)
		} else {
			err = s.repo.Update(ctx, tx, record)
		}
		if err != nil {
			return err
		}

		out = *record
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}

	if pulseAt != nil {
		s.hub.Publish(*pulseAt)
		s.log.Debug("record completed",
			zap.String("id", out.ID),
			zap.String("uid", out.UID),
		)
	}
	return out, nil
}

// CreateByNaturalKey stores a full record, merging over any record that
// already carries the same (po_number, sku_code, uid) triple.
func (s *Service) CreateByNaturalKey(ctx context.Context, req domain.CreateRequest) (domain.Record, error) {
	candidate := domain.Record{
		ID:        strings.TrimSpace(req.ID),
		DateLocal: strings.TrimSpace(req.DateLocal),
		MobileBin: strings.TrimSpace(req.MobileBin),
		SSCCLabel: strings.TrimSpace(req.SSCCLabel),
		PONumber:  strings.TrimSpace(req.PONumber),
		SKUCode:   strings.TrimSpace(req.SKUCode),
		UID:       strings.TrimSpace(req.UID),
	}

	var missing []string
	for _, required := range []struct {
		field string
		value string
	}{
		{domain.FieldDateLocal, candidate.DateLocal},
		{domain.FieldMobileBin, candidate.MobileBin},
		{domain.FieldPONumber, candidate.PONumber},
		{domain.FieldSKUCode, candidate.SKUCode},
		{domain.FieldUID, candidate.UID},
	} {
		if required.value == "" {
			missing = append(missing, required.field)
		}
	}
	if len(missing) > 0 {
		return domain.Record{}, &domain.MissingFieldsError{Fields: missing}
	}

	var out domain.Record
	var pulseAt *time.Time
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, pulse, err := s.upsertByNaturalKey(ctx, tx, candidate)
		if err != nil {
			return err
		}
		out = stored
		pulseAt = pulse
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}

	if pulseAt != nil {
		s.hub.Publish(*pulseAt)
	}
	return out, nil
}

// upsertByNaturalKey merges candidate over any record sharing its natural
// key. Empty candidate values never overwrite stored values, and the
// earliest completed_at seen is preserved. Returns the stored record and,
// when the result is complete, the pulse timestamp to publish after commit.
func (s *Service) upsertByNaturalKey(ctx context.Context, tx *gorm.DB, candidate domain.Record) (domain.Record, *time.Time, error) {
	existing, err := s.repo.FindByNaturalKey(ctx, tx, candidate.NaturalKey())
	if err != nil {
		return domain.Record{}, nil, err
	}

	now := time.Now().UTC()

	if existing == nil {
		record := candidate
		if record.ID == "" {
			record.ID = s.genID.Generate().String()
		}
		record.CreatedAt = now
		record.UpdatedAt = now
		if record.FieldsComplete() {
			record.Status = domain.StatusComplete
			record.CompletedAt = &now
			record.SyncState = domain.SyncSynced
		} else {
			record.Status = domain.StatusDraft
			record.SyncState = domain.SyncPending
		}
		if err := s.repo.Insert(ctx, tx, &record); err != nil {
			return domain.Record{}, nil, err
		}
		if record.Status == domain.StatusComplete {
			return record, &now, nil
		}
		return record, nil, nil
	}

	merged := *existing
	if candidate.DateLocal != "" {
		merged.DateLocal = candidate.DateLocal
	}
	if candidate.MobileBin != "" {
		merged.MobileBin = candidate.MobileBin
	}
	if candidate.SSCCLabel != "" {
		merged.SSCCLabel = candidate.SSCCLabel
	}

	if merged.FieldsComplete() {
		merged.Status = domain.StatusComplete
		if merged.CompletedAt == nil {
			merged.CompletedAt = &now
		}
		merged.SyncState = domain.SyncSynced
	}
	merged.UpdatedAt = now

	if err := s.repo.Update(ctx, tx, &merged); err != nil {
		return domain.Record{}, nil, err
	}
	if merged.Status == domain.StatusComplete {
		return merged, &now, nil
	}
	return merged, nil, nil
}

func (s *Service) Query(ctx context.Context, req domain.QueryRequest) ([]domain.Record, error) {
	filter := domain.QueryFilter{
		From:   strings.TrimSpace(req.From),
		To:     strings.TrimSpace(req.To),
		Status: strings.TrimSpace(req.Status),
		Limit:  req.Limit,
	}
	return s.repo.Query(ctx, s.db, filter)
}

func (s *Service) DeleteByNaturalKey(ctx context.Context, req domain.DeleteRequest) (int64, error) {
	uid := strings.TrimSpace(req.UID)
	if uid == "" {
		return 0, domain.ErrMissingUID
	}
	return s.repo.DeleteByNaturalKey(ctx, s.db, uid, strings.TrimSpace(req.SKUCode))
}

// BatchDelete processes each descriptor independently within one atomic
// batch. A blank uid is recorded as a zero-deletion error item rather than
// aborting the batch.
func (s *Service) BatchDelete(ctx context.Context, items []domain.DeleteRequest) (domain.BatchDeleteResult, error) {
	result := domain.BatchDeleteResult{Results: make([]domain.BatchDeleteItemResult, 0, len(items))}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			uid := strings.TrimSpace(item.UID)
			skuCode := strings.TrimSpace(item.SKUCode)
			if uid == "" {
				result.Results = append(result.Results, domain.BatchDeleteItemResult{
					UID:     uid,
					SKUCode: skuCode,
					Deleted: 0,
					Error:   domain.ErrMissingUID.Error(),
				})
				continue
			}
			deleted, err := s.repo.DeleteByNaturalKey(ctx, tx, uid, skuCode)
			if err != nil {
				return err
			}
			result.TotalDeleted += deleted
			result.Results = append(result.Results, domain.BatchDeleteItemResult{
				UID:     uid,
				SKUCode: skuCode,
				Deleted: deleted,
			})
		}
		return nil
	})
	if err != nil {
		return domain.BatchDeleteResult{}, err
	}
	return result, nil
}
