package export

import (
	"context"
	"fmt"

	"github.com/velozity/opsboard/internal/bizcal"
	recorddomain "github.com/velozity/opsboard/internal/record/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("export.service",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Records recorddomain.Service
}

// Service renders intake data as downloadable spreadsheets.
type Service struct {
	log     *zap.Logger
	records recorddomain.Service
}

func New(p Params) *Service {
	return &Service{
		log:     p.Log.Named("export.service"),
		records: p.Records,
	}
}

var daySheetHeaders = []string{
	"Date", "Mobile Bin", "SSCC Label", "PO Number", "SKU Code", "UID",
	"Status", "Completed At", "Sync State",
}

// DaySheet builds an xlsx workbook holding every intake record scanned on the
// given business date. The caller owns the returned file and must close it.
func (s *Service) DaySheet(ctx context.Context, date string) (*excelize.File, error) {
	if _, err := bizcal.ParseDate(date); err != nil {
		return nil, err
	}

	records, err := s.records.Query(ctx, recorddomain.QueryRequest{From: date, To: date})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range daySheetHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		completedAt := ""
		if rec.CompletedAt != nil {
			completedAt = rec.CompletedAt.UTC().Format("2006-01-02 15:04:05")
		}
		values := []any{
			rec.DateLocal, rec.MobileBin, rec.SSCCLabel, rec.PONumber,
			rec.SKUCode, rec.UID, rec.Status, completedAt, rec.SyncState,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	s.log.Debug("day sheet built", zap.String("date", date), zap.Int("rows", len(records)))
	return f, nil
}

// Filename returns the attachment name for a day sheet.
func Filename(date string) string {
	return fmt.Sprintf("intake-%s.xlsx", date)
}
