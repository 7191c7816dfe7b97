package domain

import "time"

const (
	StatusDraft    = "draft"
	StatusComplete = "complete"

	SyncUnknown = "unknown"
	SyncPending = "pending"
	SyncSynced  = "synced"
)

// Field names accepted by the patch operation.
const (
	FieldDateLocal = "date_local"
	FieldMobileBin = "mobile_bin"
	FieldSSCCLabel = "sscc_label"
	FieldPONumber  = "po_number"
	FieldSKUCode   = "sku_code"
	FieldUID       = "uid"
)

// Record is a single intake scan. The natural key (po_number, sku_code, uid)
// identifies the logical scan regardless of id; a record is complete iff
// date_local, mobile_bin, po_number, sku_code and uid are all non-empty.
// sscc_label is never required.
type Record struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	DateLocal   string     `gorm:"column:date_local;index" json:"date_local"`
	MobileBin   string     `gorm:"column:mobile_bin" json:"mobile_bin"`
	SSCCLabel   string     `gorm:"column:sscc_label" json:"sscc_label"`
	PONumber    string     `gorm:"column:po_number;index:idx_intake_records_natural_key" json:"po_number"`
	SKUCode     string     `gorm:"column:sku_code;index:idx_intake_records_natural_key" json:"sku_code"`
	UID         string     `gorm:"column:uid;index:idx_intake_records_natural_key" json:"uid"`
	Status      string     `gorm:"column:status" json:"status"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	SyncState   string     `gorm:"column:sync_state" json:"sync_state"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Record) TableName() string { return "intake_records" }

// NaturalKey is the (po_number, sku_code, uid) triple.
type NaturalKey struct {
	PONumber string
	SKUCode  string
	UID      string
}

func (r Record) NaturalKey() NaturalKey {
	return NaturalKey{PONumber: r.PONumber, SKUCode: r.SKUCode, UID: r.UID}
}

// FieldsComplete reports whether the completion predicate holds.
func (r Record) FieldsComplete() bool {
	return r.DateLocal != "" &&
		r.MobileBin != "" &&
		r.PONumber != "" &&
		r.SKUCode != "" &&
		r.UID != ""
}

// SetField assigns value to the named patchable field. Returns false for a
// field outside the allowed set.
func (r *Record) SetField(field, value string) bool {
	switch field {
	case FieldDateLocal:
		r.DateLocal = value
	case FieldMobileBin:
		r.MobileBin = value
	case FieldSSCCLabel:
		r.SSCCLabel = value
	case FieldPONumber:
		r.PONumber = value
	case FieldSKUCode:
		r.SKUCode = value
	case FieldUID:
		r.UID = value
	default:
		return false
	}
	return true
}

// IsNaturalKeyField reports whether field contributes to the natural key.
func IsNaturalKeyField(field string) bool {
	switch field {
	case FieldPONumber, FieldSKUCode, FieldUID:
		return true
	default:
		return false
	}
}
