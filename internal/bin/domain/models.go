package domain

import "time"

// Row is the manifest entry for one mobile bin within a week. total_units
// and weight_kg are nullable: a bin can be manifested before it is counted
// or weighed.
type Row struct {
	WeekStart  string    `gorm:"column:week_start;primaryKey" json:"week_start"`
	MobileBin  string    `gorm:"column:mobile_bin;primaryKey" json:"mobile_bin"`
	TotalUnits *float64  `gorm:"column:total_units" json:"total_units"`
	WeightKg   *float64  `gorm:"column:weight_kg" json:"weight_kg"`
	DateLocal  string    `gorm:"column:date_local" json:"date_local"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Row) TableName() string { return "bin_rows" }
