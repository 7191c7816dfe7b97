package domain

import "time"

// Line is one planned unit of work within a week. Lines are stored in write
// order; position is internal and not part of the wire contract.
type Line struct {
	WeekStart string  `gorm:"column:week_start;primaryKey" json:"-"`
	Position  int     `gorm:"column:position;primaryKey" json:"-"`
	PONumber  string  `gorm:"column:po_number" json:"po_number"`
	SKUCode   string  `gorm:"column:sku_code" json:"sku_code"`
	StartDate string  `gorm:"column:start_date" json:"start_date"`
	DueDate   string  `gorm:"column:due_date" json:"due_date"`
	TargetQty float64 `gorm:"column:target_qty" json:"target_qty"`
	Priority  string  `gorm:"column:priority" json:"priority,omitempty"`
	Notes     string  `gorm:"column:notes" json:"notes,omitempty"`
}

func (Line) TableName() string { return "plan_lines" }

// Week tracks when a weekly plan document was last written.
type Week struct {
	WeekStart string    `gorm:"column:week_start;primaryKey" json:"week_start"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Week) TableName() string { return "plan_weeks" }
