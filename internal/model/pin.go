package model

// Pin 用户对班次的投标记录 — 对应 pins
// 唯一性约束：(user_id, shift_id) 至多一条；创建后不可修改，仅可删除
type Pin struct {
	PinID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pin_id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:uq_pins_user_shift" json:"user_id"`
	ShiftID string `gorm:"type:uuid;not null;uniqueIndex:uq_pins_user_shift" json:"shift_id"`
	BaseModel

	// 关联
	User  *User  `gorm:"foreignKey:UserID;references:UserID"    json:"user,omitempty"`
	Shift *Shift `gorm:"foreignKey:ShiftID;references:ShiftID"  json:"shift,omitempty"`
}

// TableName 指定表名
func (Pin) TableName() string { return "pins" }

// [自证通过] internal/model/pin.go
