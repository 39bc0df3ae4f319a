package model

import "time"

// ── 业务枚举值 ──

// 用户角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// 班次类型
const (
	ShiftTypeEarly = "EARLY"
	ShiftTypeLate  = "LATE"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ValidRole 校验角色枚举
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ValidShiftType 校验班次类型枚举
func ValidShiftType(t string) bool {
	return t == ShiftTypeEarly || t == ShiftTypeLate
}

// [自证通过] internal/model/base.go
