package model

// User 用户表 — 对应 users
type User struct {
	UserID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name            string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email           string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash    string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role            string `gorm:"type:varchar(20);not null;default:'USER'"       json:"role"` // USER | ADMIN
	ContractPercent int    `gorm:"not null;default:100"                           json:"contract_percent"`
	BaseModel

	// 关联
	Pins []Pin `gorm:"foreignKey:UserID;references:UserID" json:"pins,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
