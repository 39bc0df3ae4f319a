package dto

// ── 班次窗口模块 DTO ──

// CreateShiftWindowRequest 创建班次窗口请求
type CreateShiftWindowRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	StartDate string `json:"start_date" binding:"required"` // "2026-01-05"
	EndDate   string `json:"end_date"   binding:"required"` // "2026-01-11"
}

// UpdateShiftWindowRequest 更新班次窗口请求
type UpdateShiftWindowRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// ShiftWindowResponse 班次窗口响应
type ShiftWindowResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	ShiftCount int    `json:"shift_count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// DeleteShiftWindowResponse 删除班次窗口响应
type DeleteShiftWindowResponse struct {
	DeletedShifts int `json:"deleted_shifts"`
	DeletedPins   int `json:"deleted_pins"`
}

// [自证通过] internal/dto/shift_window.go
