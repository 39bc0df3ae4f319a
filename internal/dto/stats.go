package dto

// ── 统计模块 DTO ──
//
// 所有聚合均在读取时对当前行重新计算，不存在任何缓存的聚合值。

// QuotaSimulation 配额模拟结果
// expected_shifts = round(contract_percent / 100 × full_time_shifts)
type QuotaSimulation struct {
	ContractPercent int    `json:"contract_percent"`
	ExpectedShifts  int    `json:"expected_shifts"`
	CurrentPins     int    `json:"current_pins"`
	QuotaStatus     string `json:"quota_status"` // met | under
	RemainingNeeded int    `json:"remaining_needed"`
	OverQuota       int    `json:"over_quota"`
}

// WindowPinStats 单窗口的 Pin 统计
type WindowPinStats struct {
	WindowID      string  `json:"window_id"`
	WindowName    string  `json:"window_name"`
	Pins          int     `json:"pins"`
	TotalWeight   float64 `json:"total_weight"`
	AverageWeight float64 `json:"average_weight"`
}

// UserStatsResponse 单用户统计响应
// AverageShiftWeight 为空表示该用户没有带权重的 Pin（与 0 含义不同）
type UserStatsResponse struct {
	User       UserSummaryWithContract `json:"user"`
	Statistics UserStatistics          `json:"statistics"`
}

// UserSummaryWithContract 含合同百分比的用户简要信息
type UserSummaryWithContract struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ContractPercent int    `json:"contract_percent"`
}

// UserStatistics 单用户统计明细
type UserStatistics struct {
	TotalPins          int              `json:"total_pins"`
	AverageShiftWeight *float64         `json:"average_shift_weight"`
	QuotaSimulation    QuotaSimulation  `json:"quota_simulation"`
	PinsByWindow       []WindowPinStats `json:"pins_by_window"`
}

// HeatmapShift 热力图条目：班次 + Pin 数 + 热度标签
type HeatmapShift struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Type        string        `json:"type"`
	Weight      *float64      `json:"weight,omitempty"`
	PinCount    int           `json:"pin_count"`
	ShiftWindow WindowSummary `json:"shift_window"`
	Popularity  string        `json:"popularity"` // none | low | medium | high
}

// MostPopularShift 窗口内 Pin 数最高的班次（并列保留最先达到最大值者）
type MostPopularShift struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	PinCount int    `json:"pin_count"`
}

// WindowStatistics 单窗口汇总
type WindowStatistics struct {
	Window              WindowSummary     `json:"window"`
	TotalShifts         int               `json:"total_shifts"`
	TotalPins           int               `json:"total_pins"`
	AveragePinsPerShift float64           `json:"average_pins_per_shift"`
	ShiftsWithNoPins    int               `json:"shifts_with_no_pins"`
	MostPopularShift    *MostPopularShift `json:"most_popular_shift"`
}

// TopUser Pin 数排名条目
type TopUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ContractPercent int    `json:"contract_percent"`
	PinCount        int    `json:"pin_count"`
}

// DashboardSummary 系统级标量汇总
type DashboardSummary struct {
	TotalShifts        int     `json:"total_shifts"`
	TotalPins          int     `json:"total_pins"`
	TotalUsers         int     `json:"total_users"`
	AveragePinsPerUser float64 `json:"average_pins_per_user"` // 保留 2 位小数
	ShiftsWithZeroPins int     `json:"shifts_with_zero_pins"`
}

// DashboardResponse 管理端看板响应
type DashboardResponse struct {
	Summary                DashboardSummary   `json:"summary"`
	ShiftPopularityHeatmap []HeatmapShift     `json:"shift_popularity_heatmap"`
	ShiftsWithZeroPins     []HeatmapShift     `json:"shifts_with_zero_pins"`
	WindowStatistics       []WindowStatistics `json:"window_statistics"`
	TopUsers               []TopUser          `json:"top_users"`
}

// [自证通过] internal/dto/stats.go
