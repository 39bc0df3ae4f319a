package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"

	"shiftbid/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestStatsService() (StatsService, *testMocks) {
	repo, mocks := newTestRepo()
	svc := NewStatsService(newTestConfig(), repo, zap.NewNop())
	return svc, mocks
}

// ── UserStats 测试 ──

func TestStatsService_UserStats_NoPins(t *testing.T) {
	svc, mocks := setupTestStatsService()
	seedUser(mocks, "user-001", "alice@example.com", "secret123")

	result, err := svc.UserStats(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("UserStats 应成功: %v", err)
	}
	if result.Statistics.TotalPins != 0 {
		t.Errorf("期望TotalPins=0，实际=%d", result.Statistics.TotalPins)
	}
	// 无带权重 Pin 时平均权重为空，区别于 0
	if result.Statistics.AverageShiftWeight != nil {
		t.Errorf("期望AverageShiftWeight=nil，实际=%v", *result.Statistics.AverageShiftWeight)
	}
	if len(result.Statistics.PinsByWindow) != 0 {
		t.Errorf("期望PinsByWindow为空，实际=%d", len(result.Statistics.PinsByWindow))
	}
}

func TestStatsService_UserStats_AverageWeight(t *testing.T) {
	svc, mocks := setupTestStatsService()
	seedUser(mocks, "user-001", "alice@example.com", "secret123")
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 7))
	seedShift(mocks, "shift-001", window, date(2024, 1, 1), model.ShiftTypeEarly) // 1.2
	seedShift(mocks, "shift-002", window, date(2024, 1, 2), model.ShiftTypeLate)  // 1.0
	seedPin(mocks, "user-001", "shift-001")
	seedPin(mocks, "user-001", "shift-002")

	result, err := svc.UserStats(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("UserStats 应成功: %v", err)
	}
	if result.Statistics.AverageShiftWeight == nil {
		t.Fatal("期望AverageShiftWeight非空")
	}
	if math.Abs(*result.Statistics.AverageShiftWeight-1.1) > 1e-9 {
		t.Errorf("期望AverageShiftWeight=1.1，实际=%v", *result.Statistics.AverageShiftWeight)
	}

	if len(result.Statistics.PinsByWindow) != 1 {
		t.Fatalf("期望1个窗口分组，实际=%d", len(result.Statistics.PinsByWindow))
	}
	ws := result.Statistics.PinsByWindow[0]
	if ws.Pins != 2 {
		t.Errorf("期望Pins=2，实际=%d", ws.Pins)
	}
	if math.Abs(ws.TotalWeight-2.2) > 1e-9 {
		t.Errorf("期望TotalWeight=2.2，实际=%v", ws.TotalWeight)
	}
}

// ── 配额模拟测试 ──

func TestStatsService_UserStats_QuotaUnder(t *testing.T) {
	svc, mocks := setupTestStatsService()
	// 50% 合同 × 40 班 = 期望 20 班
	user := seedUser(mocks, "user-001", "alice@example.com", "secret123")
	user.ContractPercent = 50
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	for i := 0; i < 15; i++ {
		shift := seedShift(mocks, "", window, date(2024, 1, 1+i), model.ShiftTypeEarly)
		seedPin(mocks, "user-001", shift.ShiftID)
	}

	result, err := svc.UserStats(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("UserStats 应成功: %v", err)
	}
	sim := result.Statistics.QuotaSimulation
	if sim.ExpectedShifts != 20 {
		t.Errorf("期望ExpectedShifts=20，实际=%d", sim.ExpectedShifts)
	}
	if sim.CurrentPins != 15 {
		t.Errorf("期望CurrentPins=15，实际=%d", sim.CurrentPins)
	}
	if sim.QuotaStatus != "under" {
		t.Errorf("期望QuotaStatus=under，实际=%s", sim.QuotaStatus)
	}
	if sim.RemainingNeeded != 5 {
		t.Errorf("期望RemainingNeeded=5，实际=%d", sim.RemainingNeeded)
	}
	if sim.OverQuota != 0 {
		t.Errorf("期望OverQuota=0，实际=%d", sim.OverQuota)
	}
}

func TestStatsService_UserStats_QuotaMetAtBoundary(t *testing.T) {
	svc, mocks := setupTestStatsService()
	// 10% × 40 = 4 班，恰好达标
	user := seedUser(mocks, "user-001", "alice@example.com", "secret123")
	user.ContractPercent = 10
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	for i := 0; i < 4; i++ {
		shift := seedShift(mocks, "", window, date(2024, 1, 1+i), model.ShiftTypeEarly)
		seedPin(mocks, "user-001", shift.ShiftID)
	}

	result, err := svc.UserStats(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("UserStats 应成功: %v", err)
	}
	sim := result.Statistics.QuotaSimulation
	if sim.QuotaStatus != "met" {
		t.Errorf("期望QuotaStatus=met，实际=%s", sim.QuotaStatus)
	}
	if sim.RemainingNeeded != 0 || sim.OverQuota != 0 {
		t.Errorf("恰好达标时剩余与超额均应为0: %+v", sim)
	}
}

func TestStatsService_UserStats_QuotaOver(t *testing.T) {
	svc, mocks := setupTestStatsService()
	// 5% × 40 = 2 班，Pin 了 3 班
	user := seedUser(mocks, "user-001", "alice@example.com", "secret123")
	user.ContractPercent = 5
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	for i := 0; i < 3; i++ {
		shift := seedShift(mocks, "", window, date(2024, 1, 1+i), model.ShiftTypeEarly)
		seedPin(mocks, "user-001", shift.ShiftID)
	}

	result, err := svc.UserStats(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("UserStats 应成功: %v", err)
	}
	sim := result.Statistics.QuotaSimulation
	if sim.QuotaStatus != "met" {
		t.Errorf("期望QuotaStatus=met，实际=%s", sim.QuotaStatus)
	}
	if sim.OverQuota != 1 {
		t.Errorf("期望OverQuota=1，实际=%d", sim.OverQuota)
	}
}

// ── Dashboard 测试 ──

func TestStatsService_Dashboard_PopularityLabels(t *testing.T) {
	svc, mocks := setupTestStatsService()
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))

	// Pin 数 0 / 1 / 3 / 6 → none / low / medium / high
	pinCounts := []int{0, 1, 3, 6}
	for i, n := range pinCounts {
		shift := seedShift(mocks, "", window, date(2024, 1, 1+i), model.ShiftTypeEarly)
		for j := 0; j < n; j++ {
			userID := fmt.Sprintf("user-%d-%d", i, j)
			seedUser(mocks, userID, userID+"@example.com", "secret123")
			seedPin(mocks, userID, shift.ShiftID)
		}
	}

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}

	expected := []string{PopularityNone, PopularityLow, PopularityMedium, PopularityHigh}
	if len(result.ShiftPopularityHeatmap) != 4 {
		t.Fatalf("期望4个热度条目，实际=%d", len(result.ShiftPopularityHeatmap))
	}
	for i, entry := range result.ShiftPopularityHeatmap {
		if entry.Popularity != expected[i] {
			t.Errorf("pinCount=%d 期望热度=%s，实际=%s", entry.PinCount, expected[i], entry.Popularity)
		}
	}

	if len(result.ShiftsWithZeroPins) != 1 {
		t.Errorf("期望1个零Pin班次，实际=%d", len(result.ShiftsWithZeroPins))
	}
	if result.Summary.ShiftsWithZeroPins != 1 {
		t.Errorf("汇总中零Pin班次应为1，实际=%d", result.Summary.ShiftsWithZeroPins)
	}
}

func TestStatsService_Dashboard_MostPopularTieKeepsEarliest(t *testing.T) {
	svc, mocks := setupTestStatsService()
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	seedUser(mocks, "user-001", "a@example.com", "secret123")
	seedUser(mocks, "user-002", "b@example.com", "secret123")

	// 两个班次 Pin 数并列，应保留最先达到最大值的班次
	seedShift(mocks, "shift-001", window, date(2024, 1, 1), model.ShiftTypeEarly)
	seedShift(mocks, "shift-002", window, date(2024, 1, 2), model.ShiftTypeEarly)
	seedPin(mocks, "user-001", "shift-001")
	seedPin(mocks, "user-002", "shift-001")
	seedPin(mocks, "user-001", "shift-002")
	seedPin(mocks, "user-002", "shift-002")

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if len(result.WindowStatistics) != 1 {
		t.Fatalf("期望1个窗口，实际=%d", len(result.WindowStatistics))
	}
	most := result.WindowStatistics[0].MostPopularShift
	if most == nil {
		t.Fatal("期望MostPopularShift非空")
	}
	if most.ID != "shift-001" {
		t.Errorf("并列时应保留最先出现的班次，实际=%s", most.ID)
	}
}

func TestStatsService_Dashboard_AllZeroPinsNoMostPopular(t *testing.T) {
	svc, mocks := setupTestStatsService()
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	seedShift(mocks, "shift-001", window, date(2024, 1, 1), model.ShiftTypeEarly)
	seedShift(mocks, "shift-002", window, date(2024, 1, 2), model.ShiftTypeEarly)

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if result.WindowStatistics[0].MostPopularShift != nil {
		t.Error("全零 Pin 时不应有最热班次")
	}
}

func TestStatsService_Dashboard_SummaryAndTopUsers(t *testing.T) {
	svc, mocks := setupTestStatsService()
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	seedUser(mocks, "user-001", "a@example.com", "secret123")
	seedUser(mocks, "user-002", "b@example.com", "secret123")
	seedUser(mocks, "user-003", "c@example.com", "secret123")
	seedShift(mocks, "shift-001", window, date(2024, 1, 1), model.ShiftTypeEarly)
	seedShift(mocks, "shift-002", window, date(2024, 1, 2), model.ShiftTypeEarly)
	seedPin(mocks, "user-002", "shift-001")
	seedPin(mocks, "user-002", "shift-002")
	seedPin(mocks, "user-001", "shift-001")

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}

	// 3 Pin / 3 用户 = 1.00
	if result.Summary.AveragePinsPerUser != 1.0 {
		t.Errorf("期望AveragePinsPerUser=1.0，实际=%v", result.Summary.AveragePinsPerUser)
	}
	if len(result.TopUsers) != 3 {
		t.Fatalf("期望3个排名条目，实际=%d", len(result.TopUsers))
	}
	if result.TopUsers[0].ID != "user-002" || result.TopUsers[0].PinCount != 2 {
		t.Errorf("排名第一应为user-002(2)，实际=%s(%d)", result.TopUsers[0].ID, result.TopUsers[0].PinCount)
	}
}

func TestStatsService_Dashboard_Empty(t *testing.T) {
	svc, _ := setupTestStatsService()

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("空数据 Dashboard 应成功: %v", err)
	}
	// 无用户时平均值为 0 而非 NaN
	if result.Summary.AveragePinsPerUser != 0 {
		t.Errorf("期望AveragePinsPerUser=0，实际=%v", result.Summary.AveragePinsPerUser)
	}
	if result.Summary.TotalShifts != 0 || result.Summary.TotalPins != 0 {
		t.Errorf("空数据汇总应全为0: %+v", result.Summary)
	}
}

func TestStatsService_Dashboard_AveragePinsRounding(t *testing.T) {
	svc, mocks := setupTestStatsService()
	window := seedWindow(mocks, "win-001", "第一周", date(2024, 1, 1), date(2024, 1, 31))
	seedUser(mocks, "user-001", "a@example.com", "secret123")
	seedUser(mocks, "user-002", "b@example.com", "secret123")
	seedUser(mocks, "user-003", "c@example.com", "secret123")
	seedShift(mocks, "shift-001", window, date(2024, 1, 1), model.ShiftTypeEarly)
	seedPin(mocks, "user-001", "shift-001")

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	// 1/3 = 0.333... → 0.33
	if result.Summary.AveragePinsPerUser != 0.33 {
		t.Errorf("期望AveragePinsPerUser=0.33，实际=%v", result.Summary.AveragePinsPerUser)
	}
}

// [自证通过] internal/service/stats_service_test.go
