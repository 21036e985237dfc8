package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/config"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/api/handler"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/api/middleware"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/identity"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/policy"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/service"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/redis"
)

// 请求体大小上限（事件报告可携带附件 URL，但不接收文件本体）
const maxBodyBytes = 1 << 20 // 1 MiB

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, provider identity.Provider, directory service.DirectoryService, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rdb, 120, time.Minute))
	v1.Use(middleware.BearerAuth(provider, directory))
	{
		// 当前登录者身份
		v1.GET("/whoami", h.Auth.Whoami)

		// 站点模块（读全员可见，写仅 admin）
		sites := v1.Group("/sites")
		{
			sites.GET("", h.Site.ListSites)
			sites.GET("/:id", h.Site.GetSite)
			sites.POST("", middleware.Require(policy.ActionSiteWrite), h.Site.CreateSite)
			sites.PUT("/:id", middleware.Require(policy.ActionSiteWrite), h.Site.UpdateSite)
			sites.DELETE("/:id", middleware.Require(policy.ActionSiteWrite), h.Site.DeleteSite)
		}

		// 用户模块（读全员可见，写仅 admin）
		users := v1.Group("/users")
		{
			users.GET("", h.User.ListUsers)
			users.GET("/:id", h.User.GetUser)
			users.POST("", middleware.Require(policy.ActionUserWrite), h.User.CreateUser)
			users.PUT("/:id", middleware.Require(policy.ActionUserWrite), h.User.UpdateUser)
			users.DELETE("/:id", middleware.Require(policy.ActionUserWrite), h.User.DeleteUser)
		}

		// 班次模块（读按角色裁剪可见范围，写仅 admin）
		shifts := v1.Group("/shifts")
		{
			shifts.GET("", h.Shift.ListShifts)
			shifts.GET("/:id", h.Shift.GetShift)
			shifts.POST("", middleware.Require(policy.ActionShiftWrite), h.Shift.CreateShift)
			shifts.PUT("/:id", middleware.Require(policy.ActionShiftWrite), h.Shift.UpdateShift)
			shifts.DELETE("/:id", middleware.Require(policy.ActionShiftWrite), h.Shift.DeleteShift)
		}

		// 考勤模块（签到/签退仅 guard，查询按角色裁剪）
		attendance := v1.Group("/attendance")
		{
			attendance.GET("", h.Attendance.ListAttendance)
			attendance.GET("/:id", h.Attendance.GetAttendance)
			attendance.POST("/check-in", middleware.Require(policy.ActionAttendanceCheck), h.Attendance.CheckIn)
			attendance.POST("/check-out", middleware.Require(policy.ActionAttendanceCheck), h.Attendance.CheckOut)
			attendance.PUT("/:id", middleware.Require(policy.ActionAttendanceReview), h.Attendance.UpdateAttendanceStatus)
		}

		// 事件报告模块（创建仅 guard，状态流转 admin/supervisor，删除仅 admin）
		incidents := v1.Group("/incidents")
		{
			incidents.GET("", h.Incident.ListIncidents)
			incidents.GET("/:id", h.Incident.GetIncident)
			incidents.POST("", middleware.Require(policy.ActionIncidentCreate), h.Incident.CreateIncident)
			incidents.POST("/:id/status", middleware.Require(policy.ActionIncidentReview), h.Incident.UpdateStatus)
			incidents.DELETE("/:id", middleware.Require(policy.ActionIncidentDelete), h.Incident.DeleteIncident)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
