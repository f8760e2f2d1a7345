package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-hall/config"
	"campus-hall/internal/api/handler"
	"campus-hall/internal/api/middleware"
	"campus-hall/pkg/jwt"
	"campus-hall/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// 研讨厅预约模块
		seminar := v1.Group("/seminar")
		{
			seminar.GET("/hall", h.Booking.GetHall)
			seminar.GET("/bookings", h.Booking.ListBookings)
			seminar.POST("/bookings", middleware.RateLimit(rdb, 10, time.Minute), h.Booking.SubmitBooking)
			seminar.DELETE("/bookings/:id", h.Booking.CancelBooking)
			seminar.POST("/process-pending", middleware.RoleAuth("admin", "hod"), h.Booking.ProcessPending)
		}

		// 面谈时段申请模块
		slotRequests := v1.Group("/slot-requests")
		{
			slotRequests.POST("", middleware.RoleAuth("student"), h.SlotRequest.CreateSlotRequest)
			slotRequests.GET("/teacher", middleware.RoleAuth("teacher"), h.SlotRequest.ListTeacherRequests)
			slotRequests.GET("/student", middleware.RoleAuth("student"), h.SlotRequest.ListStudentRequests)
			slotRequests.PATCH("/:id/status", middleware.RoleAuth("teacher"), h.SlotRequest.UpdateSlotRequestStatus)
		}

		// 教师空闲时段模块
		v1.GET("/availability/:teacherId/:day", h.Availability.GetFreeSlots)

		// 通知模块
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.PUT("/:id/read", h.Notification.MarkNotificationRead)
		}

		// 导出模块
		v1.GET("/export/bookings", middleware.RoleAuth("admin", "hod"), h.Export.ExportBookings)
	}

	return r
}
