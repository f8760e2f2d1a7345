package handler

import (
	"github.com/gin-gonic/gin"

	"campus-hall/internal/service"
	"campus-hall/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications 拉取当前用户的通知
// GET /api/v1/notifications?unread=true
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"

	list, err := h.notificationSvc.ListForUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// MarkNotificationRead 标记通知已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, userID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
