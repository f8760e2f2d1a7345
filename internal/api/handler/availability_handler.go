package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-hall/internal/service"
	"campus-hall/pkg/response"
)

// AvailabilityHandler 教师空闲时段模块 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// GetFreeSlots 获取教师某天的空闲时段
// GET /api/v1/availability/:teacherId/:day
func (h *AvailabilityHandler) GetFreeSlots(c *gin.Context) {
	teacherID := c.Param("teacherId")
	day := c.Param("day")
	if teacherID == "" || day == "" {
		response.BadRequest(c, 10001, "教师ID与星期几不能为空")
		return
	}

	slots, err := h.availabilitySvc.GetFreeSlots(c.Request.Context(), teacherID, day)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDay) {
			response.BadRequest(c, 18001, "星期几非法，应为 Monday~Friday")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": slots})
}
