package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-hall/internal/dto"
	"campus-hall/internal/service"
	"campus-hall/pkg/response"
	"campus-hall/pkg/timeutil"
)

// BookingHandler 研讨厅预约模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// SubmitBooking 提交预约
// POST /api/v1/seminar/bookings
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req dto.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	requesterID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Submit(c.Request.Context(), &req, requesterID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// ListBookings 获取预约列表
// GET /api/v1/seminar/bookings?date=2006-01-02
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	bookings, err := h.bookingSvc.List(c.Request.Context(), req.Date)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": bookings})
}

// CancelBooking 取消预约
// DELETE /api/v1/seminar/bookings/:id
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预约ID不能为空")
		return
	}

	if err := h.bookingSvc.Cancel(c.Request.Context(), id); err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "预约已取消"})
}

// ProcessPending 批量仲裁指定日期的待定预约（维护操作）
// POST /api/v1/seminar/process-pending
func (h *BookingHandler) ProcessPending(c *gin.Context) {
	var req dto.ProcessPendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	processed, err := h.bookingSvc.ProcessPending(c.Request.Context(), req.Date)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, gin.H{"list": processed})
}

// GetHall 获取研讨厅信息
// GET /api/v1/seminar/hall
func (h *BookingHandler) GetHall(c *gin.Context) {
	hall, err := h.bookingSvc.GetHall(c.Request.Context())
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, hall)
}

// handleBookingError 统一处理预约模块业务错误
func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 16001, "预约不存在")
	case errors.Is(err, service.ErrSlotUnavailable):
		response.BadRequest(c, 16002, "该时段已被占用")
	case errors.Is(err, service.ErrInvalidRequesterClass):
		response.BadRequest(c, 16003, "申请人类别非法")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 16004, "开始时间必须早于结束时间")
	case errors.Is(err, timeutil.ErrInvalidTimeFormat):
		response.BadRequest(c, 16005, "时间格式非法，应为 H:MM 或 HH:MM")
	case errors.Is(err, service.ErrHallUnavailable):
		response.BadRequest(c, 16006, "研讨厅当前不可预约")
	default:
		response.InternalError(c)
	}
}
