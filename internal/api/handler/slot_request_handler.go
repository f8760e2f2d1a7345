package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-hall/internal/dto"
	"campus-hall/internal/service"
	"campus-hall/pkg/response"
	"campus-hall/pkg/timeutil"
)

// SlotRequestHandler 面谈时段申请模块 HTTP 处理器
type SlotRequestHandler struct {
	slotRequestSvc service.SlotRequestService
}

// NewSlotRequestHandler 创建 SlotRequestHandler
func NewSlotRequestHandler(slotRequestSvc service.SlotRequestService) *SlotRequestHandler {
	return &SlotRequestHandler{slotRequestSvc: slotRequestSvc}
}

// CreateSlotRequest 学生发起面谈申请
// POST /api/v1/slot-requests
func (h *SlotRequestHandler) CreateSlotRequest(c *gin.Context) {
	var req dto.CreateSlotRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.slotRequestSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleSlotRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ListTeacherRequests 教师收到的申请
// GET /api/v1/slot-requests/teacher
func (h *SlotRequestHandler) ListTeacherRequests(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.slotRequestSvc.ListForTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListStudentRequests 学生发出的申请
// GET /api/v1/slot-requests/student
func (h *SlotRequestHandler) ListStudentRequests(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.slotRequestSvc.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// UpdateSlotRequestStatus 教师审批申请
// PATCH /api/v1/slot-requests/:id/status
func (h *SlotRequestHandler) UpdateSlotRequestStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.UpdateSlotRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.slotRequestSvc.UpdateStatus(c.Request.Context(), id, teacherID, req.Status)
	if err != nil {
		h.handleSlotRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSlotRequestError 统一处理面谈申请模块业务错误
func (h *SlotRequestHandler) handleSlotRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotRequestNotFound):
		response.NotFound(c, 17001, "面谈申请不存在")
	case errors.Is(err, service.ErrSlotTaken):
		response.BadRequest(c, 17002, "该时段已被批准的申请占用")
	case errors.Is(err, service.ErrSlotNoLongerAvailable):
		response.BadRequest(c, 17003, "该时段已不再可用")
	case errors.Is(err, service.ErrSlotRequestNotPending):
		response.BadRequest(c, 17004, "面谈申请已处理，不可重复审批")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 16004, "开始时间必须早于结束时间")
	case errors.Is(err, timeutil.ErrInvalidTimeFormat):
		response.BadRequest(c, 16005, "时间格式非法，应为 H:MM 或 HH:MM")
	default:
		response.InternalError(c)
	}
}
