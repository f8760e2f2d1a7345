package dto

// ── 面谈时段申请模块 DTO ──

// CreateSlotRequestRequest 学生发起面谈申请
type CreateSlotRequestRequest struct {
	TeacherID   string `json:"teacher_id"   binding:"required,uuid"`
	Date        string `json:"date"         binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time"   binding:"required"`
	EndTime     string `json:"end_time"     binding:"required"`
	Purpose     string `json:"purpose"      binding:"required,min=1,max=500"`
	StudentYear int    `json:"student_year" binding:"required,min=1,max=4"`
	IsStaff     bool   `json:"is_staff"`
}

// UpdateSlotRequestStatusRequest 教师审批
type UpdateSlotRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// SlotRequestResponse 面谈申请响应
type SlotRequestResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	TeacherID   string `json:"teacher_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Purpose     string `json:"purpose"`
	StudentYear int    `json:"student_year"`
	IsStaff     bool   `json:"is_staff"`
	Priority    int    `json:"priority"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
}
