package dto

// ── 研讨厅预约模块 DTO ──

// SubmitBookingRequest 提交预约请求
type SubmitBookingRequest struct {
	RequesterClass string `json:"requester_class" binding:"required,oneof=student teacher hod"`
	Date           string `json:"date"            binding:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time"      binding:"required"` // "10:00"
	EndTime        string `json:"end_time"        binding:"required"` // "12:00"
	Purpose        string `json:"purpose"         binding:"required,min=1,max=500"`
}

// BookingListRequest 预约列表查询参数
type BookingListRequest struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ProcessPendingRequest 批量仲裁请求
type ProcessPendingRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// BookingResponse 预约信息响应
type BookingResponse struct {
	ID             string `json:"id"`
	RequesterID    string `json:"requester_id"`
	RequesterClass string `json:"requester_class"`
	Priority       int    `json:"priority"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Purpose        string `json:"purpose"`
	Status         string `json:"status"`
	RequestedAt    string `json:"requested_at"`
}

// HallResponse 研讨厅信息响应
type HallResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"is_available"`
}
