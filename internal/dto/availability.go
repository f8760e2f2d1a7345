package dto

// ── 教师空闲时段模块 DTO ──

// FreeSlotResponse 教师某天的一个空闲时段
type FreeSlotResponse struct {
	TeacherID string `json:"teacher_id"`
	Day       string `json:"day"` // Monday ... Friday
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
