package model

import "time"

// SlotRequest 教师面谈时段申请表 — 对应 slot_requests
// 学生向教师发起的面谈预约，由教师审批；同一教师同一天视为一个逻辑资源
type SlotRequest struct {
	RequestID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	StudentID   string    `gorm:"type:uuid;not null"                             json:"student_id"`
	TeacherID   string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Date        string    `gorm:"type:varchar(10);not null"                      json:"date"` // "2006-01-02"
	StartMin    int       `gorm:"type:smallint;not null"                         json:"start_min"`
	EndMin      int       `gorm:"type:smallint;not null"                         json:"end_min"`
	Purpose     string    `gorm:"type:text;not null"                             json:"purpose"`
	StudentYear int       `gorm:"type:smallint;not null"                         json:"student_year"` // 1-4
	IsStaff     bool      `gorm:"not null;default:false"                         json:"is_staff"`
	Priority    int       `gorm:"not null;default:0"                             json:"priority"`
	Status      string    `gorm:"type:varchar(10);not null;default:'pending'"    json:"status"`
	RequestedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	BaseModel
}

// TableName 指定表名
func (SlotRequest) TableName() string { return "slot_requests" }
