package model

import "time"

// ── 预约状态 ──

const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// ── 申请人类别 ──

const (
	ClassStudent = "student"
	ClassTeacher = "teacher"
	ClassHOD     = "hod" // 系主任
)

// SeminarBooking 研讨厅预约表 — 对应 seminar_bookings
// 区间以自 0 点起的分钟数存储，半开语义 [start_min, end_min)
type SeminarBooking struct {
	BookingID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	RequesterID    string    `gorm:"type:uuid;not null"                             json:"requester_id"`
	RequesterClass string    `gorm:"type:varchar(20);not null"                      json:"requester_class"`
	Priority       int       `gorm:"type:smallint;not null"                         json:"priority"` // 创建时按类别固定，之后不再重算
	Date           string    `gorm:"type:varchar(10);not null"                      json:"date"`     // "2006-01-02"，同时充当日期锁的 key
	StartMin       int       `gorm:"type:smallint;not null"                         json:"start_min"`
	EndMin         int       `gorm:"type:smallint;not null"                         json:"end_min"`
	Purpose        string    `gorm:"type:text;not null"                             json:"purpose"`
	Status         string    `gorm:"type:varchar(10);not null;default:'pending'"    json:"status"`
	RequestedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"` // FCFS 同优先级决胜
	BaseModel
}

// TableName 指定表名
func (SeminarBooking) TableName() string { return "seminar_bookings" }
