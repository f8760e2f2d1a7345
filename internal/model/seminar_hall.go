package model

// SeminarHall 研讨厅表 — 对应 seminar_halls（单行单资源）
type SeminarHall struct {
	HallID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"hall_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Capacity    int    `gorm:"not null;default:100"                           json:"capacity"`
	IsAvailable bool   `gorm:"not null;default:true"                          json:"is_available"`
	BaseModel
}

// TableName 指定表名
func (SeminarHall) TableName() string { return "seminar_halls" }
