package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Booking      SeminarBookingRepository
	Hall         SeminarHallRepository
	SlotRequest  SlotRequestRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Booking:      NewSeminarBookingRepo(db),
		Hall:         NewSeminarHallRepo(db),
		SlotRequest:  NewSlotRequestRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
