package service

import (
	"go.uber.org/zap"

	"campus-hall/internal/notify"
	"campus-hall/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Booking      BookingService
	SlotRequest  SlotRequestService
	Availability AvailabilityService
	Export       ExportService
	Notification NotificationService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	gateway notify.Gateway,
	timetable TimetableSource,
	logger *zap.Logger,
) *Service {
	return &Service{
		Booking:      NewBookingService(repo, gateway, logger),
		SlotRequest:  NewSlotRequestService(repo, gateway, logger),
		Availability: NewAvailabilityService(timetable, logger),
		Export:       NewExportService(repo, logger),
		Notification: NewNotificationService(repo, logger),
	}
}
