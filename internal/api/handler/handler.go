package handler

import "campus-hall/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Booking      *BookingHandler
	SlotRequest  *SlotRequestHandler
	Availability *AvailabilityHandler
	Export       *ExportHandler
	Notification *NotificationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(svc.Booking),
		SlotRequest:  NewSlotRequestHandler(svc.SlotRequest),
		Availability: NewAvailabilityHandler(svc.Availability),
		Export:       NewExportHandler(svc.Export),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
