package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"campus-hall/internal/model"
	"campus-hall/internal/repository"
)

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	notificationRepo := newMockNotificationRepo()
	repo := &repository.Repository{
		Booking:      newMockBookingRepo(),
		Hall:         newMockHallRepo(),
		SlotRequest:  newMockSlotRequestRepo(),
		Notification: notificationRepo,
	}
	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	_ = notificationRepo.Create(ctx, &model.Notification{UserID: "u1", Type: "booking_status", Title: "t", Content: "c"})
	_ = notificationRepo.Create(ctx, &model.Notification{UserID: "u1", Type: "booking_status", Title: "t", Content: "c"})
	_ = notificationRepo.Create(ctx, &model.Notification{UserID: "u2", Type: "booking_status", Title: "t", Content: "c"})

	list, err := svc.ListForUser(ctx, "u1", false)
	if err != nil {
		t.Fatalf("ListForUser 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("u1 应有 2 条通知, got %d", len(list))
	}

	if err := svc.MarkRead(ctx, list[0].NotificationID, "u1"); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}

	unread, err := svc.ListForUser(ctx, "u1", true)
	if err != nil {
		t.Fatalf("ListForUser 应成功: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("已读过滤后应剩 1 条, got %d", len(unread))
	}

	// 只能标记自己的通知；他人标记不生效
	other, _ := svc.ListForUser(ctx, "u2", true)
	if err := svc.MarkRead(ctx, other[0].NotificationID, "u1"); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	stillUnread, _ := svc.ListForUser(ctx, "u2", true)
	if len(stillUnread) != 1 {
		t.Fatalf("他人标记不应生效, got %d", len(stillUnread))
	}
}
