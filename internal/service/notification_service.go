package service

import (
	"context"

	"go.uber.org/zap"

	"campus-hall/internal/model"
	"campus-hall/internal/repository"
)

// NotificationService 通知消息业务接口
// 实时推送走通知网关；这里提供落库通知的拉取与已读回执
type NotificationService interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	list, err := s.repo.Notification.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("列出通知失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.Notification.MarkRead(ctx, id, userID); err != nil {
		s.logger.Error("标记通知已读失败", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}
