package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-hall/internal/dto"
	"campus-hall/internal/model"
	"campus-hall/internal/notify"
	"campus-hall/internal/repository"
	"campus-hall/pkg/timeutil"
)

// ── 研讨厅预约模块业务错误 ──

var (
	ErrBookingNotFound       = errors.New("预约不存在")
	ErrInvalidRequesterClass = errors.New("申请人类别非法")
	ErrInvalidTimeRange      = errors.New("开始时间必须早于结束时间")
	ErrSlotUnavailable       = errors.New("该时段已被占用")
	ErrHallUnavailable       = errors.New("研讨厅当前不可预约")
)

// BookingService 研讨厅预约仲裁接口
//
// 状态机：pending → approved / rejected；approved 只能被取消（删除），
// 不会回退为 pending；rejected 为终态。
// 全局不变量：同一日期内 approved 预约的区间两两不相交。
type BookingService interface {
	// Submit 提交预约：与已批准预约冲突直接拒绝（不落库）；
	// 与待定预约冲突则入队等待仲裁；否则立即批准
	Submit(ctx context.Context, req *dto.SubmitBookingRequest, requesterID string) (*dto.BookingResponse, error)
	// ProcessPending 对指定日期的待定预约做一次幂等的批量仲裁，返回状态发生变化的记录
	ProcessPending(ctx context.Context, date string) ([]dto.BookingResponse, error)
	// Cancel 取消预约；被取消的是已批准预约时，顺位提拔一条与释放区间重叠的待定预约
	Cancel(ctx context.Context, id string) error
	// List 列出预约，date 为空串时不过滤
	List(ctx context.Context, date string) ([]dto.BookingResponse, error)
	// GetHall 返回研讨厅信息
	GetHall(ctx context.Context) (*dto.HallResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	gateway  notify.Gateway
	dateLock *keyedMutex
	logger   *zap.Logger
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(repo *repository.Repository, gateway notify.Gateway, logger *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		gateway:  gateway,
		dateLock: newKeyedMutex(),
		logger:   logger,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *bookingService) Submit(ctx context.Context, req *dto.SubmitBookingRequest, requesterID string) (*dto.BookingResponse, error) {
	// 1. 校验类别与区间
	priority, ok := PriorityOf(req.RequesterClass)
	if !ok {
		return nil, ErrInvalidRequesterClass
	}

	startMin, err := timeutil.ToMinutes(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := timeutil.ToMinutes(req.EndTime)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, ErrInvalidTimeRange
	}

	// 2. 研讨厅存在性与可用性
	hall, err := s.repo.Hall.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallUnavailable
		}
		s.logger.Error("查询研讨厅失败", zap.Error(err))
		return nil, err
	}
	if !hall.IsAvailable {
		return nil, ErrHallUnavailable
	}

	// 同一日期的「读-判-写」串行执行，防止并发提交同时自动批准重叠区间
	unlock := s.dateLock.Lock(req.Date)
	defer unlock()

	// 3. 与已批准预约冲突 → 直接拒绝，不落库排队
	approved, err := s.repo.Booking.FindOverlapping(ctx, req.Date, startMin, endMin, model.BookingStatusApproved)
	if err != nil {
		s.logger.Error("查询已批准预约失败", zap.Error(err))
		return nil, err
	}
	if len(approved) > 0 {
		return nil, ErrSlotUnavailable
	}

	// 4. 无任何待定竞争时立即批准，否则入队等待批量仲裁
	pending, err := s.repo.Booking.FindOverlapping(ctx, req.Date, startMin, endMin, model.BookingStatusPending)
	if err != nil {
		s.logger.Error("查询待定预约失败", zap.Error(err))
		return nil, err
	}

	status := model.BookingStatusApproved
	if len(pending) > 0 {
		status = model.BookingStatusPending
	}

	booking := &model.SeminarBooking{
		RequesterID:    requesterID,
		RequesterClass: req.RequesterClass,
		Priority:       priority,
		Date:           req.Date,
		StartMin:       startMin,
		EndMin:         endMin,
		Purpose:        req.Purpose,
		Status:         status,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.logger.Error("创建预约失败", zap.Error(err))
		return nil, err
	}

	if status == model.BookingStatusApproved {
		s.notifyStatusChange(ctx, booking)
	}

	return toBookingResponse(booking), nil
}

// ────────────────────── ProcessPending ──────────────────────

// 贪心扫描：待定记录按优先级降序、同优先级按申请时间升序逐条检查，
// 与工作集（当日全部已批准区间为种子）无冲突则批准并计入工作集，否则拒绝。
// 同一日期内高优先级必然赢得争用时段，同优先级先到者胜，结果与调用时机无关。
func (s *bookingService) ProcessPending(ctx context.Context, date string) ([]dto.BookingResponse, error) {
	unlock := s.dateLock.Lock(date)
	defer unlock()

	pending, err := s.repo.Booking.ListByDateAndStatus(ctx, date, model.BookingStatusPending)
	if err != nil {
		s.logger.Error("查询待定预约失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	sortByArbitrationOrder(pending)

	approved, err := s.repo.Booking.ListByDateAndStatus(ctx, date, model.BookingStatusApproved)
	if err != nil {
		s.logger.Error("查询已批准预约失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	type interval struct{ start, end int }
	working := make([]interval, 0, len(approved)+len(pending))
	for _, b := range approved {
		working = append(working, interval{b.StartMin, b.EndMin})
	}

	processed := make([]dto.BookingResponse, 0, len(pending))
	for i := range pending {
		b := &pending[i]

		conflict := false
		for _, iv := range working {
			if timeutil.Overlaps(b.StartMin, b.EndMin, iv.start, iv.end) {
				conflict = true
				break
			}
		}

		newStatus := model.BookingStatusApproved
		if conflict {
			newStatus = model.BookingStatusRejected
		}

		if err := s.repo.Booking.UpdateStatus(ctx, b.BookingID, newStatus); err != nil {
			s.logger.Error("更新预约状态失败", zap.String("booking_id", b.BookingID), zap.Error(err))
			return nil, err
		}
		b.Status = newStatus

		if !conflict {
			working = append(working, interval{b.StartMin, b.EndMin})
		}

		s.notifyStatusChange(ctx, b)
		processed = append(processed, *toBookingResponse(b))
	}

	return processed, nil
}

// ────────────────────── Cancel ──────────────────────

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	// 第一次读只为拿到日期锁的 key；日期创建后不变
	booking, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("查询预约失败", zap.String("booking_id", id), zap.Error(err))
		return err
	}

	unlock := s.dateLock.Lock(booking.Date)
	defer unlock()

	// 锁内重读：并发取消同一条预约时，后到者在这里发现记录已删除，
	// 不会凭锁外的旧快照重复提拔
	booking, err = s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("查询预约失败", zap.String("booking_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		s.logger.Error("删除预约失败", zap.String("booking_id", id), zap.Error(err))
		return err
	}

	// 释放的是已批准时段 → 只提拔与该区间重叠、排位最高的一条待定预约，
	// 其余保持待定，留给后续 ProcessPending 或下一次取消继续消化
	if booking.Status != model.BookingStatusApproved {
		return nil
	}

	candidates, err := s.repo.Booking.FindOverlapping(ctx, booking.Date, booking.StartMin, booking.EndMin, model.BookingStatusPending)
	if err != nil {
		s.logger.Error("查询待定预约失败", zap.String("date", booking.Date), zap.Error(err))
		return err
	}
	if len(candidates) == 0 {
		return nil
	}
	sortByArbitrationOrder(candidates)

	next := &candidates[0]
	if err := s.repo.Booking.UpdateStatus(ctx, next.BookingID, model.BookingStatusApproved); err != nil {
		s.logger.Error("提拔待定预约失败", zap.String("booking_id", next.BookingID), zap.Error(err))
		return err
	}
	next.Status = model.BookingStatusApproved
	s.notifyStatusChange(ctx, next)

	return nil
}

// ────────────────────── List ──────────────────────

func (s *bookingService) List(ctx context.Context, date string) ([]dto.BookingResponse, error) {
	var filter *string
	if date != "" {
		filter = &date
	}

	bookings, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出预约失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, *toBookingResponse(&bookings[i]))
	}

	return result, nil
}

// ────────────────────── GetHall ──────────────────────

func (s *bookingService) GetHall(ctx context.Context) (*dto.HallResponse, error) {
	hall, err := s.repo.Hall.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallUnavailable
		}
		s.logger.Error("查询研讨厅失败", zap.Error(err))
		return nil, err
	}

	return &dto.HallResponse{
		ID:          hall.HallID,
		Name:        hall.Name,
		Capacity:    hall.Capacity,
		IsAvailable: hall.IsAvailable,
	}, nil
}

// ── 内部辅助方法 ──

// notifyStatusChange 落库通知并推送事件。投递尽力而为：失败只记日志，
// 不回滚已提交的状态变更
func (s *bookingService) notifyStatusChange(ctx context.Context, b *model.SeminarBooking) {
	relatedType := "booking"
	n := &model.Notification{
		UserID:      b.RequesterID,
		Type:        notify.KindBookingStatus,
		Title:       "研讨厅预约状态更新",
		Content:     fmt.Sprintf("您 %s %s-%s 的研讨厅预约当前状态：%s", b.Date, timeutil.MinutesToClock(b.StartMin), timeutil.MinutesToClock(b.EndMin), b.Status),
		RelatedType: &relatedType,
		RelatedID:   &b.BookingID,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("通知落库失败", zap.String("booking_id", b.BookingID), zap.Error(err))
	}

	event := notify.Event{
		Kind:        notify.KindBookingStatus,
		BookingID:   b.BookingID,
		RequesterID: b.RequesterID,
		NewStatus:   b.Status,
	}
	if err := s.gateway.Notify(ctx, b.RequesterID, event); err != nil {
		s.logger.Warn("通知推送失败", zap.String("booking_id", b.BookingID), zap.Error(err))
	}
}

func toBookingResponse(b *model.SeminarBooking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:             b.BookingID,
		RequesterID:    b.RequesterID,
		RequesterClass: b.RequesterClass,
		Priority:       b.Priority,
		Date:           b.Date,
		StartTime:      timeutil.MinutesToClock(b.StartMin),
		EndTime:        timeutil.MinutesToClock(b.EndMin),
		Purpose:        b.Purpose,
		Status:         b.Status,
		RequestedAt:    b.RequestedAt.UTC().Format(time.RFC3339),
	}
}
