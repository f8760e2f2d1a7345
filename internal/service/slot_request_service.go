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

// ── 面谈时段申请模块业务错误 ──

var (
	ErrSlotRequestNotFound   = errors.New("面谈申请不存在")
	ErrSlotRequestNotPending = errors.New("面谈申请已处理，不可重复审批")
	ErrSlotTaken             = errors.New("该时段已被批准的申请占用")
	ErrSlotNoLongerAvailable = errors.New("该时段已不再可用")
)

// SlotRequestService 面谈时段申请业务接口
//
// 学生发起、教师审批。同一教师同一天是一个逻辑资源：
// 审批通过前会重新确认没有其他已批准申请占用重叠区间。
type SlotRequestService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequestRequest, studentID string) (*dto.SlotRequestResponse, error)
	ListForTeacher(ctx context.Context, teacherID string) ([]dto.SlotRequestResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.SlotRequestResponse, error)
	// UpdateStatus 教师审批自己收到的申请；approve 前重查冲突
	UpdateStatus(ctx context.Context, id, teacherID, status string) (*dto.SlotRequestResponse, error)
}

type slotRequestService struct {
	repo     *repository.Repository
	gateway  notify.Gateway
	slotLock *keyedMutex
	logger   *zap.Logger
}

// NewSlotRequestService 创建 SlotRequestService 实例
func NewSlotRequestService(repo *repository.Repository, gateway notify.Gateway, logger *zap.Logger) SlotRequestService {
	return &slotRequestService{
		repo:     repo,
		gateway:  gateway,
		slotLock: newKeyedMutex(),
		logger:   logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *slotRequestService) Create(ctx context.Context, req *dto.CreateSlotRequestRequest, studentID string) (*dto.SlotRequestResponse, error) {
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

	unlock := s.slotLock.Lock(req.TeacherID + ":" + req.Date)
	defer unlock()

	// 已批准申请占用重叠区间 → 拒绝提交
	taken, err := s.repo.SlotRequest.FindOverlapping(ctx, req.TeacherID, req.Date, startMin, endMin, model.BookingStatusApproved, "")
	if err != nil {
		s.logger.Error("查询已批准面谈申请失败", zap.Error(err))
		return nil, err
	}
	if len(taken) > 0 {
		return nil, ErrSlotTaken
	}

	sr := &model.SlotRequest{
		StudentID:   studentID,
		TeacherID:   req.TeacherID,
		Date:        req.Date,
		StartMin:    startMin,
		EndMin:      endMin,
		Purpose:     req.Purpose,
		StudentYear: req.StudentYear,
		IsStaff:     req.IsStaff,
		Priority:    SlotRequestPriority(req.IsStaff, req.StudentYear),
		Status:      model.BookingStatusPending,
	}

	if err := s.repo.SlotRequest.Create(ctx, sr); err != nil {
		s.logger.Error("创建面谈申请失败", zap.Error(err))
		return nil, err
	}

	return toSlotRequestResponse(sr), nil
}

// ────────────────────── ListForTeacher ──────────────────────

func (s *slotRequestService) ListForTeacher(ctx context.Context, teacherID string) ([]dto.SlotRequestResponse, error) {
	reqs, err := s.repo.SlotRequest.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("列出教师面谈申请失败", zap.Error(err))
		return nil, err
	}
	return toSlotRequestResponses(reqs), nil
}

// ────────────────────── ListForStudent ──────────────────────

func (s *slotRequestService) ListForStudent(ctx context.Context, studentID string) ([]dto.SlotRequestResponse, error) {
	reqs, err := s.repo.SlotRequest.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("列出学生面谈申请失败", zap.Error(err))
		return nil, err
	}
	return toSlotRequestResponses(reqs), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *slotRequestService) UpdateStatus(ctx context.Context, id, teacherID, status string) (*dto.SlotRequestResponse, error) {
	// 第一次读只为拿到锁 key（教师与日期创建后不变）
	sr, err := s.repo.SlotRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotRequestNotFound
		}
		s.logger.Error("查询面谈申请失败", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	unlock := s.slotLock.Lock(sr.TeacherID + ":" + sr.Date)
	defer unlock()

	// 锁内重读再校验：并发审批同一申请时只有先到者通过 pending 检查，
	// approved 不会被后到的 reject 改写
	sr, err = s.repo.SlotRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotRequestNotFound
		}
		s.logger.Error("查询面谈申请失败", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	// 只能审批发给自己的申请；对外表现与不存在一致
	if sr.TeacherID != teacherID {
		return nil, ErrSlotRequestNotFound
	}
	if sr.Status != model.BookingStatusPending {
		return nil, ErrSlotRequestNotPending
	}

	// 批准前重查：提交后可能已有其他申请被批准占用该区间
	if status == model.BookingStatusApproved {
		conflicts, err := s.repo.SlotRequest.FindOverlapping(ctx, sr.TeacherID, sr.Date, sr.StartMin, sr.EndMin, model.BookingStatusApproved, sr.RequestID)
		if err != nil {
			s.logger.Error("查询冲突面谈申请失败", zap.Error(err))
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, ErrSlotNoLongerAvailable
		}
	}

	if err := s.repo.SlotRequest.UpdateStatus(ctx, sr.RequestID, status); err != nil {
		s.logger.Error("更新面谈申请状态失败", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}
	sr.Status = status

	s.notifySlotRequestChange(ctx, sr)

	return toSlotRequestResponse(sr), nil
}

// ── 内部辅助方法 ──

func (s *slotRequestService) notifySlotRequestChange(ctx context.Context, sr *model.SlotRequest) {
	relatedType := "slot_request"
	n := &model.Notification{
		UserID:      sr.StudentID,
		Type:        notify.KindSlotRequestStatus,
		Title:       "面谈申请状态更新",
		Content:     fmt.Sprintf("您 %s %s-%s 的面谈申请当前状态：%s", sr.Date, timeutil.MinutesToClock(sr.StartMin), timeutil.MinutesToClock(sr.EndMin), sr.Status),
		RelatedType: &relatedType,
		RelatedID:   &sr.RequestID,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("通知落库失败", zap.String("request_id", sr.RequestID), zap.Error(err))
	}

	event := notify.Event{
		Kind:        notify.KindSlotRequestStatus,
		BookingID:   sr.RequestID,
		RequesterID: sr.StudentID,
		NewStatus:   sr.Status,
	}
	if err := s.gateway.Notify(ctx, sr.StudentID, event); err != nil {
		s.logger.Warn("通知推送失败", zap.String("request_id", sr.RequestID), zap.Error(err))
	}
}

func toSlotRequestResponse(sr *model.SlotRequest) *dto.SlotRequestResponse {
	return &dto.SlotRequestResponse{
		ID:          sr.RequestID,
		StudentID:   sr.StudentID,
		TeacherID:   sr.TeacherID,
		Date:        sr.Date,
		StartTime:   timeutil.MinutesToClock(sr.StartMin),
		EndTime:     timeutil.MinutesToClock(sr.EndMin),
		Purpose:     sr.Purpose,
		StudentYear: sr.StudentYear,
		IsStaff:     sr.IsStaff,
		Priority:    sr.Priority,
		Status:      sr.Status,
		RequestedAt: sr.RequestedAt.UTC().Format(time.RFC3339),
	}
}

func toSlotRequestResponses(reqs []model.SlotRequest) []dto.SlotRequestResponse {
	result := make([]dto.SlotRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, *toSlotRequestResponse(&reqs[i]))
	}
	return result
}
