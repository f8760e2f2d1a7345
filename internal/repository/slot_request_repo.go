package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-hall/internal/model"
)

// SlotRequestRepository 面谈时段申请数据访问接口
type SlotRequestRepository interface {
	Create(ctx context.Context, req *model.SlotRequest) error
	GetByID(ctx context.Context, id string) (*model.SlotRequest, error)
	// ListByTeacher 教师收到的申请，priority DESC, requested_at ASC
	ListByTeacher(ctx context.Context, teacherID string) ([]model.SlotRequest, error)
	// ListByStudent 学生发出的申请，requested_at DESC
	ListByStudent(ctx context.Context, studentID string) ([]model.SlotRequest, error)
	// FindOverlapping 同一教师同一天与 [startMin, endMin) 重叠的指定状态申请；excludeID 非空时排除该记录
	FindOverlapping(ctx context.Context, teacherID, date string, startMin, endMin int, status, excludeID string) ([]model.SlotRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type slotRequestRepo struct {
	db *gorm.DB
}

// NewSlotRequestRepo 创建 SlotRequestRepository 实例
func NewSlotRequestRepo(db *gorm.DB) SlotRequestRepository {
	return &slotRequestRepo{db: db}
}

func (r *slotRequestRepo) Create(ctx context.Context, req *model.SlotRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *slotRequestRepo) GetByID(ctx context.Context, id string) (*model.SlotRequest, error) {
	var req model.SlotRequest
	err := r.db.WithContext(ctx).
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *slotRequestRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.SlotRequest, error) {
	var reqs []model.SlotRequest
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("priority DESC, requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *slotRequestRepo) ListByStudent(ctx context.Context, studentID string) ([]model.SlotRequest, error) {
	var reqs []model.SlotRequest
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("requested_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *slotRequestRepo) FindOverlapping(ctx context.Context, teacherID, date string, startMin, endMin int, status, excludeID string) ([]model.SlotRequest, error) {
	var reqs []model.SlotRequest
	db := r.db.WithContext(ctx).
		Where("teacher_id = ? AND date = ? AND status = ? AND start_min < ? AND end_min > ?",
			teacherID, date, status, endMin, startMin)
	if excludeID != "" {
		db = db.Where("request_id <> ?", excludeID)
	}
	err := db.Order("priority DESC, requested_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *slotRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.SlotRequest{}).
		Where("request_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
