package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-hall/internal/model"
)

// SeminarBookingRepository 研讨厅预约数据访问接口
// 所有读取返回快照值，写入按记录原子生效
type SeminarBookingRepository interface {
	Create(ctx context.Context, booking *model.SeminarBooking) error
	GetByID(ctx context.Context, id string) (*model.SeminarBooking, error)
	// List 返回全部预约，date 非 nil 时按日期过滤；排序 requested_at ASC, priority DESC
	List(ctx context.Context, date *string) ([]model.SeminarBooking, error)
	// ListByDateAndStatus 按仲裁序返回（priority DESC, requested_at ASC）
	ListByDateAndStatus(ctx context.Context, date, status string) ([]model.SeminarBooking, error)
	// FindOverlapping 查询指定日期与 [startMin, endMin) 半开区间重叠的指定状态记录，按仲裁序返回
	FindOverlapping(ctx context.Context, date string, startMin, endMin int, status string) ([]model.SeminarBooking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type seminarBookingRepo struct {
	db *gorm.DB
}

// NewSeminarBookingRepo 创建 SeminarBookingRepository 实例
func NewSeminarBookingRepo(db *gorm.DB) SeminarBookingRepository {
	return &seminarBookingRepo{db: db}
}

func (r *seminarBookingRepo) Create(ctx context.Context, booking *model.SeminarBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *seminarBookingRepo) GetByID(ctx context.Context, id string) (*model.SeminarBooking, error) {
	var booking model.SeminarBooking
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *seminarBookingRepo) List(ctx context.Context, date *string) ([]model.SeminarBooking, error) {
	var bookings []model.SeminarBooking
	db := r.db.WithContext(ctx)
	if date != nil {
		db = db.Where("date = ?", *date)
	}
	err := db.Order("requested_at ASC, priority DESC").Find(&bookings).Error
	return bookings, err
}

func (r *seminarBookingRepo) ListByDateAndStatus(ctx context.Context, date, status string) ([]model.SeminarBooking, error) {
	var bookings []model.SeminarBooking
	err := r.db.WithContext(ctx).
		Where("date = ? AND status = ?", date, status).
		Order("priority DESC, requested_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *seminarBookingRepo) FindOverlapping(ctx context.Context, date string, startMin, endMin int, status string) ([]model.SeminarBooking, error) {
	var bookings []model.SeminarBooking
	// 半开区间重叠: start_min < endMin AND startMin < end_min
	err := r.db.WithContext(ctx).
		Where("date = ? AND status = ? AND start_min < ? AND end_min > ?", date, status, endMin, startMin).
		Order("priority DESC, requested_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *seminarBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.SeminarBooking{}).
		Where("booking_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *seminarBookingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("booking_id = ?", id).
		Delete(&model.SeminarBooking{}).Error
}
