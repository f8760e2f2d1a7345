package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-hall/internal/model"
)

// SeminarHallRepository 研讨厅数据访问接口（单资源）
type SeminarHallRepository interface {
	// Get 返回唯一的研讨厅记录
	Get(ctx context.Context) (*model.SeminarHall, error)
	Update(ctx context.Context, hall *model.SeminarHall) error
}

type seminarHallRepo struct {
	db *gorm.DB
}

// NewSeminarHallRepo 创建 SeminarHallRepository 实例
func NewSeminarHallRepo(db *gorm.DB) SeminarHallRepository {
	return &seminarHallRepo{db: db}
}

func (r *seminarHallRepo) Get(ctx context.Context) (*model.SeminarHall, error) {
	var hall model.SeminarHall
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&hall).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *seminarHallRepo) Update(ctx context.Context, hall *model.SeminarHall) error {
	return r.db.WithContext(ctx).Save(hall).Error
}
