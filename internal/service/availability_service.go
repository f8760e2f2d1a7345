package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campus-hall/internal/dto"
	"campus-hall/pkg/timeutil"
)

// ── 可用性模块业务错误 ──

var ErrInvalidDay = errors.New("星期几非法，应为 Monday~Friday")

// 标准可约时段网格（避开大课间与午休）
var standardSlots = [][2]string{
	{"8:00", "8:55"},
	{"8:55", "9:50"},
	{"10:10", "11:05"},
	{"11:05", "12:00"},
	{"13:00", "13:55"},
	{"13:55", "14:50"},
	{"15:10", "16:00"},
	{"16:00", "16:55"},
}

var weekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
}

// AvailabilityService 教师空闲时段业务接口
// 以标准时段网格减去课表忙碌区间得出可约时段
type AvailabilityService interface {
	GetFreeSlots(ctx context.Context, teacherID, day string) ([]dto.FreeSlotResponse, error)
}

type availabilityService struct {
	timetable TimetableSource
	logger    *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(timetable TimetableSource, logger *zap.Logger) AvailabilityService {
	return &availabilityService{timetable: timetable, logger: logger}
}

func (s *availabilityService) GetFreeSlots(_ context.Context, teacherID, day string) ([]dto.FreeSlotResponse, error) {
	if !weekdays[day] {
		return nil, ErrInvalidDay
	}

	busy := s.timetable.Busy(teacherID, day)

	free := make([]dto.FreeSlotResponse, 0, len(standardSlots))
	for _, slot := range standardSlots {
		// 网格常量，解析不会失败
		startMin, _ := timeutil.ToMinutes(slot[0])
		endMin, _ := timeutil.ToMinutes(slot[1])

		conflict := false
		for _, iv := range busy {
			if timeutil.Overlaps(startMin, endMin, iv.StartMin, iv.EndMin) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		free = append(free, dto.FreeSlotResponse{
			TeacherID: teacherID,
			Day:       day,
			StartTime: slot[0],
			EndTime:   slot[1],
		})
	}

	return free, nil
}
