package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-hall/internal/model"
	"campus-hall/internal/repository"
	"campus-hall/pkg/timeutil"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoBookings   = errors.New("该日期暂无预约记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
// 指定日期的全部预约导出为 Excel (.xlsx)，按开始时间升序；
// 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	ExportBookings(ctx context.Context, date string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeaders = []string{"开始", "结束", "申请人", "类别", "优先级", "状态", "用途", "申请时间"}

func (s *exportService) ExportBookings(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	bookings, err := s.repo.Booking.List(ctx, &date)
	if err != nil {
		s.logger.Error("查询预约失败", zap.String("date", date), zap.Error(err))
		return nil, "", err
	}
	if len(bookings) == 0 {
		return nil, "", ErrExportNoBookings
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartMin < bookings[j].StartMin
	})

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Bookings"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, b := range bookings {
		values := []interface{}{
			timeutil.MinutesToClock(b.StartMin),
			timeutil.MinutesToClock(b.EndMin),
			b.RequesterID,
			b.RequesterClass,
			b.Priority,
			statusLabel(b.Status),
			b.Purpose,
			b.RequestedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.logger.Error("写入单元格失败", zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("seminar-bookings-%s.xlsx", date)
	return &buf, filename, nil
}

func statusLabel(status string) string {
	switch status {
	case model.BookingStatusApproved:
		return "已批准"
	case model.BookingStatusRejected:
		return "已拒绝"
	default:
		return "待定"
	}
}
