package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-hall/internal/service"
	"campus-hall/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBookings 导出指定日期的预约为 Excel
// GET /api/v1/export/bookings?date=2006-01-02
func (h *ExportHandler) ExportBookings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 参数不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportBookings(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoBookings):
			response.NotFound(c, 19001, "该日期暂无预约记录")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.Error(c, http.StatusInternalServerError, 19002, "生成 Excel 文件失败")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
