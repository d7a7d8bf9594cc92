package model

import "time"

// Guideline 指南文档表 — 对应 guidelines
//
// 附件二选一约束：(FilePath, FileSize) 与 (ExternalLink, LinkType)
// 不会同时非空，由 Service 层在每次写入时维护。
type Guideline struct {
	ID           uint      `gorm:"primaryKey"                         json:"id"`
	DepartmentID uint      `gorm:"not null;index"                     json:"department_id"`
	Title        string    `gorm:"type:varchar(200);not null"         json:"title"`
	Description  string    `gorm:"type:text"                          json:"description,omitempty"`
	FilePath     *string   `gorm:"type:varchar(500)"                  json:"file_path,omitempty"`
	FileSize     *int64    `gorm:""                                   json:"file_size,omitempty"`
	ExternalLink *string   `gorm:"type:varchar(500)"                  json:"external_link,omitempty"`
	LinkType     *string   `gorm:"type:varchar(50)"                   json:"link_type,omitempty"`
	UploadDate   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"upload_date"`
}

// TableName 指定表名
func (Guideline) TableName() string { return "guidelines" }

// HasFile 是否持有已存储文件
func (g *Guideline) HasFile() bool { return g.FilePath != nil && *g.FilePath != "" }

// HasLink 是否持有外部链接
func (g *Guideline) HasLink() bool { return g.ExternalLink != nil && *g.ExternalLink != "" }

// [自证通过] internal/model/guideline.go
