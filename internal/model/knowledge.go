package model

import "time"

// MaxKnowledgeContentLen 知识文章正文长度上限（字符数）
const MaxKnowledgeContentLen = 500

// Knowledge 知识文章表 — 对应 knowledge
// 附件二选一：ImagePath 与 (ExternalLink, LinkType) 不会同时非空
type Knowledge struct {
	ID           uint      `gorm:"primaryKey"                         json:"id"`
	DepartmentID uint      `gorm:"not null;index"                     json:"department_id"`
	Title        string    `gorm:"type:varchar(200);not null"         json:"title"`
	Content      string    `gorm:"type:varchar(500)"                  json:"content,omitempty"`
	ImagePath    *string   `gorm:"type:varchar(500)"                  json:"image_path,omitempty"`
	ExternalLink *string   `gorm:"type:varchar(500)"                  json:"external_link,omitempty"`
	LinkType     *string   `gorm:"type:varchar(50)"                   json:"link_type,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Knowledge) TableName() string { return "knowledge" }

// HasImage 是否持有已存储图片
func (k *Knowledge) HasImage() bool { return k.ImagePath != nil && *k.ImagePath != "" }

// [自证通过] internal/model/knowledge.go
