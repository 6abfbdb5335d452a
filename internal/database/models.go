package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。Content 以 JSONB 存储表单结构数据
// （personalInfo/workExperience/education/skills/templateId）。
// 渲染与导出管线只读，不回写 Content。
type Resume struct {
	gorm.Model
	Title   string         `gorm:"size:255"`
	Content datatypes.JSON `gorm:"type:jsonb"`
	UserID  uint           `gorm:"index"`
	User    User           `gorm:"constraint:OnDelete:CASCADE"`
	// Status: draft / published。
	Status string `gorm:"size:32;default:draft"`
	// PdfObjectKey 指向最近一次异步导出的 PDF 在对象存储中的位置。
	PdfObjectKey string `gorm:"size:512"`
}
