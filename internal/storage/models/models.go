package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResumeRecord 一次简历提交的解析结果。
// 经历条目以JSON形式整体落库，评分时再反序列化重新聚合总年限。
type ResumeRecord struct {
	SubmissionUUID string `gorm:"primaryKey;type:varchar(36)"`

	// 联系方式
	Name  string `gorm:"type:varchar(255);index"`
	Email string `gorm:"type:varchar(255);index"`
	Phone string `gorm:"type:varchar(64)"`

	// 布局与抽取结果
	Layout         string         `gorm:"type:varchar(16)"`
	Education      string         `gorm:"type:varchar(64)"`
	SkillsText     string         `gorm:"type:text"`
	ExperienceJSON datatypes.JSON `gorm:"type:json"`
	SectionsJSON   datatypes.JSON `gorm:"type:json"`

	// 总经验年限，由经历条目聚合得出
	TotalExperienceYears float64 `gorm:"type:double;index"`

	// 原始文件信息
	OriginalFilename string `gorm:"type:varchar(512)"`
	RawFileMD5       string `gorm:"type:varchar(32);index"`
	RawFilePath      string `gorm:"type:varchar(1024)"` // MinIO对象路径

	ParserVersion string `gorm:"type:varchar(16)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (ResumeRecord) TableName() string {
	return "resumes"
}
