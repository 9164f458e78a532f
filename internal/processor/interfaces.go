package processor

import (
	"context"

	"resume-ats-go/internal/storage/models"
	"resume-ats-go/internal/types"
)

//
// 文档解析相关接口
//

// DocumentReader 简历文档读取器接口
type DocumentReader interface {
	// ReadDocument 从文件字节中解析出带几何信息的文档
	ReadDocument(ctx context.Context, data []byte) (*types.Document, error)
}

// JobTextReader 职位描述读取器接口
type JobTextReader interface {
	// ReadText 从JD文件（.pdf或.txt）中提取纯文本
	ReadText(ctx context.Context, filename string, data []byte) (string, error)
}

//
// 存储相关接口
//

// ResumeLister 提供已入库简历的遍历能力
type ResumeLister interface {
	// ListAllResumeRecords 列出全部简历记录
	ListAllResumeRecords(ctx context.Context) ([]models.ResumeRecord, error)
}
