package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnreadableDocument = errors.New("无法解析简历文档")
	ErrNoTextFound        = errors.New("简历中未提取到文本")
	ErrReadJDFailed       = errors.New("读取职位描述失败")
	ErrListResumesFailed  = errors.New("读取已入库简历失败")
)

// ProcessError 包含详细上下文的处理错误
type ProcessError struct {
	Name    string // 文件名或submission UUID
	Op      string
	BaseErr error
	Detail  string
}

func (e *ProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.Name, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.Name)
}

func (e *ProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// NewParseError 构造文档解析错误
func NewParseError(name, detail string) error {
	return &ProcessError{
		Name:    name,
		Op:      "parse",
		BaseErr: ErrUnreadableDocument,
		Detail:  detail,
	}
}

// NewEmptyTextError 构造空文本错误
func NewEmptyTextError(name string) error {
	return &ProcessError{
		Name:    name,
		Op:      "extract",
		BaseErr: ErrNoTextFound,
	}
}
