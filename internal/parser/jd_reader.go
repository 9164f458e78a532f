package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedJDFormat 职位描述文件的扩展名不在支持范围内
var ErrUnsupportedJDFormat = errors.New("unsupported job description format, only .pdf and .txt are allowed")

// JobDescriptionReader 读取职位描述文件并返回纯文本。
// 支持PDF与纯文本两种格式，按文件扩展名区分。
type JobDescriptionReader struct{}

// NewJobDescriptionReader 初始化职位描述读取器
func NewJobDescriptionReader() *JobDescriptionReader {
	return &JobDescriptionReader{}
}

// ReadText 按扩展名读取职位描述文本
func (r *JobDescriptionReader) ReadText(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return pdfPlainText(data)
	case ".txt":
		return string(data), nil
	default:
		return "", ErrUnsupportedJDFormat
	}
}

// pdfPlainText 提取PDF全文纯文本，不保留几何信息
func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract plain text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("failed to read plain text: %w", err)
	}
	return buf.String(), nil
}
