package router

import (
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"

	"resume-ats-go/internal/api/handler"
	"resume-ats-go/internal/processor"
	"resume-ats-go/internal/storage"
)

func TestUploadErrorStatus(t *testing.T) {
	// 解析类错误映射为客户端错误码，其余按服务端错误处理
	assert.Equal(t, consts.StatusBadRequest, uploadErrorStatus(processor.NewParseError("a.pdf", "bad xref")))
	assert.Equal(t, consts.StatusUnprocessableEntity, uploadErrorStatus(processor.NewEmptyTextError("b.pdf")))
	assert.Equal(t, consts.StatusInternalServerError, uploadErrorStatus(fmt.Errorf("db down")))
}

func TestBatchUploadStatus(t *testing.T) {
	parseErr := processor.NewParseError("bad.pdf", "bad xref")

	// 有任一成功或去重的文件就是200
	mixed := []handler.ResumeUploadResult{
		{Filename: "bad.pdf", Status: handler.UploadStatusFailed, Err: parseErr},
		{Filename: "good.pdf", Status: handler.UploadStatusProcessed},
	}
	assert.Equal(t, consts.StatusOK, batchUploadStatus(mixed))

	onlyDuplicate := []handler.ResumeUploadResult{
		{Filename: "dup.pdf", Status: handler.UploadStatusDuplicate},
	}
	assert.Equal(t, consts.StatusOK, batchUploadStatus(onlyDuplicate))

	// 整批全失败时按首个错误映射
	allFailed := []handler.ResumeUploadResult{
		{Filename: "bad1.pdf", Status: handler.UploadStatusFailed, Err: parseErr},
		{Filename: "bad2.pdf", Status: handler.UploadStatusFailed, Err: fmt.Errorf("db down")},
	}
	assert.Equal(t, consts.StatusBadRequest, batchUploadStatus(allFailed))
}

func TestDownloadErrorStatus(t *testing.T) {
	assert.Equal(t, consts.StatusNotFound, downloadErrorStatus(storage.ErrRecordNotFound))
	assert.Equal(t, consts.StatusNotFound, downloadErrorStatus(handler.ErrOriginalFileMissing))
	assert.Equal(t, consts.StatusServiceUnavailable, downloadErrorStatus(handler.ErrObjectStorageDisabled))
	assert.Equal(t, consts.StatusInternalServerError, downloadErrorStatus(fmt.Errorf("minio down")))
}
