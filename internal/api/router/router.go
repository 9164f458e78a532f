package router

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"resume-ats-go/internal/api/handler"
	"resume-ats-go/internal/config"
	"resume-ats-go/internal/parser"
	"resume-ats-go/internal/processor"
	"resume-ats-go/internal/storage"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, resumeHandler *handler.ResumeHandler, jdHandler *handler.JDHandler) {
	api := h.Group("/api/v1")

	// 健康检查不走鉴权
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	// 配置了API Key时，业务路由统一走keyauth鉴权
	if cfg.Auth.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Auth.APIKey, nil
			}),
		))
	}

	// 支持一次上传多份简历，单份失败不影响同批其他文件
	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		form, err := ctx.MultipartForm()
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无效的multipart表单"})
			return
		}
		fileHeaders := form.File["file"]
		if len(fileHeaders) == 0 {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		files := make([]handler.UploadFile, 0, len(fileHeaders))
		for _, fh := range fileHeaders {
			data, err := readMultipartFile(fh)
			if err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
				return
			}
			files = append(files, handler.UploadFile{Filename: fh.Filename, Data: data})
		}

		results := resumeHandler.HandleResumeBatchUpload(c, files)
		ctx.JSON(batchUploadStatus(results), utils.H{"count": len(results), "results": results})
	})

	api.GET("/resumes", func(c context.Context, ctx *app.RequestContext) {
		filter := storage.ResumeListFilter{
			SkillKeyword: ctx.Query("skill"),
			Education:    ctx.Query("education"),
		}
		if v := ctx.Query("min_experience_years"); v != "" {
			years, err := strconv.ParseFloat(v, 64)
			if err != nil {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": "min_experience_years必须是数字"})
				return
			}
			filter.MinExperienceYears = years
		}
		if v := ctx.Query("limit"); v != "" {
			if limit, err := strconv.Atoi(v); err == nil {
				filter.Limit = limit
			}
		}
		if v := ctx.Query("offset"); v != "" {
			if offset, err := strconv.Atoi(v); err == nil {
				filter.Offset = offset
			}
		}

		records, err := resumeHandler.HandleListResumes(c, filter)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"count": len(records), "resumes": records})
	})

	api.GET("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		record, err := resumeHandler.HandleGetResume(c, ctx.Param("uuid"))
		if err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "简历记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	api.GET("/resume/:uuid/file", func(c context.Context, ctx *app.RequestContext) {
		data, filename, err := resumeHandler.HandleGetResumeFile(c, ctx.Param("uuid"))
		if err != nil {
			ctx.JSON(downloadErrorStatus(err), utils.H{"error": err.Error()})
			return
		}
		ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		ctx.Data(consts.StatusOK, "application/octet-stream", data)
	})

	api.GET("/resume/:uuid/download-url", func(c context.Context, ctx *app.RequestContext) {
		expiry := 15 * time.Minute
		if v := ctx.Query("expiry_seconds"); v != "" {
			seconds, err := strconv.Atoi(v)
			if err != nil || seconds <= 0 {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": "expiry_seconds必须是正整数"})
				return
			}
			expiry = time.Duration(seconds) * time.Second
		}

		url, err := resumeHandler.HandleGetResumeDownloadURL(c, ctx.Param("uuid"), expiry)
		if err != nil {
			ctx.JSON(downloadErrorStatus(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"url": url, "expiry_seconds": int(expiry.Seconds())})
	})

	api.DELETE("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		if err := resumeHandler.HandleDeleteResume(c, ctx.Param("uuid")); err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "简历记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "DELETED"})
	})

	api.POST("/jd/score", func(c context.Context, ctx *app.RequestContext) {
		// JD可以用文件上传，也可以直接传text表单字段
		filename := "jd.txt"
		var data []byte
		if fileHeader, err := ctx.FormFile("file"); err == nil {
			filename = fileHeader.Filename
			data, err = readMultipartFile(fileHeader)
			if err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
				return
			}
		} else if text := ctx.PostForm("text"); text != "" {
			data = []byte(text)
		} else {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "需要file或text参数"})
			return
		}

		resp, err := jdHandler.HandleJDScore(c, filename, data)
		if err != nil {
			if errors.Is(err, parser.ErrUnsupportedJDFormat) {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})
}

// uploadErrorStatus 把处理错误映射为HTTP状态码
func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, processor.ErrUnreadableDocument):
		return consts.StatusBadRequest
	case errors.Is(err, processor.ErrNoTextFound):
		return consts.StatusUnprocessableEntity
	default:
		return consts.StatusInternalServerError
	}
}

// batchUploadStatus 只要有一个文件成功或去重跳过就返回200，
// 整批全部失败时用首个错误映射状态码
func batchUploadStatus(results []handler.ResumeUploadResult) int {
	var firstErr error
	for _, r := range results {
		if r.Err == nil {
			return consts.StatusOK
		}
		if firstErr == nil {
			firstErr = r.Err
		}
	}
	return uploadErrorStatus(firstErr)
}

// downloadErrorStatus 把文件下载相关错误映射为HTTP状态码
func downloadErrorStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrRecordNotFound), errors.Is(err, handler.ErrOriginalFileMissing):
		return consts.StatusNotFound
	case errors.Is(err, handler.ErrObjectStorageDisabled):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}

// readMultipartFile 读出multipart文件的全部字节
func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
