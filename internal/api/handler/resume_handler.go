package handler

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"
	googleuuid "github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/datatypes"

	"resume-ats-go/internal/config"
	"resume-ats-go/internal/logger"
	"resume-ats-go/internal/processor"
	storage2 "resume-ats-go/internal/storage"
	"resume-ats-go/internal/storage/models"
	"resume-ats-go/internal/tracing"
	"resume-ats-go/internal/types"
)

var tracer = otel.Tracer("api.handler")

// ResumeHandler 简历处理器，负责协调简历的上传与解析流程
type ResumeHandler struct {
	cfg             *config.Config
	storage         *storage2.Storage
	processorModule *processor.ResumeProcessor
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(
	cfg *config.Config,
	storage *storage2.Storage,
	processorModule *processor.ResumeProcessor,
) *ResumeHandler {
	return &ResumeHandler{
		cfg:             cfg,
		storage:         storage,
		processorModule: processorModule,
	}
}

// UploadFile 一次上传请求中的单个文件
type UploadFile struct {
	Filename string
	Data     []byte
}

// ResumeUploadResult 单个文件的处理结果。Err保留原始错误供路由层映射状态码
type ResumeUploadResult struct {
	Filename       string               `json:"filename"`
	SubmissionUUID string               `json:"submission_uuid,omitempty"`
	Status         string               `json:"status"`
	Profile        *types.ResumeProfile `json:"profile,omitempty"`
	Error          string               `json:"error,omitempty"`
	Err            error                `json:"-"`
}

// 上传结果状态
const (
	UploadStatusProcessed = "PROCESSED"
	UploadStatusDuplicate = "DUPLICATE_FILE_SKIPPED"
	UploadStatusFailed    = "FAILED"
)

// HandleResumeBatchUpload 处理简历批量上传：逐个去重并存原件，整批解析，
// 单个文件失败只标记该文件，不影响同批其他文件
func (h *ResumeHandler) HandleResumeBatchUpload(ctx context.Context, files []UploadFile) []ResumeUploadResult {
	ctx, span := tracer.Start(ctx, "ResumeHandler.HandleResumeBatchUpload")
	defer span.End()

	results := make([]ResumeUploadResult, len(files))
	toParse := make(map[string][]byte, len(files))
	indexByKey := make(map[string]int, len(files))
	uuidByKey := make(map[string]string, len(files))
	md5ByKey := make(map[string]string, len(files))
	objectKeyByKey := make(map[string]string, len(files))
	seenMD5 := make(map[string]bool, len(files))

	// 第一阶段：逐个文件做MD5去重并把原件落到MinIO
	for i, f := range files {
		results[i] = ResumeUploadResult{Filename: f.Filename}

		sum := md5.Sum(f.Data)
		fileMD5Hex := hex.EncodeToString(sum[:])

		// 同一批内重复内容直接跳过
		if seenMD5[fileMD5Hex] {
			results[i].Status = UploadStatusDuplicate
			continue
		}
		if h.storage.Redis != nil {
			exists, err := h.storage.Redis.CheckRawFileMD5Exists(ctx, fileMD5Hex)
			if err != nil {
				logger.Error().Err(err).Str("md5", fileMD5Hex).Msg("查询Redis文件MD5 Set失败")
				tracing.RecordError(span, err, tracing.ErrorTypeRedis)
				results[i].Status = UploadStatusFailed
				results[i].Err = fmt.Errorf("检查文件MD5重复性时Redis查询失败: %w", err)
				results[i].Error = results[i].Err.Error()
				continue
			}
			if exists {
				logger.Info().
					Str("md5", fileMD5Hex).
					Str("filename", f.Filename).
					Msg("检测到重复的文件MD5，跳过处理")
				results[i].Status = UploadStatusDuplicate
				continue
			}
		}
		seenMD5[fileMD5Hex] = true

		uuidV7, err := uuid.NewV7()
		if err != nil {
			results[i].Status = UploadStatusFailed
			results[i].Err = fmt.Errorf("生成UUIDv7失败: %w", err)
			results[i].Error = results[i].Err.Error()
			continue
		}
		submissionUUID := uuidV7.String()

		ext := filepath.Ext(f.Filename)
		if ext == "" {
			ext = ".pdf"
		}
		var originalObjectKey string
		if h.storage.MinIO != nil {
			originalObjectKey, err = h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext, f.Data)
			if err != nil {
				tracing.RecordError(span, err, tracing.ErrorTypeStorage)
				results[i].Status = UploadStatusFailed
				results[i].Err = fmt.Errorf("上传简历到MinIO失败: %w", err)
				results[i].Error = results[i].Err.Error()
				continue
			}
		}

		// 原件落盘后再登记MD5，登记失败只降级去重，不中断流程
		if h.storage.Redis != nil {
			if err := h.storage.Redis.AddRawFileMD5(ctx, fileMD5Hex); err != nil {
				logger.Warn().
					Err(err).
					Str("md5", fileMD5Hex).
					Str("object_key", originalObjectKey).
					Msg("添加文件MD5到Redis Set失败，文件已上传到MinIO")
			}
		}

		// 同名不同内容的文件在批内用序号消歧
		key := f.Filename
		if _, taken := indexByKey[key]; taken {
			key = fmt.Sprintf("%s#%d", f.Filename, i)
		}
		toParse[key] = f.Data
		indexByKey[key] = i
		uuidByKey[key] = submissionUUID
		md5ByKey[key] = fileMD5Hex
		objectKeyByKey[key] = originalObjectKey
	}

	// 第二阶段：整批解析，失败按文件隔离
	profiles, parseErrs := h.processorModule.ProcessBatch(ctx, toParse)

	// 第三阶段：成功的结果入库并发事件
	for key, i := range indexByKey {
		if err, failed := parseErrs[key]; failed {
			tracing.RecordError(span, err, tracing.ErrorTypeParsing)
			results[i].Status = UploadStatusFailed
			results[i].Err = err
			results[i].Error = err.Error()
			continue
		}
		profile := profiles[key]
		submissionUUID := uuidByKey[key]

		record, err := buildResumeRecord(submissionUUID, files[i].Filename, md5ByKey[key], objectKeyByKey[key], h.cfg.ActiveParserVersion, profile)
		if err != nil {
			results[i].Status = UploadStatusFailed
			results[i].Err = err
			results[i].Error = err.Error()
			continue
		}
		if h.storage.MySQL != nil {
			if err := h.storage.MySQL.SaveResumeRecord(ctx, record); err != nil {
				tracing.RecordError(span, err, tracing.ErrorTypeDB)
				results[i].Status = UploadStatusFailed
				results[i].Err = fmt.Errorf("保存简历记录失败: %w", err)
				results[i].Error = results[i].Err.Error()
				continue
			}
		} else {
			logger.Warn().Str("submission_uuid", submissionUUID).Msg("未配置MySQL，跳过简历记录入库")
		}

		// 发布解析完成事件，失败不影响已入库的结果
		h.publishParsedEvent(ctx, submissionUUID, profile)

		results[i].SubmissionUUID = submissionUUID
		results[i].Status = UploadStatusProcessed
		results[i].Profile = profile
	}

	return results
}

// buildResumeRecord 把抽取结果编组为数据库记录
func buildResumeRecord(submissionUUID, filename, fileMD5Hex, objectKey, parserVersion string, profile *types.ResumeProfile) (*models.ResumeRecord, error) {
	experienceJSON, err := json.Marshal(profile.Experience)
	if err != nil {
		return nil, fmt.Errorf("序列化经历失败: %w", err)
	}
	sectionsJSON, err := json.Marshal(profile.Sections)
	if err != nil {
		return nil, fmt.Errorf("序列化章节失败: %w", err)
	}
	return &models.ResumeRecord{
		SubmissionUUID:       submissionUUID,
		Name:                 profile.Contact.Name,
		Email:                profile.Contact.Email,
		Phone:                profile.Contact.Phone,
		Layout:               string(profile.Layout),
		Education:            profile.Education,
		SkillsText:           profile.SkillsText,
		ExperienceJSON:       datatypes.JSON(experienceJSON),
		SectionsJSON:         datatypes.JSON(sectionsJSON),
		TotalExperienceYears: profile.TotalExperienceYears,
		OriginalFilename:     filename,
		RawFileMD5:           fileMD5Hex,
		RawFilePath:          objectKey,
		ParserVersion:        parserVersion,
	}, nil
}

// publishParsedEvent 发布resume.parsed事件到消息队列
func (h *ResumeHandler) publishParsedEvent(ctx context.Context, submissionUUID string, profile *types.ResumeProfile) {
	if h.storage.RabbitMQ == nil {
		return
	}

	exchange := h.cfg.RabbitMQ.ResumeEventsExchange
	routingKey := h.cfg.RabbitMQ.ParsedRoutingKey
	if err := h.storage.RabbitMQ.EnsureExchange(exchange, "topic", true); err != nil {
		logger.Warn().Err(err).Str("exchange", exchange).Msg("声明简历事件交换机失败")
		return
	}

	event := storage2.ResumeParsedEvent{
		EventID:              googleuuid.NewString(),
		SubmissionUUID:       submissionUUID,
		Name:                 profile.Contact.Name,
		Email:                profile.Contact.Email,
		Layout:               string(profile.Layout),
		Education:            profile.Education,
		TotalExperienceYears: profile.TotalExperienceYears,
		ParserVersion:        h.cfg.ActiveParserVersion,
		ParsedAt:             time.Now(),
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx, exchange, routingKey, event, true); err != nil {
		logger.Warn().
			Err(err).
			Str("submission_uuid", submissionUUID).
			Msg("发布简历解析事件失败")
	}
}

// HandleListResumes 按筛选条件列出已入库简历
func (h *ResumeHandler) HandleListResumes(ctx context.Context, filter storage2.ResumeListFilter) ([]models.ResumeRecord, error) {
	ctx, span := tracer.Start(ctx, "ResumeHandler.HandleListResumes")
	defer span.End()

	records, err := h.storage.MySQL.ListResumeRecords(ctx, filter)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, err
	}
	return records, nil
}

// HandleGetResume 按submission UUID查询单条简历记录
func (h *ResumeHandler) HandleGetResume(ctx context.Context, submissionUUID string) (*models.ResumeRecord, error) {
	ctx, span := tracer.Start(ctx, "ResumeHandler.HandleGetResume")
	defer span.End()

	record, err := h.storage.MySQL.GetResumeRecord(ctx, submissionUUID)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, err
	}
	return record, nil
}

var (
	// ErrObjectStorageDisabled 未配置MinIO时文件下载相关接口不可用
	ErrObjectStorageDisabled = errors.New("对象存储未初始化")
	// ErrOriginalFileMissing 记录存在但没有对应的原始文件
	ErrOriginalFileMissing = errors.New("原始简历文件不存在")
)

// HandleGetResumeFile 下载原始简历文件，返回文件内容与原始文件名
func (h *ResumeHandler) HandleGetResumeFile(ctx context.Context, submissionUUID string) ([]byte, string, error) {
	ctx, span := tracer.Start(ctx, "ResumeHandler.HandleGetResumeFile")
	defer span.End()

	if h.storage.MinIO == nil {
		return nil, "", ErrObjectStorageDisabled
	}
	record, err := h.storage.MySQL.GetResumeRecord(ctx, submissionUUID)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, "", err
	}
	if record.RawFilePath == "" {
		return nil, "", ErrOriginalFileMissing
	}
	data, err := h.storage.MinIO.GetResumeFile(ctx, record.RawFilePath)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		return nil, "", err
	}
	return data, record.OriginalFilename, nil
}

// HandleGetResumeDownloadURL 生成原始简历文件的预签名下载URL
func (h *ResumeHandler) HandleGetResumeDownloadURL(ctx context.Context, submissionUUID string, expiry time.Duration) (string, error) {
	ctx, span := tracer.Start(ctx, "ResumeHandler.HandleGetResumeDownloadURL")
	defer span.End()

	if h.storage.MinIO == nil {
		return "", ErrObjectStorageDisabled
	}
	record, err := h.storage.MySQL.GetResumeRecord(ctx, submissionUUID)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return "", err
	}
	if record.RawFilePath == "" {
		return "", ErrOriginalFileMissing
	}
	url, err := h.storage.MinIO.GetPresignedURL(ctx, record.RawFilePath, expiry)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		return "", err
	}
	return url, nil
}

// HandleDeleteResume 删除简历记录及其MinIO原件。原件删除失败只告警，
// 数据库记录仍然删除
func (h *ResumeHandler) HandleDeleteResume(ctx context.Context, submissionUUID string) error {
	ctx, span := tracer.Start(ctx, "ResumeHandler.HandleDeleteResume")
	defer span.End()

	record, err := h.storage.MySQL.GetResumeRecord(ctx, submissionUUID)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}
	if h.storage.MinIO != nil && record.RawFilePath != "" {
		if err := h.storage.MinIO.DeleteResumeFile(ctx, record.RawFilePath); err != nil {
			logger.Warn().
				Err(err).
				Str("submission_uuid", submissionUUID).
				Str("object_key", record.RawFilePath).
				Msg("删除MinIO原始简历文件失败")
		}
	}
	if err := h.storage.MySQL.DeleteResumeRecord(ctx, submissionUUID); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}
	return nil
}
