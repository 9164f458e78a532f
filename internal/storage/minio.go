package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"resume-ats-go/internal/config"
	"resume-ats-go/internal/logger"
)

// MinIO 提供原始简历文件的对象存储
type MinIO struct {
	client         *minio.Client
	cfg            *config.MinIOConfig
	originalBucket string
}

// NewMinIO 创建MinIO客户端并确保存储桶就绪
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:         client,
		cfg:            cfg,
		originalBucket: cfg.OriginalsBucket,
	}

	if err := m.ensureBucketExists(m.originalBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始简历存储桶 %s 存在失败: %w", m.originalBucket, err)
	}

	if cfg.OriginalFileExpireDays > 0 {
		if err := m.setupLifecycleRules(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("设置MinIO生命周期规则失败")
		}
	}

	return m, nil
}

// ensureBucketExists 确保存储桶存在
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		err = m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
	}
	return nil
}

// setupLifecycleRules 为原始文件设置过期清理规则
func (m *MinIO) setupLifecycleRules(ctx context.Context) error {
	cfg := lifecycle.NewConfiguration()
	cfg.Rules = []lifecycle.Rule{
		{
			ID:     "expire-original-resumes",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(m.cfg.OriginalFileExpireDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, m.originalBucket, cfg)
}

// UploadResumeFile 按提交UUID上传原始简历文件，返回对象路径
func (m *MinIO) UploadResumeFile(ctx context.Context, submissionUUID, fileExt string, data []byte) (string, error) {
	if submissionUUID == "" {
		return "", fmt.Errorf("提交UUID不能为空")
	}
	ext := strings.TrimPrefix(strings.ToLower(fileExt), ".")
	if ext == "" {
		ext = "pdf"
	}
	objectName := fmt.Sprintf("%s.%s", submissionUUID, ext)

	_, err := m.client.PutObject(ctx, m.originalBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentTypeForExt(ext)})
	if err != nil {
		return "", fmt.Errorf("上传简历文件 %s 失败: %w", objectName, err)
	}
	return objectName, nil
}

// GetResumeFile 下载原始简历文件
func (m *MinIO) GetResumeFile(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取简历文件 %s 失败: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取简历文件 %s 失败: %w", objectName, err)
	}
	return data, nil
}

// GetPresignedURL 生成原始简历文件的预签名下载URL
func (m *MinIO) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.originalBucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return u.String(), nil
}

// DeleteResumeFile 删除原始简历文件
func (m *MinIO) DeleteResumeFile(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.originalBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("删除简历文件 %s 失败: %w", objectName, err)
	}
	return nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case "pdf":
		return "application/pdf"
	case "txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
