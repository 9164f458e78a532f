package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resume-ats-go/internal/config"
	"resume-ats-go/internal/storage/models"
)

// ErrRecordNotFound 查询的简历记录不存在
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ResumeListFilter 简历列表查询条件，零值字段不参与过滤
type ResumeListFilter struct {
	// SkillKeyword 技能文本中的子串（大小写不敏感）
	SkillKeyword string
	// MinExperienceYears 总经验年限下限
	MinExperienceYears float64
	// Education 学历等级精确匹配
	Education string
	// Limit/Offset 分页；Limit为0时取默认100
	Limit  int
	Offset int
}

// MySQL 提供简历记录的关系型存储
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，附带超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	default:
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{db: db, cfg: cfg}
	if err := db.AutoMigrate(&models.ResumeRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	return m, nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveResumeRecord 保存或更新一条简历记录
func (m *MySQL) SaveResumeRecord(ctx context.Context, record *models.ResumeRecord) error {
	if record == nil {
		return fmt.Errorf("简历记录不能为空")
	}
	if err := m.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("保存简历记录失败: %w", err)
	}
	return nil
}

// GetResumeRecord 按提交UUID查询一条简历记录
func (m *MySQL) GetResumeRecord(ctx context.Context, submissionUUID string) (*models.ResumeRecord, error) {
	var record models.ResumeRecord
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("查询简历记录失败: %w", err)
	}
	return &record, nil
}

// ListResumeRecords 按条件分页查询简历记录，按创建时间倒序
func (m *MySQL) ListResumeRecords(ctx context.Context, filter ResumeListFilter) ([]models.ResumeRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := m.db.WithContext(ctx).Model(&models.ResumeRecord{})
	if filter.SkillKeyword != "" {
		query = query.Where("LOWER(skills_text) LIKE ?", "%"+strings.ToLower(filter.SkillKeyword)+"%")
	}
	if filter.MinExperienceYears > 0 {
		query = query.Where("total_experience_years >= ?", filter.MinExperienceYears)
	}
	if filter.Education != "" {
		query = query.Where("education = ?", filter.Education)
	}

	var records []models.ResumeRecord
	err := query.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询简历列表失败: %w", err)
	}
	return records, nil
}

// ListAllResumeRecords 取全部简历记录，供JD评分排序使用
func (m *MySQL) ListAllResumeRecords(ctx context.Context) ([]models.ResumeRecord, error) {
	var records []models.ResumeRecord
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询全部简历失败: %w", err)
	}
	return records, nil
}

// DeleteResumeRecord 按提交UUID删除一条简历记录
func (m *MySQL) DeleteResumeRecord(ctx context.Context, submissionUUID string) error {
	result := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		Delete(&models.ResumeRecord{})
	if result.Error != nil {
		return fmt.Errorf("删除简历记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
