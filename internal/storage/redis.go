package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"resume-ats-go/internal/config"
	"resume-ats-go/internal/constants"
)

// Redis 提供上传去重等键值存储功能
type Redis struct {
	Client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端并注册OpenTelemetry追踪钩子
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("注册Redis追踪钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("连接Redis (%s) 失败: %w", cfg.Address, err)
	}

	return &Redis{Client: client, cfg: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// CheckRawFileMD5Exists 判断文件MD5是否已经上传过
func (r *Redis) CheckRawFileMD5Exists(ctx context.Context, md5Hex string) (bool, error) {
	exists, err := r.Client.SIsMember(ctx, constants.RawFileMD5SetKey, md5Hex).Result()
	if err != nil {
		return false, fmt.Errorf("查询文件MD5去重集合失败: %w", err)
	}
	return exists, nil
}

// AddRawFileMD5 记录新上传文件的MD5，并刷新整个集合的保留时间
func (r *Redis) AddRawFileMD5(ctx context.Context, md5Hex string) error {
	if err := r.Client.SAdd(ctx, constants.RawFileMD5SetKey, md5Hex).Err(); err != nil {
		return fmt.Errorf("写入文件MD5去重集合失败: %w", err)
	}

	ttl := constants.RawFileMD5TTL
	if r.cfg.MD5RecordExpireDays > 0 {
		ttl = time.Duration(r.cfg.MD5RecordExpireDays) * 24 * time.Hour
	}
	if err := r.Client.Expire(ctx, constants.RawFileMD5SetKey, ttl).Err(); err != nil {
		return fmt.Errorf("设置文件MD5去重集合过期时间失败: %w", err)
	}
	return nil
}
