package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"

	"resume-ats-go/internal/api/handler"
	"resume-ats-go/internal/api/router"
	"resume-ats-go/internal/config"
	"resume-ats-go/internal/logger"
	"resume-ats-go/internal/processor"
	"resume-ats-go/internal/storage"
	"resume-ats-go/internal/tracing"
)

func main() {
	var configPath string
	pflag.StringVar(&configPath, "config", "", "配置文件路径，留空时按默认路径查找")
	pflag.Parse()

	// 1. 加载配置文件
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置文件失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志系统
	initLogger(cfg)
	hlog.SetLogger(hertzzerolog.From(logger.Logger))

	// 3. 初始化链路追踪
	ctx := context.Background()
	shutdownTracing, err := tracing.InitTracerProvider(ctx, &cfg.Tracing)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}()

	// 4. 初始化存储管理器
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储管理器失败")
	}
	defer storageManager.Close()
	if storageManager.MySQL == nil {
		logger.Fatal().Msg("MySQL实例未初始化，无法提供服务")
	}

	// 5. 初始化业务处理器
	resumeProcessor := processor.NewResumeProcessor(
		processor.WithStorage(storageManager),
		processor.WithDebug(cfg.Logger.Level == "debug"),
	)
	jdProcessor := processor.NewJDProcessor(
		processor.WithResumeLister(storageManager.MySQL),
	)
	resumeHandler := handler.NewResumeHandler(cfg, storageManager, resumeProcessor)
	jdHandler := handler.NewJDHandler(cfg, jdProcessor)
	logger.Info().Msg("简历处理器初始化成功")

	// 6. 创建HTTP服务器并注册路由
	tracer, tracingCfg := hertztracing.NewServerTracer()
	h := server.Default(
		tracer,
		server.WithHostPorts(cfg.Server.Address),
	)
	h.Use(hertztracing.ServerMiddleware(tracingCfg))
	router.RegisterRoutes(h, cfg, resumeHandler, jdHandler)

	// 7. 启动HTTP服务器
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器已启动")

	// 8. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	// 9. 优雅关闭HTTP服务器
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// 初始化日志系统
func initLogger(cfg *config.Config) {
	logConfig := logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	}
	if logConfig.TimeFormat == "" {
		logConfig.TimeFormat = time.RFC3339
	}
	// 生产环境收敛为JSON输出
	if os.Getenv("ENV") == "production" {
		logConfig.Format = "json"
		logConfig.ReportCaller = false
	}
	logger.Init(logConfig)

	logger.Logger = logger.Logger.With().
		Str("app", "resume-ats-go").
		Logger()
}
