package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profile-parser-go/internal/api/handler"
	"profile-parser-go/internal/api/router"
	"profile-parser-go/internal/config"
	appCoreLogger "profile-parser-go/internal/logger"
	"profile-parser-go/internal/parser"
	"profile-parser-go/internal/processor"
	"profile-parser-go/internal/storage"
	"profile-parser-go/internal/tracing"
	"profile-parser-go/pkg/ratelimit"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	hertzadapter "github.com/hertz-contrib/logger/zerolog"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 链路追踪
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Init(ctx, tracing.Config{
			ServiceName:  cfg.Tracing.ServiceName,
			OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
			SampleRatio:  cfg.Tracing.SampleRatio,
		})
		if err != nil {
			glog.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := shutdownTracing(shutdownCtx); err != nil {
				glog.Warnf("关闭链路追踪失败: %v", err)
			}
		}()
		glog.Info("链路追踪初始化成功")
	}

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// PDF解码器：扁平文本走Eino，坐标片段走结构化解码器
	textDecoder, err := parser.NewEinoPDFTextExtractor(ctx, parser.WithEinoLogger(appCoreLogger.Logger))
	if err != nil {
		glog.Fatalf("创建Eino PDF提取器失败: %v", err)
	}
	glog.Info("Eino PDF解析器初始化成功")

	profileParser := parser.NewParser(textDecoder,
		parser.WithFragmentDecoder(parser.NewStructuralPDFExtractor()),
		parser.WithStructuralConfig(parser.StructuralConfig{
			KnownOrganizations:  cfg.Parser.KnownOrganizations,
			ExcludedPersonNames: cfg.Parser.ExcludedPersonNames,
			ColumnThreshold:     cfg.Parser.ColumnThreshold,
			LineYDistance:       cfg.Parser.LineYDistance,
		}),
	)
	glog.Info("档案解析器初始化成功")

	profileProcessor, err := processor.NewProfileProcessor(&processor.Components{
		Parser:  profileParser,
		Storage: storageManager,
	}, cfg)
	if err != nil {
		glog.Fatalf("初始化ProfileProcessor失败: %v", err)
	}
	glog.Info("ProfileProcessor初始化成功")

	profileHandler := handler.NewProfileHandler(cfg, storageManager, profileProcessor)
	glog.Info("ProfileHandler初始化成功")

	go func() {
		workers := cfg.RabbitMQ.UploadConsumerWorkers
		glog.Infof("启动上传消费者，工作协程数: %d", workers)
		if err := profileHandler.StartProfileUploadConsumer(ctx, workers); err != nil {
			glog.Fatalf("启动档案上传消费者失败: %v", err)
		}

		profileHandler.StartMD5CleanupTask(ctx)
	}()

	srvOptions := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	}
	var h *server.Hertz
	if cfg.Tracing.Enabled {
		tracer, traceCfg := hertztracing.NewServerTracer()
		h = server.New(append(srvOptions, tracer)...)
		h.Use(hertztracing.ServerMiddleware(traceCfg))
	} else {
		h = server.New(srvOptions...)
	}

	if cfg.Server.RateLimitQPM > 0 {
		bucket := ratelimit.NewTokenBucket(cfg.Server.RateLimitQPM, 0)
		h.Use(func(c context.Context, ctx *app.RequestContext) {
			if !bucket.Allow() {
				ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, utils.H{"error": "请求过于频繁，请稍后重试"})
				return
			}
			ctx.Next(c)
		})
		glog.Infof("API限流已启用: %d 请求/分钟", cfg.Server.RateLimitQPM)
	}

	router.RegisterRoutes(h, profileHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

func initLogger(cfg *config.Config) {
	logFilePath := "logs/app.log"
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Fatalf("无法创建日志目录: %v", err)
	}
	fileWriter, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("无法打开日志文件 %s: %v", logFilePath, err)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	multiWriter := zerolog.MultiLevelWriter(consoleWriter, fileWriter)

	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Logger.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.Logger.TimeFormat
	}

	logCtx := zerolog.New(multiWriter).With().Timestamp()
	if cfg.Logger.ReportCaller {
		logCtx = logCtx.Caller()
	}
	logger := logCtx.Logger()

	appCoreLogger.Logger = logger
	zlog.Logger = logger

	// Hertz走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(logger))
	if level <= zerolog.DebugLevel {
		glog.SetLevel(glog.LevelDebug)
	} else {
		glog.SetLevel(glog.LevelInfo)
	}
}
