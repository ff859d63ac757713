package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"profile-parser-go/internal/config"
	"profile-parser-go/internal/constants"
	"profile-parser-go/internal/logger"
	"profile-parser-go/internal/processor"
	storage2 "profile-parser-go/internal/storage"
	"profile-parser-go/internal/storage/models"
	"profile-parser-go/internal/types"

	"github.com/gofrs/uuid/v5"
	"gorm.io/gorm"
)

// ProfileHandler 档案处理器，负责协调档案上传与解析流程
type ProfileHandler struct {
	cfg             *config.Config
	storage         *storage2.Storage
	processorModule *processor.ProfileProcessor
}

// NewProfileHandler 创建一个新的档案处理器
func NewProfileHandler(
	cfg *config.Config,
	storage *storage2.Storage,
	processorModule *processor.ProfileProcessor,
) *ProfileHandler {
	return &ProfileHandler{
		cfg:             cfg,
		storage:         storage,
		processorModule: processorModule,
	}
}

// ProfileUploadResponse 档案上传响应
type ProfileUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// ProfileQueryResponse 档案查询响应
type ProfileQueryResponse struct {
	SubmissionUUID   string          `json:"submission_uuid"`
	ProcessingStatus string          `json:"processing_status"`
	Profile          json.RawMessage `json:"profile,omitempty"`
	DetectedLayout   string          `json:"detected_layout,omitempty"`
	ParseError       string          `json:"parse_error,omitempty"`
}

// HandleProfileUpload 处理档案PDF上传请求
// 流式上传到MinIO的同时计算文件MD5，再用Redis原子操作去重
func (h *ProfileHandler) HandleProfileUpload(ctx context.Context, reader io.Reader, fileSize int64,
	filename string, sourceChannel string) (*ProfileUploadResponse, error) {

	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("仅支持PDF文件，收到: %s", filename)
	}
	if maxBytes := int64(h.cfg.Server.MaxUploadSizeMB) * 1024 * 1024; maxBytes > 0 && fileSize > maxBytes {
		return nil, fmt.Errorf("文件大小超过限制 (%dMB)", h.cfg.Server.MaxUploadSizeMB)
	}

	// 1. 生成UUIDv7，保证按时间有序
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	// 2. 流式上传到MinIO，同时计算MD5（reader只能读一次）
	objectKey, fileMD5Hex, err := h.storage.MinIO.UploadProfilePDFStreaming(ctx, submissionUUID, reader, fileSize)
	if err != nil {
		return nil, fmt.Errorf("上传档案PDF到MinIO失败: %w", err)
	}

	// 3. 原子登记文件MD5，已存在则删除刚上传的对象并返回已有的提交
	exists, existingUUID, err := h.storage.Redis.CheckAndSetFileMD5(ctx, fileMD5Hex, submissionUUID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("md5", fileMD5Hex).
			Msg("Redis文件MD5去重检查失败")
		return nil, fmt.Errorf("检查文件MD5重复性失败: %w", err)
	}
	if exists {
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Str("existing_uuid", existingUUID).
			Msg("检测到重复的文件MD5，跳过处理")
		if delErr := h.storage.MinIO.DeleteFile(ctx, objectKey); delErr != nil {
			logger.Warn().Err(delErr).Str("object_key", objectKey).Msg("清理重复上传的对象失败")
		}
		return &ProfileUploadResponse{
			SubmissionUUID: existingUUID,
			Status:         "DUPLICATE_FILE_SKIPPED",
		}, nil
	}

	// 4. 落库提交记录（幂等插入）
	submission := &models.ProfileSubmission{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: time.Now(),
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		OriginalFilePathOSS: objectKey,
		FileMD5:             fileMD5Hex,
		ProcessingStatus:    constants.StatusPendingParsing,
	}
	if err := h.storage.MySQL.CreateProfileSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("创建档案提交记录失败: %w", err)
	}

	// 5. 发布上传消息到RabbitMQ
	message := storage2.ProfileUploadMessage{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: submission.SubmissionTimestamp,
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		OriginalFilePathOSS: objectKey,
		RawFileMD5:          fileMD5Hex,
	}
	err = h.storage.RabbitMQ.PublishJSON(
		ctx,
		h.cfg.RabbitMQ.ProfileEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
		message,
		true, // 持久化
	)
	if err != nil {
		// 消息发布失败时记录失败状态，去重记录也要回滚，允许重新提交
		if updErr := h.storage.MySQL.UpdateProfileProcessingStatus(ctx, submissionUUID, constants.StatusParseFailed); updErr != nil {
			logger.Error().Err(updErr).Str("submission_uuid", submissionUUID).Msg("更新档案状态为PARSE_FAILED失败")
		}
		if rmErr := h.storage.Redis.RemoveFileMD5(ctx, fileMD5Hex); rmErr != nil {
			logger.Warn().Err(rmErr).Str("md5", fileMD5Hex).Msg("回滚文件MD5去重记录失败")
		}
		return nil, fmt.Errorf("发布消息到RabbitMQ失败: %w", err)
	}

	return &ProfileUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         "SUBMITTED_FOR_PARSING",
	}, nil
}

// HandleSyncParse 同步解析一份PDF，不落库不走消息队列
// 供需要即时结果的调用方使用
func (h *ProfileHandler) HandleSyncParse(ctx context.Context, reader io.Reader, filename string) (*types.ParseResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("仅支持PDF文件，收到: %s", filename)
	}
	if h.processorModule == nil || h.processorModule.Parser == nil {
		return nil, fmt.Errorf("档案解析器组件未初始化")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	if maxBytes := int64(h.cfg.Server.MaxUploadSizeMB) * 1024 * 1024; maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("文件大小超过限制 (%dMB)", h.cfg.Server.MaxUploadSizeMB)
	}

	parseCtx := ctx
	if timeout := config.GetDuration(h.cfg.Parser.ParseTimeout, 30*time.Second); timeout > 0 {
		var cancel context.CancelFunc
		parseCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return h.processorModule.Parser.Parse(parseCtx, data, types.ParseOptions{
		IncludeRawText: h.cfg.Parser.IncludeRawText,
	})
}

// HandleGetProfile 查询一次提交的解析结果，优先读Redis缓存，未命中回源MySQL
func (h *ProfileHandler) HandleGetProfile(ctx context.Context, submissionUUID string) (*ProfileQueryResponse, error) {
	if submissionUUID == "" {
		return nil, fmt.Errorf("submission_uuid不能为空")
	}

	// 1. 先查Redis结果缓存
	if h.storage.Redis != nil {
		cached, err := h.storage.Redis.GetCachedProfileResult(ctx, submissionUUID)
		if err == nil && cached != "" {
			return &ProfileQueryResponse{
				SubmissionUUID:   submissionUUID,
				ProcessingStatus: constants.StatusParsed,
				Profile:          json.RawMessage(cached),
			}, nil
		}
		if err != nil && err != storage2.ErrNotFound {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("查询Redis档案缓存失败，回源MySQL")
		}
	}

	// 2. 回源MySQL
	submission, err := h.storage.MySQL.GetProfileSubmission(ctx, submissionUUID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("查询档案提交记录失败: %w", err)
	}

	resp := &ProfileQueryResponse{
		SubmissionUUID:   submission.SubmissionUUID,
		ProcessingStatus: submission.ProcessingStatus,
		DetectedLayout:   submission.DetectedLayout,
		ParseError:       submission.ParseError,
	}
	if len(submission.ParsedProfileJSON) > 0 {
		resp.Profile = json.RawMessage(submission.ParsedProfileJSON)
		// 回填缓存，下次命中Redis
		if h.storage.Redis != nil && submission.ProcessingStatus == constants.StatusParsed {
			if cacheErr := h.storage.Redis.CacheProfileResult(ctx, submissionUUID, string(submission.ParsedProfileJSON)); cacheErr != nil {
				logger.Warn().Err(cacheErr).Str("submission_uuid", submissionUUID).Msg("回填档案缓存失败")
			}
		}
	}
	return resp, nil
}

// StartProfileUploadConsumer 启动档案上传消费者
// workers控制并发消费协程数，每个消费者持有独立的AMQP通道
func (h *ProfileHandler) StartProfileUploadConsumer(ctx context.Context, workers int) error {
	logger.Info().
		Str("exchange", h.cfg.RabbitMQ.ProfileEventsExchange).
		Str("routing_key", h.cfg.RabbitMQ.UploadedRoutingKey).
		Msg("初始化RabbitMQ配置")

	// 1. 确保交换机和队列存在
	if err := h.storage.RabbitMQ.EnsureExchange(h.cfg.RabbitMQ.ProfileEventsExchange, "direct", true); err != nil {
		return fmt.Errorf("确保交换机存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.EnsureQueue(h.cfg.RabbitMQ.RawProfileQueue, true); err != nil {
		return fmt.Errorf("确保队列存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.BindQueue(
		h.cfg.RabbitMQ.RawProfileQueue,
		h.cfg.RabbitMQ.ProfileEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
	); err != nil {
		return fmt.Errorf("绑定队列失败: %w", err)
	}

	if workers <= 0 {
		workers = 1
	}
	logger.Info().
		Str("queue", h.cfg.RabbitMQ.RawProfileQueue).
		Int("workers", workers).
		Int("prefetch_count", h.cfg.RabbitMQ.PrefetchCount).
		Msg("档案上传消费者就绪")

	// 2. 启动消费者
	for i := 0; i < workers; i++ {
		_, err := h.storage.RabbitMQ.StartConsumer(h.cfg.RabbitMQ.RawProfileQueue, h.cfg.RabbitMQ.PrefetchCount, func(data []byte) bool {
			var message storage2.ProfileUploadMessage
			if err := json.Unmarshal(data, &message); err != nil {
				logger.Error().Err(err).Msg("解析上传消息失败")
				// 消息体损坏，重投无意义
				return true
			}

			if err := h.processorModule.ProcessUploadedProfile(ctx, message); err != nil {
				logger.Error().
					Err(err).
					Str("submission_uuid", message.SubmissionUUID).
					Msg("处理档案上传消息失败")
				return false
			}
			return true
		})
		if err != nil {
			return fmt.Errorf("启动消费者失败: %w", err)
		}
	}

	return nil
}

// StartMD5CleanupTask 启动MD5去重记录的过期时间巡检任务
// 集合本身不带TTL，逐成员过期由映射键承担，这里兜底给集合补TTL
func (h *ProfileHandler) StartMD5CleanupTask(ctx context.Context) {
	cleanupInterval := 7 * 24 * time.Hour

	logger.Info().
		Dur("interval", cleanupInterval).
		Msg("启动MD5记录清理任务")

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	h.cleanupMD5Records(ctx)

	for {
		select {
		case <-ticker.C:
			h.cleanupMD5Records(ctx)
		case <-ctx.Done():
			logger.Info().Msg("MD5记录清理任务退出")
			return
		}
	}
}

func (h *ProfileHandler) cleanupMD5Records(ctx context.Context) {
	if h.storage.Redis == nil {
		return
	}
	ttl, err := h.storage.Redis.Client.TTL(ctx, constants.KeyFileMD5Set).Result()
	if err != nil {
		logger.Error().Err(err).Str("setKey", constants.KeyFileMD5Set).Msg("获取文件MD5集合过期时间失败")
		return
	}
	if ttl < 0 {
		expiry := h.storage.Redis.GetMD5ExpireDuration()
		if err := h.storage.Redis.Client.Expire(ctx, constants.KeyFileMD5Set, expiry).Err(); err != nil {
			logger.Error().Err(err).Str("setKey", constants.KeyFileMD5Set).Msg("设置文件MD5集合过期时间失败")
		} else {
			logger.Info().Str("setKey", constants.KeyFileMD5Set).Dur("expiry", expiry).Msg("成功设置文件MD5集合过期时间")
		}
	}
}
