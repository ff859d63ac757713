package processor

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"profile-parser-go/internal/config"
	"profile-parser-go/internal/constants"
	parser2 "profile-parser-go/internal/parser"
	"profile-parser-go/internal/storage"
	"profile-parser-go/internal/storage/models"
	"profile-parser-go/internal/tracing"
	"profile-parser-go/internal/types"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("profile-parser-go/processor")

// Components 聚合处理器的功能组件依赖，便于集中管理和测试替换
type Components struct {
	// Parser 档案解析引擎
	Parser *parser2.Parser
	// Storage 聚合的存储服务
	Storage *storage.Storage
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	ParserVersion  string         // 解析器版本号，写入数据库记录
	ParseTimeout   time.Duration  // 单次解析的超时时间
	IncludeRawText bool           // 解析结果是否附带原始文本
	Logger         zerolog.Logger // 日志记录器
	TimeLocation   *time.Location // 时区设置
}

// ProfileProcessor 档案处理组件聚合类
// 消费上传消息，完成下载、解析、落库、归并人员、缓存与发布的完整流程
type ProfileProcessor struct {
	Parser  *parser2.Parser
	Storage *storage.Storage

	cfg    *config.Config
	logger zerolog.Logger
}

// NewProfileProcessor 创建档案处理器
func NewProfileProcessor(comp *Components, cfg *config.Config) (*ProfileProcessor, error) {
	if comp == nil || comp.Parser == nil {
		return nil, fmt.Errorf("必须提供档案解析器组件")
	}
	if comp.Storage == nil {
		return nil, fmt.Errorf("必须提供存储服务组件")
	}
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	return &ProfileProcessor{
		Parser:  comp.Parser,
		Storage: comp.Storage,
		cfg:     cfg,
		logger:  log.With().Str("component", "profile_processor").Logger(),
	}, nil
}

// ProcessUploadedProfile 接收上传消息，完成下载、解析、存储和发布的完整流程
// 返回nil表示消息应被确认（包括内容无效这类不可重试的失败）；
// 返回错误表示基础设施故障，消息应被重新入队
func (pp *ProfileProcessor) ProcessUploadedProfile(ctx context.Context, message storage.ProfileUploadMessage) error {
	ctx, span := tracer.Start(ctx, "ProfileProcessor.ProcessUploadedProfile",
		trace.WithAttributes(
			attribute.String("submission_uuid", message.SubmissionUUID),
			attribute.String("original_filename", tracing.SafeAttributeValue("original_filename", message.OriginalFilename, tracing.DefaultMaxLength)),
		),
	)
	defer span.End()

	startedAt := time.Now()

	// 1. 更新状态为 PARSING
	if err := pp.Storage.MySQL.UpdateProfileProcessingStatus(ctx, message.SubmissionUUID, constants.StatusParsing); err != nil {
		pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("更新档案状态为PARSING失败")
		return NewUpdateError(message.SubmissionUUID, fmt.Sprintf("更新状态为%s失败", constants.StatusParsing))
	}

	// 2. 下载并解析
	result, err := pp.downloadAndParse(ctx, message)
	if err != nil {
		// 内容层面的失败（不可读、缺关键字段）重试也不会成功，标记后确认消息
		if errors.Is(err, parser2.ErrUnreadableInput) || errors.Is(err, parser2.ErrIncompleteProfile) {
			tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeValidation,
				attribute.String("processing_status", constants.StatusInvalidInput))
			pp.markInvalidInput(ctx, message, err, startedAt)
			return nil
		}
		pp.markParseFailed(ctx, message, err)
		return err
	}
	span.AddEvent("profile parsed")

	// 3. 上传原始文本到MinIO
	rawTextKey, rawTextMD5 := "", ""
	if result.RawText != "" {
		rawTextKey, err = pp.Storage.MinIO.UploadRawText(ctx, message.SubmissionUUID, result.RawText)
		if err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeStorage)
			pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("上传原始文本到MinIO失败")
			pp.markParseFailed(ctx, message, err)
			return NewStoreError(message.SubmissionUUID, err.Error())
		}
		sum := md5.Sum([]byte(result.RawText))
		rawTextMD5 = hex.EncodeToString(sum[:])
		pp.logger.Debug().
			Str("submission_uuid", message.SubmissionUUID).
			Str("object_key", rawTextKey).
			Str("preview", tracing.SafeProfileContent(result.RawText)).
			Msg("原始文本已上传到MinIO")
	}

	// 4. 归并人员档案（邮箱是归并键，解析结果保证非空）
	personID, err := pp.mergePerson(ctx, result.Profile)
	if err != nil {
		// 人员归并失败不阻塞主流程，档案记录仍然落库
		pp.logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("查找或创建人员记录失败，跳过关联")
	}

	// 5. 更新数据库记录
	profileJSON, err := models.StructToJSON(result.Profile)
	if err != nil {
		pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("序列化解析结果失败")
		pp.markParseFailed(ctx, message, err)
		return NewDatabaseError(message.SubmissionUUID, "序列化解析结果失败")
	}

	updates := map[string]interface{}{
		"parsed_profile_json": profileJSON,
		"profile_name":        result.Profile.Name,
		"profile_email":       result.Profile.Contact.Email,
		"detected_layout":     string(result.DetectedLayout),
		"raw_text_path_oss":   rawTextKey,
		"raw_text_md5":        rawTextMD5,
		"processing_status":   constants.StatusParsed,
		"parser_version":      pp.cfg.ActiveParserVersion,
		"parse_error":         "",
	}
	if personID != "" {
		updates["person_id"] = personID
	}
	if err := pp.Storage.MySQL.UpdateProfileSubmissionFields(ctx, message.SubmissionUUID, updates); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("更新档案数据库记录失败")
		return NewDatabaseError(message.SubmissionUUID, "更新数据库失败")
	}

	// 6. 写入Redis结果缓存（失败不阻塞）
	if pp.Storage.Redis != nil {
		if err := pp.Storage.Redis.CacheProfileResult(ctx, message.SubmissionUUID, string(profileJSON)); err != nil {
			pp.logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("缓存解析结果失败")
		}
	}

	// 7. 发布解析完成消息
	parsedMsg := storage.ProfileParsedMessage{
		SubmissionUUID:   message.SubmissionUUID,
		ProcessingStatus: constants.StatusParsed,
		RawTextPathOSS:   rawTextKey,
		ProfileName:      result.Profile.Name,
		DetectedLayout:   string(result.DetectedLayout),
		ProcessingTime:   time.Since(startedAt).Milliseconds(),
	}
	if err := pp.publishParsed(ctx, parsedMsg); err != nil {
		// 落库已完成，发布失败只告警，避免重复解析
		tracing.RecordRabbitMQNack(span, parsedMsg.SubmissionUUID, err.Error())
		pp.logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("发布解析完成消息失败")
	}

	pp.logger.Info().
		Str("submission_uuid", message.SubmissionUUID).
		Str("profile_name", result.Profile.Name).
		Str("detected_layout", string(result.DetectedLayout)).
		Dur("elapsed", time.Since(startedAt)).
		Msg("档案解析流程完成")
	return nil
}

// downloadAndParse 从MinIO下载PDF并执行解析，返回完整解析结果
func (pp *ProfileProcessor) downloadAndParse(ctx context.Context, message storage.ProfileUploadMessage) (*types.ParseResult, error) {
	ctx, span := tracer.Start(ctx, "ProfileProcessor.downloadAndParse")
	defer span.End()

	// 步骤 1: 从MinIO下载档案PDF
	pdfBytes, err := pp.Storage.MinIO.GetProfilePDF(ctx, message.OriginalFilePathOSS)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Str("object_key", message.OriginalFilePathOSS).Msg("从MinIO下载档案PDF失败")
		return nil, NewDownloadError(message.SubmissionUUID, err.Error())
	}
	span.AddEvent("pdf downloaded")
	pp.logger.Debug().Str("submission_uuid", message.SubmissionUUID).Int("size", len(pdfBytes)).Msg("档案PDF下载成功")

	// 步骤 2: 带超时执行解析
	parseCtx := ctx
	if timeout := config.GetDuration(pp.cfg.Parser.ParseTimeout, 30*time.Second); timeout > 0 {
		var cancel context.CancelFunc
		parseCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := pp.Parser.Parse(parseCtx, pdfBytes, types.ParseOptions{IncludeRawText: true})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeParser)
		return nil, err
	}
	span.AddEvent("profile assembled")
	span.SetAttributes(
		attribute.String("detected_layout", string(result.DetectedLayout)),
		attribute.Int("experience_count", len(result.Profile.Experience)),
		attribute.Int("education_count", len(result.Profile.Education)),
	)
	return result, nil
}

// mergePerson 按主邮箱查找或创建人员记录，返回关联的person_id
func (pp *ProfileProcessor) mergePerson(ctx context.Context, profile *types.LinkedInProfile) (string, error) {
	if profile.Contact.Email == "" {
		return "", nil
	}
	person, err := pp.Storage.MySQL.FindOrCreatePerson(ctx,
		profile.Contact.Email,
		profile.Name,
		profile.Contact.Phone,
		profile.Headline,
		profile.Location,
		profile.Contact.LinkedinURL,
	)
	if err != nil {
		return "", err
	}
	if person == nil {
		return "", nil
	}
	return person.PersonID, nil
}

// markInvalidInput 标记内容不可用的提交，并发布失败消息
// 这类失败重投无意义，同时清理MD5去重记录，允许修复后的同名文件重新提交
func (pp *ProfileProcessor) markInvalidInput(ctx context.Context, message storage.ProfileUploadMessage, parseErr error, startedAt time.Time) {
	updates := map[string]interface{}{
		"processing_status": constants.StatusInvalidInput,
		"parse_error":       parseErr.Error(),
		"parser_version":    pp.cfg.ActiveParserVersion,
	}
	if err := pp.Storage.MySQL.UpdateProfileSubmissionFields(ctx, message.SubmissionUUID, updates); err != nil {
		pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("更新档案状态为INVALID_INPUT失败")
	}

	if pp.Storage.Redis != nil && message.RawFileMD5 != "" {
		if err := pp.Storage.Redis.RemoveFileMD5(ctx, message.RawFileMD5); err != nil {
			pp.logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("清理文件MD5去重记录失败")
		}
	}

	parsedMsg := storage.ProfileParsedMessage{
		SubmissionUUID:   message.SubmissionUUID,
		ProcessingStatus: constants.StatusInvalidInput,
		ProcessingTime:   time.Since(startedAt).Milliseconds(),
		Error:            parseErr.Error(),
	}
	if err := pp.publishParsed(ctx, parsedMsg); err != nil {
		pp.logger.Warn().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("发布无效输入消息失败")
	}

	pp.logger.Info().Str("submission_uuid", message.SubmissionUUID).Str("reason", parseErr.Error()).Msg("档案内容无效，已标记为INVALID_INPUT")
}

// markParseFailed 记录可重试的处理失败
func (pp *ProfileProcessor) markParseFailed(ctx context.Context, message storage.ProfileUploadMessage, cause error) {
	updates := map[string]interface{}{
		"processing_status": constants.StatusParseFailed,
		"parse_error":       cause.Error(),
	}
	if err := pp.Storage.MySQL.UpdateProfileSubmissionFields(ctx, message.SubmissionUUID, updates); err != nil {
		pp.logger.Error().Err(err).Str("submission_uuid", message.SubmissionUUID).Msg("更新档案状态为PARSE_FAILED失败")
	}
}

// publishParsed 把解析完成消息发布到档案事件交换机
func (pp *ProfileProcessor) publishParsed(ctx context.Context, msg storage.ProfileParsedMessage) error {
	if pp.Storage.RabbitMQ == nil {
		return nil
	}
	exchange := pp.cfg.RabbitMQ.ProfileEventsExchange
	routingKey := pp.cfg.RabbitMQ.ParsedRoutingKey
	if exchange == "" || routingKey == "" {
		return nil
	}
	if err := pp.Storage.RabbitMQ.PublishJSON(ctx, exchange, routingKey, msg, true); err != nil {
		return NewPublishError(msg.SubmissionUUID, err.Error())
	}
	return nil
}
