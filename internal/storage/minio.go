package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/rs/zerolog"

	"profile-parser-go/internal/config"
	"profile-parser-go/internal/logger"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadFile 上传文件到原始存储桶的指定路径
	UploadFile(ctx context.Context, objectName string, reader io.Reader, fileSize int64, contentType string) (string, error)

	// DownloadFile 从原始存储桶下载文件
	DownloadFile(ctx context.Context, objectName string) ([]byte, error)

	// GetPresignedURL 获取预签名URL
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)

	// DeleteFile 删除文件
	DeleteFile(ctx context.Context, objectName string) error

	// 档案特定操作
	UploadProfilePDF(ctx context.Context, submissionUUID string, reader io.Reader, fileSize int64) (string, error)
	UploadRawText(ctx context.Context, submissionUUID string, text string) (string, error)
	GetProfilePDF(ctx context.Context, objectKey string) ([]byte, error)
	GetRawText(ctx context.Context, objectKey string) (string, error)

	// UploadProfilePDFStreaming 流式上传并计算MD5
	UploadProfilePDFStreaming(ctx context.Context, submissionUUID string, reader io.Reader, fileSize int64) (string, string, error)
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
// 原始PDF与提取出的原始文本分桶存放，各自有独立的过期策略
type MinIO struct {
	client         *minio.Client
	cfg            *config.MinIOConfig
	originalBucket string
	rawTextBucket  string
	logger         zerolog.Logger
}

// NewMinIO 创建MinIO客户端
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

	originalBucket := cfg.OriginalsBucket
	if originalBucket == "" {
		originalBucket = "profile-originals"
	}
	rawTextBucket := cfg.ParsedTextBucket
	if rawTextBucket == "" {
		rawTextBucket = "profile-parsed-text"
	}

	m := &MinIO{
		client:         client,
		cfg:            cfg,
		originalBucket: originalBucket,
		rawTextBucket:  rawTextBucket,
		logger:         logger.Logger.With().Str("component", "minio").Logger(),
	}

	if err := m.ensureBucketExists(originalBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始档案存储桶 %s 存在失败: %w", originalBucket, err)
	}
	if err := m.ensureBucketExists(rawTextBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始文本存储桶 %s 存在失败: %w", rawTextBucket, err)
	}

	if cfg.OriginalFileExpireDays > 0 || cfg.ParsedTextExpireDays > 0 {
		if err := m.setupLifecycleRules(context.Background()); err != nil {
			m.logger.Warn().Err(err).Msg("设置存储桶生命周期规则失败")
		}
	}

	m.logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("original_bucket", originalBucket).
		Str("raw_text_bucket", rawTextBucket).
		Msg("MinIO客户端初始化成功")
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
		m.logger.Info().Str("bucket", bucketName).Msg("存储桶创建成功")
	}
	return nil
}

// setupLifecycleRules 设置对象生命周期规则
func (m *MinIO) setupLifecycleRules(ctx context.Context) error {
	if m.cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, m.originalBucket, "expire-originals", m.cfg.OriginalFileExpireDays); err != nil {
			return fmt.Errorf("为原始文件存储桶 %s 设置生命周期失败: %w", m.originalBucket, err)
		}
	}
	if m.cfg.ParsedTextExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, m.rawTextBucket, "expire-raw-text", m.cfg.ParsedTextExpireDays); err != nil {
			return fmt.Errorf("为原始文本存储桶 %s 设置生命周期失败: %w", m.rawTextBucket, err)
		}
	}
	return nil
}

// setupBucketLifecycle 为指定存储桶设置生命周期规则
func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName, ruleID string, expiryDays int) error {
	lcConfig := lifecycle.NewConfiguration()
	lcConfig.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}

	if err := m.client.SetBucketLifecycle(ctx, bucketName, lcConfig); err != nil {
		return err
	}
	m.logger.Debug().Str("bucket", bucketName).Int("expiry_days", expiryDays).Msg("生命周期规则设置完成")
	return nil
}

// UploadFile 上传文件到原始存储桶
func (m *MinIO) UploadFile(ctx context.Context, objectName string, reader io.Reader, fileSize int64, contentType string) (string, error) {
	info, err := m.client.PutObject(ctx, m.originalBucket, objectName, reader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.originalBucket, objectName, err)
	}
	m.logger.Debug().Str("object", objectName).Str("etag", info.ETag).Int64("size", info.Size).Msg("对象上传成功")
	return objectName, nil
}

// uploadFileFromBytes 从字节数组上传文件
func (m *MinIO) uploadFileFromBytes(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	return m.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
}

// UploadProfilePDF 上传原始档案PDF，返回对象键（不含bucket前缀）
func (m *MinIO) UploadProfilePDF(ctx context.Context, submissionUUID string, reader io.Reader, fileSize int64) (string, error) {
	objectName := fmt.Sprintf("profile/%s/original.pdf", submissionUUID)
	return m.UploadFile(ctx, objectName, reader, fileSize, "application/pdf")
}

// UploadProfilePDFStreaming 流式上传档案PDF并同时计算MD5
// 返回: objectKey, md5Hex, error
func (m *MinIO) UploadProfilePDFStreaming(ctx context.Context, submissionUUID string, reader io.Reader, fileSize int64) (string, string, error) {
	objectName := fmt.Sprintf("profile/%s/original.pdf", submissionUUID)

	md5Hash := md5.New()
	teeReader := io.TeeReader(reader, md5Hash)

	info, err := m.client.PutObject(ctx, m.originalBucket, objectName, teeReader,
		fileSize, minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", "", fmt.Errorf("流式上传文件到MinIO失败: %w", err)
	}

	md5Hex := hex.EncodeToString(md5Hash.Sum(nil))
	m.logger.Debug().
		Str("object", objectName).
		Str("etag", info.ETag).
		Str("md5", md5Hex).
		Msg("档案PDF流式上传成功")
	return objectName, md5Hex, nil
}

// UploadRawText 上传提取出的原始文本
func (m *MinIO) UploadRawText(ctx context.Context, submissionUUID string, text string) (string, error) {
	objectName := fmt.Sprintf("profile/%s/raw_text.txt", submissionUUID)
	_, err := m.client.PutObject(ctx, m.rawTextBucket, objectName, strings.NewReader(text), int64(len(text)), minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return "", fmt.Errorf("上传原始文本 %s 到存储桶 %s 失败: %w", objectName, m.rawTextBucket, err)
	}
	return objectName, nil
}

// DownloadFile 从原始存储桶下载文件
func (m *MinIO) DownloadFile(ctx context.Context, objectName string) ([]byte, error) {
	return m.downloadFrom(ctx, m.originalBucket, objectName)
}

// downloadFrom 从指定存储桶下载对象
func (m *MinIO) downloadFrom(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", bucketName, objectName, err)
	}
	defer obj.Close()

	// Stat 能尽早暴露对象不存在或无权限的问题
	stat, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 状态失败: %w", bucketName, objectName, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 数据失败: %w", bucketName, objectName, err)
	}
	m.logger.Debug().
		Str("object", objectName).
		Int64("size", stat.Size).
		Msg("对象下载成功")
	return data, nil
}

// GetProfilePDF 从MinIO获取原始档案PDF
func (m *MinIO) GetProfilePDF(ctx context.Context, objectKey string) ([]byte, error) {
	return m.downloadFrom(ctx, m.originalBucket, objectKey)
}

// GetRawText 从MinIO获取提取出的原始文本
func (m *MinIO) GetRawText(ctx context.Context, objectKey string) (string, error) {
	data, err := m.downloadFrom(ctx, m.rawTextBucket, objectKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetPresignedURL 获取原始存储桶对象的预签名URL
func (m *MinIO) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := m.client.PresignedGetObject(ctx, m.originalBucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成MinIO预签名URL失败: %w", err)
	}
	return presignedURL.String(), nil
}

// DeleteFile 删除原始存储桶中的对象
func (m *MinIO) DeleteFile(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.originalBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("删除对象 %s 失败: %w", objectName, err)
	}
	return nil
}

// StatObject 暴露底层的StatObject方法，用于测试或特定场景
func (m *MinIO) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return m.client.StatObject(ctx, bucketName, objectName, opts)
}
