package parser

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"profile-parser-go/internal/logger"
)

// EinoPDFTextExtractor 使用 Eino PDF Parser 做扁平模式解码
// 实现 TextDecoder 接口，把整个PDF解码为单个连续文本
type EinoPDFTextExtractor struct {
	parser *pdf.PDFParser
	logger zerolog.Logger
}

var _ TextDecoder = (*EinoPDFTextExtractor)(nil)

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFTextExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(l zerolog.Logger) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		e.logger = l
	}
}

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器
// 不按页面分割，整个文档的文本作为一个字符串返回
func NewEinoPDFTextExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	extractor := &EinoPDFTextExtractor{
		parser: p,
		logger: logger.Logger.With().Str("component", "pdf_extractor").Logger(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// DecodeText 实现 TextDecoder 接口，从PDF字节流提取完整纯文本
func (e *EinoPDFTextExtractor) DecodeText(ctx context.Context, data []byte) (string, error) {
	startTime := time.Now()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI("profile.pdf"),
		einoParser.WithExtraMeta(map[string]any{
			"extraction_time": time.Now().Format(time.RFC3339),
		}),
	)
	if err != nil {
		e.logger.Error().Err(err).Dur("elapsed", time.Since(startTime)).Msg("PDF文本提取失败")
		return "", fmt.Errorf("Eino PDF解析失败: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("Eino PDF解析未返回任何文档")
	}

	text := docs[0].Content
	e.logger.Debug().
		Int("chars", len(text)).
		Dur("elapsed", time.Since(startTime)).
		Msg("PDF文本提取完成")
	return text, nil
}
