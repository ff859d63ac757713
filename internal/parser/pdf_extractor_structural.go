package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"profile-parser-go/internal/logger"
	"profile-parser-go/internal/types"
)

var _ FragmentDecoder = (*StructuralPDFExtractor)(nil)

// pageYSpan 跨页时的y坐标平移量
// PDF坐标系以页面左下角为原点，每页y各自从头计数；
// 把第n页整体下移 n*pageYSpan 后，全文档的y仍满足"越靠前越大"
const pageYSpan = 1000.0

// StructuralPDFExtractor 结构化PDF解码器，实现 FragmentDecoder 接口
// 逐页读取文本层，产出带坐标和字号的片段序列，供布局检测与邻近分组消费
type StructuralPDFExtractor struct {
	logger zerolog.Logger
}

// NewStructuralPDFExtractor 创建结构化PDF解码器
func NewStructuralPDFExtractor() *StructuralPDFExtractor {
	return &StructuralPDFExtractor{
		logger: logger.Logger.With().Str("component", "structural_pdf_extractor").Logger(),
	}
}

// DecodeFragments 从PDF字节流提取全部定位文本片段
// 同一行内连续的字符级条目会按坐标归并为词级片段
func (e *StructuralPDFExtractor) DecodeFragments(ctx context.Context, data []byte) ([]types.TextFragment, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("PDF内容为空")
	}
	startTime := time.Now()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("打开PDF失败: %w", err)
	}

	var fragments []types.TextFragment
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}

		// 后面的页整体下移，保持全文档y单调语义
		yOffset := float64(numPages-i) * pageYSpan
		fragments = append(fragments, mergePageTexts(texts, yOffset)...)
	}

	e.logger.Debug().
		Int("pages", numPages).
		Int("fragments", len(fragments)).
		Dur("elapsed", time.Since(startTime)).
		Msg("结构化PDF片段提取完成")
	return fragments, nil
}

// mergePageTexts 把单页的字符级条目归并为词级片段
// ledongthuc/pdf 返回的 Text 粒度通常是单个字形，直接分组会产生大量碎片
func mergePageTexts(texts []pdf.Text, yOffset float64) []types.TextFragment {
	var fragments []types.TextFragment
	var current *types.TextFragment
	var buf strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		text := strings.TrimSpace(buf.String())
		if text != "" {
			current.Text = text
			fragments = append(fragments, *current)
		}
		current = nil
		buf.Reset()
	}

	var prevEnd float64
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		// 同一基线且水平连续时并入当前片段；间距超过一个字号视为断开
		sameRun := current != nil &&
			current.Y == t.Y+yOffset &&
			current.FontSize == t.FontSize &&
			t.X-prevEnd < t.FontSize

		if !sameRun {
			flush()
			current = &types.TextFragment{
				X:          t.X,
				Y:          t.Y + yOffset,
				FontSize:   t.FontSize,
				FontFamily: t.Font,
				Height:     t.FontSize,
			}
		}
		buf.WriteString(t.S)
		prevEnd = t.X + t.W
		current.Width = prevEnd - current.X
	}
	flush()
	return fragments
}
