package parser

import (
	"context"
	"errors"
	"fmt"

	"profile-parser-go/internal/types"
)

// 公开边界上的两类致命错误
// 其余提取缺失（标题、电话、技能、语言、经历、教育）都是静默的部分结果：
// 缺失字段取空串或空列表，从不报错
var (
	// ErrUnreadableInput 解码失败或提取文本不足
	ErrUnreadableInput = errors.New("PDF为空或无法读取")
	// ErrIncompleteProfile 文本结构有效但姓名或邮箱无法分类出来
	ErrIncompleteProfile = errors.New("无法提取基本档案信息（缺少姓名或邮箱）")
)

// minExtractedTextLength 提取文本的最小可用长度
const minExtractedTextLength = 50

// TextDecoder 扁平模式解码协作方：把PDF字节解码为连续文本
// 外部依赖，本核心只消费不实现其语义；假定对同一PDF是确定性的
type TextDecoder interface {
	DecodeText(ctx context.Context, data []byte) (string, error)
}

// FragmentDecoder 结构化模式解码协作方：把PDF字节解码为带坐标的文本片段
// 片段顺序与阅读顺序无关，须由邻近度聚类重排
type FragmentDecoder interface {
	DecodeFragments(ctx context.Context, data []byte) ([]types.TextFragment, error)
}

// Option Parser的配置选项
type Option func(*Parser)

// WithFragmentDecoder 启用结构化解码路径
// 配置后经历解析优先走结构化分类器，失败或无産出时回退到扁平文本分类器
func WithFragmentDecoder(d FragmentDecoder) Option {
	return func(p *Parser) {
		p.fragmentDecoder = d
	}
}

// WithStructuralConfig 覆盖结构化分类器的可调项
func WithStructuralConfig(cfg StructuralConfig) Option {
	return func(p *Parser) {
		p.structuralCfg = cfg
	}
}

// Parser 档案解析器
// 每次调用在自己的输入缓冲上工作，产出独立的结果树，无跨调用共享可变状态，
// 多个解析可以并发执行（前提是解码协作方支持并发使用）
type Parser struct {
	textDecoder     TextDecoder
	fragmentDecoder FragmentDecoder
	structuralCfg   StructuralConfig
}

// NewParser 创建档案解析器
func NewParser(textDecoder TextDecoder, options ...Option) *Parser {
	p := &Parser{textDecoder: textDecoder}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse 解析PDF字节流
// 解码异常或提取文本短于50字符时返回ErrUnreadableInput；
// 组装出的档案缺姓名或邮箱时返回ErrIncompleteProfile
func (p *Parser) Parse(ctx context.Context, data []byte, opts types.ParseOptions) (*types.ParseResult, error) {
	if len(data) == 0 {
		return nil, ErrUnreadableInput
	}
	if p.textDecoder == nil {
		return nil, fmt.Errorf("未配置文本解码器: %w", ErrUnreadableInput)
	}

	text, err := p.textDecoder.DecodeText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableInput, err)
	}

	var fragments []types.TextFragment
	if p.fragmentDecoder != nil {
		// 结构化解码失败不致命，回退到扁平路径
		fragments, _ = p.fragmentDecoder.DecodeFragments(ctx, data)
	}

	return p.parse(text, fragments, opts)
}

// ParseText 解析已提取好的文本（CLI与测试入口）
func (p *Parser) ParseText(_ context.Context, text string, opts types.ParseOptions) (*types.ParseResult, error) {
	return p.parse(text, nil, opts)
}

func (p *Parser) parse(text string, fragments []types.TextFragment, opts types.ParseOptions) (*types.ParseResult, error) {
	if len(text) < minExtractedTextLength {
		return nil, ErrUnreadableInput
	}

	cleaned := CleanText(text)

	basicInfo := ParseBasicInfo(cleaned)
	profile := &types.LinkedInProfile{
		Name:      basicInfo.Name,
		Headline:  basicInfo.Headline,
		Location:  basicInfo.Location,
		Summary:   basicInfo.Summary,
		Contact:   basicInfo.Contact,
		TopSkills: ParseTopSkills(cleaned),
		Languages: ParseLanguages(cleaned),
		Education: ParseEducation(cleaned),
	}
	experience, layout := p.parseExperience(cleaned, fragments)
	profile.Experience = experience
	normalizeProfile(profile)

	// 最低要求：姓名和邮箱都在，否则结果不可用
	if profile.Name == "" || profile.Contact.Email == "" {
		return nil, ErrIncompleteProfile
	}

	result := &types.ParseResult{Profile: profile, DetectedLayout: layout}
	if opts.IncludeRawText {
		result.RawText = text
	}
	return result, nil
}

// parseExperience 按回退契约选择经历分类器：
// 有带坐标片段且检出双栏布局时优先结构化分类器，否则用扁平文本分类器
func (p *Parser) parseExperience(cleaned string, fragments []types.TextFragment) ([]types.Experience, types.LayoutKind) {
	detected := types.LayoutSingleColumn
	if len(fragments) > 0 {
		layout := DetectLayout(fragments, p.structuralCfg.ColumnThreshold)
		detected = layout.Kind
		if layout.Kind == types.LayoutTwoColumn {
			structural := NewStructuralExperienceParser(p.structuralCfg)
			if works := structural.ParseExperience(fragments, nil, nil); len(works) > 0 {
				return FlattenWorkExperiences(works), detected
			}
		}
	}
	return ParseExperience(cleaned), detected
}

// FlattenWorkExperiences 把组织/岗位树展开为对外API的扁平经历列表
// 岗位缺自身时长时落到组织的聚合时长
func FlattenWorkExperiences(works []types.WorkExperience) []types.Experience {
	var flat []types.Experience
	for _, w := range works {
		for _, pos := range w.Positions {
			duration := pos.Duration
			if duration == "" {
				duration = w.TotalDuration
			}
			flat = append(flat, types.Experience{
				Title:       pos.Title,
				Company:     w.Organization,
				Duration:    duration,
				Location:    pos.Location,
				Description: pos.Description,
			})
		}
	}
	return flat
}

// normalizeProfile 把nil切片归一为空切片，保证JSON输出形状稳定
func normalizeProfile(profile *types.LinkedInProfile) {
	if profile.TopSkills == nil {
		profile.TopSkills = []string{}
	}
	if profile.Languages == nil {
		profile.Languages = []types.Language{}
	}
	if profile.Experience == nil {
		profile.Experience = []types.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []types.Education{}
	}
}
