package parser

import (
	"regexp"
	"strings"

	"profile-parser-go/internal/types"
)

// StructuralConfig 结构化经历分类器的可调项
// 已知组织白名单和人名排除表默认都为空，由调用方按数据集配置；
// 它们不是通用契约，只是特定语料上的高置信捷径。
type StructuralConfig struct {
	// KnownOrganizations 大小写不敏感匹配的已知组织名片段
	KnownOrganizations []string
	// ExcludedPersonNames 形似组织但实为档案主人姓名的排除表
	ExcludedPersonNames []string
	// ColumnThreshold 边栏/主区x分界线，零值取默认150
	ColumnThreshold float64
	// LineYDistance 行聚类y间距，零值取经历专用的3
	LineYDistance float64
}

func (c StructuralConfig) columnThreshold() float64 {
	if c.ColumnThreshold > 0 {
		return c.ColumnThreshold
	}
	return defaultColumnThreshold
}

func (c StructuralConfig) lineYDistance() float64 {
	if c.LineYDistance > 0 {
		return c.LineYDistance
	}
	return tightLineYDistance
}

// StructuralExperienceParser 基于带坐标片段的经历分类器
type StructuralExperienceParser struct {
	cfg StructuralConfig
}

// NewStructuralExperienceParser 创建结构化经历分类器
func NewStructuralExperienceParser(cfg StructuralConfig) *StructuralExperienceParser {
	return &StructuralExperienceParser{cfg: cfg}
}

// ParseExperience 解析主内容区的经历
// 输入片段先裁剪到主栏（x高于分界线）和可选的y范围，再做紧间距行聚类、
// 逐行分类和状态机组装
func (p *StructuralExperienceParser) ParseExperience(fragments []types.TextFragment, startY, endY *float64) []types.WorkExperience {
	var relevant []types.TextFragment
	for _, f := range fragments {
		if f.X < p.cfg.columnThreshold() {
			continue
		}
		if startY != nil && endY != nil && (f.Y > *startY || f.Y < *endY) {
			continue
		}
		relevant = append(relevant, f)
	}

	groups := GroupByProximity(relevant, p.cfg.lineYDistance(), p.cfg.columnThreshold())
	lines := CombineGroupedText(groups)

	classified := p.ClassifyLines(lines, groups)
	return p.buildWorkExperiences(classified)
}

// ClassifyLines 给每个行组打类型标签并算置信度
// 置信度只是诊断输出，调优用，组装阶段的状态转移不依赖它
func (p *StructuralExperienceParser) ClassifyLines(lines []string, groups [][]types.TextFragment) []types.ClassifiedLine {
	var sections []types.ClassifiedLine
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(line) < 2 {
			continue
		}

		fontSize := meanFontSize(groups[i])
		section := types.ClassifiedLine{
			Type:     p.classifyLineType(line, fontSize, i, lines),
			Text:     line,
			FontSize: fontSize,
			Y:        meanY(groups[i]),
		}
		section.Confidence = lineConfidence(line, section.Type, fontSize)
		sections = append(sections, section)
	}
	return sections
}

// classifyLineType 行类型判定，按优先级：章节标题→组织→时长→职位→地点→描述
func (p *StructuralExperienceParser) classifyLineType(line string, fontSize float64, index int, allLines []string) types.LineType {
	lower := strings.ToLower(line)

	if strings.Contains(lower, "experience") || strings.Contains(lower, "experiência") {
		return types.LineOther
	}
	if p.looksLikeOrganization(line, fontSize, index, allLines) {
		return types.LineOrganization
	}
	if looksLikeStructuralDuration(line) {
		return types.LineDuration
	}
	if looksLikeStructuralPosition(line) {
		return types.LinePosition
	}
	if looksLikeStructuralLocation(line) {
		return types.LineLocation
	}
	if len(line) > 30 {
		return types.LineDescription
	}
	return types.LineOther
}

// nonOrganizationHeaders 形似组织名的章节标题和边栏短语
var nonOrganizationHeaders = []string{
	"contact", "top skills", "languages", "summary", "education",
	"experience", "experiência", "formação", "idiomas", "competências",
	"habilidades", "certifications",
}

// reTenurePrefix "3 years 2 months"式的组织总任期行
var reTenurePrefix = regexp.MustCompile(`^\d+\s+(years?|months?|anos?|meses?)`)

var organizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][A-Za-z\s&.,-]{2,25}$`),
	regexp.MustCompile(`^[A-Z]{2,6}$`),
	regexp.MustCompile(`(?i)^[A-Z][A-Za-z]+\s+(Inc|LLC|Ltd|Corp|Corporation|Company|Technologies|Tech|Solutions|Systems|Group|Labs|Studio)$`),
}

// looksLikeOrganization 组织行判定：短行、较大字号，且后续1-3行里有
// 时长或职位等佐证信号；已知组织名片段是高置信捷径，但要求该行基本就是组织名本身
func (p *StructuralExperienceParser) looksLikeOrganization(line string, fontSize float64, index int, allLines []string) bool {
	if len(line) > 50 {
		return false
	}

	hasJobDetailsAfter := false
	for _, next := range lookahead(allLines, index, 3) {
		if looksLikeStructuralDuration(next) || looksLikeStructuralPosition(next) ||
			reTenurePrefix.MatchString(next) {
			hasJobDetailsAfter = true
			break
		}
	}

	lower := strings.ToLower(line)
	for _, header := range nonOrganizationHeaders {
		if strings.Contains(lower, header) {
			return false
		}
	}

	for _, org := range p.cfg.KnownOrganizations {
		orgLower := strings.ToLower(org)
		if !strings.Contains(lower, orgLower) {
			continue
		}
		clean := strings.TrimSpace(lower)
		isCleanName := clean == orgLower ||
			(strings.HasPrefix(clean, orgLower) && len(line) < len(org)+20) ||
			(strings.HasSuffix(clean, orgLower) && len(line) < len(org)+20) ||
			len(line) < 30
		return isCleanName && hasJobDetailsAfter
	}

	matchesPattern := false
	for _, pat := range organizationPatterns {
		if pat.MatchString(line) {
			matchesPattern = true
			break
		}
	}

	return matchesPattern && fontSize > 11 && hasJobDetailsAfter
}

// lookahead 返回index之后最多n行
func lookahead(lines []string, index, n int) []string {
	start := index + 1
	if start >= len(lines) {
		return nil
	}
	end := start + n
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}

var positionKeywords = []string{
	// 英文职级
	"manager", "engineer", "director", "lead", "senior", "principal", "chief", "head of",
	"co-founder", "founder", "president", "vice president", "vp", "analyst", "specialist",
	"developer", "architect", "consultant", "coordinator", "supervisor",
	// 葡文职级
	"gerente", "diretor", "coordenador", "analista", "especialista", "consultor",
	"desenvolvedor", "engenheiro", "arquiteto", "assessor", "gestor",
	// 复合职级
	"product manager", "software engineer", "tech lead", "technical lead", "scrum master",
}

var descriptionMarkers = []string{
	"i lead", "i manage", "i work", "i was", "responsible for",
	"working as", "joined the", "my role",
}

// looksLikeStructuralPosition 职位行判定：含职级关键词，排除时长/地点行
// 和句子结构的描述行，并要求合理的标题形状
func looksLikeStructuralPosition(line string) bool {
	lower := strings.ToLower(line)

	hasKeyword := false
	for _, kw := range positionKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return false
	}
	if looksLikeStructuralDuration(line) || looksLikeStructuralLocation(line) {
		return false
	}

	isDescription := len(line) > 80 ||
		strings.HasPrefix(lower, "i ") ||
		strings.Contains(line, "•") ||
		strings.Contains(line, "...") ||
		len(strings.Fields(line)) > 15
	for _, marker := range descriptionMarkers {
		if strings.Contains(lower, marker) {
			isDescription = true
			break
		}
	}
	if isDescription {
		return false
	}

	return len(line) > 5 && len(line) < 80 &&
		!strings.ContainsAny(line, "()•@") &&
		!strings.Contains(line, "http") &&
		len(strings.Fields(line)) <= 12
}

var structuralDurationPatterns = []*regexp.Regexp{
	// 英文
	regexp.MustCompile(`\b\d{4}\s*-\s*\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{4}\s*-\s*(present|current)\b`),
	regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`),
	regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\s+\d{4}`),
	regexp.MustCompile(`(?i)\(\d+\s+(years?|months?)\s*\d*\s*(months?)?\)`),
	regexp.MustCompile(`(?i)\d+\s+(years?|months?)\s+\d+\s+(months?|years?)`),
	// 葡文
	regexp.MustCompile(`(?i)\b(janeiro|fevereiro|março|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\s+de\s+\d{4}`),
	regexp.MustCompile(`(?i)\(\d+\s+(anos?|meses?)\s*\d*\s*(meses?)?\)`),
	regexp.MustCompile(`(?i)\d+\s+(anos?|meses?)\s+\d+\s+(meses?|anos?)`),
}

func looksLikeStructuralDuration(line string) bool {
	for _, p := range structuralDurationPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

var structuralLocationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+,\s*[A-Z]{2}$`),
	regexp.MustCompile(`^[A-Z][a-z]+,\s*[A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+,\s*[A-Z][a-z]+,\s*[A-Z][a-z]+`),
	regexp.MustCompile(`(?i)(California|New York|Texas|Florida|United States|Brasil|Brazil|Rio de Janeiro|São Paulo)`),
}

func looksLikeStructuralLocation(line string) bool {
	if len(line) >= 80 || looksLikeStructuralDuration(line) {
		return false
	}
	for _, p := range structuralLocationPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// lineConfidence 按类型给出启发式加成：更大字号、更短文本、
// 时长行里的数字、地点行里的逗号。结果仅作诊断，不做决策门槛。
func lineConfidence(line string, lineType types.LineType, fontSize float64) float64 {
	confidence := 0.5

	switch lineType {
	case types.LineOrganization:
		if fontSize > 12 {
			confidence += 0.2
		}
		if len(line) < 30 {
			confidence += 0.2
		}
	case types.LinePosition:
		lower := strings.ToLower(line)
		if strings.Contains(lower, "manager") || strings.Contains(lower, "engineer") {
			confidence += 0.3
		}
	case types.LineDuration:
		if reYearToken.MatchString(line) {
			confidence += 0.3
		}
	case types.LineLocation:
		if strings.Contains(line, ",") {
			confidence += 0.2
		}
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// assemblyState 组装状态机的命名状态
type assemblyState int

const (
	stateNoOrganization assemblyState = iota
	stateInOrganization
	stateInPosition
)

// experienceBuilder 组装状态机的显式局部状态
// 取代散落的哨兵变量：当前组织、进行中的岗位和待归属的描述缓冲
type experienceBuilder struct {
	state        assemblyState
	result       []types.WorkExperience
	organization *types.WorkExperience
	position     *types.Position
	descriptions []string
}

// buildWorkExperiences 对分类行做一次fold，按状态机转移组装WorkExperience
// 转移与置信度无关：organization行冲洗旧状态并开新组织（名字清洗失败时该行
// 转入描述缓冲，避免凭空多出组织）；position行在当前组织下开新岗位；
// duration更新开放岗位或组织聚合时长；location更新开放岗位；description累入缓冲。
// 输入耗尽时冲洗所有未闭合状态。
func (p *StructuralExperienceParser) buildWorkExperiences(sections []types.ClassifiedLine) []types.WorkExperience {
	b := &experienceBuilder{}

	for _, section := range sections {
		switch section.Type {
		case types.LineOrganization:
			name := p.extractCleanOrganizationName(section.Text)
			if name == "" {
				if strings.TrimSpace(section.Text) != "" {
					b.descriptions = append(b.descriptions, section.Text)
				}
				continue
			}
			b.flushOrganization()
			b.organization = &types.WorkExperience{Organization: name}
			b.state = stateInOrganization

		case types.LinePosition:
			b.flushPosition()
			b.position = &types.Position{Title: section.Text}
			b.descriptions = nil
			b.state = stateInPosition

		case types.LineDuration:
			clean := p.extractCleanDuration(section.Text)
			switch b.state {
			case stateInPosition:
				b.position.Duration = clean
			case stateInOrganization:
				if b.organization.TotalDuration == "" {
					b.organization.TotalDuration = clean
				}
			}

		case types.LineLocation:
			if b.state == stateInPosition {
				b.position.Location = section.Text
			}

		case types.LineDescription:
			b.descriptions = append(b.descriptions, section.Text)
		}
	}

	b.flushOrganization()
	return b.result
}

// flushPosition 把进行中的岗位连同描述缓冲归入当前组织
func (b *experienceBuilder) flushPosition() {
	if b.position != nil && b.position.Title != "" && b.organization != nil {
		b.position.Description = strings.TrimSpace(strings.Join(b.descriptions, " "))
		b.organization.Positions = append(b.organization.Positions, *b.position)
	}
	b.position = nil
	b.descriptions = nil
	if b.organization != nil {
		b.state = stateInOrganization
	} else {
		b.state = stateNoOrganization
	}
}

// flushOrganization 冲洗开放岗位后把当前组织并入结果
func (b *experienceBuilder) flushOrganization() {
	b.flushPosition()
	if b.organization != nil && b.organization.Organization != "" {
		b.result = append(b.result, *b.organization)
	}
	b.organization = nil
	b.state = stateNoOrganization
}

var organizationCleanPatterns = []*regexp.Regexp{
	// 行首的组织名
	regexp.MustCompile(`^([A-Z][A-Za-z\s&.,-]{1,30})(?:\s+[a-z]|\s*-|\s*\||$)`),
	// 独立成行的组织名
	regexp.MustCompile(`^([A-Z][A-Za-z\s&.,-]{1,25})$`),
	// 带企业实体后缀的组织名
	regexp.MustCompile(`(?i)^([A-Z][A-Za-z\s&.,-]+(?:Inc|LLC|Ltd|Corp|Corporation|Company|Technologies|Tech|Solutions|Systems|Group|Labs|Studio))`),
}

var reTrailingNoise = regexp.MustCompile(`(?i)\s+(clarifications|for|scalable|solutions|and|or|the|of|in|at|with)\b.*$`)
var rePersonNameShape = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

// extractCleanOrganizationName 组织名清洗
// 已知组织表精确优先；其次"公司形状"正则并剥离已知尾随噪声词；
// 两个首字母大写单词、形似人名的结果一律拒绝（返回空串表示放弃该组织）
func (p *StructuralExperienceParser) extractCleanOrganizationName(text string) string {
	lower := strings.ToLower(text)

	for _, org := range p.cfg.KnownOrganizations {
		if strings.Contains(lower, strings.ToLower(org)) {
			return org
		}
	}

	for _, name := range p.cfg.ExcludedPersonNames {
		if strings.Contains(lower, strings.ToLower(name)) {
			return ""
		}
	}

	for _, pat := range organizationCleanPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = strings.TrimSpace(reTrailingNoise.ReplaceAllString(name, ""))

		if rePersonNameShape.MatchString(name) {
			return ""
		}
		if len(name) >= 2 && len(name) <= 30 {
			return name
		}
	}

	// 兜底：截到30字符再清一次尾随噪声
	clean := strings.TrimSpace(text)
	if len(clean) > 30 {
		clean = strings.TrimSpace(clean[:30])
	}
	clean = strings.TrimSpace(reTrailingNoise.ReplaceAllString(clean, ""))
	if clean == "" {
		return strings.TrimSpace(text)
	}
	return clean
}

var durationCleanPatterns = []*regexp.Regexp{
	// 完整日期区间
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+\s+\d{4}\s*-\s*[A-Z][a-z]+\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+\s+\d{4}\s*-\s*Present)\b`),
	regexp.MustCompile(`\b(\d{4}\s*-\s*\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{4}\s*-\s*Present)\b`),
	// 月年
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+\s+\d{4})\b`),
	// 括号里的时长
	regexp.MustCompile(`(?i)\((\d+\s+(?:years?|months?|anos?|meses?)(?:\s+\d+\s+(?:months?|meses?))?)\)`),
	// 葡文日期
	regexp.MustCompile(`(?i)\b([a-z]+\s+de\s+\d{4}\s*-\s*[a-z]+\s+de\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b([a-z]+\s+de\s+\d{4}\s*-\s*Present)\b`),
}

var reLeadingVerbProse = regexp.MustCompile(`(?i)^(Provided|Led|Managed|Built|Developed|Implemented|Created|Designed|Worked|Coordinated|Contributed)\s+.*?(\b[A-Z][a-z]+\s+\d{4}|\d{4})`)
var reDateScan = regexp.MustCompile(`(?i)\b(?:[A-Z][a-z]+\s+\d{4}|\d{4}(?:\s*-\s*(?:[A-Z][a-z]+\s+\d{4}|\d{4}|Present))?)|\(\d+\s+(?:years?|months?|anos?|meses?)(?:\s+\d+\s+(?:months?|meses?))?\)`)

// extractCleanDuration 时长清洗
// 优先显式的月年区间/年区间/括号时长；否则剥掉首个日期记号前的描述动词
// 开头的叙述文字，取通用日期扫描的首个命中；最终兜底原样返回
func (p *StructuralExperienceParser) extractCleanDuration(text string) string {
	for _, pat := range durationCleanPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "•")
	clean = strings.TrimPrefix(clean, "-")
	clean = strings.TrimPrefix(clean, "*")
	clean = strings.TrimSpace(clean)

	// 去掉"Provided ..."这类叙述前缀，保留从首个日期记号开始的部分
	if loc := reLeadingVerbProse.FindStringSubmatchIndex(clean); loc != nil && loc[4] >= 0 {
		clean = clean[loc[4]:]
	}

	if m := reDateScan.FindString(clean); m != "" {
		return strings.TrimSpace(m)
	}

	if len(clean) < 50 && (strings.Contains(clean, "-") || reYearToken.MatchString(clean) || indexFold(clean, "present") >= 0) {
		return clean
	}
	if reYearToken.MatchString(clean) {
		if len(clean) > 50 {
			clean = strings.TrimSpace(clean[:50])
		}
		return clean
	}
	return strings.TrimSpace(text)
}
