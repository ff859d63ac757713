package parser

import (
	"regexp"
	"strings"

	"profile-parser-go/internal/types"
)

// titleCompanyPatterns 职位行的"title <分隔符> company"拆分规则，按优先级排列
var titleCompanyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+)$`),
	regexp.MustCompile(`^(.+?)\s+@\s+(.+)$`),
	regexp.MustCompile(`^(.+?)\s*[·•-]\s*(.+)$`),
	regexp.MustCompile(`^(.+?),\s*(.+)$`),
}

var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(manager|director|engineer|developer|analyst|consultant|specialist|lead|senior|junior)\b`),
	regexp.MustCompile(`(?i)\b(product|software|data|marketing|sales|business|technical|project)\b.*\b(manager|engineer|analyst)\b`),
	regexp.MustCompile(`(?i)\bat\s+[A-Z]`),
	regexp.MustCompile(`(?i)\s+@\s+[A-Z]`),
	regexp.MustCompile(`[·•-]\s*[A-Z]`),
}

var (
	reMonthName    = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
	rePresentToken = regexp.MustCompile(`(?i)present|atual|current`)
	reLocationLine = regexp.MustCompile(`(?i)^[A-Z][a-z]+(?:,\s*[A-Z][a-z]*)*$`)
)

// ParseExperience 扁平文本路径的经历分类器
// 单次前向扫描维护一个进行中的经历累加器：职位形状的行触发冲洗并开新记录，
// 日期形状的行更新duration，地点形状的行更新location，其余长度大于10的行累入描述。
// 识别到后续章节标题时提前停止。
func ParseExperience(text string) []types.Experience {
	section, ok := ExtractSection(text, SectionExperience)
	if !ok {
		return nil
	}

	var experiences []types.Experience
	var current *types.Experience
	var descriptionLines []string

	flush := func() {
		if current != nil && current.Title != "" {
			current.Description = strings.TrimSpace(strings.Join(descriptionLines, " "))
			experiences = append(experiences, *current)
		}
	}

	for _, line := range SplitLines(section) {
		normalized := NormalizeWhitespace(line)

		if isTrailingSectionHeader(normalized) {
			break
		}

		switch {
		case looksLikeJobTitle(normalized):
			flush()
			exp := parseJobTitleLine(normalized)
			current = &exp
			descriptionLines = nil
		case current != nil && looksLikeDurationLine(normalized):
			current.Duration = normalized
		case current != nil && looksLikeLocationLine(normalized):
			current.Location = normalized
		case current != nil && len(normalized) > 10:
			descriptionLines = append(descriptionLines, normalized)
		}
	}

	flush()
	return experiences
}

// parseJobTitleLine 按顺序尝试各分隔符模式拆出title和company
// 都不命中时整行作为title，company留空
func parseJobTitleLine(line string) types.Experience {
	for _, p := range titleCompanyPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return types.Experience{
				Title:   strings.TrimSpace(m[1]),
				Company: strings.TrimSpace(m[2]),
			}
		}
	}
	return types.Experience{Title: line}
}

// looksLikeJobTitle 职位行启发式：含角色关键词或 at/@/· 分隔符，
// 排除项目符号、货币、百分号和小写开头的行
func looksLikeJobTitle(line string) bool {
	if len(line) <= 5 || len(line) >= 100 {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "education") || strings.Contains(lower, "skills") {
		return false
	}
	if strings.HasPrefix(line, "•") || strings.ContainsAny(line, "$%") {
		return false
	}
	if line[0] >= 'a' && line[0] <= 'z' {
		return false
	}
	for _, p := range jobTitlePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// looksLikeDurationLine 日期区间、月份名、年份或 present/atual/current 记号
func looksLikeDurationLine(line string) bool {
	return reDateRange.MatchString(line) ||
		reMonthName.MatchString(line) ||
		reYearToken.MatchString(line) ||
		rePresentToken.MatchString(line)
}

// looksLikeLocationLine 首字母大写的 "City, ST" 形状短行
func looksLikeLocationLine(line string) bool {
	return len(line) > 2 && len(line) < 50 &&
		reLocationLine.MatchString(line) &&
		!looksLikeDurationLine(line)
}

// isTrailingSectionHeader 经历章节之后可能出现的章节标题
func isTrailingSectionHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "education") ||
		strings.Contains(lower, "skills") ||
		strings.Contains(lower, "languages") ||
		strings.Contains(lower, "certifications")
}
