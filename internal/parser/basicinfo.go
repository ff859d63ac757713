package parser

import (
	"regexp"
	"strings"

	"profile-parser-go/internal/types"
)

// BasicInfo 基本信息分类器的输出
type BasicInfo struct {
	Name     string
	Headline string
	Location string
	Summary  string
	Contact  types.Contact
}

// extractRule 有序规则表中的一项：谓词+提取器合并为一个函数，
// 命中时返回 (结果, true)，按优先级顺序求值，首个命中即停
type extractRule struct {
	name  string
	apply func(text string) (string, bool)
}

// applyRules 按顺序求值规则表，返回首个命中的结果
func applyRules(text string, rules []extractRule) string {
	for _, r := range rules {
		if out, ok := r.apply(text); ok {
			return out
		}
	}
	return ""
}

// ParseBasicInfo 从规范化文本提取姓名、标题、地点、摘要和联系方式
func ParseBasicInfo(text string) BasicInfo {
	return BasicInfo{
		Name:     extractName(text),
		Headline: extractHeadline(text),
		Location: extractLocation(text),
		Summary:  extractSummary(text),
		Contact:  extractContact(text),
	}
}

// nameExclusions 形似人名但不是人名的已知短语（章节标题、技能短语）
var nameExclusions = []string{
	"Contact", "Top Skills", "Languages", "Summary", "Experience",
	"Education", "Certifications", "Honors Awards", "Project Planning",
	"Strategic Roadmaps",
}

func isExcludedName(candidate string) bool {
	for _, ex := range nameExclusions {
		if strings.EqualFold(candidate, ex) {
			return true
		}
	}
	return false
}

// extractName 在开头若干行里找两到三个首字母大写单词构成的人名
// 含@、http或已知关键词的行直接跳过；没有命中返回空串，
// 这是可恢复的缺失而非致命错误（致命与否由下游的email校验决定）
func extractName(text string) string {
	lines := SplitLines(text)

	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		lower := strings.ToLower(line)

		if strings.Contains(line, "@") ||
			strings.Contains(line, "http") ||
			strings.Contains(lower, "linkedin") ||
			strings.Contains(lower, "contact") ||
			strings.Contains(lower, "page") ||
			len(line) < 3 || len(line) > 50 {
			continue
		}

		if m := reNameStrict.FindStringSubmatch(line); m != nil && !isExcludedName(m[1]) {
			return m[1]
		}
		if reNameLoose.MatchString(line) && !strings.Contains(line, ",") {
			candidate := strings.TrimSpace(reMultipleSpaces.Split(line, 2)[0])
			if !isExcludedName(candidate) {
				return candidate
			}
		}
	}

	if m := reNameFallback.FindStringSubmatch(text); m != nil && !isExcludedName(m[1]) {
		return m[1]
	}
	return ""
}

var headlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Senior|Lead|Principal|Chief|Director|VP|President).+`),
	regexp.MustCompile(`(?i)(Product|Software|Data|Marketing|Sales|Business).+(Manager|Engineer|Analyst|Director)`),
	regexp.MustCompile(`.*@.*\|.*`),
	regexp.MustCompile(`.*[·•-].*`),
}

// extractHeadline 找管道符分隔的多段标题或含职级/角色关键词的行
// 限定在15-150字符窗口内，返回首个命中行并在第一个 | 处截断
func extractHeadline(text string) string {
	lines := SplitLines(text)

	limit := 15
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		lower := strings.ToLower(line)

		if strings.Contains(line, "@") ||
			strings.Contains(line, "http") ||
			strings.Contains(lower, "contact") ||
			strings.Contains(lower, "page") ||
			len(line) < 15 || len(line) > 150 {
			continue
		}

		for _, p := range headlinePatterns {
			if p.MatchString(line) {
				return strings.TrimSpace(strings.Split(line, "|")[0])
			}
		}
	}
	return ""
}

var locationRules = []extractRule{
	{
		name: "city-region-country",
		apply: func(text string) (string, bool) {
			m := regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z][a-z]+,\s*[A-Z][A-Za-z ]{2,})(?:\s|$)`).FindStringSubmatch(text)
			if m == nil {
				return "", false
			}
			return strings.TrimSpace(m[1]), true
		},
	},
	{
		name: "city-region",
		apply: func(text string) (string, bool) {
			m := regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z][a-z]+)(?:\s|$)`).FindStringSubmatch(text)
			if m == nil {
				return "", false
			}
			return strings.TrimSpace(m[1]), true
		},
	},
	{
		name: "known-city",
		apply: func(text string) (string, bool) {
			for _, city := range knownCities {
				if idx := indexFold(text, city); idx >= 0 {
					return text[idx : idx+len(city)], true
				}
			}
			return "", false
		},
	},
}

// extractLocation 依次尝试"城市, 地区, 国家"、"城市, 地区"和已知城市表，首个命中即止
func extractLocation(text string) string {
	return applyRules(text, locationRules)
}

// extractSummary 优先取专门的Summary章节，拼接长度大于10的行并截断到500字符
// 章节缺失时退化为扫描第5-30行，收集长度在(50,200)且不指向其他章节的行，
// 累计超过100字符即停
func extractSummary(text string) string {
	if section, ok := ExtractSection(text, SectionSummary); ok && section != "" {
		var kept []string
		for _, line := range SplitLines(section) {
			if len(strings.TrimSpace(line)) > 10 {
				kept = append(kept, NormalizeWhitespace(line))
			}
		}
		return truncate(strings.Join(kept, " "), 500)
	}

	lines := SplitLines(text)
	var collected []string
	upper := 30
	if len(lines) < upper {
		upper = len(lines)
	}
	for i := 5; i < upper; i++ {
		line := lines[i]
		lower := strings.ToLower(line)

		if len(line) > 50 && len(line) < 200 &&
			!strings.Contains(line, "@") &&
			!strings.Contains(lower, "experience") &&
			!strings.Contains(lower, "education") &&
			!strings.Contains(lower, "skills") {
			collected = append(collected, line)
			if len(strings.Join(collected, " ")) > 100 {
				break
			}
		}
	}
	return truncate(strings.Join(collected, " "), 500)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// extractContact 提取邮箱、LinkedIn链接和电话
// 电话是宽松的数字分组匹配，缺失不算错误
func extractContact(text string) types.Contact {
	contact := types.Contact{
		Email: extractEmail(text),
	}

	if handle := extractLinkedInHandle(text); handle != "" {
		contact.LinkedinURL = "https://linkedin.com/in/" + handle
	}

	if m := rePhone.FindString(text); m != "" {
		contact.Phone = strings.TrimSpace(m)
	}

	return contact
}

// extractEmail 逐个检视文本中的@出现位置
// 用户名取@前的连续标识符安全字符；域名优先匹配服务商白名单
// （避免把紧贴域名的尾随噪声吞进来），否则退化到通用域名形状加长度合理性检查；
// 按文档顺序返回第一个可接受的匹配。
func extractEmail(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}

		user := usernameBefore(text, i)
		if user == "" {
			continue
		}
		rest := text[i+1:]

		// 白名单优先
		for _, provider := range emailProviderWhitelist {
			if len(rest) >= len(provider) && strings.EqualFold(rest[:len(provider)], provider) {
				return user + "@" + provider
			}
		}

		// 通用域名形状兜底
		if domain := genericDomainAfter(rest); domain != "" {
			return user + "@" + domain
		}
	}
	return ""
}

// usernameBefore 从@向前扫描标识符安全字符 [A-Za-z0-9._%+-]
func usernameBefore(text string, at int) string {
	start := at
	for start > 0 && isEmailUserChar(text[start-1]) {
		start--
	}
	return text[start:at]
}

func isEmailUserChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '.' || c == '_' || c == '%' || c == '+' || c == '-'
}

// genericDomainAfter 通用域名匹配，带长度和内容的合理性检查
func genericDomainAfter(rest string) string {
	m := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,}`).FindString(rest)
	if m == "" {
		return ""
	}
	// 域名长度离谱或没有字母段的直接拒绝
	if len(m) > 60 || !strings.Contains(m, ".") {
		return ""
	}
	return m
}

// extractLinkedInHandle 依次尝试多种URL形状，包括被折行的带连字符用户名的重组
func extractLinkedInHandle(text string) string {
	if m := reLinkedInWrapped.FindStringSubmatch(text); m != nil {
		tail := m[2]
		// 折行后续段要像用户名尾部，太长的是误并入的正文
		if len(tail) <= 30 && !strings.Contains(tail, " ") {
			return m[1] + tail
		}
	}
	if m := reLinkedIn.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
