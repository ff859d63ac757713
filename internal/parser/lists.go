package parser

import (
	"regexp"
	"strings"

	"profile-parser-go/internal/types"
)

const maxTopSkills = 10

var reSkillNoiseNumber = regexp.MustCompile(`^\d+$`)

// ParseTopSkills 提取Top Skills章节并按行切分
// 滤掉章节关键词噪声和纯数字行，上限10项，保持出现顺序
func ParseTopSkills(text string) []string {
	section, ok := ExtractSection(text, SectionTopSkills)
	if !ok {
		return nil
	}

	var skills []string
	for _, line := range SplitLines(section) {
		skill := NormalizeWhitespace(line)
		lower := strings.ToLower(skill)

		if len(skill) <= 1 || len(skill) >= 50 ||
			strings.Contains(lower, "languages") ||
			strings.Contains(lower, "summary") ||
			strings.Contains(lower, "experience") ||
			strings.Contains(lower, "education") ||
			strings.Contains(lower, "page ") ||
			reSkillNoiseNumber.MatchString(skill) {
			continue
		}

		skills = append(skills, skill)
		if len(skills) == maxTopSkills {
			break
		}
	}
	return skills
}

var (
	reLangParen    = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
	reBareLanguage = regexp.MustCompile(`^[A-Z][a-z]+$`)
)

// ParseLanguages 提取Languages章节，逐行识别语言及熟练度
// 每行按固定优先级尝试四条规则，首个命中生效；不匹配的行静默丢弃，不算错误
func ParseLanguages(text string) []types.Language {
	section, ok := ExtractSection(text, SectionLanguages)
	if !ok {
		return nil
	}

	var languages []types.Language
	for _, line := range SplitLines(section) {
		normalized := NormalizeWhitespace(line)
		lower := strings.ToLower(normalized)

		if normalized == "" ||
			strings.Contains(lower, "summary") ||
			strings.Contains(lower, "experience") ||
			strings.Contains(lower, "education") ||
			strings.HasPrefix(lower, "page ") {
			continue
		}

		if lang, ok := classifyLanguageLine(normalized); ok {
			languages = append(languages, lang)
		}
	}
	return languages
}

// classifyLanguageLine 单行语言识别的有序规则：
//  1. "名称 (熟练度)" 括号形式
//  2. "名称 熟练度词" 对照固定熟练度词表（长词优先）
//  3. 行内任意位置出现熟练度词，语言名由剥离熟练度和标点得到
//  4. 裸的单个首字母大写单词按语言处理，熟练度记"Unknown"
func classifyLanguageLine(line string) (types.Language, bool) {
	if m := reLangParen.FindStringSubmatch(line); m != nil {
		return types.Language{
			Language:    strings.TrimSpace(m[1]),
			Proficiency: strings.TrimSpace(m[2]),
		}, true
	}

	for _, level := range languageLevels {
		if strings.HasSuffix(line, " "+level) {
			name := strings.TrimSpace(strings.TrimSuffix(line, level))
			if name != "" && reBareLanguage.MatchString(name) {
				return types.Language{Language: name, Proficiency: level}, true
			}
		}
	}

	for _, level := range languageLevels {
		if idx := indexFold(line, level); idx >= 0 {
			name := line[:idx] + line[idx+len(level):]
			name = strings.Trim(strings.TrimSpace(name), "()")
			name = strings.TrimSpace(name)
			if len(name) > 1 && len(name) < 20 {
				return types.Language{Language: name, Proficiency: line[idx : idx+len(level)]}, true
			}
		}
	}

	if len(line) > 1 && len(line) < 20 && reBareLanguage.MatchString(line) {
		return types.Language{Language: line, Proficiency: "Unknown"}, true
	}

	return types.Language{}, false
}
