package parser

import (
	"regexp"
	"strings"

	"profile-parser-go/internal/types"
)

var (
	reInstitutionKeyword = regexp.MustCompile(`(?i)university|college|school|institute`)
	reCapitalizedPhrase  = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]*)*$`)
	reDegreeHint         = regexp.MustCompile(`(?i)bachelor|master|phd|mba|engineering|science|business`)
	reYearRange          = regexp.MustCompile(`(?i)^\d{4}$|\b(19|20)\d{2}\b|\d{4}\s*-\s*\d{4}|\d{4}\s*-\s*present`)
)

// ParseEducation 行启发式的教育经历分类器
// 单次前向扫描：机构行冲洗旧累加器并开新记录，学位/年份/地点行更新当前累加器；
// 尚未见到机构时，首个普通行被当作推测性的机构
func ParseEducation(text string) []types.Education {
	section, ok := ExtractSection(text, SectionEducation)
	if !ok {
		return nil
	}
	return ParseEducationLines(SplitLines(section))
}

// ParseEducationLines 对已切好的行运行行启发式分类
func ParseEducationLines(lines []string) []types.Education {
	var educations []types.Education
	var current *types.Education

	flush := func() {
		if current != nil && current.Institution != "" {
			educations = append(educations, *current)
		}
	}

	for _, line := range lines {
		normalized := NormalizeWhitespace(line)
		if len(normalized) < 3 {
			continue
		}

		switch {
		case looksLikeInstitution(normalized):
			flush()
			current = &types.Education{Institution: normalized}
		case current != nil && looksLikeDegree(normalized):
			current.Degree = normalized
		case current != nil && looksLikeEducationYear(normalized):
			current.Year = normalized
		case current != nil && looksLikeEducationLocation(normalized):
			current.Location = normalized
		case current == nil:
			// 机构之前的行按推测性的首个机构处理
			current = &types.Education{Institution: normalized}
		}
	}

	flush()
	return educations
}

func looksLikeInstitution(line string) bool {
	if len(line) <= 5 || len(line) >= 100 {
		return false
	}
	if !reInstitutionKeyword.MatchString(line) && !reCapitalizedPhrase.MatchString(line) {
		return false
	}
	return !looksLikeDegree(line) && !looksLikeEducationYear(line)
}

func looksLikeDegree(line string) bool {
	return len(line) > 3 && len(line) < 80 &&
		reDegreeHint.MatchString(line) &&
		!looksLikeEducationYear(line)
}

func looksLikeEducationYear(line string) bool {
	return reYearRange.MatchString(line)
}

func looksLikeEducationLocation(line string) bool {
	return len(line) > 2 && len(line) < 50 &&
		reLocationLine.MatchString(line) &&
		!looksLikeEducationYear(line) &&
		!looksLikeDegree(line)
}

// ParseEducationYearAnchored 年份锚定变体
// 扫描4位年份记号（可带区间），对每个命中回看前1-3行：学位行紧贴年份上方，
// 机构再上一行；前一行以小写开头或含逗号时视为学位的折行续行。
// 按机构+学位+起始年的组合键去重。
func ParseEducationYearAnchored(lines []string) []types.Education {
	var educations []types.Education
	seen := make(map[string]bool)

	for i, line := range lines {
		m := reYearLine.FindStringSubmatch(line)
		if m == nil || i < 1 {
			continue
		}
		years := strings.TrimSpace(m[0])
		startYear := m[1]

		line1 := lines[i-1]
		line2 := ""
		line3 := ""
		if i >= 2 {
			line2 = lines[i-2]
		}
		if i >= 3 {
			line3 = lines[i-3]
		}

		var institution, degree string
		switch {
		case reDegreeKeywords.MatchString(line1):
			degree = line1
			institution = line2
		case reDegreeKeywords.MatchString(line2):
			degree = line2
			if line1 != "" && (startsLower(line1) || strings.Contains(line1, ",")) {
				// 学位名折行续在下一行
				degree = line2 + " " + line1
				institution = line3
			} else {
				institution = line1
			}
		default:
			continue
		}

		if institution == "" || degree == "" {
			continue
		}

		key := institution + ":" + degree + ":" + startYear
		if seen[key] {
			continue
		}
		seen[key] = true

		educations = append(educations, types.Education{
			Institution: institution,
			Degree:      degree,
			Year:        years,
		})
	}
	return educations
}

func startsLower(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}
