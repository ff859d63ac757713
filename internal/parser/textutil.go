package parser

import "strings"

// CleanText 把原始提取文本收敛为干净的规范化文本
// 去掉分页痕迹和项目符号，折叠连续空白
func CleanText(text string) string {
	text = rePageNumbers.ReplaceAllString(text, "")
	text = reMultipleSpaces.ReplaceAllString(text, " ")
	text = reBulletPoints.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// SplitLines 按行切分，逐行trim并丢弃空行
func SplitLines(text string) []string {
	raw := reLineBreak.Split(text, -1)
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// NormalizeWhitespace 折叠行内连续空白并trim
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(reMultipleSpaces.ReplaceAllString(text, " "))
}

// containsAnyFold 大小写不敏感地判断s是否包含任一关键词
func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// isSectionHeaderLine 判断一行是否是任一已知章节的标题
func isSectionHeaderLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, kws := range sectionKeywords {
		for _, kw := range kws {
			if lower == strings.ToLower(kw) {
				return true
			}
		}
	}
	return false
}
