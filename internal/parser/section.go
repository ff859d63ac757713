package parser

import "strings"

// ExtractSection 在规范化文本中定位命名章节，返回其正文
// 锚点是该章节在两种语言环境下的表层关键词，终结词是规范顺序中位于其后的各章节锚点；
// 正文为首个锚点之后到首个终结词（或文本末尾）之间的子串。章节缺失时返回 ("", false)。
func ExtractSection(text string, name SectionName) (string, bool) {
	anchors := sectionKeywords[name]
	if len(anchors) == 0 {
		return "", false
	}

	bestIdx, bestLen := -1, 0
	for _, anchor := range anchors {
		idx := indexFold(text, anchor)
		if idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			bestIdx, bestLen = idx, len(anchor)
		}
	}
	if bestIdx < 0 {
		return "", false
	}

	body := text[bestIdx+bestLen:]
	end := len(body)
	for _, term := range terminatorsFor(name) {
		if idx := indexFold(body, term); idx >= 0 && idx < end {
			end = idx
		}
	}

	return strings.TrimSpace(body[:end]), true
}

// terminatorsFor 返回某章节的终结关键词：规范顺序里排在它之后的章节锚点，
// 另加证书章节，它在部分导出文档里跟在教育经历之后
func terminatorsFor(name SectionName) []string {
	var terms []string
	seen := false
	for _, s := range sectionOrder {
		if s == name {
			seen = true
			continue
		}
		if seen {
			terms = append(terms, sectionKeywords[s]...)
		}
	}
	if name == SectionEducation {
		terms = append(terms, sectionKeywords[SectionCertifications]...)
	}
	return terms
}

// indexFold 大小写不敏感版 strings.Index
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
