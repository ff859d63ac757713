package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionedText = `Contact
jane.smith@gmail.com
linkedin.com/in/janesmith
Top Skills
Product Strategy
Roadmapping
Languages
English (Native)
Summary
Product leader with a decade of experience shipping platform products.
Experience
Acme Corp
Senior Product Manager
January 2019 - Present
Education
Stanford University
Master of Business Administration
2015 - 2017`

func TestExtractSection(t *testing.T) {
	t.Run("正文止于下一章节锚点", func(t *testing.T) {
		body, ok := ExtractSection(sectionedText, SectionTopSkills)
		require.True(t, ok, "Top Skills章节应该被定位到")
		assert.Contains(t, body, "Product Strategy")
		assert.Contains(t, body, "Roadmapping")
		assert.NotContains(t, body, "English", "下一章节的内容不应混入")
	})

	t.Run("末尾章节取到文本结束", func(t *testing.T) {
		body, ok := ExtractSection(sectionedText, SectionEducation)
		require.True(t, ok)
		assert.Contains(t, body, "Stanford University")
		assert.Contains(t, body, "2015 - 2017")
	})

	t.Run("章节缺失返回false", func(t *testing.T) {
		_, ok := ExtractSection("plain text without any anchors", SectionLanguages)
		assert.False(t, ok)
	})

	t.Run("葡文锚点同样生效", func(t *testing.T) {
		text := "Idiomas\nPortuguês (Nativo)\nResumo\nLíder de produto."
		body, ok := ExtractSection(text, SectionLanguages)
		require.True(t, ok)
		assert.Contains(t, body, "Português")
		assert.NotContains(t, body, "Líder", "Resumo是Summary的锚点，应终结Languages章节")
	})

	t.Run("教育章节被证书章节终结", func(t *testing.T) {
		text := "Education\nStanford University\n2015 - 2017\nCertifications\nPMP"
		body, ok := ExtractSection(text, SectionEducation)
		require.True(t, ok)
		assert.Contains(t, body, "Stanford University")
		assert.NotContains(t, body, "PMP")
	})

	t.Run("锚点匹配忽略大小写", func(t *testing.T) {
		body, ok := ExtractSection("EXPERIENCE\nAcme Corp", SectionExperience)
		require.True(t, ok)
		assert.Contains(t, body, "Acme Corp")
	})
}

func TestTerminatorsFor(t *testing.T) {
	terms := terminatorsFor(SectionExperience)
	assert.Contains(t, terms, "Education", "排在Experience之后的章节锚点应是终结词")
	assert.NotContains(t, terms, "Summary", "排在Experience之前的章节不应出现")

	eduTerms := terminatorsFor(SectionEducation)
	assert.Contains(t, eduTerms, "Certifications", "教育章节额外带证书终结词")
}
