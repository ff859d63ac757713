package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Run("去掉分页痕迹", func(t *testing.T) {
		out := CleanText("Jane Smith\nPage 1 of 3\nSummary")
		assert.NotContains(t, out, "Page 1 of 3", "分页标记应被移除")
		assert.Contains(t, out, "Jane Smith")
	})

	t.Run("折叠连续空白", func(t *testing.T) {
		out := CleanText("Senior   Product    Manager")
		assert.Equal(t, "Senior Product Manager", out, "连续空格应折叠为单个")
	})

	t.Run("去掉项目符号", func(t *testing.T) {
		out := CleanText("• Led the team\n• Shipped the product")
		assert.NotContains(t, out, "•", "行首项目符号应被移除")
		assert.Contains(t, out, "Led the team")
	})

	t.Run("单个换行保留", func(t *testing.T) {
		out := CleanText("jane.smith\n@gmail.com")
		assert.Contains(t, out, "\n", "单个换行不属于连续空白，应保留")
	})
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("  first \n\n second\r\nthird  \n   \n")
	assert.Equal(t, []string{"first", "second", "third"}, lines, "空行应被丢弃，余行应trim")
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a   b\t\tc  "))
}

func TestIsSectionHeaderLine(t *testing.T) {
	assert.True(t, isSectionHeaderLine("Experience"))
	assert.True(t, isSectionHeaderLine("  experiência  "), "章节标题匹配应忽略大小写和两端空白")
	assert.True(t, isSectionHeaderLine("Top Skills"))
	assert.False(t, isSectionHeaderLine("Experience at Acme"), "只有整行恰为关键词才算标题")
}
