package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractName(t *testing.T) {
	t.Run("开头行的两词人名", func(t *testing.T) {
		text := "Contact\njane.smith@gmail.com\nJane Smith\nSenior Product Manager | Acme"
		assert.Equal(t, "Jane Smith", extractName(text))
	})

	t.Run("三词人名", func(t *testing.T) {
		assert.Equal(t, "Ana Paula Costa", extractName("Ana Paula Costa\nGerente de Produto"))
	})

	t.Run("章节标题不会被当成人名", func(t *testing.T) {
		text := "Top Skills\nProject Planning\nJane Smith\nmore text"
		assert.Equal(t, "Jane Smith", extractName(text), "排除表里的短语应被跳过")
	})

	t.Run("含邮箱或链接的行被跳过", func(t *testing.T) {
		text := "jane@gmail.com\nhttp://example.com\nJane Smith"
		assert.Equal(t, "Jane Smith", extractName(text))
	})

	t.Run("无人名返回空串", func(t *testing.T) {
		assert.Equal(t, "", extractName("x\ny\nz"))
	})
}

func TestExtractHeadline(t *testing.T) {
	t.Run("管道分隔标题在首个管道处截断", func(t *testing.T) {
		text := "Jane Smith\nSenior Product Manager | Platform | Acme Corp\nSan Francisco"
		assert.Equal(t, "Senior Product Manager", extractHeadline(text))
	})

	t.Run("过短的行被跳过", func(t *testing.T) {
		assert.Equal(t, "", extractHeadline("Jane Smith\nPM"))
	})
}

func TestExtractLocation(t *testing.T) {
	t.Run("城市地区国家三段", func(t *testing.T) {
		text := "Jane Smith\nAustin, Texas, United States\nSummary"
		assert.Equal(t, "Austin, Texas, United States", extractLocation(text))
	})

	t.Run("城市地区两段", func(t *testing.T) {
		assert.Equal(t, "Boston, Massachusetts", extractLocation("based in Boston, Massachusetts now"))
	})

	t.Run("已知城市兜底", func(t *testing.T) {
		assert.Equal(t, "São Paulo", extractLocation("works remotely from São Paulo area"))
	})

	t.Run("无地点返回空串", func(t *testing.T) {
		assert.Equal(t, "", extractLocation("no geo tokens here"))
	})
}

func TestExtractEmail(t *testing.T) {
	t.Run("白名单服务商裁掉尾随噪声", func(t *testing.T) {
		// 导出PDF常把下一行的单词黏在域名后面
		assert.Equal(t, "jane.smith@gmail.com", extractEmail("jane.smith@gmail.comJaneSmith"))
	})

	t.Run("白名单匹配忽略大小写并归一到白名单拼写", func(t *testing.T) {
		assert.Equal(t, "jane@hotmail.com", extractEmail("jane@Hotmail.com"))
	})

	t.Run("通用域名形状兜底", func(t *testing.T) {
		assert.Equal(t, "jane@acme-corp.io", extractEmail("contact jane@acme-corp.io for details"))
	})

	t.Run("裸@不是邮箱", func(t *testing.T) {
		assert.Equal(t, "", extractEmail("mentioned @ the meeting"))
	})

	t.Run("按文档顺序取第一个可接受匹配", func(t *testing.T) {
		assert.Equal(t, "first@gmail.com", extractEmail("first@gmail.com second@yahoo.com"))
	})
}

func TestExtractLinkedInHandle(t *testing.T) {
	t.Run("普通URL", func(t *testing.T) {
		assert.Equal(t, "janesmith", extractLinkedInHandle("www.linkedin.com/in/janesmith"))
	})

	t.Run("折行的带连字符用户名被重组", func(t *testing.T) {
		text := "linkedin.com/in/jane-\nsmith"
		assert.Equal(t, "jane-smith", extractLinkedInHandle(text))
	})

	t.Run("无链接返回空串", func(t *testing.T) {
		assert.Equal(t, "", extractLinkedInHandle("no links here"))
	})
}

func TestParseBasicInfo(t *testing.T) {
	text := `Contact
jane.smith@gmail.com
www.linkedin.com/in/janesmith
Jane Smith
Senior Product Manager | Acme Corp
Austin, Texas, United States
Summary
Product leader with ten years of experience shipping developer platforms at scale.
Experience
Acme Corp`

	info := ParseBasicInfo(CleanText(text))
	require.Equal(t, "Jane Smith", info.Name)
	assert.Equal(t, "Senior Product Manager", info.Headline)
	assert.Equal(t, "Austin, Texas, United States", info.Location)
	assert.Equal(t, "jane.smith@gmail.com", info.Contact.Email)
	assert.Equal(t, "https://linkedin.com/in/janesmith", info.Contact.LinkedinURL)
	assert.Contains(t, info.Summary, "Product leader")
}
