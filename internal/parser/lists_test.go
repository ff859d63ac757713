package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-parser-go/internal/types"
)

func TestParseTopSkills(t *testing.T) {
	t.Run("过滤噪声行并止于下一章节", func(t *testing.T) {
		text := `Top Skills
Product Strategy
Go
X
12
Page 3 of 4
A very very long skill line that goes on and on and exceeds fifty chars
Team Leadership
Languages
English`

		skills := ParseTopSkills(text)
		assert.Equal(t, []string{"Product Strategy", "Go", "Team Leadership"}, skills)
	})

	t.Run("最多保留十项", func(t *testing.T) {
		text := `Top Skills
Skill One
Skill Two
Skill Three
Skill Four
Skill Five
Skill Six
Skill Seven
Skill Eight
Skill Nine
Skill Ten
Skill Eleven
Skill Twelve`

		skills := ParseTopSkills(text)
		require.Len(t, skills, maxTopSkills)
		assert.Equal(t, "Skill One", skills[0])
		assert.Equal(t, "Skill Ten", skills[9])
		assert.NotContains(t, skills, "Skill Eleven")
	})

	t.Run("章节缺失返回nil", func(t *testing.T) {
		assert.Nil(t, ParseTopSkills("no sections at all"))
	})
}

func TestParseLanguages(t *testing.T) {
	text := `Languages
English (Native)
Spanish Professional
German
Summary
something else`

	langs := ParseLanguages(text)
	require.Len(t, langs, 3)
	assert.Equal(t, types.Language{Language: "English", Proficiency: "Native"}, langs[0])
	assert.Equal(t, types.Language{Language: "Spanish", Proficiency: "Professional"}, langs[1])
	assert.Equal(t, types.Language{Language: "German", Proficiency: "Unknown"}, langs[2])
}

func TestClassifyLanguageLine(t *testing.T) {
	t.Run("括号形式", func(t *testing.T) {
		lang, ok := classifyLanguageLine("Portuguese (Native or Bilingual)")
		require.True(t, ok)
		assert.Equal(t, "Portuguese", lang.Language)
		assert.Equal(t, "Native or Bilingual", lang.Proficiency)
	})

	t.Run("后缀熟练度词", func(t *testing.T) {
		lang, ok := classifyLanguageLine("English Native")
		require.True(t, ok)
		assert.Equal(t, "English", lang.Language)
		assert.Equal(t, "Native", lang.Proficiency)
	})

	t.Run("熟练度词最长匹配优先", func(t *testing.T) {
		lang, ok := classifyLanguageLine("Spanish Limited Working")
		require.True(t, ok)
		assert.Equal(t, "Spanish", lang.Language)
		assert.Equal(t, "Limited Working", lang.Proficiency)
	})

	t.Run("行内剥离熟练度得到语言名", func(t *testing.T) {
		lang, ok := classifyLanguageLine("(French) Elementary")
		require.True(t, ok)
		assert.Equal(t, "French", lang.Language)
		assert.Equal(t, "Elementary", lang.Proficiency)
	})

	t.Run("裸单词按Unknown处理", func(t *testing.T) {
		lang, ok := classifyLanguageLine("German")
		require.True(t, ok)
		assert.Equal(t, "Unknown", lang.Proficiency)
	})

	t.Run("不匹配的行被丢弃", func(t *testing.T) {
		_, ok := classifyLanguageLine("some lowercase noise line")
		assert.False(t, ok)
	})
}
