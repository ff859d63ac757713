package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-parser-go/internal/types"
)

func TestLooksLikeStructuralDuration(t *testing.T) {
	assert.True(t, looksLikeStructuralDuration("January 2019 - December 2021"))
	assert.True(t, looksLikeStructuralDuration("2015 - 2019"))
	assert.True(t, looksLikeStructuralDuration("(2 years 3 months)"))
	assert.True(t, looksLikeStructuralDuration("março de 2020"))
	assert.False(t, looksLikeStructuralDuration("Austin, Texas"))
}

func TestLooksLikeStructuralPosition(t *testing.T) {
	assert.True(t, looksLikeStructuralPosition("Senior Software Engineer"))
	assert.True(t, looksLikeStructuralPosition("Gerente de Projetos"))
	assert.False(t, looksLikeStructuralPosition("I lead the platform team as engineering manager"),
		"句子结构的描述行不是职位")
	assert.False(t, looksLikeStructuralPosition("Engineering Manager (Platform)"),
		"含括号的行被排除")
	assert.False(t, looksLikeStructuralPosition("January 2019 - Present"))
}

func TestLooksLikeStructuralLocation(t *testing.T) {
	assert.True(t, looksLikeStructuralLocation("Austin, TX"))
	assert.True(t, looksLikeStructuralLocation("San Francisco, California"))
	assert.False(t, looksLikeStructuralLocation("January 2019 - Present"))
}

func TestClassifyLines(t *testing.T) {
	p := NewStructuralExperienceParser(StructuralConfig{})

	lines := []string{
		"Experience",
		"Northwind",
		"Senior Software Engineer",
		"January 2019 - Present",
		"Austin, TX",
		"Built the ingestion pipeline and the reporting stack for enterprise clients.",
	}
	groups := make([][]types.TextFragment, len(lines))
	for i := range groups {
		fontSize := 10.0
		if i == 1 {
			fontSize = 13.0 // 组织行字号更大
		}
		groups[i] = []types.TextFragment{{Text: lines[i], FontSize: fontSize, Y: 700 - float64(i)*10}}
	}

	classified := p.ClassifyLines(lines, groups)
	require.Len(t, classified, len(lines))

	assert.Equal(t, types.LineOther, classified[0].Type, "经历章节标题不是组织")
	assert.Equal(t, types.LineOrganization, classified[1].Type)
	assert.Equal(t, types.LinePosition, classified[2].Type)
	assert.Equal(t, types.LineDuration, classified[3].Type)
	assert.Equal(t, types.LineLocation, classified[4].Type)
	assert.Equal(t, types.LineDescription, classified[5].Type)
}

func TestBuildWorkExperiences(t *testing.T) {
	p := NewStructuralExperienceParser(StructuralConfig{})

	t.Run("组织下的多岗位组装", func(t *testing.T) {
		sections := []types.ClassifiedLine{
			{Type: types.LineOrganization, Text: "Northwind"},
			{Type: types.LineDuration, Text: "(3 years 2 months)"},
			{Type: types.LinePosition, Text: "Senior Software Engineer"},
			{Type: types.LineDuration, Text: "January 2019 - Present"},
			{Type: types.LineLocation, Text: "Austin, TX"},
			{Type: types.LineDescription, Text: "Built the ingestion pipeline for enterprise clients."},
			{Type: types.LinePosition, Text: "Software Engineer"},
			{Type: types.LineDuration, Text: "2016 - 2019"},
		}

		works := p.buildWorkExperiences(sections)
		require.Len(t, works, 1)

		org := works[0]
		assert.Equal(t, "Northwind", org.Organization)
		assert.Equal(t, "3 years 2 months", org.TotalDuration, "组织级时长剥掉括号")
		require.Len(t, org.Positions, 2)

		assert.Equal(t, "Senior Software Engineer", org.Positions[0].Title)
		assert.Equal(t, "January 2019 - Present", org.Positions[0].Duration)
		assert.Equal(t, "Austin, TX", org.Positions[0].Location)
		assert.Equal(t, "Built the ingestion pipeline for enterprise clients.", org.Positions[0].Description)

		assert.Equal(t, "Software Engineer", org.Positions[1].Title)
		assert.Equal(t, "2016 - 2019", org.Positions[1].Duration)
	})

	t.Run("人名形状的组织行被放弃", func(t *testing.T) {
		sections := []types.ClassifiedLine{
			{Type: types.LineOrganization, Text: "Jane Smith"},
			{Type: types.LinePosition, Text: "Senior Software Engineer"},
		}

		works := p.buildWorkExperiences(sections)
		assert.Empty(t, works, "名字清洗失败不应凭空多出组织")
	})
}

func TestStructuralParseExperience(t *testing.T) {
	p := NewStructuralExperienceParser(StructuralConfig{})

	fragments := []types.TextFragment{
		{Text: "Jane Smith", X: 20, Y: 720, FontSize: 16},
		{Text: "Northwind", X: 220, Y: 700, FontSize: 13},
		{Text: "Senior Software Engineer", X: 220, Y: 690, FontSize: 11},
		{Text: "January 2019 - Present", X: 220, Y: 680, FontSize: 10},
	}

	works := p.ParseExperience(fragments, nil, nil)
	require.Len(t, works, 1, "边栏片段应被裁掉，主栏组装出一个组织")
	assert.Equal(t, "Northwind", works[0].Organization)
	require.Len(t, works[0].Positions, 1)
	assert.Equal(t, "Senior Software Engineer", works[0].Positions[0].Title)
	assert.Equal(t, "January 2019 - Present", works[0].Positions[0].Duration)
}

func TestExtractCleanOrganizationName(t *testing.T) {
	t.Run("已知组织表返回配置拼写", func(t *testing.T) {
		p := NewStructuralExperienceParser(StructuralConfig{KnownOrganizations: []string{"Globex"}})
		assert.Equal(t, "Globex", p.extractCleanOrganizationName("working at globex"))
	})

	t.Run("排除表里的人名直接放弃", func(t *testing.T) {
		p := NewStructuralExperienceParser(StructuralConfig{ExcludedPersonNames: []string{"Jane Smith"}})
		assert.Equal(t, "", p.extractCleanOrganizationName("Jane Smith profile"))
	})

	t.Run("剥离尾随噪声词", func(t *testing.T) {
		p := NewStructuralExperienceParser(StructuralConfig{})
		assert.Equal(t, "Initech", p.extractCleanOrganizationName("Initech for scalable solutions"))
	})

	t.Run("两个首字母大写单词形似人名被拒绝", func(t *testing.T) {
		p := NewStructuralExperienceParser(StructuralConfig{})
		assert.Equal(t, "", p.extractCleanOrganizationName("Jane Smith"))
	})
}

func TestExtractCleanDuration(t *testing.T) {
	p := NewStructuralExperienceParser(StructuralConfig{})

	t.Run("显式月年区间", func(t *testing.T) {
		assert.Equal(t, "March 2018 - June 2020",
			p.extractCleanDuration("Provided consulting services March 2018 - June 2020"))
	})

	t.Run("括号任期", func(t *testing.T) {
		assert.Equal(t, "2 years 3 months", p.extractCleanDuration("(2 years 3 months)"))
	})

	t.Run("剥离叙述动词前缀", func(t *testing.T) {
		assert.Equal(t, "2016", p.extractCleanDuration("Led project delivery through 2016"))
	})

	t.Run("无日期记号原样返回", func(t *testing.T) {
		assert.Equal(t, "no dates at all here", p.extractCleanDuration("no dates at all here"))
	})
}
