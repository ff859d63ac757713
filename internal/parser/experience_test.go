package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperience(t *testing.T) {
	text := `Experience
Senior Product Manager at Acme Corp
January 2019 to December 2021
Austin, Texas
Led the platform team and shipped the new billing stack.
Software Engineer @ Initech
2015 - 2019
Certifications
Director at GhostCo`

	experiences := ParseExperience(text)
	require.Len(t, experiences, 2, "尾随章节标题之后的行不应进入经历")

	first := experiences[0]
	assert.Equal(t, "Senior Product Manager", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "January 2019 to December 2021", first.Duration)
	assert.Equal(t, "Austin, Texas", first.Location)
	assert.Equal(t, "Led the platform team and shipped the new billing stack.", first.Description)

	second := experiences[1]
	assert.Equal(t, "Software Engineer", second.Title)
	assert.Equal(t, "Initech", second.Company)
	assert.Equal(t, "2015 - 2019", second.Duration)
	assert.Empty(t, second.Description)
}

func TestParseExperienceMissingSection(t *testing.T) {
	assert.Nil(t, ParseExperience("plain text with no anchors"))
}

func TestParseJobTitleLine(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		title   string
		company string
	}{
		{"at分隔", "Senior Product Manager at Acme Corp", "Senior Product Manager", "Acme Corp"},
		{"艾特分隔", "Software Engineer @ Initech", "Software Engineer", "Initech"},
		{"中点分隔", "Head of Data · Globex", "Head of Data", "Globex"},
		{"连字符分隔", "Analyst - Initech", "Analyst", "Initech"},
		{"逗号分隔", "Consultant, Deloitte", "Consultant", "Deloitte"},
		{"无分隔符整行作title", "Freelance Designer", "Freelance Designer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exp := parseJobTitleLine(tc.line)
			assert.Equal(t, tc.title, exp.Title)
			assert.Equal(t, tc.company, exp.Company)
		})
	}
}

func TestLooksLikeJobTitle(t *testing.T) {
	t.Run("角色关键词命中", func(t *testing.T) {
		assert.True(t, looksLikeJobTitle("Senior Data Analyst"))
	})

	t.Run("项目符号行被排除", func(t *testing.T) {
		assert.False(t, looksLikeJobTitle("• Delivered results for clients"))
	})

	t.Run("含货币符号的行被排除", func(t *testing.T) {
		assert.False(t, looksLikeJobTitle("Raised $2M in new revenue as manager"))
	})

	t.Run("小写开头的行被排除", func(t *testing.T) {
		assert.False(t, looksLikeJobTitle("managed a team of five engineers"))
	})

	t.Run("过短的行被排除", func(t *testing.T) {
		assert.False(t, looksLikeJobTitle("Short"))
	})
}

func TestLooksLikeDurationLine(t *testing.T) {
	assert.True(t, looksLikeDurationLine("January 2019 - Present"))
	assert.True(t, looksLikeDurationLine("2016"))
	assert.True(t, looksLikeDurationLine("Mar 2020"))
	assert.False(t, looksLikeDurationLine("Austin"))
}

func TestLooksLikeLocationLine(t *testing.T) {
	assert.True(t, looksLikeLocationLine("Austin, Texas"))
	assert.False(t, looksLikeLocationLine("January 2019 - Present"), "日期形状的行不是地点")
	assert.False(t, looksLikeLocationLine("a"))
}
