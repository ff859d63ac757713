package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-parser-go/internal/types"
)

const profileFixture = `Contact
jane.smith@gmail.com
www.linkedin.com/in/janesmith
Jane Smith
Senior Product Manager | Acme Corp
Austin, Texas, United States
Top Skills
Product Strategy
Roadmapping
Languages
English (Native)
Summary
Product leader focused on developer platforms and billing infrastructure.
Experience
Senior Product Manager at Acme Corp
January 2019 to December 2021
Education
Stanford University
Master of Business Administration
2015 - 2017`

type stubTextDecoder struct {
	text string
	err  error
}

func (d stubTextDecoder) DecodeText(_ context.Context, _ []byte) (string, error) {
	return d.text, d.err
}

func TestParseText(t *testing.T) {
	p := NewParser(stubTextDecoder{})

	result, err := p.ParseText(context.Background(), profileFixture, types.ParseOptions{})
	require.NoError(t, err)
	require.NotNil(t, result.Profile)

	profile := result.Profile
	assert.Equal(t, "Jane Smith", profile.Name)
	assert.Equal(t, "Senior Product Manager", profile.Headline)
	assert.Equal(t, "Austin, Texas, United States", profile.Location)
	assert.Equal(t, "jane.smith@gmail.com", profile.Contact.Email)
	assert.Equal(t, "https://linkedin.com/in/janesmith", profile.Contact.LinkedinURL)
	assert.Contains(t, profile.Summary, "Product leader")
	assert.Equal(t, []string{"Product Strategy", "Roadmapping"}, profile.TopSkills)

	require.Len(t, profile.Languages, 1)
	assert.Equal(t, types.Language{Language: "English", Proficiency: "Native"}, profile.Languages[0])

	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Senior Product Manager", profile.Experience[0].Title)
	assert.Equal(t, "Acme Corp", profile.Experience[0].Company)
	assert.Equal(t, "January 2019 to December 2021", profile.Experience[0].Duration)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Stanford University", profile.Education[0].Institution)
	assert.Equal(t, "Master of Business Administration", profile.Education[0].Degree)
	assert.Equal(t, "2015 - 2017", profile.Education[0].Year)

	assert.Equal(t, types.LayoutSingleColumn, result.DetectedLayout, "无坐标片段时默认单栏")
	assert.Empty(t, result.RawText, "未要求时不附带原始文本")
}

func TestParseTextIncludeRawText(t *testing.T) {
	p := NewParser(stubTextDecoder{})

	result, err := p.ParseText(context.Background(), profileFixture, types.ParseOptions{IncludeRawText: true})
	require.NoError(t, err)
	assert.Equal(t, profileFixture, result.RawText)
}

func TestParseTextTooShort(t *testing.T) {
	p := NewParser(stubTextDecoder{})

	_, err := p.ParseText(context.Background(), "too short", types.ParseOptions{})
	assert.ErrorIs(t, err, ErrUnreadableInput)
}

func TestParseTextIncompleteProfile(t *testing.T) {
	p := NewParser(stubTextDecoder{})

	text := "Jane Smith\nSenior Product Manager | Acme Corp\nAustin, Texas\nNo reachable address was exported for this profile."
	_, err := p.ParseText(context.Background(), text, types.ParseOptions{})
	assert.ErrorIs(t, err, ErrIncompleteProfile, "缺少邮箱的档案不可用")
}

func TestParse(t *testing.T) {
	t.Run("空字节流", func(t *testing.T) {
		p := NewParser(stubTextDecoder{text: profileFixture})
		_, err := p.Parse(context.Background(), nil, types.ParseOptions{})
		assert.ErrorIs(t, err, ErrUnreadableInput)
	})

	t.Run("未配置解码器", func(t *testing.T) {
		p := NewParser(nil)
		_, err := p.Parse(context.Background(), []byte("%PDF-1.4"), types.ParseOptions{})
		assert.ErrorIs(t, err, ErrUnreadableInput)
	})

	t.Run("解码失败包进ErrUnreadableInput", func(t *testing.T) {
		p := NewParser(stubTextDecoder{err: errors.New("坏掉的交叉引用表")})
		_, err := p.Parse(context.Background(), []byte("%PDF-1.4"), types.ParseOptions{})
		assert.ErrorIs(t, err, ErrUnreadableInput)
	})

	t.Run("解码成功走完整解析", func(t *testing.T) {
		p := NewParser(stubTextDecoder{text: profileFixture})
		result, err := p.Parse(context.Background(), []byte("%PDF-1.4"), types.ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", result.Profile.Name)
	})
}

func TestParseTextNormalizesEmptySlices(t *testing.T) {
	p := NewParser(stubTextDecoder{})

	text := "Contact\njane.smith@gmail.com\nJane Smith\nNothing else was exported from this document at all."
	result, err := p.ParseText(context.Background(), text, types.ParseOptions{})
	require.NoError(t, err)

	profile := result.Profile
	assert.NotNil(t, profile.TopSkills)
	assert.NotNil(t, profile.Languages)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Education)
	assert.Empty(t, profile.TopSkills)
	assert.Empty(t, profile.Experience)
}

func TestFlattenWorkExperiences(t *testing.T) {
	works := []types.WorkExperience{
		{
			Organization:  "Northwind",
			TotalDuration: "4 years",
			Positions: []types.Position{
				{Title: "Senior Software Engineer", Duration: "2021 - Present"},
				{Title: "Software Engineer"},
			},
		},
	}

	flat := FlattenWorkExperiences(works)
	require.Len(t, flat, 2)
	assert.Equal(t, "Northwind", flat[0].Company)
	assert.Equal(t, "2021 - Present", flat[0].Duration)
	assert.Equal(t, "4 years", flat[1].Duration, "岗位缺时长时落到组织聚合时长")
}
