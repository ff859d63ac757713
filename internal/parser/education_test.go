package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEducationLines(t *testing.T) {
	t.Run("机构行开记录并聚合学位年份地点", func(t *testing.T) {
		lines := []string{
			"Stanford University",
			"Master of Business Administration",
			"2015 - 2017",
			"Harvard College",
			"Bachelor of Science",
			"Cambridge, Massachusetts",
		}

		educations := ParseEducationLines(lines)
		require.Len(t, educations, 2)

		assert.Equal(t, "Stanford University", educations[0].Institution)
		assert.Equal(t, "Master of Business Administration", educations[0].Degree)
		assert.Equal(t, "2015 - 2017", educations[0].Year)

		assert.Equal(t, "Harvard College", educations[1].Institution)
		assert.Equal(t, "Bachelor of Science", educations[1].Degree)
		assert.Equal(t, "Cambridge, Massachusetts", educations[1].Location)
	})

	t.Run("机构之前的首个普通行按推测机构处理", func(t *testing.T) {
		lines := []string{
			"escola técnica local",
			"2010 - 2012",
		}

		educations := ParseEducationLines(lines)
		require.Len(t, educations, 1)
		assert.Equal(t, "escola técnica local", educations[0].Institution)
		assert.Equal(t, "2010 - 2012", educations[0].Year)
	})

	t.Run("过短的行被忽略", func(t *testing.T) {
		assert.Empty(t, ParseEducationLines([]string{"ab", ".."}))
	})
}

func TestParseEducation(t *testing.T) {
	text := `Education
Stanford University
Master of Business Administration
2015 - 2017
Certifications
PMP`

	educations := ParseEducation(text)
	require.Len(t, educations, 1, "章节应止于Certifications锚点")
	assert.Equal(t, "Stanford University", educations[0].Institution)
}

func TestParseEducationYearAnchored(t *testing.T) {
	lines := []string{
		"Stanford University",
		"Master of Business Administration",
		"2015 - 2017",
		"Harvard College",
		"Bachelor of Science",
		"in mathematics",
		"2008 - 2012",
		"Stanford University",
		"Master of Business Administration",
		"2015 - 2017",
	}

	educations := ParseEducationYearAnchored(lines)
	require.Len(t, educations, 2, "相同机构+学位+起始年应被去重")

	assert.Equal(t, "Stanford University", educations[0].Institution)
	assert.Equal(t, "Master of Business Administration", educations[0].Degree)
	assert.Equal(t, "2015 - 2017", educations[0].Year)

	assert.Equal(t, "Harvard College", educations[1].Institution)
	assert.Equal(t, "Bachelor of Science in mathematics", educations[1].Degree,
		"小写开头的续行应折回学位名")
	assert.Equal(t, "2008 - 2012", educations[1].Year)
}
