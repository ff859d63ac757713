package parser

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePageTexts(t *testing.T) {
	t.Run("连续字形并为词级片段", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "H", X: 10, Y: 700, W: 5, FontSize: 10, Font: "Helvetica"},
			{S: "i", X: 15, Y: 700, W: 3, FontSize: 10, Font: "Helvetica"},
		}

		fragments := mergePageTexts(texts, 0)
		require.Len(t, fragments, 1)
		assert.Equal(t, "Hi", fragments[0].Text)
		assert.Equal(t, 10.0, fragments[0].X)
		assert.Equal(t, 700.0, fragments[0].Y)
		assert.Equal(t, 8.0, fragments[0].Width, "宽度取末字形右缘减片段左缘")
		assert.Equal(t, 10.0, fragments[0].Height)
		assert.Equal(t, "Helvetica", fragments[0].FontFamily)
	})

	t.Run("水平间距超过字号即断开", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "A", X: 10, Y: 700, W: 5, FontSize: 10},
			{S: "B", X: 40, Y: 700, W: 5, FontSize: 10},
		}

		fragments := mergePageTexts(texts, 0)
		require.Len(t, fragments, 2)
		assert.Equal(t, "A", fragments[0].Text)
		assert.Equal(t, "B", fragments[1].Text)
	})

	t.Run("基线不同断开", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "A", X: 10, Y: 700, W: 5, FontSize: 10},
			{S: "B", X: 15, Y: 688, W: 5, FontSize: 10},
		}

		assert.Len(t, mergePageTexts(texts, 0), 2)
	})

	t.Run("字号不同断开", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "A", X: 10, Y: 700, W: 5, FontSize: 10},
			{S: "B", X: 15, Y: 700, W: 5, FontSize: 14},
		}

		assert.Len(t, mergePageTexts(texts, 0), 2)
	})

	t.Run("y平移量作用于产出片段", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "A", X: 10, Y: 700, W: 5, FontSize: 10},
		}

		fragments := mergePageTexts(texts, pageYSpan)
		require.Len(t, fragments, 1)
		assert.Equal(t, 1700.0, fragments[0].Y)
	})

	t.Run("纯空白片段被丢弃", func(t *testing.T) {
		texts := []pdf.Text{
			{S: " ", X: 10, Y: 700, W: 5, FontSize: 10},
		}

		assert.Empty(t, mergePageTexts(texts, 0))
	})

	t.Run("空字符串条目不打断当前片段", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "H", X: 10, Y: 700, W: 5, FontSize: 10},
			{S: ""},
			{S: "i", X: 15, Y: 700, W: 3, FontSize: 10},
		}

		fragments := mergePageTexts(texts, 0)
		require.Len(t, fragments, 1)
		assert.Equal(t, "Hi", fragments[0].Text)
	})
}
