package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-parser-go/internal/types"
)

// columnFragments 生成竖直排列的片段列，y从startY开始每行递减10
func columnFragments(n int, x, width, startY float64) []types.TextFragment {
	fragments := make([]types.TextFragment, 0, n)
	for i := 0; i < n; i++ {
		fragments = append(fragments, types.TextFragment{
			X:     x,
			Y:     startY - float64(i)*10,
			Width: width,
		})
	}
	return fragments
}

func TestDetectLayout(t *testing.T) {
	t.Run("两侧片段数都超过下限才判双栏", func(t *testing.T) {
		fragments := append(columnFragments(21, 20, 80, 500), columnFragments(21, 220, 100, 500)...)

		layout := DetectLayout(fragments, 0)
		require.Equal(t, types.LayoutTwoColumn, layout.Kind)
		require.NotNil(t, layout.SidebarBounds)
		require.NotNil(t, layout.MainBounds)

		assert.Equal(t, 100.0, layout.SidebarBounds.Right, "边栏右缘取max(x+width)")
		assert.Equal(t, 220.0, layout.MainBounds.Left)
		assert.Equal(t, 300.0, layout.SidebarBounds.Top)
		assert.Equal(t, 500.0, layout.SidebarBounds.Bottom)
	})

	t.Run("恰好等于下限仍是单栏", func(t *testing.T) {
		fragments := append(columnFragments(20, 20, 80, 500), columnFragments(21, 220, 100, 500)...)

		layout := DetectLayout(fragments, 0)
		assert.Equal(t, types.LayoutSingleColumn, layout.Kind)
		assert.Nil(t, layout.SidebarBounds)
		assert.Nil(t, layout.MainBounds)
	})

	t.Run("空输入是单栏", func(t *testing.T) {
		layout := DetectLayout(nil, 150)
		assert.Equal(t, types.LayoutSingleColumn, layout.Kind)
	})

	t.Run("自定义分界线改变分区归属", func(t *testing.T) {
		// x=180 在默认分界线右侧，但在自定义的200左侧
		fragments := append(columnFragments(21, 180, 80, 500), columnFragments(21, 220, 100, 500)...)

		assert.Equal(t, types.LayoutSingleColumn, DetectLayout(fragments, 150).Kind,
			"默认分界线下全部片段落在右栏")
		assert.Equal(t, types.LayoutTwoColumn, DetectLayout(fragments, 200).Kind)
	})
}
