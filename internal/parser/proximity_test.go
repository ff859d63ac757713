package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-parser-go/internal/types"
)

func TestGroupFragmentsByY(t *testing.T) {
	t.Run("y间距在阈值内的片段并为一行", func(t *testing.T) {
		fragments := []types.TextFragment{
			{Text: "a", Y: 100},
			{Text: "b", Y: 98},
			{Text: "c", Y: 96},
			{Text: "d", Y: 50},
		}

		groups := groupFragmentsByY(fragments, 5.0)
		require.Len(t, groups, 2)
		assert.Len(t, groups[0], 3)
		assert.Len(t, groups[1], 1)
	})

	t.Run("贪心串联把渐变间距的片段并进同一组", func(t *testing.T) {
		// 单段间距都是4，总跨度8超过阈值，但贪心按最后一个片段比较
		fragments := []types.TextFragment{
			{Y: 100},
			{Y: 96},
			{Y: 92},
		}

		groups := groupFragmentsByY(fragments, 5.0)
		assert.Len(t, groups, 1)
	})

	t.Run("空输入返回nil", func(t *testing.T) {
		assert.Nil(t, groupFragmentsByY(nil, 5.0))
	})
}

func TestGroupByProximity(t *testing.T) {
	t.Run("单栏输入忽略x直接按y聚类", func(t *testing.T) {
		fragments := []types.TextFragment{
			{Text: "Hello", X: 20, Y: 100},
			{Text: "World", X: 220, Y: 100},
		}

		groups := GroupByProximity(fragments, 5.0, 150)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"Hello World"}, CombineGroupedText(groups))
	})

	t.Run("双栏输入按组平均y全局重排", func(t *testing.T) {
		var fragments []types.TextFragment
		for i := 0; i < 21; i++ {
			fragments = append(fragments, types.TextFragment{
				Text: fmt.Sprintf("L%d", i), X: 20, Y: 1000 - float64(i)*10,
			})
			fragments = append(fragments, types.TextFragment{
				Text: fmt.Sprintf("R%d", i), X: 220, Y: 995 - float64(i)*10,
			})
		}

		groups := GroupByProximity(fragments, 3.0, 150)
		lines := CombineGroupedText(groups)
		require.GreaterOrEqual(t, len(lines), 4)
		assert.Equal(t, []string{"L0", "R0", "L1", "R1"}, lines[:4],
			"跨栏阅读顺序应自上而下交错")
	})
}

func TestCombineGroupedText(t *testing.T) {
	groups := [][]types.TextFragment{
		{
			{Text: "World", X: 50, Y: 100},
			{Text: "Hello", X: 10, Y: 100},
		},
	}

	assert.Equal(t, []string{"Hello World"}, CombineGroupedText(groups),
		"组内按x升序拼接")
}
