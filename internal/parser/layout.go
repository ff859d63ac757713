package parser

import "profile-parser-go/internal/types"

const (
	// defaultColumnThreshold 边栏与主内容区的x分界线
	// 经验值：导出PDF的左栏起始x在20附近，右栏在220附近
	defaultColumnThreshold = 150.0

	// minColumnPopulation 判定为双栏所需的每栏最小片段数
	minColumnPopulation = 20
)

// DetectLayout 根据片段的x分布把页面分类为单栏或双栏
// 两个分区的片段数都超过下限才判双栏，并计算各区域的包围盒；
// 否则按单栏处理，不附带区域信息。大幅图片边栏+稀疏文本的文档可能被误判为单栏，
// 这是已接受的已知局限，阈值之外不再做数值兜底。
func DetectLayout(fragments []types.TextFragment, columnThreshold float64) types.LayoutInfo {
	if columnThreshold <= 0 {
		columnThreshold = defaultColumnThreshold
	}

	var left, right []types.TextFragment
	for _, f := range fragments {
		if f.X < columnThreshold {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}

	if len(left) <= minColumnPopulation || len(right) <= minColumnPopulation {
		return types.LayoutInfo{Kind: types.LayoutSingleColumn}
	}

	sidebar := boundsOf(left)
	main := boundsOf(right)
	// 边栏右缘取 max(x+width)，主区左缘取 min(x)
	sidebar.Right = maxRightEdge(left)
	main.Left = minLeftEdge(right)

	return types.LayoutInfo{
		Kind:          types.LayoutTwoColumn,
		SidebarBounds: &sidebar,
		MainBounds:    &main,
	}
}

func boundsOf(fragments []types.TextFragment) types.Bounds {
	b := types.Bounds{
		Left:   fragments[0].X,
		Right:  fragments[0].X,
		Top:    fragments[0].Y,
		Bottom: fragments[0].Y,
	}
	for _, f := range fragments[1:] {
		if f.X < b.Left {
			b.Left = f.X
		}
		if f.X > b.Right {
			b.Right = f.X
		}
		if f.Y < b.Top {
			b.Top = f.Y
		}
		if f.Y > b.Bottom {
			b.Bottom = f.Y
		}
	}
	return b
}

func maxRightEdge(fragments []types.TextFragment) float64 {
	edge := fragments[0].X + fragments[0].Width
	for _, f := range fragments[1:] {
		if f.X+f.Width > edge {
			edge = f.X + f.Width
		}
	}
	return edge
}

func minLeftEdge(fragments []types.TextFragment) float64 {
	edge := fragments[0].X
	for _, f := range fragments[1:] {
		if f.X < edge {
			edge = f.X
		}
	}
	return edge
}
