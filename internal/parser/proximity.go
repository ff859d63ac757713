package parser

import (
	"sort"
	"strings"

	"profile-parser-go/internal/types"
)

const (
	// defaultLineYDistance 行聚类的默认最大y间距
	defaultLineYDistance = 5.0
	// tightLineYDistance 经历分类用的更紧的间距，行切分更细
	tightLineYDistance = 3.0
)

// GroupByProximity 按垂直邻近度把片段聚类成行
// 双栏输入先按固定x分界线拆成两栏分别聚类，再按组平均y全局重排，
// 保证跨栏的阅读顺序仍是自上而下
func GroupByProximity(fragments []types.TextFragment, maxYDistance float64, columnThreshold float64) [][]types.TextFragment {
	if maxYDistance <= 0 {
		maxYDistance = defaultLineYDistance
	}
	if columnThreshold <= 0 {
		columnThreshold = defaultColumnThreshold
	}

	layout := DetectLayout(fragments, columnThreshold)
	if layout.Kind != types.LayoutTwoColumn {
		return groupFragmentsByY(fragments, maxYDistance)
	}

	var left, right []types.TextFragment
	for _, f := range fragments {
		if f.X < columnThreshold {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}

	groups := append(groupFragmentsByY(left, maxYDistance), groupFragmentsByY(right, maxYDistance)...)
	sort.SliceStable(groups, func(i, j int) bool {
		return meanY(groups[i]) > meanY(groups[j]) // y大在页面上方，排前面
	})
	return groups
}

// groupFragmentsByY 单遍贪心聚类：片段按y降序排列后顺序扫描，
// 与当前组最后加入片段的y距离不超过阈值就并入，否则开新组。
// 不是全局最优：连续片段的单段间距都不超阈值时，整体跨度超阈值的内容也会被串到一组。
func groupFragmentsByY(fragments []types.TextFragment, maxYDistance float64) [][]types.TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]types.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var groups [][]types.TextFragment
	current := []types.TextFragment{sorted[0]}
	for _, f := range sorted[1:] {
		last := current[len(current)-1]
		dist := last.Y - f.Y
		if dist < 0 {
			dist = -dist
		}
		if dist <= maxYDistance {
			current = append(current, f)
		} else {
			groups = append(groups, current)
			current = []types.TextFragment{f}
		}
	}
	groups = append(groups, current)
	return groups
}

// CombineGroupedText 把每个行组按x升序重排后拼成行文本
// 不变式：拼接后组内片段从左到右即为阅读顺序
func CombineGroupedText(groups [][]types.TextFragment) []string {
	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		sorted := make([]types.TextFragment, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

		parts := make([]string, 0, len(sorted))
		for _, f := range sorted {
			parts = append(parts, f.Text)
		}
		lines = append(lines, strings.TrimSpace(strings.Join(parts, " ")))
	}
	return lines
}

func meanY(group []types.TextFragment) float64 {
	var sum float64
	for _, f := range group {
		sum += f.Y
	}
	return sum / float64(len(group))
}

func meanFontSize(group []types.TextFragment) float64 {
	var sum float64
	for _, f := range group {
		sum += f.FontSize
	}
	return sum / float64(len(group))
}
