package layout

import (
	"math"
	"sort"
	"strings"

	"resume-ats-go/internal/types"
)

// LineTolerance 单词按纵向位置归并为行时的取整步长
const LineTolerance = 3.0

// GroupWordsByLine 把单词按近似相等的纵向位置归并成行，
// 行内按x0从左到右拼接，行间按自上而下排列。
func GroupWordsByLine(words []types.Word) string {
	if len(words) == 0 {
		return ""
	}

	lines := make(map[float64][]types.Word)
	for _, w := range words {
		bucket := math.Round(w.Top/LineTolerance) * LineTolerance
		lines[bucket] = append(lines[bucket], w)
	}

	buckets := make([]float64, 0, len(lines))
	for b := range lines {
		buckets = append(buckets, b)
	}
	sort.Float64s(buckets)

	var sb strings.Builder
	for i, b := range buckets {
		lineWords := lines[b]
		sort.SliceStable(lineWords, func(x, y int) bool {
			return lineWords[x].X0 < lineWords[y].X0
		})
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, w := range lineWords {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(w.Text)
		}
	}
	return sb.String()
}

// SplitColumns 基于间隙的分栏：对一页的单词，按去重后的x0起点序列找最大间隙，
// x1不超过间隙左缘的归左栏，其余归右栏。起点不足两个时整页归左栏。
func SplitColumns(words []types.Word) (left, right []types.Word) {
	if len(words) == 0 {
		return nil, nil
	}

	startSet := make(map[float64]struct{})
	for _, w := range words {
		startSet[w.X0] = struct{}{}
	}
	starts := make([]float64, 0, len(startSet))
	for s := range startSet {
		starts = append(starts, s)
	}
	sort.Float64s(starts)

	if len(starts) < 2 {
		return words, nil
	}

	// 相邻起点间的最大间隙即为栏间分界
	bestGap := 0.0
	rightEdgeStart := starts[0]
	for i := 0; i+1 < len(starts); i++ {
		gap := starts[i+1] - starts[i]
		if gap > bestGap {
			bestGap = gap
			rightEdgeStart = starts[i+1]
		}
	}

	// 左栏宽度取分界以左所有单词右端的最大值
	leftColWidth := math.Inf(-1)
	for _, w := range words {
		if w.X1 <= rightEdgeStart && w.X1 > leftColWidth {
			leftColWidth = w.X1
		}
	}
	if math.IsInf(leftColWidth, -1) {
		return words, nil
	}

	for _, w := range words {
		if w.X0 < leftColWidth {
			left = append(left, w)
		} else {
			right = append(right, w)
		}
	}
	return left, right
}

// ExtractColumns 对双栏文档逐页分栏，返回左右两个独立的线性文本流。
// 左右栏各自保持页内阅读顺序，页间以空行分隔。
func ExtractColumns(doc *types.Document) (string, string) {
	var leftText, rightText strings.Builder
	for _, page := range doc.Pages {
		if len(page.Words) == 0 {
			continue
		}
		left, right := SplitColumns(page.Words)
		if len(left) > 0 {
			leftText.WriteString(GroupWordsByLine(left))
			leftText.WriteString("\n\n")
		}
		if len(right) > 0 {
			rightText.WriteString(GroupWordsByLine(right))
			rightText.WriteString("\n\n")
		}
	}
	return strings.TrimSpace(leftText.String()), strings.TrimSpace(rightText.String())
}

// ExtractDocumentText 把整份文档线性化为阅读顺序的文本。
// 布局按首页的块几何判定：双栏时先输出全部左栏行再输出全部右栏行
// （两条独立文本流拼接，不做跨栏交错）；单栏时逐页按保版面方式抽取。
func ExtractDocumentText(doc *types.Document) (string, types.ColumnLayout) {
	if doc == nil || len(doc.Pages) == 0 {
		return "", types.LayoutOneColumn
	}

	resumeType := ClassifyLayout(doc.Pages[0])
	if resumeType == types.LayoutTwoColumn {
		leftCol, rightCol := ExtractColumns(doc)
		return leftCol + "\n" + rightCol, resumeType
	}

	var all []string
	for _, page := range doc.Pages {
		text := GroupWordsByLine(page.Words)
		if text != "" {
			all = append(all, text)
		}
	}
	return strings.Join(all, "\n"), resumeType
}
