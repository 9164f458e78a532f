package layout // 页面布局分类与分栏线性化

import (
	"sort"
	"strings"
	"unicode/utf8"

	"resume-ats-go/internal/types"
)

// 布局分类的几何阈值，针对"侧栏+主栏"式双栏简历调优
const (
	// MinBlockChars 参与聚类的文本块最少字符数，过滤图标等噪声
	MinBlockChars = 5
	// MaxBlockWidthRatio 超过该页宽占比的块视为页眉/页脚，不参与聚类
	MaxBlockWidthRatio = 0.95
	// ClusterTolerance 块x0与簇x0中位数的最大偏差，超过则另起新簇
	ClusterTolerance = 60.0
	// MinClusterCharFrac 簇字符占比低于该值且块数不足3时按噪声丢弃
	MinClusterCharFrac = 0.03

	// 双栏判定的八个联合条件
	minTogetherFrac  = 0.60 // 两大簇合计字符占比下限
	minLeftCharFrac  = 0.05 // 左簇字符占比下限
	minRightCharFrac = 0.03 // 右簇字符占比下限
	minMaxCoverage   = 0.50 // 两簇中至少一个的纵向覆盖率下限
	minOverlapFrac   = 0.20 // 纵向重叠占比下限
	minRightStart    = 0.30 // 右簇x0相对页宽的最小起始位置
	minGapRatio      = 0.05 // 栏间水平间隙相对页宽的下限
	maxWidthRatio    = 0.70 // 两簇中较宽者相对页宽的上限
)

// blockInfo 过滤后参与聚类的单个文本块
type blockInfo struct {
	x0, x1 float64
	width  float64
	chars  int
	ymin   float64
	ymax   float64
}

// cluster x0相近的块聚成的候选栏
type cluster struct {
	x0s, x1s, widths []float64
	chars            int
	ymin, ymax       float64
}

// clusterStats 候选栏的统计量
type clusterStats struct {
	x0, x1     float64
	width      float64
	charFrac   float64
	coverage   float64
	ymin, ymax float64
}

// ClassifyLayout 根据一页的文本块几何分布判定单栏或双栏。
// 纯函数：结果只取决于输入的块集合与页面尺寸，与块的给出顺序无关。
// 没有可用块时返回单栏。
func ClassifyLayout(page types.Page) types.ColumnLayout {
	if page.Width <= 0 || page.Height <= 0 {
		return types.LayoutOneColumn
	}

	totalChars := 0
	var blocks []blockInfo
	for _, b := range page.Blocks {
		txt := strings.TrimSpace(b.Text)
		if txt == "" {
			continue
		}
		charCount := utf8.RuneCountInString(txt)
		if charCount < MinBlockChars {
			continue
		}
		blockW := b.X1 - b.X0
		if blockW/page.Width > MaxBlockWidthRatio {
			continue
		}
		blocks = append(blocks, blockInfo{
			x0:    b.X0,
			x1:    b.X1,
			width: blockW,
			chars: charCount,
			ymin:  b.Y0,
			ymax:  b.Y1,
		})
		totalChars += charCount
	}

	if totalChars == 0 {
		return types.LayoutOneColumn
	}

	// 内部排序保证对输入顺序不敏感
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].x0 != blocks[j].x0 {
			return blocks[i].x0 < blocks[j].x0
		}
		return blocks[i].ymin < blocks[j].ymin
	})

	// 贪心按x0中位数偏差合并成簇
	var grouped []cluster
	var cur *cluster
	for _, b := range blocks {
		if cur != nil && absFloat(median(cur.x0s)-b.x0) < ClusterTolerance {
			cur.x0s = append(cur.x0s, b.x0)
			cur.x1s = append(cur.x1s, b.x1)
			cur.widths = append(cur.widths, b.width)
			cur.chars += b.chars
			if b.ymin < cur.ymin {
				cur.ymin = b.ymin
			}
			if b.ymax > cur.ymax {
				cur.ymax = b.ymax
			}
			continue
		}
		if cur != nil {
			grouped = append(grouped, *cur)
		}
		cur = &cluster{
			x0s:    []float64{b.x0},
			x1s:    []float64{b.x1},
			widths: []float64{b.width},
			chars:  b.chars,
			ymin:   b.ymin,
			ymax:   b.ymax,
		}
	}
	if cur != nil {
		grouped = append(grouped, *cur)
	}

	// 簇统计量，同时过滤贡献过小的噪声簇
	var proc []clusterStats
	for _, g := range grouped {
		charFrac := float64(g.chars) / float64(totalChars)
		if charFrac < MinClusterCharFrac && len(g.x0s) < 3 {
			continue
		}
		proc = append(proc, clusterStats{
			x0:       median(g.x0s),
			x1:       median(g.x1s),
			width:    median(g.widths),
			charFrac: charFrac,
			coverage: (g.ymax - g.ymin) / page.Height,
			ymin:     g.ymin,
			ymax:     g.ymax,
		})
	}

	if len(proc) < 2 {
		return types.LayoutOneColumn
	}

	sort.SliceStable(proc, func(i, j int) bool {
		return proc[i].charFrac > proc[j].charFrac
	})

	c1, c2 := proc[0], proc[1]
	if c1.x0 > c2.x0 {
		c1, c2 = c2, c1
	}

	// 栏间水平间隙与纵向重叠
	gap := c2.x0 - c1.x1
	overlap := minFloat(c1.ymax, c2.ymax) - maxFloat(c1.ymin, c2.ymin)
	if overlap < 0 {
		overlap = 0
	}
	minYSpan := minFloat(c1.ymax-c1.ymin, c2.ymax-c2.ymin)
	overlapFrac := 0.0
	if minYSpan > 0 {
		overlapFrac = overlap / minYSpan
	}

	isTwoCol := (c1.charFrac+c2.charFrac) >= minTogetherFrac &&
		c1.charFrac >= minLeftCharFrac &&
		c2.charFrac >= minRightCharFrac &&
		maxFloat(c1.coverage, c2.coverage) >= minMaxCoverage &&
		overlapFrac >= minOverlapFrac &&
		c2.x0 >= page.Width*minRightStart &&
		gap/page.Width >= minGapRatio &&
		maxFloat(c1.width, c2.width)/page.Width <= maxWidthRatio

	if isTwoCol {
		return types.LayoutTwoColumn
	}
	return types.LayoutOneColumn
}

// median 中位数；偶数个取中间两值的平均
func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
