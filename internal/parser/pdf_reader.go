package parser

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-ats-go/internal/types"
)

const (
	// textLineTolerance 两个文本片段纵坐标相差在此范围内视为同一行
	textLineTolerance = 2.0
	// minWordJoinGap 片段拼接成单词的最小间距下限
	minWordJoinGap = 1.0
	// wordJoinFactor 拼接间距随字号缩放的系数
	wordJoinFactor = 0.3
	// segmentGapThreshold 行内间距超过此值视为跨栏，切分为不同片段
	segmentGapThreshold = 18.0
	// blockVerticalGap 相邻两行纵向间距超过此值时不再归入同一文本块
	blockVerticalGap = 16.0
	// defaultFontSize 片段未携带字号时的缺省值
	defaultFontSize = 10.0
)

// 页面尺寸无法从MediaBox读出时按US Letter处理
const (
	fallbackPageWidth  = 612.0
	fallbackPageHeight = 792.0
)

// PDFReader 把PDF字节流解析为带几何信息的文档结构。
// 文本片段先按行聚合成单词token，再按行内间距与纵向邻接聚合成文本块，
// 对应布局分类与分栏线性化两类下游消费。
type PDFReader struct{}

// NewPDFReader 初始化PDF文档读取器
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// ReadDocument 解析PDF字节流，返回逐页的尺寸、文本块与单词token。
// 底层库对损坏的内容流会panic，这里统一拦截并转成错误返回。
func (r *PDFReader) ReadDocument(ctx context.Context, data []byte) (doc *types.Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	doc = &types.Document{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		width, height := pageSize(page)
		lines := groupTextLines(page.Content().Text, height)

		doc.Pages = append(doc.Pages, types.Page{
			Width:  width,
			Height: height,
			Blocks: buildBlocks(lines),
			Words:  collectWords(lines),
		})
	}

	return doc, nil
}

// pageSize 读取页面MediaBox，必要时沿Parent链向上查找继承值
func pageSize(page pdf.Page) (float64, float64) {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		mb := v.Key("MediaBox")
		if mb.IsNull() || mb.Len() < 4 {
			continue
		}
		width := mb.Index(2).Float64() - mb.Index(0).Float64()
		height := mb.Index(3).Float64() - mb.Index(1).Float64()
		if width > 0 && height > 0 {
			return width, height
		}
	}
	return fallbackPageWidth, fallbackPageHeight
}

// textLine 一行文本的中间表示，segments按跨栏间距切分
type textLine struct {
	top      float64
	fontSize float64
	segments [][]types.Word
}

// groupTextLines 把离散文本片段聚合成行，行内再拼接成单词token。
// PDF坐标原点在左下角，这里统一换算成距页面顶部的距离。
func groupTextLines(texts []pdf.Text, pageHeight float64) []textLine {
	var runs []pdf.Text
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return nil
	}

	// 先按自上而下、自左向右排定片段顺序
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var lines []textLine
	var current []pdf.Text
	currentY := runs[0].Y
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, assembleLine(current, pageHeight))
			current = nil
		}
	}
	for _, t := range runs {
		if absFloat(t.Y-currentY) > textLineTolerance {
			flush()
			currentY = t.Y
		}
		current = append(current, t)
	}
	flush()

	return lines
}

// assembleLine 把同一行的片段按水平间距拼接成单词，并按跨栏间距切成segments
func assembleLine(runs []pdf.Text, pageHeight float64) textLine {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	top := pageHeight - runs[0].Y
	fontSize := defaultFontSize
	for _, t := range runs {
		if t.FontSize > fontSize {
			fontSize = t.FontSize
		}
	}

	line := textLine{top: top, fontSize: fontSize}
	var segment []types.Word
	word := types.Word{X0: runs[0].X, X1: runs[0].X + runs[0].W, Top: top, Text: runs[0].S}
	for _, t := range runs[1:] {
		gap := t.X - word.X1
		switch {
		case gap > segmentGapThreshold:
			segment = append(segment, word)
			line.segments = append(line.segments, segment)
			segment = nil
			word = types.Word{X0: t.X, X1: t.X + t.W, Top: top, Text: t.S}
		case gap > joinGap(t.FontSize):
			segment = append(segment, word)
			word = types.Word{X0: t.X, X1: t.X + t.W, Top: top, Text: t.S}
		default:
			word.Text += t.S
			word.X1 = t.X + t.W
		}
	}
	segment = append(segment, word)
	line.segments = append(line.segments, segment)

	return line
}

func joinGap(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	gap := fontSize * wordJoinFactor
	if gap < minWordJoinGap {
		gap = minWordJoinGap
	}
	return gap
}

func collectWords(lines []textLine) []types.Word {
	var words []types.Word
	for _, line := range lines {
		for _, segment := range line.segments {
			words = append(words, segment...)
		}
	}
	return words
}

// blockBuilder 纵向堆叠中的文本块
type blockBuilder struct {
	x0, x1  float64
	y0, y1  float64
	lastTop float64
	parts   []string
}

// buildBlocks 把行内segments纵向堆叠成文本块。
// 一个segment归入横向区间有重叠、且与块内最后一行纵向间距足够小的块，
// 否则自成新块。单词token不携带高度，块的下边界按末行字号近似。
func buildBlocks(lines []textLine) []types.TextBlock {
	var builders []*blockBuilder

	for _, line := range lines {
		for _, segment := range line.segments {
			segX0 := segment[0].X0
			segX1 := segment[len(segment)-1].X1
			texts := make([]string, 0, len(segment))
			for _, w := range segment {
				texts = append(texts, w.Text)
			}
			segText := strings.Join(texts, " ")

			var target *blockBuilder
			for _, b := range builders {
				if line.top-b.lastTop <= 0 || line.top-b.lastTop > blockVerticalGap {
					continue
				}
				if segX0 < b.x1 && b.x0 < segX1 {
					target = b
					break
				}
			}

			if target == nil {
				builders = append(builders, &blockBuilder{
					x0: segX0, x1: segX1,
					y0: line.top, y1: line.top + line.fontSize,
					lastTop: line.top,
					parts:   []string{segText},
				})
				continue
			}

			target.x0 = minFloat(target.x0, segX0)
			target.x1 = maxFloat(target.x1, segX1)
			target.y1 = line.top + line.fontSize
			target.lastTop = line.top
			target.parts = append(target.parts, segText)
		}
	}

	blocks := make([]types.TextBlock, 0, len(builders))
	for _, b := range builders {
		blocks = append(blocks, types.TextBlock{
			X0:   b.x0,
			Y0:   b.y0,
			X1:   b.x1,
			Y1:   b.y1,
			Text: strings.Join(b.parts, "\n"),
		})
	}
	return blocks
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
