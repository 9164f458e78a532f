package parser

import (
	"context"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGroupTextLinesWordAssembly 验证同一行内片段按间距拼成单词token
func TestGroupTextLinesWordAssembly(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 700, W: 30, S: "Hello"},
		{FontSize: 12, X: 45, Y: 700, W: 32, S: "World"},
	}

	lines := groupTextLines(texts, 792)
	require.Len(t, lines, 1)

	words := collectWords(lines)
	require.Len(t, words, 2, "间距超过拼接阈值的片段应是两个单词")
	assert.Equal(t, "Hello", words[0].Text)
	assert.Equal(t, "World", words[1].Text)
	assert.InDelta(t, 92.0, words[0].Top, 1e-9, "纵坐标应换算为距页面顶部的距离")
}

// TestGroupTextLinesMergesAdjacentRuns 验证紧邻片段合并为同一个单词
func TestGroupTextLinesMergesAdjacentRuns(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 700, W: 15, S: "Hel"},
		{FontSize: 12, X: 25.5, Y: 700, W: 10, S: "lo"},
	}

	words := collectWords(groupTextLines(texts, 792))
	require.Len(t, words, 1)
	assert.Equal(t, "Hello", words[0].Text)
	assert.InDelta(t, 10.0, words[0].X0, 1e-9)
	assert.InDelta(t, 35.5, words[0].X1, 1e-9)
}

// TestGroupTextLinesSeparatesByY 验证纵坐标差超过容差的片段分属不同行
func TestGroupTextLinesSeparatesByY(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 700, W: 30, S: "First"},
		{FontSize: 12, X: 10, Y: 688, W: 30, S: "Second"},
	}

	lines := groupTextLines(texts, 792)
	require.Len(t, lines, 2)
	assert.Less(t, lines[0].top, lines[1].top, "行应自上而下排列")
}

// TestBuildBlocksStacksAdjacentLines 验证纵向邻接且横向重叠的行堆叠成同一块
func TestBuildBlocksStacksAdjacentLines(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 700, W: 60, S: "Experience"},
		{FontSize: 12, X: 10, Y: 688, W: 80, S: "Engineer"},
	}

	blocks := buildBlocks(groupTextLines(texts, 792))
	require.Len(t, blocks, 1)
	assert.Equal(t, "Experience\nEngineer", blocks[0].Text)
	assert.InDelta(t, 10.0, blocks[0].X0, 1e-9)
	assert.InDelta(t, 90.0, blocks[0].X1, 1e-9)
}

// TestBuildBlocksSplitsColumns 验证行内跨栏间距产生左右两个独立块
func TestBuildBlocksSplitsColumns(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 700, W: 50, S: "Sidebar"},
		{FontSize: 12, X: 260, Y: 700, W: 50, S: "Main"},
	}

	blocks := buildBlocks(groupTextLines(texts, 792))
	require.Len(t, blocks, 2)
	assert.Equal(t, "Sidebar", blocks[0].Text)
	assert.Equal(t, "Main", blocks[1].Text)
}

// TestBuildBlocksDistantLinesSeparate 验证纵向间距过大的行不归入同一块
func TestBuildBlocksDistantLinesSeparate(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 700, W: 60, S: "Top"},
		{FontSize: 12, X: 10, Y: 650, W: 60, S: "Bottom"},
	}

	blocks := buildBlocks(groupTextLines(texts, 792))
	require.Len(t, blocks, 2)
}

// TestReadDocumentRejectsGarbage 验证非PDF字节流返回错误而非panic
func TestReadDocumentRejectsGarbage(t *testing.T) {
	reader := NewPDFReader()
	doc, err := reader.ReadDocument(context.Background(), []byte("this is not a pdf"))
	require.Error(t, err)
	assert.Nil(t, doc)
}
