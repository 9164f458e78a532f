package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats-go/internal/types"
)

// TestGroupWordsByLineOrdering 验证按行归并后自上而下、自左向右的阅读顺序
func TestGroupWordsByLineOrdering(t *testing.T) {
	words := []types.Word{
		{X0: 100, X1: 140, Top: 72, Text: "Engineer"},
		{X0: 40, X1: 90, Top: 71, Text: "Software"},
		{X0: 40, X1: 120, Top: 50, Text: "John"},
		{X0: 130, X1: 180, Top: 50, Text: "Doe"},
	}

	text := GroupWordsByLine(words)
	assert.Equal(t, "John Doe\nSoftware Engineer", text)
}

// TestGroupWordsByLineEmpty 验证空输入返回空串
func TestGroupWordsByLineEmpty(t *testing.T) {
	assert.Equal(t, "", GroupWordsByLine(nil))
}

// TestSplitColumnsByLargestGap 验证按最大起点间隙切分左右栏
func TestSplitColumnsByLargestGap(t *testing.T) {
	words := []types.Word{
		{X0: 40, X1: 100, Top: 50, Text: "Skills"},
		{X0: 42, X1: 95, Top: 70, Text: "Python"},
		{X0: 250, X1: 340, Top: 50, Text: "Experience"},
		{X0: 252, X1: 330, Top: 70, Text: "Engineer"},
	}

	left, right := SplitColumns(words)
	require.Len(t, left, 2)
	require.Len(t, right, 2)
	assert.Equal(t, "Skills", left[0].Text)
	assert.Equal(t, "Experience", right[0].Text)
}

// TestSplitColumnsSingleStart 验证起点不足两个时整页归左栏
func TestSplitColumnsSingleStart(t *testing.T) {
	words := []types.Word{
		{X0: 40, X1: 100, Top: 50, Text: "Only"},
		{X0: 40, X1: 95, Top: 70, Text: "Column"},
	}

	left, right := SplitColumns(words)
	assert.Len(t, left, 2)
	assert.Empty(t, right)
}

// TestExtractDocumentTextTwoColumn 验证双栏文档先左栏后右栏的线性化
func TestExtractDocumentTextTwoColumn(t *testing.T) {
	page := twoColumnPage()
	page.Words = []types.Word{
		{X0: 40, X1: 100, Top: 50, Text: "LEFT1"},
		{X0: 40, X1: 100, Top: 62, Text: "LEFT2"},
		{X0: 250, X1: 340, Top: 50, Text: "RIGHT1"},
		{X0: 250, X1: 340, Top: 62, Text: "RIGHT2"},
	}
	doc := &types.Document{Pages: []types.Page{page}}

	text, resumeType := ExtractDocumentText(doc)
	assert.Equal(t, types.LayoutTwoColumn, resumeType)
	assert.Equal(t, "LEFT1\nLEFT2\nRIGHT1\nRIGHT2", text)
}

// TestExtractDocumentTextOneColumn 验证单栏文档逐页保版面抽取
func TestExtractDocumentTextOneColumn(t *testing.T) {
	doc := &types.Document{Pages: []types.Page{
		{
			Width:  612,
			Height: 792,
			Words: []types.Word{
				{X0: 40, X1: 120, Top: 50, Text: "Objective"},
				{X0: 40, X1: 150, Top: 70, Text: "Experience"},
			},
		},
		{
			Width:  612,
			Height: 792,
			Words: []types.Word{
				{X0: 40, X1: 120, Top: 50, Text: "Education"},
			},
		},
	}}

	text, resumeType := ExtractDocumentText(doc)
	assert.Equal(t, types.LayoutOneColumn, resumeType)
	assert.Equal(t, "Objective\nExperience\nEducation", text)
}

// TestExtractDocumentTextNilDocument 验证空文档返回空文本与单栏
func TestExtractDocumentTextNilDocument(t *testing.T) {
	text, resumeType := ExtractDocumentText(nil)
	assert.Equal(t, "", text)
	assert.Equal(t, types.LayoutOneColumn, resumeType)
}
