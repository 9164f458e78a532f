package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractContactAllFields 验证姓名、邮箱和电话的常规抽取
func TestExtractContactAllFields(t *testing.T) {
	text := "Jane Smith\nSenior Engineer\njane.smith@example.com\n+92 321 1234567\nLahore, Pakistan"

	info := ExtractContact(text)
	assert.Equal(t, "Jane Smith", info.Name)
	assert.Equal(t, "jane.smith@example.com", info.Email)
	assert.Equal(t, "+92 321 1234567", info.Phone)
}

// TestExtractContactNameSkipsDigitAndEmailLines 验证含数字或@的行不作为姓名
func TestExtractContactNameSkipsDigitAndEmailLines(t *testing.T) {
	text := "0321-1234567\njohn@example.com\nJohn Doe\nKarachi"

	info := ExtractContact(text)
	assert.Equal(t, "John Doe", info.Name)
	assert.Equal(t, "john@example.com", info.Email)
}

// TestExtractContactNameOnlyInFirstFiveLines 验证姓名只在前5个非空行中查找
func TestExtractContactNameOnlyInFirstFiveLines(t *testing.T) {
	text := "line 1\nline 2\nline 3\nline 4\nline 5\nActual Name"

	info := ExtractContact(text)
	assert.Equal(t, ContactNotFound, info.Name)
}

// TestExtractContactMissingFields 验证缺失字段填充占位值
func TestExtractContactMissingFields(t *testing.T) {
	info := ExtractContact("12345 street address 67890")
	assert.Equal(t, ContactNotFound, info.Name)
	assert.Equal(t, ContactNotFound, info.Email)
}

// TestExtractContactEmptyText 验证空文本时三个字段均为占位值
func TestExtractContactEmptyText(t *testing.T) {
	info := ExtractContact("")
	assert.Equal(t, ContactNotFound, info.Name)
	assert.Equal(t, ContactNotFound, info.Email)
	assert.Equal(t, ContactNotFound, info.Phone)
}
