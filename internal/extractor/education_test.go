package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHighestEducationPriority 验证多个学历共存时返回优先级最高的
func TestHighestEducationPriority(t *testing.T) {
	text := "BS Computer Science, 2015\nMS Software Engineering, 2018"
	assert.Equal(t, "MS", HighestEducation(text))
}

// TestHighestEducationCaseInsensitive 验证匹配对大小写不敏感
func TestHighestEducationCaseInsensitive(t *testing.T) {
	assert.Equal(t, "BACHELOR", HighestEducation("bachelor of science in physics"))
}

// TestHighestEducationWholeWord 验证学历关键词按整词匹配
func TestHighestEducationWholeWord(t *testing.T) {
	// MSCS不应整词命中MS
	assert.Equal(t, EducationNotFound, HighestEducation("MSCS program"))
}

// TestHighestEducationNotFound 验证无学历关键词时返回占位值
func TestHighestEducationNotFound(t *testing.T) {
	assert.Equal(t, EducationNotFound, HighestEducation("certificates and trainings"))
}
