package extractor

import (
	"regexp"
	"strings"
)

// EducationNotFound 教育节中未识别出任何学历时的占位值
const EducationNotFound = "Not Found"

// educationLevels 学历等级，按固定优先级从高到低排列
var educationLevels = []string{
	"PHD", "MASTER", "MS", "BS", "M.SC", "MSC",
	"BACHELOR", "BSCS", "BSC",
	"INTERMEDIATE", "HSC",
	"MATRIC", "O-LEVEL", "A-LEVEL",
}

var educationPatterns = compileEducationPatterns()

func compileEducationPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(educationLevels))
	for _, level := range educationLevels {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(level)+`\b`))
	}
	return patterns
}

// HighestEducation 返回教育节文本中优先级最高的学历等级。
// 匹配对大小写不敏感，按整词匹配；未命中任何等级返回 EducationNotFound。
func HighestEducation(eduText string) string {
	eduText = strings.ToUpper(eduText)
	for i, pattern := range educationPatterns {
		if pattern.MatchString(eduText) {
			return educationLevels[i]
		}
	}
	return EducationNotFound
}
