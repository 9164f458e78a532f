package scoring

import (
	"regexp"
	"strconv"

	"resume-ats-go/internal/types"
)

// educationKeywords JD中可识别的学历关键词
var educationKeywords = []string{
	// 博士
	"PHD", "DOCTORATE", "D.PHIL",

	// 硕士
	"MASTER", "MASTERS", "MS", "M.SC", "MSC", "M.TECH", "MTECH",
	"MBA", "M.COM", "MCA", "M.ED", "M.PHIL",

	// 学士
	"BACHELOR", "BACHELORS", "BS", "BSC", "B.SC", "BA", "B.A",
	"BBA", "B.COM", "BCA", "B.TECH", "BTECH", "BE", "B.E", "BSCS",
	"BSIT", "BSSE", "BCE", "BS SOFTWARE ENGINEERING",
	"BS INFORMATION TECHNOLOGY", "BS COMPUTER SCIENCE",

	// 中学与文凭
	"INTERMEDIATE", "HSC", "SSC", "DIPLOMA", "ASSOCIATE DEGREE",
	"MATRIC", "HIGH SCHOOL", "SECONDARY SCHOOL",
	"O-LEVEL", "A-LEVEL", "GED",
}

var educationKeywordPatterns = compileEducationKeywordPatterns()

func compileEducationKeywordPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(educationKeywords))
	for _, keyword := range educationKeywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(keyword)+`\b`))
	}
	return patterns
}

// experiencePatterns 年限要求的表达式，第一个捕获组必须是数字。
// 多个表达式命中时取所有数字的最小值作为硬性门槛。
var experiencePatterns = []*regexp.Regexp{
	// "2 years", "3+ years"
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:year|years)`),
	// "2-3 years", "5-7 years"：取区间下界
	regexp.MustCompile(`(?i)(\d+)\s*-\s*\d+\s*(?:year|years)`),
	// "minimum 3 years", "at least 5 years"
	regexp.MustCompile(`(?i)\b(?:minimum|at least)\s+(\d+)\s*(?:year|years)\b`),
	// "Minimum 1.5 – 2 years"：取区间下界，允许小数
	regexp.MustCompile(`(?i)minimum\s+(\d+(?:\.\d+)?)\s*[–-]\s*\d+(?:\.\d+)?\s*years?`),
	// "preferred 5 years"
	regexp.MustCompile(`(?i)\b(?:preferred)\s+(\d+)\s*(?:year|years)\b`),
}

// fresherPattern 应届或入门级岗位，年限要求按0计
var fresherPattern = regexp.MustCompile(`(?i)\b(?:fresher|fresh graduate|entry level)\b`)

// ParseJobRequirement 从职位描述文本中解析技能、最低年限与学历要求。
// 技能按本体整词匹配；年限取各表达式命中数字的最小值，无命中为0；
// 学历取命中的关键词去重，保持关键词表顺序。
func ParseJobRequirement(text string) types.JobRequirement {
	req := types.JobRequirement{
		Skills: MatchSkills(text),
	}

	var candidates []float64
	for _, pattern := range experiencePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				candidates = append(candidates, v)
			}
		}
	}
	if fresherPattern.MatchString(text) {
		candidates = append(candidates, 0)
	}
	for i, v := range candidates {
		if i == 0 || v < req.MinExperienceYears {
			req.MinExperienceYears = v
		}
	}

	for i, pattern := range educationKeywordPatterns {
		if pattern.MatchString(text) {
			req.Education = append(req.Education, educationKeywords[i])
		}
	}

	return req
}
