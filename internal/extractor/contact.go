package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"resume-ats-go/internal/types"
)

// ContactNotFound 联系方式缺失时的占位值
const ContactNotFound = "Not found"

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{3,4}\)?[-.\s]?)?\d{3,4}[-.\s]?\d{4}`)
)

// ExtractContact 从简历首页原始文本中抽取姓名、邮箱和电话。
// 邮箱和电话取整段文本中的第一个匹配；姓名取前5个非空行中
// 第一个既不含数字也不含@的行。抽不到的字段填 ContactNotFound。
func ExtractContact(firstPageText string) types.ContactInfo {
	info := types.ContactInfo{
		Name:  ContactNotFound,
		Email: ContactNotFound,
		Phone: ContactNotFound,
	}

	if m := emailPattern.FindString(firstPageText); m != "" {
		info.Email = m
	}
	if m := phonePattern.FindString(firstPageText); m != "" {
		info.Phone = strings.TrimSpace(m)
	}

	lines := strings.Split(firstPageText, "\n")
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 5 {
			break
		}
		if !containsDigit(line) && !strings.Contains(line, "@") {
			info.Name = line
			break
		}
	}

	return info
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
