package section

import (
	"regexp"
	"strings"
	"unicode"
)

// SimilarityThreshold 模糊标题修复的相似度阈值
const SimilarityThreshold = 0.85

var (
	// 由≥3个单字母、彼此仅隔一个空白构成的序列，如 "E D U C A T I O N"
	spacedLettersPattern = regexp.MustCompile(`(?:[A-Za-z]\s){2,}[A-Za-z]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

// NormalizeText 对线性化文本依次应用三步幂等重写，
// 使后续的节边界检测不受标题拼写/间距差异影响：
//  1. 去字母间隔："E D U C A T I O N" -> "EDUCATION"
//  2. 已知标题的空白规范化："Work   Experience" -> "Work Experience"
//  3. 逐行模糊修复："WORKEXPERIENCE" -> "WORK EXPERIENCE"
func (o *Ontology) NormalizeText(text string) string {
	text = fixSpacedWords(text)
	text = o.canonicalizeHeadingSpacing(text)
	text = o.fixStuckHeadings(text)
	return text
}

// fixSpacedWords 把单字母间隔序列折叠为整词，大小写保持不变
func fixSpacedWords(text string) string {
	return spacedLettersPattern.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, " ", "")
	})
}

// canonicalizeHeadingSpacing 对每个多词标题变体，把词间任意空白折叠为单个空格，
// 周围文本与大小写不动
func (o *Ontology) canonicalizeHeadingSpacing(text string) string {
	for _, p := range o.spacingPatterns {
		text = p.ReplaceAllStringFunc(text, func(m string) string {
			return whitespaceRun.ReplaceAllString(m, " ")
		})
	}
	return text
}

// fixStuckHeadings 逐行与标题变体做相似度比较（忽略大小写与空格），
// 命中则整行替换为规范标题文本，并复原该行原有的大小写风格
func (o *Ontology) fixStuckHeadings(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}

		compact := strings.ReplaceAll(strings.ToLower(clean), " ", "")
		variant, ok := o.closestHeading(compact)
		if !ok {
			continue
		}

		fixed := variant
		switch {
		case isUpperCase(clean):
			fixed = strings.ToUpper(fixed)
		case isTitleCase(clean):
			fixed = titleCase(fixed)
		case isLowerCase(clean):
			fixed = strings.ToLower(fixed)
		}
		lines[i] = fixed
	}
	return strings.Join(lines, "\n")
}

// closestHeading 返回相似度最高且不低于阈值的标题变体；
// 并列时取候选序（确定性排序）中靠前的一个
func (o *Ontology) closestHeading(compact string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range o.fuzzy {
		score := similarity(compact, c.compact)
		if score >= SimilarityThreshold && score > bestScore {
			best = c.variant
			bestScore = score
		}
	}
	return best, best != ""
}

// similarity 归一化编辑距离相似度：1 - dist/maxLen，同为空串记为1
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein 两行滚动数组的编辑距离
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// isUpperCase 至少含一个字母且所有字母均为大写
func isUpperCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isLowerCase 至少含一个字母且所有字母均为小写
func isLowerCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isTitleCase 每个词首字母大写、其余字母小写
func isTitleCase(s string) bool {
	hasLetter := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevCased {
				return false
			}
			hasLetter = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasLetter = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return hasLetter
}

// titleCase 词首大写、其余小写
func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			sb.WriteRune(r)
			prevLetter = false
		}
	}
	return sb.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
