package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"resume-ats-go/internal/types"
)

// DurationNotFound 起始日期无法解析时的时长占位值
const DurationNotFound = "Duration not found"

// strayYearDuration 只有裸年份、无结束信息时按12个月计
const strayYearDuration = "1 years 0 months"

// monthNames 英文月份全称与缩写的交替式
const monthNames = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

// dateToken 单个日期token：数字式、月份名式或裸年份
const dateToken = `\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}` +
	`|\d{1,2}[/\-.]\d{4}` +
	`|(?:` + monthNames + `)[.,]?\s*\d{1,2},?\s*\d{2,4}` +
	`|(?:` + monthNames + `)[.,]?\s*\d{4}` +
	`|(?:` + monthNames + `)[-.]?\d{4}` +
	`|\d{4}`

var (
	// dateRangePattern 匹配 "起始 - 结束" 形式的日期区间。
	// 结束侧额外接受present等在职标记。
	dateRangePattern = regexp.MustCompile(
		`(?i)(` + dateToken + `)\s*(?:-|–|to)\s*(` + dateToken + `|present|current|now|till\sdate|ongoing)`)

	// strayYearPattern 匹配不在任何区间内的裸年份
	strayYearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// phoneStripPattern 电话号码容易被误读成年份，抽取前先剔除
	phoneStripPattern = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)

	multiSpacePattern = regexp.MustCompile(`\s{2,}`)
	blockSplitPattern = regexp.MustCompile(`\n\s*\n`)
	roleSplitPattern  = regexp.MustCompile(`[.\n]`)
	roleSymbolPattern = regexp.MustCompile(`[\[\]\x{f1ad}•|]`)
)

// dateLayouts 支持的日期格式，按优先级排列
var dateLayouts = []string{
	"02/01/2006", "02-01-2006", "02.01.2006",
	"01/2006", "01-2006", "01.2006",
	"Jan 2006", "January 2006",
	"Jan. 2006", "January. 2006",
	"Jan-2006", "January-2006",
	"Jan2006", "January2006",
	"Jan.2006", "January.2006",
	"January 2, 2006", "Jan 2, 2006",
	"2006",
}

// openEndMarkers 表示在职至今的结束token
var openEndMarkers = map[string]struct{}{
	"current":   {},
	"present":   {},
	"now":       {},
	"till date": {},
	"ongoing":   {},
}

// ExtractExperience 从经历文本中抽取全部日期区间，返回 exp_N 到经历条目的映射。
// 调用方需先通过 StripPhoneNumbers 剔除电话号码，避免号码片段被误读成年份。
// 文本先折叠多余空白再按空行分块；每个区间匹配生成一条记录，
// 职位取匹配位置之前最近的一段描述。区间之外的裸年份单独成条，按12个月计。
func ExtractExperience(text string) map[string]types.ExperienceEntry {
	text = strings.TrimSpace(multiSpacePattern.ReplaceAllString(text, " "))

	entries := make(map[string]types.ExperienceEntry)
	counter := 1

	for _, block := range splitBlocks(text) {
		ranges := dateRangePattern.FindAllStringSubmatchIndex(block, -1)
		for _, m := range ranges {
			start := block[m[2]:m[3]]
			end := block[m[4]:m[5]]
			entries[fmt.Sprintf("exp_%d", counter)] = types.ExperienceEntry{
				Role:      extractJobRole(block, m[0]),
				StartDate: start,
				EndDate:   end,
				Duration:  calculateDuration(start, end),
			}
			counter++
		}

		for _, ym := range strayYearPattern.FindAllStringIndex(block, -1) {
			yearStr := block[ym[0]:ym[1]]
			if yearInsideRange(block, ranges, yearStr) {
				continue
			}
			entries[fmt.Sprintf("exp_%d", counter)] = types.ExperienceEntry{
				Role:      extractJobRole(block, ym[0]),
				StartDate: yearStr,
				EndDate:   "",
				Duration:  strayYearDuration,
			}
			counter++
		}
	}

	return entries
}

// StripPhoneNumbers 剔除电话号码并折叠空白。
// 经历文本在进入 ExtractExperience 前先做此清洗。
func StripPhoneNumbers(text string) string {
	cleaned := phoneStripPattern.ReplaceAllString(text, "")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

func splitBlocks(text string) []string {
	var blocks []string
	for _, b := range blockSplitPattern.Split(text, -1) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// yearInsideRange 该年份字符串是否已经出现在某个匹配到的区间文本里
func yearInsideRange(block string, ranges [][]int, yearStr string) bool {
	for _, m := range ranges {
		if strings.Contains(block[m[0]:m[1]], yearStr) {
			return true
		}
	}
	return false
}

// extractJobRole 取日期匹配之前、以句号或换行分隔的最后一段作为职位
func extractJobRole(block string, matchStart int) string {
	before := strings.TrimSpace(block[:matchStart])
	parts := roleSplitPattern.Split(before, -1)
	last := ""
	if len(parts) > 0 {
		last = strings.TrimSpace(parts[len(parts)-1])
	}
	last = roleSymbolPattern.ReplaceAllString(last, "")
	last = multiSpacePattern.ReplaceAllString(last, " ")
	last = strings.TrimSpace(last)
	if last == "" {
		return "Role not found"
	}
	return last
}

// calculateDuration 计算起止日期之间的时长并格式化为 "N years M months"。
// 起始无法解析返回 DurationNotFound；结束无法解析按12个月计；
// 结束早于起始时长记为0。
func calculateDuration(start, end string) string {
	sd, okStart := parseDate(start)
	if !okStart {
		return DurationNotFound
	}
	ed, okEnd := parseDate(end)
	if !okEnd {
		return strayYearDuration
	}

	months := (ed.Year()-sd.Year())*12 + int(ed.Month()) - int(sd.Month())
	if ed.Day() < sd.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return fmt.Sprintf("%d years %d months", months/12, months%12)
}

// parseDate 按dateLayouts逐个尝试解析日期token。
// 在职标记(present等)解析为当前时间。
func parseDate(dateStr string) (time.Time, bool) {
	dateStr = strings.ToLower(strings.TrimSpace(dateStr))
	dateStr = strings.NewReplacer("(", "", ")", "").Replace(dateStr)
	if _, ok := openEndMarkers[dateStr]; ok {
		return time.Now(), true
	}

	// time.Parse对月份名大小写敏感，先恢复首字母大写
	dateStr = capitalizeFirstAlpha(dateStr)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func capitalizeFirstAlpha(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}

// TotalExperienceYears 把各条目格式化时长累加成总年限。
// 按 "N years M months" 的文本形式逆向解析；任一条目的年份段
// 不是纯数字时整体按0年处理。
func TotalExperienceYears(entries map[string]types.ExperienceEntry) float64 {
	totalMonths := 0
	for _, entry := range entries {
		years, months := 0, 0
		if strings.Contains(entry.Duration, "years") {
			y, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(entry.Duration, "years", 2)[0]))
			if err != nil {
				return 0
			}
			years = y
		}
		if strings.Contains(entry.Duration, "months") {
			parts := strings.Split(entry.Duration, "years")
			monthsPart := strings.TrimSpace(strings.ReplaceAll(parts[len(parts)-1], "months", ""))
			if isDigits(monthsPart) {
				months, _ = strconv.Atoi(monthsPart)
			}
		}
		totalMonths += years*12 + months
	}
	return float64(totalMonths) / 12
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
