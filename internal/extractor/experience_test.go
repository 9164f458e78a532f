package extractor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats-go/internal/types"
)

// TestExtractExperienceBasicRange 验证基础的 MM/YYYY 区间抽取与时长计算
func TestExtractExperienceBasicRange(t *testing.T) {
	text := "Software Engineer\n\n01/2020 - 03/2022"

	entries := ExtractExperience(text)
	require.Len(t, entries, 1, "应只抽出一条经历")

	entry, ok := entries["exp_1"]
	require.True(t, ok, "条目键应为 exp_1")
	assert.Equal(t, "Software Engineer", entry.Role)
	assert.Equal(t, "01/2020", entry.StartDate)
	assert.Equal(t, "03/2022", entry.EndDate)
	assert.Equal(t, "2 years 2 months", entry.Duration)
}

// TestExtractExperienceMonthNameFormats 验证月份名日期格式与 to 分隔符
func TestExtractExperienceMonthNameFormats(t *testing.T) {
	text := "Backend Developer Jan 2019 to Mar 2021"

	entries := ExtractExperience(text)
	require.Len(t, entries, 1)

	entry := entries["exp_1"]
	assert.Equal(t, "Backend Developer", entry.Role)
	assert.Equal(t, "Jan 2019", entry.StartDate)
	assert.Equal(t, "Mar 2021", entry.EndDate)
	assert.Equal(t, "2 years 2 months", entry.Duration)
}

// TestExtractExperienceOpenEnded 验证 Present 结束标记按当前时间计算
func TestExtractExperienceOpenEnded(t *testing.T) {
	text := "Data Analyst 2020 - Present"

	entries := ExtractExperience(text)
	require.Len(t, entries, 1)

	entry := entries["exp_1"]
	assert.Equal(t, "Data Analyst", entry.Role)
	assert.Equal(t, "2020", entry.StartDate)
	assert.Equal(t, "Present", entry.EndDate)

	// 与当前时间按同样的月差公式对齐
	now := time.Now()
	months := (now.Year()-2020)*12 + int(now.Month()) - 1
	expected := fmt.Sprintf("%d years %d months", months/12, months%12)
	assert.Equal(t, expected, entry.Duration)
}

// TestExtractExperienceStrayYear 验证区间外的裸年份单独成条并按12个月计
func TestExtractExperienceStrayYear(t *testing.T) {
	text := "Freelance Consultant 2018"

	entries := ExtractExperience(text)
	require.Len(t, entries, 1)

	entry := entries["exp_1"]
	assert.Equal(t, "Freelance Consultant", entry.Role)
	assert.Equal(t, "2018", entry.StartDate)
	assert.Equal(t, "", entry.EndDate)
	assert.Equal(t, "1 years 0 months", entry.Duration)
}

// TestExtractExperienceYearInsideRangeSkipped 验证已被区间覆盖的年份不再重复成条
func TestExtractExperienceYearInsideRangeSkipped(t *testing.T) {
	text := "Product Manager 2019 - 2021"

	entries := ExtractExperience(text)
	require.Len(t, entries, 1, "区间内的年份不应再产生裸年份条目")

	entry := entries["exp_1"]
	assert.Equal(t, "2019", entry.StartDate)
	assert.Equal(t, "2021", entry.EndDate)
	assert.Equal(t, "2 years 0 months", entry.Duration)
}

// TestStripPhoneNumbers 验证电话号码被整体剔除且空白折叠
func TestStripPhoneNumbers(t *testing.T) {
	text := "Contact: 0321-1234567\n\nJunior Developer"

	cleaned := StripPhoneNumbers(text)
	assert.Equal(t, "Contact: Junior Developer", cleaned)

	entries := ExtractExperience(cleaned)
	assert.Empty(t, entries, "清洗后的电话号码片段不应产生经历条目")
}

// TestExtractExperienceRoleFallback 验证匹配前无描述时的职位占位值
func TestExtractExperienceRoleFallback(t *testing.T) {
	entries := ExtractExperience("01/2020 - 03/2022")
	require.Len(t, entries, 1)
	assert.Equal(t, "Role not found", entries["exp_1"].Role)
}

// TestExtractExperienceEndBeforeStart 验证结束早于起始时时长归零
func TestExtractExperienceEndBeforeStart(t *testing.T) {
	entries := ExtractExperience("Intern 03/2022 - 01/2020")
	require.Len(t, entries, 1)
	assert.Equal(t, "0 years 0 months", entries["exp_1"].Duration)
}

// TestCalculateDurationUnparseableStart 验证起始日期无法解析时返回占位值
func TestCalculateDurationUnparseableStart(t *testing.T) {
	assert.Equal(t, DurationNotFound, calculateDuration("99/99/9999", "03/2022"))
}

// TestTotalExperienceYearsAggregation 验证多条经历时长的累加
func TestTotalExperienceYearsAggregation(t *testing.T) {
	entries := map[string]types.ExperienceEntry{
		"exp_1": {Duration: "2 years 2 months"},
		"exp_2": {Duration: "1 years 0 months"},
	}
	assert.InDelta(t, 38.0/12, TotalExperienceYears(entries), 1e-9)
}

// TestTotalExperienceYearsMalformedDuration 验证时长格式异常时整体归零
func TestTotalExperienceYearsMalformedDuration(t *testing.T) {
	entries := map[string]types.ExperienceEntry{
		"exp_1": {Duration: "2 years 2 months"},
		"exp_2": {Duration: "about three years 0 months"},
	}
	assert.Equal(t, 0.0, TotalExperienceYears(entries))
}

// TestTotalExperienceYearsSentinelIgnored 验证占位时长按零贡献并不报错
func TestTotalExperienceYearsSentinelIgnored(t *testing.T) {
	entries := map[string]types.ExperienceEntry{
		"exp_1": {Duration: "1 years 6 months"},
		"exp_2": {Duration: DurationNotFound},
	}
	assert.InDelta(t, 1.5, TotalExperienceYears(entries), 1e-9)
}
