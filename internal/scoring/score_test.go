package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats-go/internal/types"
)

// TestScoreSkillIntersection 验证技能分为交集占JD技能数的百分比
func TestScoreSkillIntersection(t *testing.T) {
	req := types.JobRequirement{
		Skills:             []string{"Python", "SQL"},
		MinExperienceYears: 0,
	}
	profile := types.ResumeProfile{
		SkillsText: "Proficient in Python and Excel",
	}

	result := Score(req, profile)
	assert.Equal(t, 50.0, result.SkillScore, "JD两项技能命中一项应得50分")
	assert.Equal(t, 100.0, result.ExperienceScore, "年限要求为0时经验分固定100")
	assert.Equal(t, 75.0, result.TotalScore)
}

// TestScoreNoJDSkills 验证JD未列出技能时技能分为0
func TestScoreNoJDSkills(t *testing.T) {
	result := Score(types.JobRequirement{}, types.ResumeProfile{SkillsText: "Python"})
	assert.Equal(t, 0.0, result.SkillScore)
	assert.Equal(t, 100.0, result.ExperienceScore)
	assert.Equal(t, 50.0, result.TotalScore)
}

// TestScoreExperienceRatio 验证年限不足时经验分按比例折算
func TestScoreExperienceRatio(t *testing.T) {
	req := types.JobRequirement{MinExperienceYears: 4}
	profile := types.ResumeProfile{TotalExperienceYears: 3}

	result := Score(req, profile)
	assert.Equal(t, 75.0, result.ExperienceScore)
}

// TestScoreExperienceMeetsRequirement 验证达标年限经验分为100
func TestScoreExperienceMeetsRequirement(t *testing.T) {
	req := types.JobRequirement{MinExperienceYears: 2}
	profile := types.ResumeProfile{TotalExperienceYears: 5}

	result := Score(req, profile)
	assert.Equal(t, 100.0, result.ExperienceScore)
}

// TestScoreRounding 验证各分值保留两位小数
func TestScoreRounding(t *testing.T) {
	req := types.JobRequirement{
		Skills:             []string{"Python", "SQL", "Docker"},
		MinExperienceYears: 3,
	}
	profile := types.ResumeProfile{
		SkillsText:           "Python",
		TotalExperienceYears: 1,
	}

	result := Score(req, profile)
	assert.Equal(t, 33.33, result.SkillScore)
	assert.Equal(t, 33.33, result.ExperienceScore)
	assert.Equal(t, 33.33, result.TotalScore)
}

// TestRankOrdersByTotalScoreDescending 验证排序按总分降序且同分稳定
func TestRankOrdersByTotalScoreDescending(t *testing.T) {
	results := []types.RankedResume{
		{SubmissionUUID: "a", ScoreResult: types.ScoreResult{TotalScore: 40}},
		{SubmissionUUID: "b", ScoreResult: types.ScoreResult{TotalScore: 90}},
		{SubmissionUUID: "c", ScoreResult: types.ScoreResult{TotalScore: 90}},
		{SubmissionUUID: "d", ScoreResult: types.ScoreResult{TotalScore: 60}},
	}

	Rank(results)

	require.Len(t, results, 4)
	assert.Equal(t, "b", results[0].SubmissionUUID)
	assert.Equal(t, "c", results[1].SubmissionUUID, "同分条目应保持原有相对顺序")
	assert.Equal(t, "d", results[2].SubmissionUUID)
	assert.Equal(t, "a", results[3].SubmissionUUID)
}
