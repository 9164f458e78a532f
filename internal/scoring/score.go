package scoring

import (
	"math"
	"sort"
	"strings"

	"resume-ats-go/internal/types"
)

// Score 计算一份简历对一个JD的匹配分。
// 技能分为JD技能集与简历技能集交集占JD技能数的百分比，JD无技能要求时为0；
// 经验分在年限要求为0或简历总年限达标时为100，否则按比例折算；
// 总分为两者均值，各分值保留两位小数。
func Score(req types.JobRequirement, profile types.ResumeProfile) types.ScoreResult {
	jdSkills := make(map[string]struct{}, len(req.Skills))
	for _, s := range req.Skills {
		jdSkills[strings.ToLower(s)] = struct{}{}
	}
	resumeSkills := matchSkillSet(profile.SkillsText)

	var skillScore float64
	if len(jdSkills) > 0 {
		matched := 0
		for s := range jdSkills {
			if _, ok := resumeSkills[s]; ok {
				matched++
			}
		}
		skillScore = float64(matched) / float64(len(jdSkills)) * 100
	}

	var expScore float64
	switch {
	case req.MinExperienceYears == 0:
		expScore = 100
	case profile.TotalExperienceYears >= req.MinExperienceYears:
		expScore = 100
	default:
		expScore = profile.TotalExperienceYears / req.MinExperienceYears * 100
	}

	return types.ScoreResult{
		SkillScore:      round2(skillScore),
		ExperienceScore: round2(expScore),
		TotalScore:      round2((skillScore + expScore) / 2),
	}
}

// Rank 按总分降序排序，同分保持原有相对顺序
func Rank(results []types.RankedResume) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
