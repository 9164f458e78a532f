package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"resume-ats-go/internal/extractor"
	"resume-ats-go/internal/logger"
	"resume-ats-go/internal/parser"
	"resume-ats-go/internal/scoring"
	"resume-ats-go/internal/types"
)

// JDProcessor 职位描述处理器
// 解析JD文本中的硬性要求，并对已入库的简历逐份评分排序。
type JDProcessor struct {
	Reader JobTextReader
	Lister ResumeLister
}

// NewJDProcessor 创建JD处理器，未覆盖的组件使用默认实现
func NewJDProcessor(opts ...JDOption) *JDProcessor {
	jp := &JDProcessor{
		Reader: parser.NewJobDescriptionReader(),
	}
	for _, opt := range opts {
		opt(jp)
	}
	return jp
}

// ScoreStoredResumes 按JD文件对全部已入库简历评分并降序排序
// 总经验年限从存储的经历JSON重新汇总，而不是直接用入库时的数值，
// 保证评分口径与当前的时长解析逻辑一致。
func (jp *JDProcessor) ScoreStoredResumes(ctx context.Context, filename string, data []byte) (types.JobRequirement, []types.RankedResume, error) {
	ctx, span := tracer.Start(ctx, "JDProcessor.ScoreStoredResumes")
	defer span.End()
	span.SetAttributes(attribute.String("jd.filename", filename))

	jdText, err := jp.Reader.ReadText(ctx, filename, data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return types.JobRequirement{}, nil, fmt.Errorf("%w: %v", ErrReadJDFailed, err)
	}
	req := scoring.ParseJobRequirement(jdText)

	records, err := jp.Lister.ListAllResumeRecords(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return types.JobRequirement{}, nil, fmt.Errorf("%w: %v", ErrListResumesFailed, err)
	}

	ranked := make([]types.RankedResume, 0, len(records))
	for _, rec := range records {
		var experience map[string]types.ExperienceEntry
		if len(rec.ExperienceJSON) > 0 {
			if err := json.Unmarshal(rec.ExperienceJSON, &experience); err != nil {
				logger.Warn().Err(err).Str("submission_uuid", rec.SubmissionUUID).Msg("经历JSON反序列化失败, 按零经验评分")
			}
		}
		profile := types.ResumeProfile{
			SkillsText:           rec.SkillsText,
			TotalExperienceYears: extractor.TotalExperienceYears(experience),
		}
		result := scoring.Score(req, profile)
		ranked = append(ranked, types.RankedResume{
			SubmissionUUID: rec.SubmissionUUID,
			Name:           rec.Name,
			Email:          rec.Email,
			Phone:          rec.Phone,
			ScoreResult:    result,
		})
	}
	scoring.Rank(ranked)

	span.SetAttributes(attribute.Int("resumes.scored", len(ranked)))
	return req, ranked, nil
}
