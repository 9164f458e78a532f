package processor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"resume-ats-go/internal/storage/models"
)

// stubJobTextReader 返回预置JD文本的读取器
type stubJobTextReader struct {
	text string
	err  error
}

func (s *stubJobTextReader) ReadText(ctx context.Context, filename string, data []byte) (string, error) {
	return s.text, s.err
}

// stubResumeLister 返回预置简历记录的列表器
type stubResumeLister struct {
	records []models.ResumeRecord
	err     error
}

func (s *stubResumeLister) ListAllResumeRecords(ctx context.Context) ([]models.ResumeRecord, error) {
	return s.records, s.err
}

func TestScoreStoredResumesRanksDescending(t *testing.T) {
	// 1. JD要求3年以上经验和Python/SQL技能
	jdText := "We need 3+ years of experience with Python and SQL. BSCS required."
	lister := &stubResumeLister{records: []models.ResumeRecord{
		{
			SubmissionUUID: "uuid-weak",
			Name:           "Weak Candidate",
			SkillsText:     "Proficient in Excel",
		},
		{
			SubmissionUUID: "uuid-strong",
			Name:           "Strong Candidate",
			SkillsText:     "Python and SQL in production",
			ExperienceJSON: datatypes.JSON(`{"exp_1":{"role":"Engineer","start_date":"Jan 2018","end_date":"Jan 2022","exp":"4 years 0 months"}}`),
		},
	}}
	jp := NewJDProcessor(
		WithJobTextReader(&stubJobTextReader{text: jdText}),
		WithResumeLister(lister),
	)

	// 2. 评分并排序
	req, ranked, err := jp.ScoreStoredResumes(context.Background(), "jd.txt", []byte(jdText))
	require.NoError(t, err)

	// 3. 解析出的要求
	assert.Equal(t, []string{"Python", "SQL"}, req.Skills)
	assert.Equal(t, 3.0, req.MinExperienceYears)
	assert.Equal(t, []string{"BSCS"}, req.Education)

	// 4. 强候选人技能全中且经验达标，应排在首位且双项满分
	require.Len(t, ranked, 2)
	assert.Equal(t, "uuid-strong", ranked[0].SubmissionUUID)
	assert.Equal(t, 100.0, ranked[0].SkillScore)
	assert.Equal(t, 100.0, ranked[0].ExperienceScore)
	assert.Equal(t, "uuid-weak", ranked[1].SubmissionUUID)
	assert.Equal(t, 0.0, ranked[1].TotalScore)
}

func TestScoreStoredResumesReaderError(t *testing.T) {
	jp := NewJDProcessor(
		WithJobTextReader(&stubJobTextReader{err: fmt.Errorf("bad file")}),
		WithResumeLister(&stubResumeLister{}),
	)

	_, _, err := jp.ScoreStoredResumes(context.Background(), "jd.docx", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadJDFailed)
}

func TestScoreStoredResumesListerError(t *testing.T) {
	jp := NewJDProcessor(
		WithJobTextReader(&stubJobTextReader{text: "Python developer"}),
		WithResumeLister(&stubResumeLister{err: fmt.Errorf("connection refused")}),
	)

	_, _, err := jp.ScoreStoredResumes(context.Background(), "jd.txt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListResumesFailed)
}

func TestScoreStoredResumesMalformedExperienceJSON(t *testing.T) {
	// 经历JSON损坏时按零经验评分，不整体失败
	lister := &stubResumeLister{records: []models.ResumeRecord{
		{
			SubmissionUUID: "uuid-broken",
			SkillsText:     "Python",
			ExperienceJSON: datatypes.JSON(`{not json`),
		},
	}}
	jp := NewJDProcessor(
		WithJobTextReader(&stubJobTextReader{text: "2+ years Python"}),
		WithResumeLister(lister),
	)

	_, ranked, err := jp.ScoreStoredResumes(context.Background(), "jd.txt", nil)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 100.0, ranked[0].SkillScore)
	assert.Equal(t, 0.0, ranked[0].ExperienceScore)
}
