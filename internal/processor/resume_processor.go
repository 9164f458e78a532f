package processor // 简历处理流水线的核心逻辑

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"resume-ats-go/internal/extractor"
	"resume-ats-go/internal/layout"
	"resume-ats-go/internal/logger"
	"resume-ats-go/internal/parser"
	"resume-ats-go/internal/section"
	"resume-ats-go/internal/storage"
	"resume-ats-go/internal/types"
)

var tracer = otel.Tracer("processor")

// ResumeProcessor 简历处理组件聚合类
// 按固定流水线把PDF字节加工成结构化档案：
// 解析几何 -> 布局分类与线性化 -> 标题归一化 -> 分节 -> 字段抽取
type ResumeProcessor struct {
	// 核心组件接口
	DocumentReader DocumentReader

	// 标题本体
	Ontology *section.Ontology

	// 存储层依赖
	Storage *storage.Storage

	// 是否输出调试日志
	Debug bool
}

// NewResumeProcessor 创建简历处理器，未覆盖的组件使用默认实现
func NewResumeProcessor(opts ...ProcessorOption) *ResumeProcessor {
	rp := &ResumeProcessor{
		DocumentReader: parser.NewPDFReader(),
		Ontology:       section.DefaultOntology,
	}
	for _, opt := range opts {
		opt(rp)
	}
	return rp
}

// ProcessDocument 处理单份简历文件，返回完整抽取结果
// 文档无法解析时返回 ErrUnreadableDocument，可解析但无文本时返回 ErrNoTextFound。
func (rp *ResumeProcessor) ProcessDocument(ctx context.Context, name string, data []byte) (*types.ResumeProfile, error) {
	ctx, span := tracer.Start(ctx, "ResumeProcessor.ProcessDocument")
	defer span.End()
	span.SetAttributes(attribute.String("file.name", name), attribute.Int("file.size", len(data)))

	doc, err := rp.DocumentReader.ReadDocument(ctx, data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, NewParseError(name, err.Error())
	}

	// 布局分类基于首页块，线性化对双栏简历按左右栏拼接
	text, pageLayout := layout.ExtractDocumentText(doc)
	if strings.TrimSpace(text) == "" {
		span.SetStatus(codes.Error, "no text")
		return nil, NewEmptyTextError(name)
	}

	// 联系方式从首页单词级文本抽取，避免分栏重排打散姓名行
	var firstPageText string
	if len(doc.Pages) > 0 {
		firstPageText = layout.GroupWordsByLine(doc.Pages[0].Words)
	}
	contact := extractor.ExtractContact(firstPageText)

	normalized := rp.Ontology.NormalizeText(text)
	sections := rp.Ontology.Segment(normalized)

	// 经历抽取前先剥掉电话号码，避免号码片段被当成日期区间
	expText := extractor.StripPhoneNumbers(sections[section.KeyExperience])
	experience := extractor.ExtractExperience(expText)
	totalYears := extractor.TotalExperienceYears(experience)

	profile := &types.ResumeProfile{
		Contact:              contact,
		Layout:               pageLayout,
		Sections:             sections,
		Education:            extractor.HighestEducation(sections[section.KeyEducation]),
		SkillsText:           sections[section.KeySkills],
		Experience:           experience,
		TotalExperienceYears: totalYears,
	}

	if rp.Debug {
		logger.Debug().
			Str("file", name).
			Str("layout", string(pageLayout)).
			Int("sections", len(sections)).
			Int("experience_entries", len(experience)).
			Float64("total_years", totalYears).
			Msg("简历处理完成")
	}
	return profile, nil
}

// ProcessBatch 批量处理简历文件，单份失败不影响其他文件
// 返回按文件名索引的结果和错误，两个map的键集合互不相交。
func (rp *ResumeProcessor) ProcessBatch(ctx context.Context, files map[string][]byte) (map[string]*types.ResumeProfile, map[string]error) {
	ctx, span := tracer.Start(ctx, "ResumeProcessor.ProcessBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(files)))

	profiles := make(map[string]*types.ResumeProfile, len(files))
	failures := make(map[string]error)
	for name, data := range files {
		profile, err := rp.ProcessDocument(ctx, name, data)
		if err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("批量处理中单份简历失败")
			failures[name] = err
			continue
		}
		profiles[name] = profile
	}
	return profiles, failures
}
