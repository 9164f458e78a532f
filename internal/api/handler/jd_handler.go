package handler

import (
	"context"

	"resume-ats-go/internal/config"
	"resume-ats-go/internal/processor"
	"resume-ats-go/internal/tracing"
	"resume-ats-go/internal/types"
)

// JDHandler 职位描述评分处理器
type JDHandler struct {
	cfg         *config.Config
	jdProcessor *processor.JDProcessor
}

// NewJDHandler 创建JD评分处理器
func NewJDHandler(cfg *config.Config, jdProcessor *processor.JDProcessor) *JDHandler {
	return &JDHandler{
		cfg:         cfg,
		jdProcessor: jdProcessor,
	}
}

// JDScoreResponse JD评分响应
type JDScoreResponse struct {
	Requirement types.JobRequirement `json:"requirement"`
	Count       int                  `json:"count"`
	Resumes     []types.RankedResume `json:"resumes"`
}

// HandleJDScore 解析JD并对全部已入库简历评分排序
func (h *JDHandler) HandleJDScore(ctx context.Context, filename string, data []byte) (*JDScoreResponse, error) {
	ctx, span := tracer.Start(ctx, "JDHandler.HandleJDScore")
	defer span.End()

	req, ranked, err := h.jdProcessor.ScoreStoredResumes(ctx, filename, data)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, err
	}
	return &JDScoreResponse{
		Requirement: req,
		Count:       len(ranked),
		Resumes:     ranked,
	}, nil
}
