package processor

import (
	"resume-ats-go/internal/section"
	"resume-ats-go/internal/storage"
)

// ProcessorOption 处理器选项函数类型
type ProcessorOption func(*ResumeProcessor)

// WithDocumentReader 设置文档读取器
func WithDocumentReader(reader DocumentReader) ProcessorOption {
	return func(rp *ResumeProcessor) {
		rp.DocumentReader = reader
	}
}

// WithOntology 设置章节标题本体
func WithOntology(ontology *section.Ontology) ProcessorOption {
	return func(rp *ResumeProcessor) {
		if ontology != nil {
			rp.Ontology = ontology
		}
	}
}

// WithStorage 设置存储层依赖
func WithStorage(s *storage.Storage) ProcessorOption {
	return func(rp *ResumeProcessor) {
		rp.Storage = s
	}
}

// WithDebug 设置调试模式
func WithDebug(debug bool) ProcessorOption {
	return func(rp *ResumeProcessor) {
		rp.Debug = debug
	}
}

// JDOption JD处理器选项函数类型
type JDOption func(*JDProcessor)

// WithJobTextReader 设置JD文本读取器
func WithJobTextReader(reader JobTextReader) JDOption {
	return func(jp *JDProcessor) {
		jp.Reader = reader
	}
}

// WithResumeLister 设置简历记录来源
func WithResumeLister(lister ResumeLister) JDOption {
	return func(jp *JDProcessor) {
		jp.Lister = lister
	}
}
