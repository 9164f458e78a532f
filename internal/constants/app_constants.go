package constants

import "time"

const (
	// DefaultParserVer 当前解析流水线版本，写入简历记录
	DefaultParserVer = "1.0"

	// RawFileMD5SetKey 存放已上传文件MD5的Redis Set键，用于重复上传去重
	RawFileMD5SetKey = "resumes:file_md5s"
	// RawFileMD5TTL MD5去重记录的默认保留时间
	RawFileMD5TTL = 30 * 24 * time.Hour

	// ResumeEventsExchange 简历事件交换机
	ResumeEventsExchange = "resume.events"
	// ResumeParsedRoutingKey 简历解析完成事件的路由键
	ResumeParsedRoutingKey = "resume.parsed"
)
