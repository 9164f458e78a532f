package storage

import "time"

// ResumeParsedEvent 简历解析完成后发布到消息队列的事件
type ResumeParsedEvent struct {
	EventID              string    `json:"event_id"`
	SubmissionUUID       string    `json:"submission_uuid"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Layout               string    `json:"layout"`
	Education            string    `json:"education"`
	TotalExperienceYears float64   `json:"total_experience_years"`
	ParserVersion        string    `json:"parser_version"`
	ParsedAt             time.Time `json:"parsed_at"`
}
