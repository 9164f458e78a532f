package types // 定义简历解析流水线共享的数据类型

// ColumnLayout 页面栏式布局的分类结果
type ColumnLayout string

const (
	// LayoutOneColumn 单栏布局
	LayoutOneColumn ColumnLayout = "one-column"
	// LayoutTwoColumn 双栏布局（侧栏+主栏）
	LayoutTwoColumn ColumnLayout = "two-column"
)

// TextBlock 页面上带包围盒的文本块
// 坐标系与PDF页面一致：x向右增长，y向下增长（top为距页面顶部的距离）
type TextBlock struct {
	X0   float64 // 左边界
	Y0   float64 // 上边界
	X1   float64 // 右边界
	Y1   float64 // 下边界
	Text string  // 块内文本，可能含换行
}

// Word 页面上带定位的单词级token
type Word struct {
	X0   float64 // 左边界
	X1   float64 // 右边界
	Top  float64 // 距页面顶部的距离
	Text string
}

// Page 一页的几何信息与文本内容
type Page struct {
	Width  float64
	Height float64
	Blocks []TextBlock // 块级文本，供布局分类使用
	Words  []Word      // 单词级token，供分栏线性化使用
}

// Document 解析后的整份文档
type Document struct {
	Pages []Page
}

// ContactInfo 从首页原始文本抽取的联系方式
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ExperienceEntry 一段检测到的工作经历，生成后不可变
type ExperienceEntry struct {
	Role      string `json:"role"`       // 该日期表达式前的职位描述
	StartDate string `json:"start_date"` // 原始起始日期token
	EndDate   string `json:"end_date"`   // 原始结束token，裸年份条目为空
	Duration  string `json:"exp"`        // 格式化时长，如 "2 years 2 months"
}

// ResumeProfile 单份简历的完整抽取结果，归属于产生它的请求
type ResumeProfile struct {
	Contact              ContactInfo                `json:"contact"`
	Layout               ColumnLayout               `json:"layout"`
	Sections             map[string]string          `json:"sections"`
	Education            string                     `json:"education"`
	SkillsText           string                     `json:"skills_text"` // skills节原文，评分时才做本体匹配
	Experience           map[string]ExperienceEntry `json:"experience"`
	TotalExperienceYears float64                    `json:"total_experience_years"`
}

// JobRequirement 从职位描述解析出的硬性要求
type JobRequirement struct {
	Skills             []string `json:"skills"`
	MinExperienceYears float64  `json:"min_experience_years"`
	Education          []string `json:"education"`
}

// ScoreResult 单份简历对一个JD的评分
type ScoreResult struct {
	SkillScore      float64 `json:"skill_score"`
	ExperienceScore float64 `json:"experience_score"`
	TotalScore      float64 `json:"total_score"`
}

// RankedResume 评分后参与排序的简历摘要
type RankedResume struct {
	SubmissionUUID string `json:"submission_uuid"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ScoreResult
}
