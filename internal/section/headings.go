package section // 简历标题本体、标题归一化与分节

import (
	"regexp"
	"sort"
	"strings"
)

// 规范节名常量，供下游抽取器引用
const (
	KeyProfile        = "profile"
	KeyExperience     = "experience"
	KeyEducation      = "education"
	KeySkills         = "skills"
	KeyProjects       = "projects"
	KeyCertifications = "certifications"
	KeyLanguages      = "languages"
	KeyAwards         = "awards"
	KeyPublications   = "publications"
	KeyVolunteer      = "volunteer"
	KeyContact        = "contact"
	KeyReferences     = "references"
	KeyInterests      = "interests"
	KeyPortfolio      = "portfolio"
	KeyAdditionalInfo = "additional information"
)

// headingGroup 一个规范节名及其全部标题拼写变体
type headingGroup struct {
	key      string
	variants []string
}

// headingGroups 标题本体的源数据。顺序即归一化处理的确定性顺序。
var headingGroups = []headingGroup{
	{KeyProfile, []string{"profile", "summary", "objective", "career objective", "about me", "about myself",
		"profile info", "professional summary"}},
	{KeyExperience, []string{"experience", "professional experience", "work experience", "work experiences",
		"projects & experiences", "employment history", "career history", "internship experience"}},
	{KeyEducation, []string{"education", "education background", "academic background", "academic history",
		"academic experience", "qualifications", "education and training", "educational background"}},
	{KeySkills, []string{"skills", "technical skills", "key skills", "expertise skills", "core competencies",
		"soft skills", "expertise", "digital skills"}},
	{KeyProjects, []string{"projects", "project", "academic projects", "personal projects", "project experience"}},
	{KeyCertifications, []string{"certifications", "certification", "certificates", "licenses & certifications",
		"training & certifications", "certifications and licenses", "certifications and courses",
		"certifications & licenses", "training and certifications", "training"}},
	{KeyLanguages, []string{"languages", "language", "language proficiency"}},
	{KeyAwards, []string{"awards", "honors and awards", "honors & awards", "achievements", "accomplishments"}},
	{KeyPublications, []string{"publications", "research work", "articles"}},
	{KeyVolunteer, []string{"volunteer", "volunteer experience", "community service"}},
	{KeyContact, []string{"contact", "contact information", "personal information", "details"}},
	{KeyReferences, []string{"references", "reference", "referees", "recommendations"}},
	{KeyInterests, []string{"interests", "hobbies", "leisure activities"}},
	{KeyPortfolio, []string{"portfolio"}},
	{KeyAdditionalInfo, []string{"additional information"}},
}

// fuzzyCandidate 模糊匹配候选：小写去空格形式与它还原出的变体原文
type fuzzyCandidate struct {
	compact string
	variant string
}

// Ontology 不可变的标题本体。进程启动时构建一次，之后只读，
// 所有标题归一化与分节操作共享同一个实例。
type Ontology struct {
	keyByVariant    map[string]string // 小写变体 -> 规范节名
	spacingPatterns []*regexp.Regexp  // 多词变体的空白规范化模式，顺序固定
	fuzzy           []fuzzyCandidate  // 模糊行修复候选，按compact排序
	boundary        *regexp.Regexp    // 节边界交替正则
}

// DefaultOntology 进程级共享的标题本体
var DefaultOntology = NewOntology()

// NewOntology 由内置标题组构建本体
func NewOntology() *Ontology {
	o := &Ontology{
		keyByVariant: make(map[string]string),
	}

	seen := make(map[string]struct{})
	var escaped []string
	for _, g := range headingGroups {
		for _, v := range g.variants {
			lower := strings.ToLower(v)
			if _, ok := o.keyByVariant[lower]; !ok {
				o.keyByVariant[lower] = g.key
			}

			// 多词变体才需要空白规范化
			words := strings.Fields(v)
			if len(words) > 1 {
				parts := make([]string, len(words))
				for i, w := range words {
					parts[i] = regexp.QuoteMeta(w)
				}
				o.spacingPatterns = append(o.spacingPatterns,
					regexp.MustCompile(`(?i)`+strings.Join(parts, `\s*`)))
			}

			compact := strings.ReplaceAll(lower, " ", "")
			if _, ok := seen[compact]; !ok {
				seen[compact] = struct{}{}
				o.fuzzy = append(o.fuzzy, fuzzyCandidate{compact: compact, variant: v})
			}

			escaped = append(escaped, regexp.QuoteMeta(v))
		}
	}

	sort.Slice(o.fuzzy, func(i, j int) bool {
		return o.fuzzy[i].compact < o.fuzzy[j].compact
	})

	sort.Strings(escaped)
	escaped = dedupStrings(escaped)
	o.boundary = regexp.MustCompile(`(?mi)^\s*(?:` + strings.Join(escaped, "|") + `)\s*:?\s*$`)

	return o
}

// CanonicalKey 查询标题文本对应的规范节名；未收录时返回其小写原文
func (o *Ontology) CanonicalKey(heading string) string {
	cleaned := strings.TrimSpace(heading)
	cleaned = strings.TrimSuffix(cleaned, ":")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))
	if key, ok := o.keyByVariant[cleaned]; ok {
		return key
	}
	return cleaned
}

func dedupStrings(sorted []string) []string {
	out := sorted[:0]
	var prev string
	for i, s := range sorted {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
