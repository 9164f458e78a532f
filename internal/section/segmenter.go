package section

import (
	"strings"
)

// Segment 把归一化后的文本切成规范节名到节正文的映射。
// 每个匹配到的标题行是一个节边界：节正文从边界处延伸到下一个边界
// （最后一节到文末），标题行本身不进入正文。
// 多个原始标题映射到同一规范节名时，正文按首次出现顺序以换行拼接。
// 正文内部空白折叠为单个空格。
func (o *Ontology) Segment(text string) map[string]string {
	matches := o.boundary.FindAllStringIndex(text, -1)

	sections := make(map[string]string)
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		heading := text[m[0]:m[1]]
		body := stripHeadingLine(text[m[0]:end])
		body = strings.TrimSpace(whitespaceRun.ReplaceAllString(body, " "))

		key := o.CanonicalKey(heading)
		if existing, ok := sections[key]; ok {
			if body != "" {
				if existing != "" {
					sections[key] = existing + "\n" + body
				} else {
					sections[key] = body
				}
			}
			continue
		}
		sections[key] = body
	}

	return sections
}

// stripHeadingLine 去掉节文本的首行（即标题本身）
func stripHeadingLine(sectionText string) string {
	sectionText = strings.TrimSpace(sectionText)
	lines := strings.Split(sectionText, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
