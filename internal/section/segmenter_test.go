package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSegmentBasic 验证标题行切分与正文归属
func TestSegmentBasic(t *testing.T) {
	text := "EXPERIENCE\nSoftware Engineer at Acme\n01/2020 - 03/2022\nEDUCATION\nBS Computer Science"

	sections := DefaultOntology.Segment(text)
	require.Len(t, sections, 2)
	assert.Equal(t, "Software Engineer at Acme 01/2020 - 03/2022", sections[KeyExperience])
	assert.Equal(t, "BS Computer Science", sections[KeyEducation])
}

// TestSegmentHeadingLineExcluded 验证标题行本身不进入正文
func TestSegmentHeadingLineExcluded(t *testing.T) {
	sections := DefaultOntology.Segment("SKILLS\nPython, SQL, Docker")
	assert.Equal(t, "Python, SQL, Docker", sections[KeySkills])
	assert.NotContains(t, sections[KeySkills], "SKILLS")
}

// TestSegmentTrailingColon 验证带冒号的标题行正常识别
func TestSegmentTrailingColon(t *testing.T) {
	sections := DefaultOntology.Segment("Skills:\nPython and SQL")
	assert.Equal(t, "Python and SQL", sections[KeySkills])
}

// TestSegmentVariantMapsToCanonicalKey 验证拼写变体映射到规范节名
func TestSegmentVariantMapsToCanonicalKey(t *testing.T) {
	sections := DefaultOntology.Segment("Employment History\nEngineer at Initech")
	assert.Equal(t, "Engineer at Initech", sections[KeyExperience])
}

// TestSegmentMergesSameKey 验证映射到同一规范节名的多个标题正文合并
func TestSegmentMergesSameKey(t *testing.T) {
	text := "SUMMARY\nSeasoned backend engineer\nPROFILE\nOpen source contributor"

	sections := DefaultOntology.Segment(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Seasoned backend engineer\nOpen source contributor", sections[KeyProfile])
}

// TestSegmentLeadingTextIgnored 验证首个标题之前的文本不归属任何节
func TestSegmentLeadingTextIgnored(t *testing.T) {
	text := "John Doe\njohn@example.com\nEXPERIENCE\nEngineer at Acme"

	sections := DefaultOntology.Segment(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Engineer at Acme", sections[KeyExperience])
}

// TestSegmentNoHeadings 验证无任何标题时返回空映射
func TestSegmentNoHeadings(t *testing.T) {
	sections := DefaultOntology.Segment("just a paragraph of plain text")
	assert.Empty(t, sections)
}

// TestCanonicalKeyFallback 验证未收录标题返回其小写原文
func TestCanonicalKeyFallback(t *testing.T) {
	assert.Equal(t, "weird heading", DefaultOntology.CanonicalKey(" Weird Heading: "))
	assert.Equal(t, KeyExperience, DefaultOntology.CanonicalKey("Work Experience"))
}
