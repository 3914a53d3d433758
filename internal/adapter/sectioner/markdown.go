package sectioner

import (
	"bufio"
	"fmt"
	"strings"

	"passage/internal/domain"
)

// MarkdownSectioner splits markdown or plain text into sections at ATX
// headings. Content before the first heading becomes a headingless
// section, so documents without any headings still yield one section.
type MarkdownSectioner struct{}

func New() *MarkdownSectioner {
	return &MarkdownSectioner{}
}

// Section splits content into ordered sections. Section ids are derived
// from the document id and the section's ordinal.
func (m *MarkdownSectioner) Section(docID string, content string) []domain.Section {
	var sections []domain.Section
	var heading string
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if heading == "" && text == "" {
			return
		}
		pos := len(sections)
		sections = append(sections, domain.Section{
			ID:       fmt.Sprintf("%s-%d", docID, pos),
			Heading:  heading,
			Text:     text,
			Position: pos,
		})
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if h, ok := headingText(line); ok {
			flush()
			heading = h
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// headingText extracts the title of an ATX heading line ("## Title").
func headingText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 {
		return "", false
	}
	rest := trimmed[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimRight(rest, "#")), true
}
