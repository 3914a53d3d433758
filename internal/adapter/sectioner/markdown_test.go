package sectioner

import "testing"

func TestSectionMarkdown(t *testing.T) {
	content := `Intro paragraph before any heading.

# Getting Started

Install the binary and run it.

## Configuration

Edit passage.yaml to tune ranking.
`
	sections := New().Section("doc1", content)

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if sections[0].Heading != "" || sections[0].Text == "" {
		t.Errorf("expected headingless preamble, got %+v", sections[0])
	}
	if sections[1].Heading != "Getting Started" {
		t.Errorf("expected 'Getting Started', got %q", sections[1].Heading)
	}
	if sections[2].Heading != "Configuration" {
		t.Errorf("expected 'Configuration', got %q", sections[2].Heading)
	}

	for i, s := range sections {
		if s.Position != i {
			t.Errorf("section %d has position %d", i, s.Position)
		}
		if s.ID == "" {
			t.Errorf("section %d has no id", i)
		}
	}
}

func TestSectionPlainText(t *testing.T) {
	sections := New().Section("doc1", "just some plain text\nwith no headings")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Heading != "" {
		t.Errorf("expected no heading, got %q", sections[0].Heading)
	}
}

func TestSectionEmpty(t *testing.T) {
	if got := New().Section("doc1", ""); len(got) != 0 {
		t.Errorf("expected no sections for empty content, got %d", len(got))
	}
	if got := New().Section("doc1", "   \n\n  "); len(got) != 0 {
		t.Errorf("expected no sections for blank content, got %d", len(got))
	}
}

func TestHeadingText(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"# Title", "Title", true},
		{"### Deep Title ###", "Deep Title", true},
		{"#NoSpace", "", false},
		{"####### too deep", "", false},
		{"plain line", "", false},
	}
	for _, tt := range tests {
		got, ok := headingText(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("headingText(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}
