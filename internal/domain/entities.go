package domain

// Section is the atomic retrievable unit: a block of body text with an
// optional heading and its zero-based ordinal within the parent document.
type Section struct {
	ID       string
	Heading  string
	Text     string
	Position int
}

// Document groups the sections of one source. SourceURL and Title carry
// citation provenance for cross-corpus results.
type Document struct {
	ID        string
	SourceURL string
	Title     string
	Sections  []Section
}

// Posting records one section's occurrence of a term.
type Posting struct {
	Ref    string
	TF     int
	Length int
}

// RankedResult is one scored passage. The provenance fields (DocumentID,
// SourceURL, Domain, Title) are populated only by the cross-corpus retriever.
type RankedResult struct {
	SectionID  string  `json:"section_id"`
	Heading    string  `json:"heading,omitempty"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	DocumentID string  `json:"document_id,omitempty"`
	SourceURL  string  `json:"source_url,omitempty"`
	Domain     string  `json:"domain,omitempty"`
	Title      string  `json:"title,omitempty"`
}

type Stats struct {
	DocumentCount   int     `json:"document_count"`
	SectionCount    int     `json:"section_count"`
	UniqueTermCount int     `json:"unique_term_count"`
	AverageLength   float64 `json:"average_length"`
}

// WarningCode classifies index-health diagnostics emitted during a search.
type WarningCode string

const (
	// WarnEmptyIndex: search was run before anything was indexed.
	WarnEmptyIndex WarningCode = "empty_index"
	// WarnEmptyQuery: the query tokenized to zero terms.
	WarnEmptyQuery WarningCode = "empty_query"
	// WarnDanglingPosting: a posting referenced a section that no longer
	// resolves; that single candidate was skipped.
	WarnDanglingPosting WarningCode = "dangling_posting"
)

// Warning is a typed, inspectable diagnostic returned alongside search
// results instead of being logged and lost.
type Warning struct {
	Code   WarningCode
	Ref    string
	Detail string
}

func (w Warning) String() string {
	if w.Ref == "" {
		return string(w.Code) + ": " + w.Detail
	}
	return string(w.Code) + " (" + w.Ref + "): " + w.Detail
}

// PackedContext is the budgeted context block assembled from top-ranked
// passages for downstream prompt construction.
type PackedContext struct {
	Query        string    `json:"query"`
	BudgetTokens int       `json:"budget_tokens"`
	UsedTokens   int       `json:"used_tokens"`
	Passages     []Passage `json:"passages"`
}

// Passage is one cited entry of a PackedContext.
type Passage struct {
	Heading string  `json:"heading,omitempty"`
	Source  string  `json:"source,omitempty"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}
