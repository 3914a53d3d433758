package retriever

import (
	"strings"

	"passage/internal/adapter/analyzer"
)

// headingRepeat is how many times heading tokens are folded into a
// section's token stream at index time, so heading matches earn higher
// raw term frequency than body matches.
const headingRepeat = 3

// genericHeadings are placeholder labels that carry no topical signal;
// the specificity bonus never applies to them.
var genericHeadings = map[string]struct{}{
	"content":      {},
	"page content": {},
	"main content": {},
	"untitled":     {},
}

// booster applies the query-time heuristics layered on top of raw BM25
// for single-document retrieval: position decay, heading similarity and
// heading specificity, in that order.
type booster struct {
	tok *analyzer.Tokenizer
}

func (b booster) multiplier(queryTerms []string, query string, heading string, position int) float64 {
	m := positionMultiplier(position)
	m *= b.headingMultiplier(queryTerms, query, heading)
	m *= specificityMultiplier(heading)
	return m
}

// positionMultiplier weights earlier sections up to 2x, decaying linearly
// to 1x by the 20th section.
func positionMultiplier(position int) float64 {
	decay := float64(position) / 20
	if decay > 1 {
		decay = 1
	}
	return 2.0 - decay
}

// headingMultiplier rewards sections whose heading shares terms with the
// query. Full phrase containment in either direction counts as complete
// overlap. Sections without a heading pass through unchanged.
func (b booster) headingMultiplier(queryTerms []string, query string, heading string) float64 {
	if heading == "" || len(queryTerms) == 0 {
		return 1.0
	}

	overlap := b.headingOverlap(queryTerms, query, heading)
	switch {
	case overlap > 0.8:
		return 2.5
	case overlap > 0.5:
		return 1.5 + overlap
	case overlap > 0:
		return 1.0 + overlap*0.5
	default:
		return 1.0
	}
}

// headingOverlap is the fraction of query terms present in the heading,
// or 1.0 when one string contains the other as a whole phrase.
func (b booster) headingOverlap(queryTerms []string, query string, heading string) float64 {
	lowerHeading := strings.ToLower(heading)
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	if lowerQuery != "" &&
		(strings.Contains(lowerHeading, lowerQuery) || strings.Contains(lowerQuery, lowerHeading)) {
		return 1.0
	}

	headingTerms := make(map[string]struct{})
	for _, t := range b.tok.Tokenize(heading) {
		headingTerms[t] = struct{}{}
	}

	matched := 0
	for _, t := range queryTerms {
		if _, ok := headingTerms[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTerms))
}

// specificityMultiplier gives short, specific headings a small edge.
// Generic placeholder headings stay neutral regardless of length.
func specificityMultiplier(heading string) float64 {
	words := strings.Fields(heading)
	if len(words) == 0 {
		return 1.0
	}
	if _, generic := genericHeadings[strings.ToLower(strings.TrimSpace(heading))]; generic {
		return 1.0
	}
	if len(words) <= 3 {
		return 1.2
	}
	return 1.0
}
