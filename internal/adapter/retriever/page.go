package retriever

import (
	"fmt"
	"log/slog"
	"sort"

	"passage/internal/adapter/analyzer"
	"passage/internal/domain"
	"passage/internal/port"
)

var _ port.Retriever = (*PageRetriever)(nil)

// Params configures a retriever instance. The zero value is not usable;
// start from DefaultPageParams or DefaultCorpusParams.
type Params struct {
	K1             float64
	B              float64
	StopWordPolicy analyzer.Policy
	Logger         *slog.Logger
}

// DefaultPageParams returns the defaults for single-document retrieval:
// lenient tokenization so short terms and acronyms in headings survive.
func DefaultPageParams() Params {
	return Params{K1: DefaultK1, B: DefaultB, StopWordPolicy: analyzer.PolicyLenient}
}

// DefaultCorpusParams returns the defaults for cross-document retrieval.
func DefaultCorpusParams() Params {
	return Params{K1: DefaultK1, B: DefaultB, StopWordPolicy: analyzer.PolicyStrict}
}

func (p Params) logger(component string) *slog.Logger {
	l := p.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}

// PageRetriever ranks the sections of one logical document. On top of
// BM25 it applies heading amplification at index time and position,
// heading-similarity and specificity multipliers at query time, because
// within a single document heading hierarchy and section order are
// strong relevance signals.
//
// A PageRetriever owns its index state exclusively and is not safe for
// concurrent use; callers needing shared access wrap it in their own
// lock.
type PageRetriever struct {
	scorer   bm25
	tok      *analyzer.Tokenizer
	boost    booster
	idx      *invertedIndex
	sections map[string]domain.Section
	order    []string
	log      *slog.Logger
}

// NewPageRetriever creates an empty single-document retriever.
func NewPageRetriever(p Params) (*PageRetriever, error) {
	scorer, err := newBM25(p.K1, p.B)
	if err != nil {
		return nil, err
	}
	tok := analyzer.NewTokenizer(p.StopWordPolicy)
	return &PageRetriever{
		scorer:   scorer,
		tok:      tok,
		boost:    booster{tok: tok},
		idx:      newInvertedIndex(),
		sections: make(map[string]domain.Section),
		log:      p.logger("page_retriever"),
	}, nil
}

// AddSection indexes one section. Sections are immutable once indexed;
// duplicate ids are rejected so postings are never double-counted.
func (r *PageRetriever) AddSection(s domain.Section) error {
	if s.ID == "" {
		return fmt.Errorf("page retriever: section id required")
	}
	if _, exists := r.sections[s.ID]; exists {
		return fmt.Errorf("page retriever: duplicate section id %q", s.ID)
	}

	headingTokens := r.tok.Tokenize(s.Heading)
	bodyTokens := r.tok.Tokenize(s.Text)

	tokens := make([]string, 0, len(headingTokens)*headingRepeat+len(bodyTokens))
	for i := 0; i < headingRepeat; i++ {
		tokens = append(tokens, headingTokens...)
	}
	tokens = append(tokens, bodyTokens...)

	r.idx.add(s.ID, tokens)
	r.sections[s.ID] = s
	r.order = append(r.order, s.ID)
	return nil
}

// Search returns at most topK sections ranked by boosted BM25 score,
// descending. Empty corpus and empty queries yield empty results plus a
// typed warning, never an error.
func (r *PageRetriever) Search(query string, topK int) ([]domain.RankedResult, []domain.Warning) {
	var warnings []domain.Warning

	if r.idx.sectionCount() == 0 {
		r.log.Debug("search on empty index", "query", query)
		return nil, append(warnings, domain.Warning{
			Code:   domain.WarnEmptyIndex,
			Detail: "no sections indexed",
		})
	}

	queryTerms := r.tok.Tokenize(query)
	if len(queryTerms) == 0 {
		r.log.Debug("query tokenized to zero terms", "query", query)
		return nil, append(warnings, domain.Warning{
			Code:   domain.WarnEmptyQuery,
			Detail: "query contains no indexable terms",
		})
	}

	scores := r.scorer.scoreAll(queryTerms, r.idx)

	results := make([]domain.RankedResult, 0, len(scores))
	handled := make(map[string]struct{}, len(scores))

	for _, id := range r.order {
		score, ok := scores[id]
		if !ok || score <= 0 {
			continue
		}
		handled[id] = struct{}{}
		sec := r.sections[id]

		final := score * r.boost.multiplier(queryTerms, query, sec.Heading, sec.Position)
		results = append(results, domain.RankedResult{
			SectionID: sec.ID,
			Heading:   sec.Heading,
			Text:      sec.Text,
			Score:     final,
		})
	}

	// Postings that no longer resolve to a live section are skipped, not
	// fatal: partial results beat total failure.
	for ref := range scores {
		if _, ok := handled[ref]; ok {
			continue
		}
		if _, ok := r.sections[ref]; ok {
			continue
		}
		r.log.Debug("skipping dangling posting", "ref", ref)
		warnings = append(warnings, domain.Warning{
			Code:   domain.WarnDanglingPosting,
			Ref:    ref,
			Detail: "posting references a missing section",
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK < 0 {
		topK = 0
	}
	if len(results) > topK {
		results = results[:topK]
	}

	return results, warnings
}

// Stats reports index diagnostics.
func (r *PageRetriever) Stats() domain.Stats {
	docs := 0
	if len(r.sections) > 0 {
		docs = 1
	}
	return domain.Stats{
		DocumentCount:   docs,
		SectionCount:    r.idx.sectionCount(),
		UniqueTermCount: r.idx.uniqueTermCount(),
		AverageLength:   r.idx.averageLength(),
	}
}

// Clear resets the retriever to the empty state.
func (r *PageRetriever) Clear() {
	r.idx.clear()
	r.sections = make(map[string]domain.Section)
	r.order = nil
}
