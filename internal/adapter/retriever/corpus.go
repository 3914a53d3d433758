package retriever

import (
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"passage/internal/adapter/analyzer"
	"passage/internal/domain"
	"passage/internal/port"
)

// refSep joins a document id and a section ordinal into a composite
// postings key. The unit separator cannot appear in caller-supplied
// identifiers, so ids containing underscores or dashes never collide.
const refSep = "\x1f"

func sectionRef(docID string, ordinal int) string {
	return docID + refSep + strconv.Itoa(ordinal)
}

var _ port.Retriever = (*CorpusRetriever)(nil)

// CorpusRetriever indexes sections from many documents into one shared
// postings table and ranks them with raw BM25. No heading or position
// boosting is applied: ordinal position and heading conventions are not
// comparable across independently authored documents. Results carry
// citation provenance (source URL, domain, title).
//
// Like PageRetriever, an instance is single-writer and not safe for
// concurrent use.
type CorpusRetriever struct {
	scorer bm25
	tok    *analyzer.Tokenizer
	idx    *invertedIndex
	docs   map[string]domain.Document
	order  []string
	log    *slog.Logger
}

// NewCorpusRetriever creates an empty cross-document retriever.
func NewCorpusRetriever(p Params) (*CorpusRetriever, error) {
	scorer, err := newBM25(p.K1, p.B)
	if err != nil {
		return nil, err
	}
	return &CorpusRetriever{
		scorer: scorer,
		tok:    analyzer.NewTokenizer(p.StopWordPolicy),
		idx:    newInvertedIndex(),
		docs:   make(map[string]domain.Document),
		log:    p.logger("corpus_retriever"),
	}, nil
}

// AddDocument indexes every section of the document. Duplicate document
// ids are rejected. Heading tokens are indexed once alongside the body
// so heading-only matches remain findable, without any amplification.
func (r *CorpusRetriever) AddDocument(doc domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("corpus retriever: document id required")
	}
	if _, exists := r.docs[doc.ID]; exists {
		return fmt.Errorf("corpus retriever: duplicate document id %q", doc.ID)
	}

	for i := range doc.Sections {
		doc.Sections[i].Position = i
		tokens := r.tok.Tokenize(doc.Sections[i].Heading)
		tokens = append(tokens, r.tok.Tokenize(doc.Sections[i].Text)...)
		r.idx.add(sectionRef(doc.ID, i), tokens)
	}

	r.docs[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return nil
}

// Search returns at most topK passages ranked by BM25 score descending,
// each annotated with its originating document's provenance.
func (r *CorpusRetriever) Search(query string, topK int) ([]domain.RankedResult, []domain.Warning) {
	var warnings []domain.Warning

	if r.idx.sectionCount() == 0 {
		r.log.Debug("search on empty index", "query", query)
		return nil, append(warnings, domain.Warning{
			Code:   domain.WarnEmptyIndex,
			Detail: "no documents indexed",
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

	for _, docID := range r.order {
		doc := r.docs[docID]
		for i := range doc.Sections {
			ref := sectionRef(docID, i)
			score, ok := scores[ref]
			if !ok || score <= 0 {
				continue
			}
			handled[ref] = struct{}{}
			sec := doc.Sections[i]

			results = append(results, domain.RankedResult{
				SectionID:  fmt.Sprintf("%s#%d", docID, i),
				Heading:    sec.Heading,
				Text:       sec.Text,
				Score:      score,
				DocumentID: docID,
				SourceURL:  doc.SourceURL,
				Domain:     domainOf(doc.SourceURL),
				Title:      doc.Title,
			})
		}
	}

	// A posting that cannot be resolved to a live document/section is
	// dropped with a diagnostic; the rest of the ranked list survives.
	for ref := range scores {
		if _, ok := handled[ref]; ok {
			continue
		}
		if r.resolves(ref) {
			continue
		}
		r.log.Debug("skipping dangling posting", "ref", ref)
		warnings = append(warnings, domain.Warning{
			Code:   domain.WarnDanglingPosting,
			Ref:    strings.ReplaceAll(ref, refSep, "#"),
			Detail: "posting references a missing document or section",
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

func (r *CorpusRetriever) resolves(ref string) bool {
	docID, ordStr, ok := strings.Cut(ref, refSep)
	if !ok {
		return false
	}
	doc, ok := r.docs[docID]
	if !ok {
		return false
	}
	ord, err := strconv.Atoi(ordStr)
	if err != nil {
		return false
	}
	return ord >= 0 && ord < len(doc.Sections)
}

// Stats reports index diagnostics.
func (r *CorpusRetriever) Stats() domain.Stats {
	return domain.Stats{
		DocumentCount:   len(r.docs),
		SectionCount:    r.idx.sectionCount(),
		UniqueTermCount: r.idx.uniqueTermCount(),
		AverageLength:   r.idx.averageLength(),
	}
}

// Clear resets the retriever to the empty state.
func (r *CorpusRetriever) Clear() {
	r.idx.clear()
	r.docs = make(map[string]domain.Document)
	r.order = nil
}

// domainOf derives a citation domain from a source URL, stripping a
// leading "www.". Unparseable input falls back to the raw string.
func domainOf(sourceURL string) string {
	if sourceURL == "" {
		return ""
	}
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		return sourceURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
