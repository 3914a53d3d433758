package retriever

import "passage/internal/domain"

// invertedIndex is the in-memory postings table shared by both retrievers.
// The average section length is maintained as a running sum so every
// mutation leaves it consistent with the current corpus.
type invertedIndex struct {
	postings map[string][]domain.Posting
	lengths  map[string]int
	totalLen int
}

func newInvertedIndex() *invertedIndex {
	return &invertedIndex{
		postings: make(map[string][]domain.Posting),
		lengths:  make(map[string]int),
	}
}

// add indexes one section's token stream under ref. Callers guarantee ref
// uniqueness; the index itself does not deduplicate.
func (idx *invertedIndex) add(ref string, tokens []string) {
	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}

	length := len(tokens)
	for term, count := range tf {
		idx.postings[term] = append(idx.postings[term], domain.Posting{
			Ref:    ref,
			TF:     count,
			Length: length,
		})
	}

	idx.lengths[ref] = length
	idx.totalLen += length
}

func (idx *invertedIndex) lookup(term string) []domain.Posting {
	return idx.postings[term]
}

// averageLength is the BM25 length-normalization baseline over the current
// corpus.
func (idx *invertedIndex) averageLength() float64 {
	if len(idx.lengths) == 0 {
		return 0
	}
	return float64(idx.totalLen) / float64(len(idx.lengths))
}

func (idx *invertedIndex) sectionCount() int {
	return len(idx.lengths)
}

func (idx *invertedIndex) uniqueTermCount() int {
	return len(idx.postings)
}

func (idx *invertedIndex) clear() {
	idx.postings = make(map[string][]domain.Posting)
	idx.lengths = make(map[string]int)
	idx.totalLen = 0
}
