package retriever

import (
	"fmt"
	"math"
)

const (
	// DefaultK1 is the default BM25 term-frequency saturation parameter.
	DefaultK1 = 1.5
	// DefaultB is the default BM25 length-normalization parameter.
	DefaultB = 0.75
)

// bm25 scores sections against query terms using the Okapi BM25 formula.
type bm25 struct {
	k1 float64
	b  float64
}

// newBM25 validates the ranking parameters up front; out-of-range values
// silently corrupt ranking otherwise.
func newBM25(k1, b float64) (bm25, error) {
	if k1 < 0 || math.IsNaN(k1) || math.IsInf(k1, 0) {
		return bm25{}, fmt.Errorf("bm25: k1 must be >= 0, got %v", k1)
	}
	if b < 0 || b > 1 || math.IsNaN(b) {
		return bm25{}, fmt.Errorf("bm25: b must be in [0, 1], got %v", b)
	}
	return bm25{k1: k1, b: b}, nil
}

// idf weights a term by its rarity: N indexed sections, df of them
// containing the term.
func (s bm25) idf(totalSections, docFreq int) float64 {
	n := float64(totalSections)
	df := float64(docFreq)
	return math.Log((n-df+0.5)/(df+0.5) + 1)
}

// termScore is one query term's contribution for a section of the given
// length, with tf occurrences of the term.
func (s bm25) termScore(idf float64, tf, length int, avgLength float64) float64 {
	if avgLength == 0 {
		return 0
	}
	f := float64(tf)
	norm := 1 - s.b + s.b*(float64(length)/avgLength)
	return idf * (f * (s.k1 + 1)) / (f + s.k1*norm)
}

// scoreAll accumulates BM25 scores per section ref for the given query
// terms. Terms absent from the index contribute nothing.
func (s bm25) scoreAll(queryTerms []string, idx *invertedIndex) map[string]float64 {
	scores := make(map[string]float64)
	total := idx.sectionCount()
	avg := idx.averageLength()

	for _, term := range queryTerms {
		postings := idx.lookup(term)
		if len(postings) == 0 {
			continue
		}
		idf := s.idf(total, len(postings))
		for _, p := range postings {
			scores[p.Ref] += s.termScore(idf, p.TF, p.Length, avg)
		}
	}

	return scores
}
