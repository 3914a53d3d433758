package port

import "passage/internal/domain"

// Retriever ranks indexed passages against a free-text query. Search
// returns at most topK results sorted by descending score, along with
// any index-health warnings raised while resolving candidates.
type Retriever interface {
	Search(query string, topK int) ([]domain.RankedResult, []domain.Warning)
	Stats() domain.Stats
	Clear()
}
