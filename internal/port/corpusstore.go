package port

import "passage/internal/domain"

// CorpusStore persists raw ingested documents so an index can be rebuilt
// without re-reading the sources. The retrieval index itself is never
// persisted; it lives in memory for the life of the process.
type CorpusStore interface {
	PutDocument(doc domain.Document) error

	GetDocument(id string) (domain.Document, error)

	ListDocuments() ([]domain.Document, error)

	DeleteDocument(id string) error

	Clear() error

	Close() error
}
