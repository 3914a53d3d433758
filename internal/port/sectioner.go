package port

import "passage/internal/domain"

// Sectioner splits raw document content into retrievable sections.
type Sectioner interface {
	Section(docID string, content string) []domain.Section
}
