package usecase

import (
	"fmt"

	"passage/internal/adapter/retriever"
	"passage/internal/domain"
	"passage/internal/port"
)

// RetrieveUseCase rebuilds an in-memory retriever from the stored corpus
// and runs searches against it.
type RetrieveUseCase struct {
	store        port.CorpusStore
	corpusParams retriever.Params
	pageParams   retriever.Params
}

func NewRetrieveUseCase(store port.CorpusStore, corpusParams, pageParams retriever.Params) *RetrieveUseCase {
	return &RetrieveUseCase{
		store:        store,
		corpusParams: corpusParams,
		pageParams:   pageParams,
	}
}

// SearchCorpus ranks sections from every stored document, with
// provenance on each result.
func (u *RetrieveUseCase) SearchCorpus(query string, topK int) ([]domain.RankedResult, []domain.Warning, error) {
	r, err := u.buildCorpus()
	if err != nil {
		return nil, nil, err
	}
	results, warnings := r.Search(query, topK)
	return results, warnings, nil
}

// SearchPage ranks the sections of one stored document using the
// heading- and position-aware retriever.
func (u *RetrieveUseCase) SearchPage(docID, query string, topK int) ([]domain.RankedResult, []domain.Warning, error) {
	r, err := u.buildPage(docID)
	if err != nil {
		return nil, nil, err
	}
	results, warnings := r.Search(query, topK)
	return results, warnings, nil
}

// CorpusStats reports diagnostics over the full rebuilt index.
func (u *RetrieveUseCase) CorpusStats() (domain.Stats, error) {
	r, err := u.buildCorpus()
	if err != nil {
		return domain.Stats{}, err
	}
	return r.Stats(), nil
}

func (u *RetrieveUseCase) buildCorpus() (*retriever.CorpusRetriever, error) {
	r, err := retriever.NewCorpusRetriever(u.corpusParams)
	if err != nil {
		return nil, err
	}

	docs, err := u.store.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	for _, doc := range docs {
		if err := r.AddDocument(doc); err != nil {
			return nil, fmt.Errorf("failed to index document %s: %w", doc.ID, err)
		}
	}
	return r, nil
}

func (u *RetrieveUseCase) buildPage(docID string) (*retriever.PageRetriever, error) {
	r, err := retriever.NewPageRetriever(u.pageParams)
	if err != nil {
		return nil, err
	}

	doc, err := u.store.GetDocument(docID)
	if err != nil {
		return nil, err
	}
	for _, sec := range doc.Sections {
		if err := r.AddSection(sec); err != nil {
			return nil, fmt.Errorf("failed to index section %s: %w", sec.ID, err)
		}
	}
	return r, nil
}
