package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"passage/internal/adapter/fs"
	"passage/internal/domain"
	"passage/internal/port"
)

// IngestUseCase loads corpus files from disk, splits them into sections
// and persists them as documents.
type IngestUseCase struct {
	store     port.CorpusStore
	walker    *fs.Walker
	sectioner port.Sectioner
}

func NewIngestUseCase(store port.CorpusStore, walker *fs.Walker, sectioner port.Sectioner) *IngestUseCase {
	return &IngestUseCase{
		store:     store,
		walker:    walker,
		sectioner: sectioner,
	}
}

// IngestResult contains the results of an ingestion run.
type IngestResult struct {
	FilesIngested   int
	FilesSkipped    int
	SectionsCreated int
	Errors          []string
}

// ProgressFunc reports ingestion progress to the caller.
type ProgressFunc func(done, total int, path string)

// Ingest walks root for matching files and stores each as a document.
// Files that yield no sections are skipped.
func (u *IngestUseCase) Ingest(root string, progress ProgressFunc) (*IngestResult, error) {
	result := &IngestResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	for i, file := range files {
		if progress != nil {
			progress(i+1, len(files), file.Rel)
		}

		content, err := fs.ReadFile(file.Path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read %s: %v", file.Rel, err))
			continue
		}

		docID := generateDocID(file.Rel)
		sections := u.sectioner.Section(docID, content)
		if len(sections) == 0 {
			result.FilesSkipped++
			continue
		}

		doc := domain.Document{
			ID:        docID,
			SourceURL: "file://" + file.Path,
			Title:     filepath.Base(file.Rel),
			Sections:  sections,
		}
		if err := u.store.PutDocument(doc); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to store %s: %v", file.Rel, err))
			continue
		}

		result.FilesIngested++
		result.SectionsCreated += len(sections)
	}

	return result, nil
}

func generateDocID(rel string) string {
	hash := sha256.Sum256([]byte(filepath.ToSlash(rel)))
	return hex.EncodeToString(hash[:])[:16]
}
