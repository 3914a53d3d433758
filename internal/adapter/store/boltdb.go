package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"passage/internal/domain"
)

var bucketDocuments = []byte("documents")

// BoltStore persists raw ingested documents in a bbolt database. Only
// source material is stored; the retrieval index is rebuilt in memory
// from these documents on each run.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type sectionMeta struct {
	Heading  string `json:"heading,omitempty"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type docMeta struct {
	SourceURL string        `json:"source_url,omitempty"`
	Title     string        `json:"title,omitempty"`
	Sections  []sectionMeta `json:"sections"`
}

func (s *BoltStore) PutDocument(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := docMeta{
			SourceURL: doc.SourceURL,
			Title:     doc.Title,
			Sections:  make([]sectionMeta, 0, len(doc.Sections)),
		}
		for _, sec := range doc.Sections {
			meta.Sections = append(meta.Sections, sectionMeta{
				Heading:  sec.Heading,
				Text:     sec.Text,
				Position: sec.Position,
			})
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDocuments).Put([]byte(doc.ID), data)
	})
}

func (s *BoltStore) GetDocument(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocuments).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = toDocument(id, meta)
		return nil
	})
	return doc, err
}

func (s *BoltStore) ListDocuments() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, toDocument(string(k), meta))
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) DeleteDocument(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Delete([]byte(id))
	})
}

func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketDocuments); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func toDocument(id string, meta docMeta) domain.Document {
	doc := domain.Document{
		ID:        id,
		SourceURL: meta.SourceURL,
		Title:     meta.Title,
		Sections:  make([]domain.Section, 0, len(meta.Sections)),
	}
	for i, sec := range meta.Sections {
		doc.Sections = append(doc.Sections, domain.Section{
			ID:       fmt.Sprintf("%s-%d", id, i),
			Heading:  sec.Heading,
			Text:     sec.Text,
			Position: sec.Position,
		})
	}
	return doc
}
