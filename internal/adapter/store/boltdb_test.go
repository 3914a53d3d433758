package store

import (
	"path/filepath"
	"testing"

	"passage/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPutGetDocument(t *testing.T) {
	st := newTestStore(t)

	doc := domain.Document{
		ID:        "d1",
		SourceURL: "https://example.com/a",
		Title:     "Example",
		Sections: []domain.Section{
			{Heading: "Intro", Text: "alpha beta", Position: 0},
			{Text: "gamma", Position: 1},
		},
	}
	if err := st.PutDocument(doc); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetDocument("d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.SourceURL != doc.SourceURL || got.Title != doc.Title {
		t.Errorf("unexpected document: %+v", got)
	}
	if len(got.Sections) != 2 || got.Sections[0].Heading != "Intro" {
		t.Errorf("unexpected sections: %+v", got.Sections)
	}
	if got.Sections[1].Position != 1 {
		t.Errorf("position not preserved: %+v", got.Sections[1])
	}

	if _, err := st.GetDocument("missing"); err == nil {
		t.Error("expected error for missing document")
	}
}

func TestListAndClear(t *testing.T) {
	st := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := st.PutDocument(domain.Document{
			ID:       id,
			Sections: []domain.Section{{Text: "body"}},
		}); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := st.ListDocuments()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	if err := st.DeleteDocument("b"); err != nil {
		t.Fatal(err)
	}
	docs, _ = st.ListDocuments()
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents after delete, got %d", len(docs))
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	docs, _ = st.ListDocuments()
	if len(docs) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(docs))
	}
}
