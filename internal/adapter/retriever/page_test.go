package retriever

import (
	"fmt"
	"testing"

	"passage/internal/domain"
)

func newTestPage(t *testing.T) *PageRetriever {
	t.Helper()
	r, err := NewPageRetriever(DefaultPageParams())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPageSearchEmptyIndex(t *testing.T) {
	r := newTestPage(t)

	results, warnings := r.Search("anything", 5)
	if len(results) != 0 {
		t.Errorf("expected no results on empty index, got %d", len(results))
	}
	if len(warnings) != 1 || warnings[0].Code != domain.WarnEmptyIndex {
		t.Errorf("expected empty_index warning, got %v", warnings)
	}
}

func TestPageSearchEmptyQuery(t *testing.T) {
	r := newTestPage(t)
	mustAdd(t, r, domain.Section{ID: "s1", Text: "widget assembly instructions", Position: 0})

	for _, q := range []string{"", "   ", "!!!", "the and that"} {
		results, warnings := r.Search(q, 5)
		if len(results) != 0 {
			t.Errorf("query %q: expected no results, got %d", q, len(results))
		}
		if len(warnings) != 1 || warnings[0].Code != domain.WarnEmptyQuery {
			t.Errorf("query %q: expected empty_query warning, got %v", q, warnings)
		}
	}
}

func TestPageDuplicateSectionID(t *testing.T) {
	r := newTestPage(t)
	mustAdd(t, r, domain.Section{ID: "s1", Text: "first", Position: 0})

	if err := r.AddSection(domain.Section{ID: "s1", Text: "second", Position: 1}); err == nil {
		t.Error("expected error for duplicate section id")
	}
	if err := r.AddSection(domain.Section{Text: "no id", Position: 2}); err == nil {
		t.Error("expected error for missing section id")
	}
}

func TestPageTopKAndOrdering(t *testing.T) {
	r := newTestPage(t)
	for i := 0; i < 8; i++ {
		mustAdd(t, r, domain.Section{
			ID:       fmt.Sprintf("s%d", i),
			Text:     fmt.Sprintf("widget widget gadget item%d", i),
			Position: i,
		})
	}

	results, _ := r.Search("widget", 3)
	if len(results) > 3 {
		t.Fatalf("expected at most 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending at %d: %f > %f",
				i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestPageHeadingBoost(t *testing.T) {
	r := newTestPage(t)
	mustAdd(t, r, domain.Section{
		ID:       "s1",
		Heading:  "Pricing",
		Text:     "Our plans cost $10/month",
		Position: 0,
	})
	mustAdd(t, r, domain.Section{
		ID:       "s2",
		Heading:  "Features",
		Text:     "Pricing details are on the plans page",
		Position: 1,
	})

	results, _ := r.Search("pricing", 10)
	if len(results) < 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SectionID != "s1" {
		t.Errorf("expected heading match s1 to rank first, got %s", results[0].SectionID)
	}
}

func TestPagePositionDecay(t *testing.T) {
	r := newTestPage(t)
	mustAdd(t, r, domain.Section{ID: "early", Text: "maintenance schedule for pumps", Position: 0})
	mustAdd(t, r, domain.Section{ID: "late", Text: "maintenance schedule for pumps", Position: 19})

	results, _ := r.Search("maintenance schedule", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SectionID != "early" {
		t.Errorf("expected earlier section first, got %s", results[0].SectionID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("earlier section must score strictly higher: %f vs %f",
			results[0].Score, results[1].Score)
	}
}

func TestPageDanglingPostingSkipped(t *testing.T) {
	r := newTestPage(t)
	mustAdd(t, r, domain.Section{ID: "s1", Text: "widget catalog overview", Position: 0})

	// Corrupt the index: a posting with no backing section.
	r.idx.add("ghost", []string{"widget"})

	results, warnings := r.Search("widget", 10)
	if len(results) != 1 || results[0].SectionID != "s1" {
		t.Fatalf("expected the surviving section, got %v", results)
	}

	found := false
	for _, w := range warnings {
		if w.Code == domain.WarnDanglingPosting && w.Ref == "ghost" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dangling_posting warning for ghost, got %v", warnings)
	}
}

func TestPageStatsAndClear(t *testing.T) {
	r := newTestPage(t)
	mustAdd(t, r, domain.Section{ID: "s1", Heading: "Intro", Text: "widget basics", Position: 0})
	mustAdd(t, r, domain.Section{ID: "s2", Text: "gadget basics", Position: 1})

	stats := r.Stats()
	if stats.DocumentCount != 1 || stats.SectionCount != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.UniqueTermCount == 0 || stats.AverageLength <= 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	r.Clear()
	stats = r.Stats()
	if stats.DocumentCount != 0 || stats.SectionCount != 0 || stats.AverageLength != 0 {
		t.Errorf("stats not reset after clear: %+v", stats)
	}

	results, warnings := r.Search("widget", 5)
	if len(results) != 0 || len(warnings) != 1 || warnings[0].Code != domain.WarnEmptyIndex {
		t.Errorf("expected empty-index behavior after clear, got %v, %v", results, warnings)
	}
}

func TestPageRejectsBadParams(t *testing.T) {
	p := DefaultPageParams()
	p.K1 = -2
	if _, err := NewPageRetriever(p); err == nil {
		t.Error("expected error for invalid k1")
	}

	p = DefaultPageParams()
	p.B = 2
	if _, err := NewPageRetriever(p); err == nil {
		t.Error("expected error for invalid b")
	}
}

func mustAdd(t *testing.T, r *PageRetriever, s domain.Section) {
	t.Helper()
	if err := r.AddSection(s); err != nil {
		t.Fatal(err)
	}
}
