package usecase

import (
	"sort"

	"passage/internal/adapter/analyzer"
	"passage/internal/domain"
)

// PackUseCase assembles ranked passages into a context block that fits a
// token budget, for downstream prompt construction.
type PackUseCase struct {
	tokenizer *analyzer.Tokenizer
}

func NewPackUseCase(tokenizer *analyzer.Tokenizer) *PackUseCase {
	return &PackUseCase{tokenizer: tokenizer}
}

// Pack greedily selects passages by score-per-token utility until the
// budget is exhausted. Selected passages keep their relative ranking.
func (u *PackUseCase) Pack(query string, results []domain.RankedResult, budget int) domain.PackedContext {
	packed := domain.PackedContext{
		Query:        query,
		BudgetTokens: budget,
		Passages:     []domain.Passage{},
	}
	if len(results) == 0 {
		return packed
	}

	type candidate struct {
		result  domain.RankedResult
		rank    int
		utility float64
		tokens  int
	}

	candidates := make([]candidate, 0, len(results))
	for i, r := range results {
		tokens := u.tokenizer.CountTokens(r.Text)
		if tokens == 0 {
			tokens = 1
		}
		candidates = append(candidates, candidate{
			result:  r,
			rank:    i,
			utility: r.Score / float64(tokens),
			tokens:  tokens,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].utility > candidates[j].utility
	})

	var selected []candidate
	used := 0
	for _, c := range candidates {
		if used+c.tokens > budget {
			continue
		}
		selected = append(selected, c)
		used += c.tokens
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].rank < selected[j].rank
	})

	for _, c := range selected {
		source := c.result.SourceURL
		if source == "" {
			source = c.result.SectionID
		}
		packed.Passages = append(packed.Passages, domain.Passage{
			Heading: c.result.Heading,
			Source:  source,
			Score:   c.result.Score,
			Text:    c.result.Text,
		})
	}
	packed.UsedTokens = used

	return packed
}
