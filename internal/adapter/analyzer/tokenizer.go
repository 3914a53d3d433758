package analyzer

import (
	"strings"
	"unicode"
)

// Policy selects how aggressively the stop-word filter is applied.
type Policy int

const (
	// PolicyStrict drops every stop word. Hyphens split tokens.
	PolicyStrict Policy = iota
	// PolicyLenient keeps a stop word when it is exactly two characters
	// long or was entirely upper-case in the original text (acronyms),
	// and preserves internal hyphens so compound terms stay intact.
	PolicyLenient
)

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(s) {
	case "strict":
		return PolicyStrict, true
	case "lenient":
		return PolicyLenient, true
	}
	return PolicyStrict, false
}

func (p Policy) String() string {
	if p == PolicyLenient {
		return "lenient"
	}
	return "strict"
}

// Tokenizer splits text into lowercase terms with stop-word removal.
// Tokenization is deterministic and never fails; empty input yields an
// empty slice.
type Tokenizer struct {
	policy    Policy
	stopwords map[string]struct{}
}

// NewTokenizer creates a Tokenizer with the given stop-word policy.
func NewTokenizer(policy Policy) *Tokenizer {
	return &Tokenizer{
		policy:    policy,
		stopwords: defaultStopwords(),
	}
}

// Tokenize splits text into normalized terms.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text, t.policy == PolicyLenient)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		lower := strings.ToLower(word)
		if lower == "" {
			continue
		}
		if _, isStop := t.stopwords[lower]; isStop {
			if t.policy == PolicyStrict {
				continue
			}
			// Lenient: two-character tokens and acronyms survive the
			// stop-word filter.
			if len(lower) != 2 && !isAllUpper(word) {
				continue
			}
		}
		tokens = append(tokens, lower)
	}

	return tokens
}

// CountTokens returns an approximate token count for budget estimation.
// Rough estimate: the average word is about 1.3 model tokens.
func (t *Tokenizer) CountTokens(text string) int {
	words := splitWords(text, false)
	if len(words) == 0 {
		return 0
	}
	return int(float64(len(words)) * 1.3)
}

// splitWords splits text on non-word runes. With keepHyphens, a hyphen
// inside a word is kept so compounds like "rate-limit" stay one token;
// leading and trailing hyphens are still stripped.
func splitWords(text string, keepHyphens bool) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		if keepHyphens {
			word = strings.Trim(word, "-")
		}
		if word != "" {
			words = append(words, word)
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case keepHyphens && r == '-':
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return words
}

// isAllUpper reports whether word contains at least one letter and every
// letter is upper-case.
func isAllUpper(word string) bool {
	hasLetter := false
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"no", "can", "do", "does", "did", "been", "being", "would",
		"could", "should", "may", "might", "must", "shall", "which",
		"who", "whom", "what", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other",
		"some", "such", "than", "too", "very", "just", "also",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
