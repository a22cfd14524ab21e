package summarizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"foodrec/internal/catalog"
)

// FrequencySummarizer describes a catalog by its size and its most frequent
// description terms (stopwords filtered).
type FrequencySummarizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewFrequencySummarizer creates a frequency-based catalog summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Summarize returns a one-line overview naming up to maxTerms common terms.
func (s *FrequencySummarizer) Summarize(c *catalog.Catalog, maxTerms int) string {
	if maxTerms <= 0 {
		maxTerms = 5
	}
	// Count each term once per description
	freq := map[string]int{}
	for _, desc := range c.Descriptions() {
		seen := map[string]struct{}{}
		for _, tok := range s.tokens(desc) {
			if _, ok := s.stopwords[tok]; ok || len(tok) < 3 {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			freq[tok]++
		}
	}
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxTerms > len(terms) {
		maxTerms = len(terms)
	}
	line := fmt.Sprintf("%d foods across %d categories.", c.Len(), len(c.Categories()))
	if maxTerms == 0 {
		return line
	}
	return line + " Common terms: " + strings.Join(terms[:maxTerms], ", ") + "."
}

func (s *FrequencySummarizer) tokens(text string) []string {
	lower := strings.ToLower(text)
	return s.tokenPattern.FindAllString(lower, -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"without", "added", "not", "other", "raw", "ns", "nfs",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
