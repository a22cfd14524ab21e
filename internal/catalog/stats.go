package catalog

import (
	"fmt"
	"math"
	"sort"

	"foodrec/internal/domain"
)

// Stats are field-wise statistics over the raw catalog values. They are
// computed once and shared read-only by every request.
type Stats struct {
	fields       []string
	mean         map[string]float64
	sorted       map[string][]float64
	medianID     float64
	modeCategory string
}

// NewStats computes means, sorted value columns, the median id and the most
// frequent category of c.
func NewStats(c *Catalog) *Stats {
	s := &Stats{
		fields: c.Fields(),
		mean:   make(map[string]float64, len(c.fields)),
		sorted: make(map[string][]float64, len(c.fields)),
	}
	n := c.Len()
	for _, f := range c.fields {
		col := make([]float64, n)
		sum := 0.0
		for i, r := range c.records {
			col[i] = r.Nutrients[f]
			sum += col[i]
		}
		sort.Float64s(col)
		s.mean[f] = sum / float64(n)
		s.sorted[f] = col
	}

	ids := make([]float64, n)
	counts := make(map[string]int)
	for i, r := range c.records {
		ids[i] = r.ID
		counts[r.Category]++
	}
	sort.Float64s(ids)
	s.medianID = Quantile(ids, 0.5)

	best := -1
	for cat, cnt := range counts {
		if cnt > best || (cnt == best && cat < s.modeCategory) {
			best = cnt
			s.modeCategory = cat
		}
	}
	return s
}

// Fields returns the nutrient schema the stats were computed over.
func (s *Stats) Fields() []string { return append([]string(nil), s.fields...) }

// Mean returns the mean of a nutrient field.
func (s *Stats) Mean(field string) (float64, error) {
	m, ok := s.mean[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return m, nil
}

// Quantile returns the q-quantile of a nutrient field's raw values.
func (s *Stats) Quantile(field string, q float64) (float64, error) {
	col, ok := s.sorted[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return Quantile(col, q), nil
}

// MedianID returns the median catalog id.
func (s *Stats) MedianID() float64 { return s.medianID }

// ModeCategory returns the most frequent category; ties resolve to the
// lexicographically smallest.
func (s *Stats) ModeCategory() string { return s.modeCategory }

// Quantile computes the q-quantile of ascending-sorted values using linear
// interpolation between closest ranks (position q*(n-1)).
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
