// Package session accumulates recommendation batches for one user session.
package session

import "foodrec/internal/domain"

// ResultSet is the ordered, deduplicated set of hits already shown in a
// session, plus the raw batch history. It is not safe for concurrent use.
type ResultSet struct {
	seen    map[int]struct{}
	shown   []domain.Hit
	batches [][]domain.Hit
	added   int
}

// New returns an empty result set.
func New() *ResultSet {
	return &ResultSet{seen: make(map[int]struct{})}
}

// Merge appends batch to the history and returns the full deduplicated view.
// A catalog index keeps the position and distance of its first appearance.
func (s *ResultSet) Merge(batch []domain.Hit) []domain.Hit {
	s.batches = append(s.batches, append([]domain.Hit(nil), batch...))
	s.added = 0
	for _, h := range batch {
		if _, ok := s.seen[h.Index]; ok {
			continue
		}
		s.seen[h.Index] = struct{}{}
		s.shown = append(s.shown, h)
		s.added++
	}
	return s.View()
}

// View returns the deduplicated hits in first-seen order.
func (s *ResultSet) View() []domain.Hit {
	return append([]domain.Hit(nil), s.shown...)
}

// Added reports how many new hits the last Merge contributed.
func (s *ResultSet) Added() int { return s.added }

// Len is the number of distinct hits shown so far.
func (s *ResultSet) Len() int { return len(s.shown) }

// Batches returns the per-query history, duplicates included.
func (s *ResultSet) Batches() [][]domain.Hit {
	out := make([][]domain.Hit, len(s.batches))
	for i, b := range s.batches {
		out[i] = append([]domain.Hit(nil), b...)
	}
	return out
}

// Page returns page n (zero-based) of the view with the given page size.
// Out-of-range pages are empty.
func (s *ResultSet) Page(n, size int) []domain.Hit {
	if n < 0 || size <= 0 {
		return nil
	}
	if len(s.shown) == 0 || n > (len(s.shown)-1)/size {
		return nil
	}
	start := n * size
	end := min(start+size, len(s.shown))
	return append([]domain.Hit(nil), s.shown[start:end]...)
}

// Reset forgets everything shown in the session.
func (s *ResultSet) Reset() {
	s.seen = make(map[int]struct{})
	s.shown = nil
	s.batches = nil
	s.added = 0
}
