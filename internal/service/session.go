package service

import (
	"foodrec/internal/domain"
	"foodrec/internal/metrics"
	"foodrec/internal/session"
)

// QueryResult is what a shell renders after one query.
type QueryResult struct {
	// Cards is the whole deduplicated session view in first-seen order.
	Cards []domain.Recommendation
	// Added is how many cards this query contributed.
	Added int
}

// Session runs queries against a Recommender and accumulates the results
// of one user session. Not safe for concurrent use.
type Session struct {
	rec     *Recommender
	results *session.ResultSet
}

func newSession(r *Recommender) *Session {
	return &Session{rec: r, results: session.New()}
}

// Query recommends for req and merges the batch into the session.
func (s *Session) Query(req domain.Request) (QueryResult, error) {
	batch, err := s.rec.Recommend(req)
	if err != nil {
		return QueryResult{}, err
	}
	hits := make([]domain.Hit, len(batch))
	for i, b := range batch {
		hits[i] = b.Hit
	}
	view := s.results.Merge(hits)
	metrics.SessionCardsAddedTotal.Add(float64(s.results.Added()))
	return QueryResult{Cards: s.rec.Resolve(view), Added: s.results.Added()}, nil
}

// Cards returns the current session view.
func (s *Session) Cards() []domain.Recommendation { return s.rec.Resolve(s.results.View()) }

// Page returns one page of the session view.
func (s *Session) Page(n, size int) []domain.Recommendation {
	return s.rec.Resolve(s.results.Page(n, size))
}

// Len is the number of distinct cards shown.
func (s *Session) Len() int { return s.results.Len() }

// Reset clears the session.
func (s *Session) Reset() { s.results.Reset() }
