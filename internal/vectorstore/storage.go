package vectorstore

import "foodrec/internal/domain"

// DefaultTopK is the neighbour count used when a caller passes k <= 0.
const DefaultTopK = 10

// Index answers k-nearest-neighbour queries over encoded catalog rows.
type Index interface {
	Dimension() int
	Len() int
	Search(vector []float64, topK int) ([]domain.Hit, error)
}
