package memory

import (
	"fmt"
	"math"
	"sort"

	"foodrec/internal/domain"
	"foodrec/internal/vectorstore"
)

// Index is an immutable in-memory index using brute-force cosine distance.
// Row i of the index is catalog row i.
type Index struct {
	dimension int
	vectors   [][]float64
	norms     []float64
}

var _ vectorstore.Index = (*Index)(nil)

// Build indexes vectors. All vectors must share one non-zero dimension.
func Build(vectors [][]float64) (*Index, error) {
	if len(vectors) == 0 {
		return nil, domain.ErrEmptyIndex
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-length vectors", domain.ErrEmptyIndex)
	}
	idx := &Index{
		dimension: dim,
		vectors:   make([][]float64, len(vectors)),
		norms:     make([]float64, len(vectors)),
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: row %d has %d, want %d", domain.ErrDimensionMismatch, i, len(v), dim)
		}
		idx.vectors[i] = append([]float64(nil), v...)
		idx.norms[i] = norm(v)
	}
	return idx, nil
}

// Dimension returns the vector length the index accepts.
func (s *Index) Dimension() int { return s.dimension }

// Len returns the number of indexed rows.
func (s *Index) Len() int { return len(s.vectors) }

// Search returns the topK rows closest to vector, ascending by cosine
// distance, ties broken by lower row index. topK <= 0 selects
// vectorstore.DefaultTopK; topK is clamped to Len.
func (s *Index) Search(vector []float64, topK int) ([]domain.Hit, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = vectorstore.DefaultTopK
	}
	qn := norm(vector)
	hits := make([]domain.Hit, len(s.vectors))
	for i := range s.vectors {
		hits[i] = domain.Hit{Index: i, Distance: cosineDistance(s.vectors[i], s.norms[i], vector, qn)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK:topK], nil
}

// cosineDistance is 1 - cos(a, b). A zero vector on either side has no
// direction and is treated as orthogonal.
func cosineDistance(a []float64, an float64, b []float64, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 1
	}
	return 1 - dot(a, b)/(an*bn)
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}
