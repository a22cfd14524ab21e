package domain

import "errors"

// FoodRecord is a single catalog entry. Synthetic query records share the
// same shape but never enter the catalog.
type FoodRecord struct {
	// ID is the nutrient data bank number. It is scaled and used as a
	// feature like any other numeric column.
	ID          float64
	Description string
	Category    string
	Nutrients   map[string]float64
}

// Nutrient returns the value of a nutrient field, or 0 when absent.
func (r FoodRecord) Nutrient(field string) float64 {
	return r.Nutrients[field]
}

// Request is the user intent collected by a presentation shell.
type Request struct {
	Goal        Goal
	Diet        Diet
	Category    string
	Description string
}

// Hit is one nearest-neighbour match: a catalog row index and its cosine distance.
type Hit struct {
	Index    int
	Distance float64
}

// Recommendation pairs a hit with the catalog record it points to.
type Recommendation struct {
	Hit
	Record FoodRecord
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

var (
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrMalformedCatalog  = errors.New("malformed catalog")
	ErrNoNumericFields   = errors.New("catalog has no numeric fields")
	ErrUnknownField      = errors.New("unknown nutrient field")
	ErrEmptyIndex        = errors.New("similarity index has no vectors")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrInvalidGoal       = errors.New("invalid goal")
	ErrInvalidDiet       = errors.New("invalid diet")
)
