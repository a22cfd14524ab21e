// Package encoder fits a frozen feature encoding over the catalog and maps
// any record, catalog or synthetic, into one fixed-length vector:
//
//	[ text (TF-IDF) | category (one-hot) | id (z-score) | nutrients (z-score) ]
package encoder

import (
	"fmt"
	"math"

	"foodrec/internal/catalog"
	"foodrec/internal/domain"
	"foodrec/internal/embedding/tfidf"
)

// Options tunes the fit.
type Options struct {
	// MaxFeatures caps the text vocabulary.
	MaxFeatures int
}

// Layout gives the offset and width of each block of a feature vector.
type Layout struct {
	TextOffset, TextWidth         int
	CategoryOffset, CategoryWidth int
	IDOffset                      int
	NumericOffset, NumericWidth   int
	Dimension                     int
}

// scaler is a fitted standardisation for one column.
type scaler struct {
	mean, std float64
}

func (s scaler) apply(v float64) float64 { return (v - s.mean) / s.std }

// State is the fitted encoder. It is never mutated after Fit and is safe to
// share between sessions.
type State struct {
	text       domain.Embedder
	categories map[string]int
	catNames   []string
	fields     []string
	id         scaler
	numeric    []scaler
	layout     Layout
}

// Fit learns the text model, category set and numeric scaling from c.
func Fit(c *catalog.Catalog, opts Options) (*State, error) {
	if c == nil || c.Len() == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	fields := c.Fields()
	if len(fields) == 0 {
		return nil, domain.ErrNoNumericFields
	}

	text := tfidf.NewEmbedder(opts.MaxFeatures)
	if err := text.Prepare(c.Descriptions()); err != nil {
		return nil, fmt.Errorf("fit text model: %w", err)
	}

	catNames := c.Categories()
	categories := make(map[string]int, len(catNames))
	for i, name := range catNames {
		categories[name] = i
	}

	records := c.Records()
	ids := make([]float64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	numeric := make([]scaler, len(fields))
	col := make([]float64, len(records))
	for j, f := range fields {
		for i, r := range records {
			col[i] = r.Nutrients[f]
		}
		numeric[j] = fitScaler(col)
	}

	st := &State{
		text:       text,
		categories: categories,
		catNames:   catNames,
		fields:     fields,
		id:         fitScaler(ids),
		numeric:    numeric,
	}
	l := Layout{TextWidth: text.Dimension(), CategoryWidth: len(catNames), NumericWidth: len(fields)}
	l.CategoryOffset = l.TextOffset + l.TextWidth
	l.IDOffset = l.CategoryOffset + l.CategoryWidth
	l.NumericOffset = l.IDOffset + 1
	l.Dimension = l.NumericOffset + l.NumericWidth
	st.layout = l
	return st, nil
}

// fitScaler computes mean and population standard deviation. A zero
// variance column scales by 1 so values are centred but never divided by zero.
func fitScaler(values []float64) scaler {
	n := float64(len(values))
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / n)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	return scaler{mean: mean, std: std}
}

// Dimension is the length of every vector Transform returns.
func (s *State) Dimension() int { return s.layout.Dimension }

// Layout describes the block structure of encoded vectors.
func (s *State) Layout() Layout { return s.layout }

// Categories returns the fitted category set in one-hot order.
func (s *State) Categories() []string { return append([]string(nil), s.catNames...) }

// Fields returns the nutrient fields in numeric block order.
func (s *State) Fields() []string { return append([]string(nil), s.fields...) }

// Transform encodes rec with the frozen statistics. Unknown categories and
// out-of-vocabulary terms contribute zeros; it never fails.
func (s *State) Transform(rec domain.FoodRecord) []float64 {
	vec := make([]float64, s.layout.Dimension)
	if s.layout.TextWidth > 0 {
		// prepared embedder only errors before Prepare
		if tv, err := s.text.Embed(rec.Description); err == nil {
			copy(vec[s.layout.TextOffset:], tv)
		}
	}
	if i, ok := s.categories[rec.Category]; ok {
		vec[s.layout.CategoryOffset+i] = 1
	}
	vec[s.layout.IDOffset] = s.id.apply(rec.ID)
	for j, f := range s.fields {
		vec[s.layout.NumericOffset+j] = s.numeric[j].apply(rec.Nutrients[f])
	}
	return vec
}

// TransformAll encodes records in order.
func (s *State) TransformAll(records []domain.FoodRecord) [][]float64 {
	out := make([][]float64, len(records))
	for i, r := range records {
		out[i] = s.Transform(r)
	}
	return out
}

// Vocabulary returns the fitted text terms, sorted.
func (s *State) Vocabulary() []string {
	if v, ok := s.text.(interface{ Vocabulary() []string }); ok {
		return v.Vocabulary()
	}
	return nil
}
