// Package catalog holds the immutable food catalog, its tabular loaders and
// the field statistics computed over it once at startup.
package catalog

import (
	"fmt"
	"math"
	"sort"

	"foodrec/internal/domain"
)

// Catalog is an ordered, fixed-size collection of food records. Row order
// is the stable index used by the similarity index and by deduplication.
type Catalog struct {
	fields  []string
	records []domain.FoodRecord
}

// New validates records against the nutrient schema and returns a catalog.
// Records missing a nutrient key get it zero-filled.
func New(fields []string, records []domain.FoodRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			return nil, fmt.Errorf("%w: duplicate nutrient field %q", domain.ErrMalformedCatalog, f)
		}
		seen[f] = struct{}{}
	}
	out := make([]domain.FoodRecord, len(records))
	for i, r := range records {
		if math.IsNaN(r.ID) || math.IsInf(r.ID, 0) {
			return nil, fmt.Errorf("%w: row %d id is not finite", domain.ErrMalformedCatalog, i)
		}
		if r.Category == "" {
			return nil, fmt.Errorf("%w: row %d has empty category", domain.ErrMalformedCatalog, i)
		}
		nutrients := make(map[string]float64, len(fields))
		for _, f := range fields {
			v := r.Nutrients[f]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d field %q is not finite", domain.ErrMalformedCatalog, i, f)
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: row %d field %q is negative", domain.ErrMalformedCatalog, i, f)
			}
			nutrients[f] = v
		}
		r.Nutrients = nutrients
		out[i] = r
	}
	return &Catalog{fields: append([]string(nil), fields...), records: out}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Fields returns the nutrient schema in its fixed order.
func (c *Catalog) Fields() []string { return append([]string(nil), c.fields...) }

// Record returns the record at row i.
func (c *Catalog) Record(i int) domain.FoodRecord { return c.records[i] }

// Records returns a copy of the record slice header; records themselves must not be mutated.
func (c *Catalog) Records() []domain.FoodRecord {
	return append([]domain.FoodRecord(nil), c.records...)
}

// Descriptions returns every description in row order.
func (c *Catalog) Descriptions() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Description
	}
	return out
}

// Categories returns the sorted distinct categories.
func (c *Catalog) Categories() []string {
	set := make(map[string]struct{})
	for _, r := range c.records {
		set[r.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for cat := range set {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
