// Package query turns coarse user intent into a synthetic catalog-shaped
// record positioned in nutrient space by catalog quantiles.
package query

import (
	"fmt"
	"strings"

	"foodrec/internal/catalog"
	"foodrec/internal/domain"
)

// DefaultDescription stands in for an empty free-text description.
const DefaultDescription = "healthy food"

// override pins one nutrient field to a quantile of its catalog distribution.
type override struct {
	field    string
	quantile float64
}

func goalOverrides(g domain.Goal) ([]override, error) {
	switch g {
	case domain.GoalHighProtein:
		return []override{{domain.FieldProtein, 0.90}}, nil
	case domain.GoalLowFatSugar:
		return []override{{domain.FieldTotalFat, 0.10}, {domain.FieldSugar, 0.10}}, nil
	case domain.GoalHeartHealthy:
		return []override{{domain.FieldSodium, 0.10}, {domain.FieldTotalFat, 0.20}}, nil
	case domain.GoalVitaminRich:
		return []override{{domain.FieldVitaminC, 0.80}, {domain.FieldVitaminA, 0.80}}, nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidGoal, int(g))
	}
}

func dietOverrides(d domain.Diet) ([]override, error) {
	switch d {
	case domain.DietLowSugar:
		return []override{{domain.FieldSugar, 0.10}}, nil
	case domain.DietLowFat:
		return []override{{domain.FieldTotalFat, 0.10}}, nil
	case domain.DietLowSodium:
		return []override{{domain.FieldSodium, 0.10}}, nil
	case domain.DietNoPreference:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDiet, int(d))
	}
}

// Synthesizer builds query records from catalog statistics.
type Synthesizer struct {
	stats              *catalog.Stats
	defaultDescription string
}

// NewSynthesizer returns a synthesizer over stats. An empty default
// description selects DefaultDescription.
func NewSynthesizer(stats *catalog.Stats, defaultDescription string) *Synthesizer {
	if defaultDescription == "" {
		defaultDescription = DefaultDescription
	}
	return &Synthesizer{stats: stats, defaultDescription: defaultDescription}
}

// OverrideFields returns every nutrient field some goal or diet pins, in
// first-use order.
func OverrideFields() []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(ovs []override) {
		for _, ov := range ovs {
			if _, ok := seen[ov.field]; !ok {
				seen[ov.field] = struct{}{}
				out = append(out, ov.field)
			}
		}
	}
	for _, g := range domain.Goals {
		ovs, _ := goalOverrides(g)
		add(ovs)
	}
	for _, d := range domain.Diets {
		ovs, _ := dietOverrides(d)
		add(ovs)
	}
	return out
}

// Check reports an error wrapping domain.ErrUnknownField when the catalog
// lacks a field that some goal or diet override targets.
func (s *Synthesizer) Check() error {
	for _, f := range OverrideFields() {
		if _, err := s.stats.Mean(f); err != nil {
			return err
		}
	}
	return nil
}

// Synthesize starts from the catalog's mean profile, applies the goal
// overrides and then the diet overrides. Diet wins on shared fields.
func (s *Synthesizer) Synthesize(goal domain.Goal, diet domain.Diet, categoryHint, freeText string) (domain.FoodRecord, error) {
	goalOv, err := goalOverrides(goal)
	if err != nil {
		return domain.FoodRecord{}, err
	}
	dietOv, err := dietOverrides(diet)
	if err != nil {
		return domain.FoodRecord{}, err
	}

	fields := s.stats.Fields()
	rec := domain.FoodRecord{
		ID:          s.stats.MedianID(),
		Description: freeText,
		Category:    categoryHint,
		Nutrients:   make(map[string]float64, len(fields)),
	}
	if strings.TrimSpace(rec.Description) == "" {
		rec.Description = s.defaultDescription
	}
	if rec.Category == "" {
		rec.Category = s.stats.ModeCategory()
	}
	for _, f := range fields {
		m, err := s.stats.Mean(f)
		if err != nil {
			return domain.FoodRecord{}, err
		}
		rec.Nutrients[f] = m
	}
	for _, ov := range append(goalOv, dietOv...) {
		v, err := s.stats.Quantile(ov.field, ov.quantile)
		if err != nil {
			return domain.FoodRecord{}, fmt.Errorf("override %s: %w", ov.field, err)
		}
		rec.Nutrients[ov.field] = v
	}
	return rec, nil
}
