package domain

import (
	"fmt"
	"strings"
)

// Nutrient columns touched by goal and diet overrides.
const (
	FieldProtein  = "Data.Protein"
	FieldTotalFat = "Data.Fat.Total Lipid"
	FieldSugar    = "Data.Sugar Total"
	FieldSodium   = "Data.Major Minerals.Sodium"
	FieldVitaminC = "Data.Vitamins.Vitamin C"
	FieldVitaminA = "Data.Vitamins.Vitamin A - RAE"
)

// Goal is the user's main nutritional goal. The zero value is not a valid goal.
type Goal int

const (
	GoalUnknown Goal = iota
	GoalHighProtein
	GoalLowFatSugar
	GoalHeartHealthy
	GoalVitaminRich
)

// Goals lists every valid goal in menu order.
var Goals = []Goal{GoalHighProtein, GoalLowFatSugar, GoalHeartHealthy, GoalVitaminRich}

// Valid reports whether g is one of the recognised goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalHighProtein, GoalLowFatSugar, GoalHeartHealthy, GoalVitaminRich:
		return true
	default:
		return false
	}
}

// Slug is the stable machine name used in APIs and config.
func (g Goal) Slug() string {
	switch g {
	case GoalHighProtein:
		return "high-protein"
	case GoalLowFatSugar:
		return "low-fat-sugar"
	case GoalHeartHealthy:
		return "heart-healthy"
	case GoalVitaminRich:
		return "vitamin-rich"
	default:
		return "unknown"
	}
}

// Label is the human-readable menu text.
func (g Goal) Label() string {
	switch g {
	case GoalHighProtein:
		return "Build muscle / High protein"
	case GoalLowFatSugar:
		return "Lose weight / Low fat & sugar"
	case GoalHeartHealthy:
		return "Heart healthy / Low sodium & fat"
	case GoalVitaminRich:
		return "Vitamin rich / Immunity boost"
	default:
		return "Unknown goal"
	}
}

func (g Goal) String() string { return g.Slug() }

// ParseGoal accepts a menu letter (a-d), a slug or a label, case-insensitively.
func ParseGoal(s string) (Goal, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, g := range Goals {
		if key == string(rune('a'+i)) || key == g.Slug() || key == strings.ToLower(g.Label()) {
			return g, nil
		}
	}
	return GoalUnknown, fmt.Errorf("%w: %q", ErrInvalidGoal, s)
}

// Diet is an optional dietary constraint. The zero value is not a valid diet.
type Diet int

const (
	DietUnknown Diet = iota
	DietLowSugar
	DietLowFat
	DietLowSodium
	DietNoPreference
)

// Diets lists every valid diet in menu order.
var Diets = []Diet{DietLowSugar, DietLowFat, DietLowSodium, DietNoPreference}

// Valid reports whether d is one of the recognised diets.
func (d Diet) Valid() bool {
	switch d {
	case DietLowSugar, DietLowFat, DietLowSodium, DietNoPreference:
		return true
	default:
		return false
	}
}

func (d Diet) Slug() string {
	switch d {
	case DietLowSugar:
		return "low-sugar"
	case DietLowFat:
		return "low-fat"
	case DietLowSodium:
		return "low-sodium"
	case DietNoPreference:
		return "no-preference"
	default:
		return "unknown"
	}
}

func (d Diet) Label() string {
	switch d {
	case DietLowSugar:
		return "Low sugar"
	case DietLowFat:
		return "Low fat"
	case DietLowSodium:
		return "Low sodium"
	case DietNoPreference:
		return "No preference"
	default:
		return "Unknown diet"
	}
}

func (d Diet) String() string { return d.Slug() }

// ParseDiet accepts a menu letter (a-d), a slug or a label, case-insensitively.
func ParseDiet(s string) (Diet, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, d := range Diets {
		if key == string(rune('a'+i)) || key == d.Slug() || key == strings.ToLower(d.Label()) {
			return d, nil
		}
	}
	return DietUnknown, fmt.Errorf("%w: %q", ErrInvalidDiet, s)
}
