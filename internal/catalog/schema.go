package catalog

import "foodrec/internal/domain"

// Schema maps tabular column names to record fields.
type Schema struct {
	DescriptionColumn string
	CategoryColumn    string
	IDColumn          string
	NutrientColumns   []string
}

// DefaultNutrientColumns is the nutrient field list of the USDA food dataset.
var DefaultNutrientColumns = []string{
	"Data.Alpha Carotene", "Data.Beta Carotene", "Data.Beta Cryptoxanthin",
	"Data.Carbohydrate", "Data.Cholesterol", "Data.Choline", "Data.Fiber",
	"Data.Lutein and Zeaxanthin", "Data.Lycopene", "Data.Niacin", domain.FieldProtein,
	"Data.Retinol", "Data.Riboflavin", "Data.Selenium", domain.FieldSugar,
	"Data.Thiamin", "Data.Water", "Data.Fat.Monosaturated Fat",
	"Data.Fat.Polysaturated Fat", "Data.Fat.Saturated Fat",
	domain.FieldTotalFat, "Data.Major Minerals.Calcium",
	"Data.Major Minerals.Copper", "Data.Major Minerals.Iron",
	"Data.Major Minerals.Magnesium", "Data.Major Minerals.Phosphorus",
	"Data.Major Minerals.Potassium", domain.FieldSodium,
	"Data.Major Minerals.Zinc", domain.FieldVitaminA,
	"Data.Vitamins.Vitamin B12", "Data.Vitamins.Vitamin B6",
	domain.FieldVitaminC, "Data.Vitamins.Vitamin E",
	"Data.Vitamins.Vitamin K",
}

// DefaultSchema returns the column layout of food.csv.
func DefaultSchema() Schema {
	return Schema{
		DescriptionColumn: "Description",
		CategoryColumn:    "Category",
		IDColumn:          "Nutrient Data Bank Number",
		NutrientColumns:   append([]string(nil), DefaultNutrientColumns...),
	}
}

func (s Schema) withDefaults() Schema {
	def := DefaultSchema()
	if s.DescriptionColumn == "" {
		s.DescriptionColumn = def.DescriptionColumn
	}
	if s.CategoryColumn == "" {
		s.CategoryColumn = def.CategoryColumn
	}
	if s.IDColumn == "" {
		s.IDColumn = def.IDColumn
	}
	if s.NutrientColumns == nil {
		s.NutrientColumns = def.NutrientColumns
	}
	return s
}
