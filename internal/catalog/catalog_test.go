package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"foodrec/internal/domain"
)

var testSchema = Schema{
	DescriptionColumn: "Description",
	CategoryColumn:    "Category",
	IDColumn:          "Nutrient Data Bank Number",
	NutrientColumns:   []string{domain.FieldProtein, domain.FieldSodium},
}

const testCSV = `Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium
Milk,"MILK,WHOLE",1001,3.2,43
Milk,"MILK,SKIM",1002,,
Cheese,"CHEESE,CHEDDAR",1003,24.9,621
`

func TestReadCSV(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(testCSV), LoadOptions{Schema: testSchema})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len=%d", c.Len())
	}
	r := c.Record(1)
	if r.Description != "MILK,SKIM" || r.Category != "Milk" || r.ID != 1002 {
		t.Errorf("unexpected record %+v", r)
	}
	if v, ok := r.Nutrients[domain.FieldProtein]; !ok || v != 0 {
		t.Errorf("empty cell should load as 0, got %v (present=%v)", v, ok)
	}
	if got := c.Categories(); len(got) != 2 || got[0] != "Cheese" || got[1] != "Milk" {
		t.Errorf("Categories=%v", got)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"header only", "Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium\n", domain.ErrEmptyCatalog},
		{"missing column", "Category,Description,Nutrient Data Bank Number\nMilk,x,1\n", domain.ErrMalformedCatalog},
		{"bad number", "Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium\nMilk,x,1,abc,2\n", domain.ErrMalformedCatalog},
		{"empty category", "Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium\n,x,1,1,2\n", domain.ErrMalformedCatalog},
		{"infinite nutrient", "Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium\nMilk,x,1,Inf,2\n", domain.ErrMalformedCatalog},
		{"infinite id", "Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium\nMilk,x,+Inf,1,2\n", domain.ErrMalformedCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), LoadOptions{Schema: testSchema})
			if !errors.Is(err, tt.want) {
				t.Errorf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadCSV_MissingValuesReadAsZero(t *testing.T) {
	for _, tok := range []string{"NaN", "nan", "-NaN", "NA", "N/A", "n/a", "NULL", "null", "#N/A", "None", "<NA>"} {
		t.Run(tok, func(t *testing.T) {
			in := "Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Major Minerals.Sodium\n" +
				"Milk,MILK,1001," + tok + ",43\n" +
				"Milk,SKIM,1002,3.4,40\n"
			c, err := ReadCSV(strings.NewReader(in), LoadOptions{Schema: testSchema})
			if err != nil {
				t.Fatal(err)
			}
			if v := c.Record(0).Nutrient(domain.FieldProtein); v != 0 {
				t.Errorf("protein=%v, want 0", v)
			}
			mean, err := NewStats(c).Mean(domain.FieldProtein)
			if err != nil {
				t.Fatal(err)
			}
			if math.IsNaN(mean) || mean != 1.7 {
				t.Errorf("mean=%v, want 1.7", mean)
			}
		})
	}
}

func TestNew_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := New([]string{"a"}, []domain.FoodRecord{{Category: "x", Nutrients: map[string]float64{"a": v}}})
		if !errors.Is(err, domain.ErrMalformedCatalog) {
			t.Errorf("value %v: err=%v", v, err)
		}
	}
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Category", "Description", "Nutrient Data Bank Number", "Data.Protein", "Data.Major Minerals.Sodium"},
		{"Fish", "SALMON,RAW", 15076, 20.4, 59},
		{"Fish", "TUNA,CANNED", 15121, 25.5, 247},
	}
	for i, row := range rows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cellName, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "food.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path, LoadOptions{Schema: testSchema})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len=%d", c.Len())
	}
	if got := c.Record(1).Nutrient(domain.FieldSodium); got != 247 {
		t.Errorf("sodium=%v", got)
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv"), LoadOptions{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestNew_ZeroFillsNutrients(t *testing.T) {
	c, err := New([]string{"a", "b"}, []domain.FoodRecord{{Category: "x", Nutrients: map[string]float64{"a": 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := c.Record(0).Nutrients["b"]; !ok || v != 0 {
		t.Errorf("missing nutrient not zero-filled: %v %v", v, ok)
	}
	if _, err := New(nil, nil); !errors.Is(err, domain.ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestQuantile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		q, want float64
	}{
		{0, 1}, {0.5, 3}, {1, 5}, {0.1, 1.4}, {0.9, 4.6}, {0.25, 2},
	}
	for _, tt := range tests {
		if got := Quantile(vals, tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Quantile(%v)=%v, want %v", tt.q, got, tt.want)
		}
	}
	if Quantile(nil, 0.5) != 0 {
		t.Error("empty quantile should be 0")
	}
}

func TestStats(t *testing.T) {
	c, err := New([]string{"p"}, []domain.FoodRecord{
		{ID: 10, Category: "b", Nutrients: map[string]float64{"p": 4}},
		{ID: 30, Category: "a", Nutrients: map[string]float64{"p": 2}},
		{ID: 20, Category: "b", Nutrients: map[string]float64{"p": 0}},
		{ID: 40, Category: "a", Nutrients: map[string]float64{"p": 6}},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := NewStats(c)
	if m, _ := s.Mean("p"); m != 3 {
		t.Errorf("Mean=%v", m)
	}
	if s.MedianID() != 25 {
		t.Errorf("MedianID=%v", s.MedianID())
	}
	if s.ModeCategory() != "a" {
		t.Errorf("ModeCategory=%q, want tie broken to a", s.ModeCategory())
	}
	if q, _ := s.Quantile("p", 0.5); q != 3 {
		t.Errorf("Quantile=%v", q)
	}
	if _, err := s.Quantile("nope", 0.5); !errors.Is(err, domain.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}
