package summarizer

import (
	"testing"

	"foodrec/internal/catalog"
	"foodrec/internal/domain"
)

func TestSummarize(t *testing.T) {
	c, err := catalog.New(nil, []domain.FoodRecord{
		{Description: "Milk, whole", Category: "Milk"},
		{Description: "Milk, skim, with added vitamin", Category: "Milk"},
		{Description: "Cheese, cheddar", Category: "Cheese"},
		{Description: "Cheese, swiss, milk", Category: "Cheese"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := NewFrequencySummarizer().Summarize(c, 2)
	want := "4 foods across 2 categories. Common terms: milk, cheese."
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestSummarize_NoTerms(t *testing.T) {
	c, err := catalog.New(nil, []domain.FoodRecord{{Category: "x"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := NewFrequencySummarizer().Summarize(c, 3); got != "1 foods across 1 categories." {
		t.Errorf("got %q", got)
	}
}
