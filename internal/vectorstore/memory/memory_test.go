package memory

import (
	"errors"
	"math"
	"testing"

	"foodrec/internal/domain"
)

func TestIndex_BuildSearch(t *testing.T) {
	idx, err := Build([][]float64{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 1, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 3 || idx.Dimension() != 3 {
		t.Fatalf("Len=%d Dimension=%d", idx.Len(), idx.Dimension())
	}
	hits, err := idx.Search([]float64{1, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Index != 0 || math.Abs(hits[0].Distance) > 1e-12 {
		t.Errorf("top hit should be row 0 at distance 0, got %+v", hits[0])
	}
	if hits[1].Index != 1 {
		t.Errorf("second hit should be row 1, got %+v", hits[1])
	}
}

func TestIndex_TiesByRowOrder(t *testing.T) {
	idx, err := Build([][]float64{
		{0, 1},
		{2, 0},
		{1, 0},
		{3, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search([]float64{5, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int{1, 2, 3} {
		if hits[i].Index != want {
			t.Errorf("hits[%d]=%d, want %d", i, hits[i].Index, want)
		}
	}
}

func TestIndex_ResultBoundAndMonotonic(t *testing.T) {
	vecs := make([][]float64, 7)
	for i := range vecs {
		vecs[i] = []float64{float64(i), float64(7 - i), 1}
	}
	idx, err := Build(vecs)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{1, 3, 7, 10, 50} {
		hits, err := idx.Search([]float64{1, 2, 3}, k)
		if err != nil {
			t.Fatal(err)
		}
		if want := min(k, len(vecs)); len(hits) != want {
			t.Errorf("k=%d: len=%d, want %d", k, len(hits), want)
		}
		for i := 1; i < len(hits); i++ {
			if hits[i-1].Distance > hits[i].Distance {
				t.Errorf("k=%d: distances not ascending at %d", k, i)
			}
		}
	}
	hits, _ := idx.Search([]float64{1, 2, 3}, 0)
	if len(hits) != len(vecs) {
		t.Errorf("default k clamped: len=%d", len(hits))
	}
}

func TestIndex_ZeroVector(t *testing.T) {
	idx, err := Build([][]float64{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	hits, err := idx.Search([]float64{0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range hits {
		if h.Distance != 1 || math.IsNaN(h.Distance) {
			t.Errorf("zero query distance=%v, want 1", h.Distance)
		}
	}
}

func TestIndex_Errors(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, domain.ErrEmptyIndex) {
		t.Errorf("Build(nil) err=%v", err)
	}
	if _, err := Build([][]float64{{1, 2}, {1}}); !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("ragged Build err=%v", err)
	}
	idx, err := Build([][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Search([]float64{1, 2, 3}, 1); !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("Search err=%v", err)
	}
}
