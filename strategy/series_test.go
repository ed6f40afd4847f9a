package strategy

import "testing"

func TestSeries_Integer(t *testing.T) {
	s := NewSeries("col", map[string]any{"start": 0, "step": 5})
	values, err := s.GenerateChunk(4)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 5, 10, 15}
	for i, w := range want {
		if values[i].(int) != w {
			t.Fatalf("position %d: want %d, got %v", i, w, values[i])
		}
	}
}

func TestSeries_ZeroStepRejected(t *testing.T) {
	s := NewSeries("col", map[string]any{"start": 0, "step": 0})
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestSeries_ChunkEquivalence(t *testing.T) {
	assertChunkEquivalence(t, "Series", func() Strategy {
		return NewSeries("col", map[string]any{"start": 100, "step": 3})
	}, 25, []int{5, 5, 15})
}

func TestSeries_ResetRewinds(t *testing.T) {
	s := NewSeries("col", map[string]any{"start": 0, "step": 1})
	assertResetRewinds(t, "Series", s, 10)
}
