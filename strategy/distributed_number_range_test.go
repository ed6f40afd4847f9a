package strategy

import "testing"

func rangesParam(entries ...map[string]any) map[string]any {
	raw := make([]any, len(entries))
	for i, e := range entries {
		raw[i] = e
	}
	return map[string]any{"ranges": raw}
}

func TestDistributedNumberRange_Validate_WeightSum(t *testing.T) {
	s := NewDistributedNumberRange("col", 1, rangesParam(
		map[string]any{"start": 0, "end": 10, "distribution": 50.0},
		map[string]any{"start": 10, "end": 20, "distribution": 40.0},
	))
	if err := s.Validate(); err == nil {
		t.Fatal("expected weight-sum error for 90")
	}
}

func TestDistributedNumberRange_Validate_OK(t *testing.T) {
	s := NewDistributedNumberRange("col", 1, rangesParam(
		map[string]any{"start": 0, "end": 10, "distribution": 60.0},
		map[string]any{"start": 10, "end": 20, "distribution": 40.0},
	))
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDistributedNumberRange_ValuesWithinUnion(t *testing.T) {
	s := NewDistributedNumberRange("col", 1, rangesParam(
		map[string]any{"start": 0, "end": 10, "distribution": 60.0},
		map[string]any{"start": 100, "end": 110, "distribution": 40.0},
	))
	values, err := s.GenerateChunk(50)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		n := v.(int)
		if !((n >= 0 && n <= 10) || (n >= 100 && n <= 110)) {
			t.Fatalf("value %d outside both sub-ranges", n)
		}
	}
}

func TestDistributedNumberRange_ChunkEquivalence(t *testing.T) {
	assertChunkEquivalence(t, "DistributedNumberRange", func() Strategy {
		return NewDistributedNumberRange("col", 7, rangesParam(
			map[string]any{"start": 0, "end": 10, "distribution": 30.0},
			map[string]any{"start": 10, "end": 20, "distribution": 70.0},
		))
	}, 40, []int{11, 9, 20})
}
