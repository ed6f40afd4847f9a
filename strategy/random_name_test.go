package strategy

import "testing"

func TestRandomName_Validate_BadNameType(t *testing.T) {
	s := NewRandomName("col", 1, map[string]any{"name_type": "middle"})
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unsupported name_type")
	}
}

func TestRandomName_GeneratesNonEmpty(t *testing.T) {
	s := NewRandomName("col", 1, map[string]any{"name_type": "full"})
	values, err := s.GenerateChunk(10)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		if v.(string) == "" {
			t.Fatal("expected non-empty name")
		}
	}
}

func TestRandomName_ChunkEquivalence(t *testing.T) {
	assertChunkEquivalence(t, "RandomName", func() Strategy {
		return NewRandomName("col", 11, map[string]any{"name_type": "first", "gender": "female"})
	}, 15, []int{5, 5, 5})
}
