package strategy

import "testing"

func TestDelete_YieldsNil(t *testing.T) {
	s := NewDelete()
	values, err := s.GenerateChunk(5)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		if v != nil {
			t.Fatalf("expected nil, got %v", v)
		}
	}
}

func TestDelete_ValidateAlwaysOK(t *testing.T) {
	if err := NewDelete().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
