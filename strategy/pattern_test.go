package strategy

import (
	"regexp"
	"testing"
)

func TestPattern_MatchesRegex(t *testing.T) {
	s, err := NewPattern("col", 1, map[string]any{"regex": `^[A-Z]{3}-[0-9]{4}$`})
	if err != nil {
		t.Fatal(err)
	}
	values, err := s.GenerateChunk(10)
	if err != nil {
		t.Fatal(err)
	}
	re := regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)
	for _, v := range values {
		if !re.MatchString(v.(string)) {
			t.Fatalf("value %v does not match pattern", v)
		}
	}
}

func TestPattern_InvalidRegexRejected(t *testing.T) {
	_, err := NewPattern("col", 1, map[string]any{"regex": `[unterminated`})
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestPattern_UniqueValuesDistinct(t *testing.T) {
	s, err := NewPattern("col", 1, map[string]any{"regex": `[A-Z]{4}`, "unique": true})
	if err != nil {
		t.Fatal(err)
	}
	values, err := s.GenerateChunk(20)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, v := range values {
		s := v.(string)
		if seen[s] {
			// duplicates only appear once the 3n-attempt budget for fresh
			// values is exhausted and the generator starts padding from
			// already-emitted values; 20 draws from 26^4 strings never
			// need to.
			t.Errorf("duplicate value %v encountered", v)
		}
		seen[s] = true
	}
}

func TestPattern_ChunkEquivalence(t *testing.T) {
	assertChunkEquivalence(t, "Pattern", func() Strategy {
		s, err := NewPattern("col", 3, map[string]any{"regex": `[a-z]{6}`})
		if err != nil {
			t.Fatal(err)
		}
		return s
	}, 20, []int{5, 5, 10})
}
