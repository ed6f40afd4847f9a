package strategy

import (
	"fmt"
	"testing"
)

// assertChunkEquivalence is the property every Strategy variant must
// satisfy: resetting and drawing N values in one call must produce exactly
// the same sequence as resetting and drawing the same N values split
// across several smaller calls. newStrategy must return a fresh instance
// already positioned at its initial (just-reset) state.
func assertChunkEquivalence(t *testing.T, name string, newStrategy func() Strategy, total int, splits []int) {
	t.Helper()

	whole := newStrategy()
	wholeResult, err := whole.GenerateChunk(total)
	if err != nil {
		t.Fatalf("%s: whole GenerateChunk(%d): %v", name, total, err)
	}

	split := newStrategy()
	var splitResult []any
	for _, n := range splits {
		part, err := split.GenerateChunk(n)
		if err != nil {
			t.Fatalf("%s: split GenerateChunk(%d): %v", name, n, err)
		}
		splitResult = append(splitResult, part...)
	}

	if len(wholeResult) != len(splitResult) {
		t.Fatalf("%s: length mismatch: whole=%d split=%d", name, len(wholeResult), len(splitResult))
	}
	for i := range wholeResult {
		if fmt.Sprint(wholeResult[i]) != fmt.Sprint(splitResult[i]) {
			t.Fatalf("%s: value mismatch at %d: whole=%v split=%v", name, i, wholeResult[i], splitResult[i])
		}
	}
}

// assertResetRewinds checks that Reset makes GenerateChunk reproduce the
// same sequence it produced the first time, the other half of the
// reset-then-regenerate guarantee.
func assertResetRewinds(t *testing.T, name string, s Strategy, n int) {
	t.Helper()
	first, err := s.GenerateChunk(n)
	if err != nil {
		t.Fatalf("%s: first GenerateChunk: %v", name, err)
	}
	s.Reset()
	second, err := s.GenerateChunk(n)
	if err != nil {
		t.Fatalf("%s: second GenerateChunk: %v", name, err)
	}
	for i := range first {
		if fmt.Sprint(first[i]) != fmt.Sprint(second[i]) {
			t.Fatalf("%s: reset did not rewind at %d: first=%v second=%v", name, i, first[i], second[i])
		}
	}
}
