package strategy

import (
	"sort"

	"github.com/genforge/genforge/rng"
)

// DistributedChoice picks a value from a fixed set of weighted choices.
// Like its numeric/date/time Distributed* siblings, the choice is made
// independently per row via rng.WeightedChoice rather than by allocating
// exact per-choice counts from the chunk size up front, so the sequence
// does not depend on chunk boundaries.
type DistributedChoice struct {
	columnName string
	choices    []string
	weights    []float64
	masterSeed uint64
	r          *rng.RNG
}

// NewDistributedChoice constructs the strategy from params{choices: {value:
// weight, ...}}. Choice order is sorted by key so Reset-then-regenerate is
// reproducible regardless of map iteration order.
func NewDistributedChoice(columnName string, masterSeed uint64, params map[string]any) *DistributedChoice {
	raw, _ := paramStringMap(params, "choices")
	choices := make([]string, 0, len(raw))
	for k := range raw {
		choices = append(choices, k)
	}
	sort.Strings(choices)

	weights := make([]float64, len(choices))
	for i, c := range choices {
		wv, _, _ := paramNumber(map[string]any{"w": raw[c]}, "w")
		weights[i] = wv
	}

	s := &DistributedChoice{columnName: columnName, choices: choices, weights: weights, masterSeed: masterSeed}
	s.Reset()
	return s
}

func (s *DistributedChoice) Validate() error {
	if len(s.choices) == 0 {
		return validationError("DistributedChoice", "choices", "at least one choice is required")
	}
	sum := 0.0
	for i, w := range s.weights {
		if w <= 0 {
			return validationError("DistributedChoice", "choices", "weight for '"+s.choices[i]+"' must be positive")
		}
		sum += w
	}
	if !sumsTo100(sum) {
		return validationError("DistributedChoice", "choices", "weights must sum to 100, observed "+f2s(sum))
	}
	return nil
}

func (s *DistributedChoice) Reset() {
	parts := []string{"DistributedChoice"}
	for i, c := range s.choices {
		parts = append(parts, c, f2s(s.weights[i]))
	}
	s.r = rng.New(s.masterSeed, s.columnName, rng.HashParams(parts...))
}

func (s *DistributedChoice) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		idx := s.r.WeightedChoice(s.weights)
		if idx < 0 {
			idx = 0
		}
		out[i] = s.choices[idx]
	}
	return out, nil
}

func (s *DistributedChoice) DescribeState() map[string]any {
	return map[string]any{
		"strategy": "DistributedChoice",
		"choices":  len(s.choices),
		"seed":     s.r.Seed(),
	}
}
