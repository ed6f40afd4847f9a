package strategy

import (
	"github.com/genforge/genforge/rng"
)

// NumberRange generates values uniformly over [start, end]. The result is
// integer-typed only when both bounds were declared as integers in the
// configuration — a 0.0 in either bound yields floats.
type NumberRange struct {
	columnName  string
	start, end  float64
	bothInteger bool
	masterSeed  uint64
	r           *rng.RNG
}

// NewNumberRange constructs a NumberRange strategy for columnName from
// params {start, end, seed?}. A seed param replaces masterSeed as the root
// of this column's random source.
func NewNumberRange(columnName string, masterSeed uint64, params map[string]any) *NumberRange {
	if seed, _, ok := paramNumber(params, "seed"); ok {
		masterSeed = uint64(seed)
	}
	start, startInt, _ := paramNumber(params, "start")
	end, endInt, _ := paramNumber(params, "end")
	s := &NumberRange{
		columnName:  columnName,
		start:       start,
		end:         end,
		bothInteger: startInt && endInt,
		masterSeed:  masterSeed,
	}
	s.Reset()
	return s
}

func (s *NumberRange) Validate() error {
	if s.start >= s.end {
		return validationError("NumberRange", "start/end", "start must be less than end")
	}
	return nil
}

func (s *NumberRange) Reset() {
	paramsHash := rng.HashParams("NumberRange", f2s(s.start), f2s(s.end))
	s.r = rng.New(s.masterSeed, s.columnName, paramsHash)
}

func (s *NumberRange) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		if s.bothInteger {
			out[i] = s.r.IntRange(int(s.start), int(s.end))
		} else {
			out[i] = s.r.Float64Range(s.start, s.end)
		}
	}
	return out, nil
}

func (s *NumberRange) DescribeState() map[string]any {
	return map[string]any{
		"strategy":     "NumberRange",
		"start":        s.start,
		"end":          s.end,
		"both_integer": s.bothInteger,
		"seed":         s.r.Seed(),
	}
}
