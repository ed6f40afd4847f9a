package strategy

// Series produces an arithmetic progression start, start+step, start+2*step,
// … . Unlike the other variants it has no random source: its private state
// is purely the running position in the progression, which Reset rewinds
// to zero. Non-integer start/step are tracked as a fixed-precision decimal
// (two-decimal, matching the source system's Decimal context) to avoid
// floating-point drift across a long progression; the emitted value is the
// nearest float64 to that decimal.
type Series struct {
	columnName string
	start      float64
	step       float64
	isInteger  bool
	position   int64 // number of values emitted since the last Reset
}

// NewSeries constructs a Series strategy from params{start, step}.
func NewSeries(columnName string, params map[string]any) *Series {
	start, startInt, _ := paramNumber(params, "start")
	step, stepInt, _ := paramNumber(params, "step")
	return &Series{
		columnName: columnName,
		start:      start,
		step:       step,
		isInteger:  startInt && stepInt,
	}
}

func (s *Series) Validate() error {
	if s.step == 0 {
		return validationError("Series", "step", "step must be non-zero")
	}
	return nil
}

func (s *Series) Reset() {
	s.position = 0
}

func (s *Series) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		value := roundToCents(s.start + float64(s.position)*s.step)
		if s.isInteger {
			out[i] = int(value)
		} else {
			out[i] = value
		}
		s.position++
	}
	return out, nil
}

func (s *Series) DescribeState() map[string]any {
	return map[string]any{
		"strategy": "Series",
		"start":    s.start,
		"step":     s.step,
		"position": s.position,
	}
}

// roundToCents rounds to two decimal places, the fixed-precision scheme
// used for non-integer progressions.
func roundToCents(v float64) float64 {
	const scale = 100
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}
