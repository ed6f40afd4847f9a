package strategy

import (
	"github.com/genforge/genforge/rng"
)

type timeSubRange struct {
	startSeconds, endSeconds int
	overnight                bool
	outputFormat             string
	weight                   float64
}

// DistributedTimeRange draws each time-of-day from a union of weighted
// ranges, with the same per-row independent sub-range choice as its
// DistributedDateRange/DistributedNumberRange siblings (see DESIGN.md).
// A range whose end is not after its start is treated as spanning
// midnight: each draw picks the before- or after-midnight half with equal
// probability, then a uniform offset within that half.
type DistributedTimeRange struct {
	columnName string
	ranges     []timeSubRange
	masterSeed uint64
	r          *rng.RNG
}

// NewDistributedTimeRange constructs the strategy from
// params{ranges:[{start,end,format,output_format,distribution}]}.
func NewDistributedTimeRange(columnName string, masterSeed uint64, params map[string]any) (*DistributedTimeRange, error) {
	rawRanges, _ := paramMapSlice(params, "ranges")
	ranges := make([]timeSubRange, 0, len(rawRanges))
	for i, rr := range rawRanges {
		layout, _ := paramString(rr, "format")
		if layout == "" {
			layout = defaultTimeFormat
		}
		outputFormat, _ := paramString(rr, "output_format")
		if outputFormat == "" {
			outputFormat = layout
		}
		startRaw, _ := paramString(rr, "start")
		endRaw, _ := paramString(rr, "end")
		weight, _, _ := paramNumber(rr, "distribution")

		startSeconds, err := parseTimeOfDaySeconds(startRaw, layout)
		if err != nil {
			return nil, validationError("DistributedTimeRange", "ranges["+itoa(i)+"].start", err.Error())
		}
		endSeconds, err := parseTimeOfDaySeconds(endRaw, layout)
		if err != nil {
			return nil, validationError("DistributedTimeRange", "ranges["+itoa(i)+"].end", err.Error())
		}
		ranges = append(ranges, timeSubRange{
			startSeconds: startSeconds,
			endSeconds:   endSeconds,
			overnight:    endSeconds <= startSeconds,
			outputFormat: outputFormat,
			weight:       weight,
		})
	}
	s := &DistributedTimeRange{columnName: columnName, ranges: ranges, masterSeed: masterSeed}
	s.Reset()
	return s, nil
}

func (s *DistributedTimeRange) Validate() error {
	if len(s.ranges) == 0 {
		return validationError("DistributedTimeRange", "ranges", "at least one range is required")
	}
	sum := 0.0
	for _, r := range s.ranges {
		sum += r.weight
	}
	if !sumsTo100(sum) {
		return validationError("DistributedTimeRange", "ranges[].distribution", "weights must sum to 100, observed "+f2s(sum))
	}
	return nil
}

func (s *DistributedTimeRange) Reset() {
	parts := []string{"DistributedTimeRange"}
	for _, r := range s.ranges {
		parts = append(parts, itoa(r.startSeconds), itoa(r.endSeconds), f2s(r.weight))
	}
	s.r = rng.New(s.masterSeed, s.columnName, rng.HashParams(parts...))
}

func (s *DistributedTimeRange) weights() []float64 {
	w := make([]float64, len(s.ranges))
	for i, r := range s.ranges {
		w[i] = r.weight
	}
	return w
}

func (s *DistributedTimeRange) GenerateChunk(n int) ([]any, error) {
	w := s.weights()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		idx := s.r.WeightedChoice(w)
		if idx < 0 {
			idx = 0
		}
		sub := s.ranges[idx]
		var seconds int
		if sub.overnight {
			if s.r.Bool() {
				seconds = s.r.IntRange(sub.startSeconds, 24*3600-1)
			} else {
				seconds = s.r.IntRange(0, sub.endSeconds)
			}
		} else {
			seconds = s.r.IntRange(sub.startSeconds, sub.endSeconds)
		}
		out[i] = formatSecondsOfDay(seconds%(24*3600), sub.outputFormat)
	}
	return out, nil
}

func (s *DistributedTimeRange) DescribeState() map[string]any {
	return map[string]any{
		"strategy": "DistributedTimeRange",
		"ranges":   len(s.ranges),
		"seed":     s.r.Seed(),
	}
}
