package strategy

import (
	"github.com/genforge/genforge/rng"
)

// TimeRange generates a random time of day between start_time and end_time,
// inclusive. If end_time's second-of-day is earlier than start_time's, the
// range is treated as crossing midnight (end wraps to the next day),
// matching the source system's 24h-wrap handling.
type TimeRange struct {
	columnName   string
	inputFormat  string
	outputFormat string
	startSeconds int
	endSeconds   int // may exceed 86400 to represent a midnight wrap
	masterSeed   uint64
	r            *rng.RNG
}

const defaultTimeFormat = "15:04:05"

// NewTimeRange constructs a TimeRange from params{start_time, end_time,
// format, output_format}; format is the layout start_time and end_time are
// parsed with.
func NewTimeRange(columnName string, masterSeed uint64, params map[string]any) (*TimeRange, error) {
	inputFormat, _ := paramString(params, "format")
	if inputFormat == "" {
		inputFormat = defaultTimeFormat
	}
	outputFormat, _ := paramString(params, "output_format")
	if outputFormat == "" {
		outputFormat = defaultTimeFormat
	}
	startRaw, _ := paramString(params, "start_time")
	endRaw, _ := paramString(params, "end_time")

	startSeconds, err := parseTimeOfDaySeconds(startRaw, inputFormat)
	if err != nil {
		return nil, validationError("TimeRange", "start_time", err.Error())
	}
	endSeconds, err := parseTimeOfDaySeconds(endRaw, inputFormat)
	if err != nil {
		return nil, validationError("TimeRange", "end_time", err.Error())
	}
	if endSeconds < startSeconds {
		endSeconds += 24 * 3600
	}

	s := &TimeRange{
		columnName:   columnName,
		inputFormat:  inputFormat,
		outputFormat: outputFormat,
		startSeconds: startSeconds,
		endSeconds:   endSeconds,
		masterSeed:   masterSeed,
	}
	s.Reset()
	return s, nil
}

func (s *TimeRange) Validate() error {
	if s.endSeconds < s.startSeconds {
		return validationError("TimeRange", "end_time", "end_time must not be before start_time")
	}
	return nil
}

func (s *TimeRange) Reset() {
	paramsHash := rng.HashParams("TimeRange", itoa(s.startSeconds), itoa(s.endSeconds))
	s.r = rng.New(s.masterSeed, s.columnName, paramsHash)
}

func (s *TimeRange) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		seconds := s.r.IntRange(s.startSeconds, s.endSeconds) % (24 * 3600)
		out[i] = formatSecondsOfDay(seconds, s.outputFormat)
	}
	return out, nil
}

func (s *TimeRange) DescribeState() map[string]any {
	return map[string]any{
		"strategy":      "TimeRange",
		"start_seconds": s.startSeconds,
		"end_seconds":   s.endSeconds,
		"seed":          s.r.Seed(),
	}
}

// parseTimeOfDaySeconds parses a time-only string with layout and returns
// its seconds-since-midnight component.
func parseTimeOfDaySeconds(raw, layout string) (int, error) {
	t, err := parseTimeLayout(raw, layout)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}
