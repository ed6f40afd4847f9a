package strategy

import (
	"time"

	"github.com/genforge/genforge/rng"
)

// DateGenerator produces a random calendar date between start_date and
// end_date, inclusive, formatted with output_format (default "2006-01-02").
type DateGenerator struct {
	columnName   string
	startDate    time.Time
	endDate      time.Time
	outputFormat string
	masterSeed   uint64
	r            *rng.RNG
}

// NewDateGenerator constructs a DateGenerator from params{start_date,
// end_date, format, output_format}. start_date/end_date are parsed with
// format (default "2006-01-02").
func NewDateGenerator(columnName string, masterSeed uint64, params map[string]any) (*DateGenerator, error) {
	layout, _ := paramString(params, "format")
	if layout == "" {
		layout = "2006-01-02"
	}
	outputFormat, _ := paramString(params, "output_format")
	if outputFormat == "" {
		outputFormat = "2006-01-02"
	}
	startRaw, _ := paramString(params, "start_date")
	endRaw, _ := paramString(params, "end_date")

	start, err := time.Parse(layout, startRaw)
	if err != nil {
		return nil, validationError("DateGenerator", "start_date", err.Error())
	}
	end, err := time.Parse(layout, endRaw)
	if err != nil {
		return nil, validationError("DateGenerator", "end_date", err.Error())
	}

	s := &DateGenerator{
		columnName:   columnName,
		startDate:    start,
		endDate:      end,
		outputFormat: outputFormat,
		masterSeed:   masterSeed,
	}
	s.Reset()
	return s, nil
}

func (s *DateGenerator) Validate() error {
	if s.endDate.Before(s.startDate) {
		return validationError("DateGenerator", "end_date", "end_date must not be before start_date")
	}
	return nil
}

func (s *DateGenerator) Reset() {
	paramsHash := rng.HashParams("DateGenerator", s.startDate.String(), s.endDate.String())
	s.r = rng.New(s.masterSeed, s.columnName, paramsHash)
}

func (s *DateGenerator) GenerateChunk(n int) ([]any, error) {
	totalDays := int(s.endDate.Sub(s.startDate).Hours() / 24)
	out := make([]any, n)
	for i := 0; i < n; i++ {
		offset := 0
		if totalDays > 0 {
			offset = s.r.IntRange(0, totalDays)
		}
		out[i] = s.startDate.AddDate(0, 0, offset).Format(s.outputFormat)
	}
	return out, nil
}

func (s *DateGenerator) DescribeState() map[string]any {
	return map[string]any{
		"strategy":   "DateGenerator",
		"start_date": s.startDate.Format(s.outputFormat),
		"end_date":   s.endDate.Format(s.outputFormat),
		"seed":       s.r.Seed(),
	}
}
