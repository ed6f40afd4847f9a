package strategy

import (
	"github.com/genforge/genforge/table"
)

// Replacement transforms an already-generated column in place: any value
// equal to from_value becomes to_value, everything else passes through
// unchanged. It generates no values of its own, which is why it implements
// TableBinder rather than holding an RNG.
type Replacement struct {
	fromValue any
	toValue   any
	t         *table.Table
	column    string
}

// NewReplacement constructs a Replacement strategy from params{from_value,
// to_value}.
func NewReplacement(params map[string]any) *Replacement {
	return &Replacement{
		fromValue: params["from_value"],
		toValue:   params["to_value"],
	}
}

func (s *Replacement) Validate() error {
	if s.fromValue == nil && s.toValue == nil {
		return validationError("Replacement", "from_value/to_value", "both from_value and to_value must be set")
	}
	return nil
}

func (s *Replacement) BindTable(t *table.Table, columnName string) {
	s.t = t
	s.column = columnName
}

func (s *Replacement) Reset() {}

func (s *Replacement) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	if s.t == nil || !s.t.Has(s.column) {
		return out, nil
	}
	existing := s.t.Column(s.column)
	for i := 0; i < n && i < len(existing); i++ {
		if existing[i] == s.fromValue {
			out[i] = s.toValue
		} else {
			out[i] = existing[i]
		}
	}
	return out, nil
}

func (s *Replacement) DescribeState() map[string]any {
	return map[string]any{
		"strategy":   "Replacement",
		"from_value": s.fromValue,
		"to_value":   s.toValue,
	}
}
