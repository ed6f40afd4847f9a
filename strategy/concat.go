package strategy

import (
	"github.com/genforge/genforge/table"
)

// Concat builds its column's values from two other columns already present
// in the same chunk: prefix + lhs + separator + rhs + suffix. Both source
// columns must be defined earlier in the configuration than the Concat
// column itself (checked at config-validation time, not here) so that,
// within a single-pass chunk fill, their values already exist when Concat
// runs.
type Concat struct {
	lhsCol, rhsCol      string
	prefix, suffix, sep string
	t                   *table.Table
}

// NewConcat constructs a Concat strategy from params{lhs_col, rhs_col,
// prefix?, suffix?, separator?}.
func NewConcat(params map[string]any) *Concat {
	lhs, _ := paramString(params, "lhs_col")
	rhs, _ := paramString(params, "rhs_col")
	prefix, _ := paramString(params, "prefix")
	suffix, _ := paramString(params, "suffix")
	sep, _ := paramString(params, "separator")
	return &Concat{lhsCol: lhs, rhsCol: rhs, prefix: prefix, suffix: suffix, sep: sep}
}

func (s *Concat) Validate() error {
	if s.lhsCol == "" {
		return validationError("Concat", "lhs_col", "lhs_col is required")
	}
	if s.rhsCol == "" {
		return validationError("Concat", "rhs_col", "rhs_col is required")
	}
	return nil
}

func (s *Concat) BindTable(t *table.Table, columnName string) {
	s.t = t
}

func (s *Concat) Reset() {}

func (s *Concat) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	if s.t == nil || !s.t.Has(s.lhsCol) || !s.t.Has(s.rhsCol) {
		return out, nil
	}
	lhs := s.t.Column(s.lhsCol)
	rhs := s.t.Column(s.rhsCol)
	for i := 0; i < n && i < len(lhs) && i < len(rhs); i++ {
		out[i] = s.prefix + toStr(lhs[i]) + s.sep + toStr(rhs[i]) + s.suffix
	}
	return out, nil
}

func (s *Concat) DescribeState() map[string]any {
	return map[string]any{
		"strategy": "Concat",
		"lhs_col":  s.lhsCol,
		"rhs_col":  s.rhsCol,
	}
}
