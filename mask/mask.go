// Package mask compiles and evaluates the boolean row-filter expressions
// used by masked strategies (e.g. Replacement, Delete) to select which rows
// of a column a transform applies to.
//
// Expressions reference already-generated column values by name, compare
// them with literals, combine comparisons with && / || / !, and test for
// null with the is_null/is_not_null functions. A mask that fails to
// compile is recorded by the processor as a PROC_BAD_MASK warning and the
// strategy is applied to all rows; one that
// fails to evaluate on some row at runtime (a type mismatch against a
// value the configuration could not have anticipated) treats that row as
// unmatched rather than aborting the run.
package mask

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Mask is a compiled row-filter expression.
type Mask struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks expression against a row shaped like
// map[string]any. Column names not present in every row are tolerated
// (AllowUndefinedVariables) since intermediate columns may be dropped
// before a later mask references an earlier one by mistake; such a
// reference simply evaluates to nil and compares as non-matching rather
// than failing compilation.
func Compile(expression string) (*Mask, error) {
	options := []expr.Option{
		expr.Function("is_null", func(params ...any) (any, error) {
			if len(params) != 1 {
				return false, fmt.Errorf("is_null requires exactly 1 argument")
			}
			return params[0] == nil, nil
		}),
		expr.Function("is_not_null", func(params ...any) (any, error) {
			if len(params) != 1 {
				return false, fmt.Errorf("is_not_null requires exactly 1 argument")
			}
			return params[0] != nil, nil
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, fmt.Errorf("mask: compile %q: %w", expression, err)
	}
	return &Mask{source: expression, program: program}, nil
}

// Source returns the original expression text.
func (m *Mask) Source() string {
	return m.source
}

// Matches evaluates the mask against a single row. A runtime evaluation
// error (e.g. comparing a string column against a numeric literal)
// results in the row being treated as unmatched, consistent with the
// compile-time AllowUndefinedVariables tolerance for columns that never
// materialize on a given row.
func (m *Mask) Matches(row map[string]any) bool {
	result, err := expr.Run(m.program, row)
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

// CountMatches returns how many of rows match m. Callers use this to
// detect the zero-match case, which strategies should surface as a
// warning rather than silently applying the underlying transform to no
// rows at all.
func (m *Mask) CountMatches(rows []map[string]any) int {
	n := 0
	for _, row := range rows {
		if m.Matches(row) {
			n++
		}
	}
	return n
}
