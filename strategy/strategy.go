// Package strategy implements the closed set of column generators: each
// Strategy variant is bound to one column, owns its own random source and
// private state, and produces values one chunk at a time under the
// reset-then-regenerate equivalence every variant must satisfy.
package strategy

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"

	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/table"
)

// Strategy is the capability set every variant implements.
type Strategy interface {
	// Validate checks the strategy's parameters, returning a non-nil
	// *errs.GenError (CONFIG:ERROR) on the first problem found. Must be
	// called, and must succeed, before any call to GenerateChunk.
	Validate() error

	// GenerateChunk produces exactly n values, advancing internal state.
	// Pattern with unique=true also returns n values, but may fill some of
	// them by resampling already-emitted values once its attempt budget is
	// spent.
	GenerateChunk(n int) ([]any, error)

	// Reset restores state to the initial seed-determined state. Calling
	// GenerateChunk(n) after Reset, twice in a row, must produce identical
	// sequences both times.
	Reset()

	// DescribeState returns a snapshot of internal state for debug and
	// test assertions.
	DescribeState() map[string]any
}

// TableBinder is implemented by strategies that read other columns of the
// Table they are writing into (Concat reads lhs_col/rhs_col; Replacement
// reads its own target column's prior values). The Processor
// calls BindTable once per chunk, before GenerateChunk, with the Table (or
// chunk Table) currently being filled.
type TableBinder interface {
	BindTable(t *table.Table, columnName string)
}

// validationError builds the CONFIG:ERROR this package's Validate methods
// return for a single bad field.
func validationError(strategyName, field, reason string) error {
	return errs.ConfigError("CFG_BAD_PARAM",
		fmt.Sprintf("%s: invalid %s: %s", strategyName, field, reason),
		errs.Context{Strategy: strategyName, Column: field})
}

// --- parameter extraction helpers ---
// Configuration parameters arrive as map[string]any (decoded from YAML),
// so every strategy constructor needs the same small set of type-asserting
// accessors.

// paramString and its siblings use cast rather than a bare type assertion
// so a YAML author writing start: "10" instead of start: 10 still
// validates; the strategies care about the value, not the scalar's wire
// representation.

func paramString(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

func paramBool(params map[string]any, key string) (bool, bool) {
	v, ok := params[key]
	if !ok {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	return b, err == nil
}

// paramNumber returns the parameter's float64 value, whether it originated
// as an integral type, and whether the key was present and convertible.
func paramNumber(params map[string]any, key string) (float64, bool, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false, false
	}
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return f, true, true
	default:
		return f, false, true
	}
}

func paramMapSlice(params map[string]any, key string) ([]map[string]any, bool) {
	v, ok := params[key]
	if !ok {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}

func paramStringMap(params map[string]any, key string) (map[string]any, bool) {
	v, ok := params[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// f2s renders a float64 stably for use as an rng.HashParams component.
func f2s(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// itoa renders an int for use in error messages without importing strconv
// at every call site.
func itoa(i int) string {
	return strconv.Itoa(i)
}

// sumsTo100 reports whether sum is within floating-point tolerance of 100,
// the exact-sum-to-100 invariant every Distributed* strategy's weights
// must satisfy.
func sumsTo100(sum float64) bool {
	const epsilon = 1e-6
	diff := sum - 100
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilon
}

// toStr renders any generated or read column value as a string, the way
// Concat and display layers need it.
func toStr(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
