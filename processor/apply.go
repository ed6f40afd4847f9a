package processor

import (
	"fmt"

	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/strategy"
	"github.com/genforge/genforge/table"
)

// applyColumn generates one chunk's worth of values for a single column
// plan and writes them into t, honoring the optional mask: rows the mask
// does not match keep whatever value the column already holds (null unless
// an earlier config entry wrote the column), while the
// strategy itself always advances by exactly t.Rows() values regardless
// of masking, since chunk equivalence must hold independent of any mask.
func applyColumn(t *table.Table, cp columnPlan, handler *errs.Handler) {
	if binder, ok := cp.instance.(strategy.TableBinder); ok {
		binder.BindTable(t, cp.name)
	}

	n := t.Rows()
	values, err := cp.instance.GenerateChunk(n)
	if err != nil {
		handler.Record(classifyStrategyErr(err, cp))
		return
	}

	if cp.mask == nil {
		for i, v := range values {
			t.Set(cp.name, i, v)
		}
		return
	}

	matches := make([]bool, n)
	matched := 0
	for i := 0; i < n; i++ {
		if cp.mask.Matches(t.Row(i)) {
			matches[i] = true
			matched++
		}
	}

	if matched == 0 {
		handler.Record(errs.ProcessingWarning("PROC_MASK_NO_MATCH",
			fmt.Sprintf("mask %q matched zero rows for column %q; column left unchanged", cp.maskSource, cp.name),
			errs.Context{Strategy: cp.strategyName, Column: cp.name}))
		return
	}

	for i := 0; i < len(values) && i < n; i++ {
		if matches[i] {
			t.Set(cp.name, i, values[i])
		}
	}
}

// classifyStrategyErr wraps a GenerateChunk failure as a recordable
// GenError, preserving an already-classified error (the strategy package
// raises errs.ConfigError/StrategyError directly in some paths) rather
// than double-wrapping it.
func classifyStrategyErr(err error, cp columnPlan) *errs.GenError {
	if ge, ok := err.(*errs.GenError); ok {
		return ge
	}
	return errs.StrategyError("STRAT_RUNTIME_ERROR", err.Error(),
		errs.Context{Strategy: cp.strategyName, Column: cp.name})
}
