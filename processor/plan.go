// Package processor drives one generation run: it builds the ordered
// column plan a configuration describes, then repeatedly asks each
// column's Strategy for its next chunk of values, applies masks, and
// hands finished chunks to a Writer. NormalProcessor and StreamingProcessor
// share this plan and differ only in how many rows they materialize per
// Table.
package processor

import (
	"fmt"

	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/mask"
	"github.com/genforge/genforge/strategy"
	"github.com/genforge/genforge/table"
	"github.com/genforge/genforge/types"
)

// columnPlan is one output column's generation recipe: a persistent
// Strategy instance (state survives across chunks), an optional compiled
// mask, and whether the column is dropped before reaching a Writer.
type columnPlan struct {
	name         string
	strategyName string
	instance     strategy.Strategy
	mask         *mask.Mask
	maskSource   string
	intermediate bool
	columnType   types.ColumnType
}

// plan is the full ordered recipe for one run, built once from the
// validated configuration and reused by every chunk NormalProcessor or
// StreamingProcessor materializes.
type plan struct {
	columns []columnPlan
}

// buildPlan flattens doc.Configs into one columnPlan per target column, in
// configuration order, instantiating a distinct Strategy per column (even
// when one StrategyConfig lists several names) since each column owns its
// own random source and progression state.
func buildPlan(doc *config.Document, masterSeed uint64, handler *errs.Handler) (*plan, error) {
	p := &plan{}
	typeByName := make(map[string]types.ColumnType)

	for _, sc := range doc.Configs {
		if sc.Disabled {
			continue
		}
		for _, name := range sc.Names {
			inst, err := strategy.Create(sc.Strategy.Name, name, masterSeed, sc.Strategy.Params)
			if err != nil {
				return nil, err
			}
			if err := inst.Validate(); err != nil {
				return nil, err
			}

			var compiled *mask.Mask
			if sc.Mask != "" {
				m, err := mask.Compile(sc.Mask)
				if err != nil {
					handler.Record(errs.ProcessingWarning("PROC_BAD_MASK",
						fmt.Sprintf("mask %q failed to compile, falling back to all rows: %v", sc.Mask, err),
						errs.Context{Strategy: sc.Strategy.Name, Column: name}))
				} else {
					compiled = m
				}
			}

			ct := inferColumnType(sc.Strategy.Name, inst, typeByName[name])
			typeByName[name] = ct

			p.columns = append(p.columns, columnPlan{
				name:         name,
				strategyName: sc.Strategy.Name,
				instance:     inst,
				mask:         compiled,
				maskSource:   sc.Mask,
				intermediate: sc.Intermediate,
				columnType:   ct,
			})
		}
	}

	return p, nil
}

// inferColumnType assigns the Dtypes()-reported logical type for a column
// from the strategy that produces it. Replacement and Delete never change
// a column's type, so they inherit whatever type was already on record for
// that column name (set by the strategy that generated it earlier in the
// same configuration).
func inferColumnType(strategyName string, inst strategy.Strategy, existing types.ColumnType) types.ColumnType {
	switch strategyName {
	case "Replacement", "Delete":
		if existing != "" {
			return existing
		}
		return types.ColumnString
	case "NumberRange":
		if state := inst.DescribeState(); state["both_integer"] == true {
			return types.ColumnInteger
		}
		return types.ColumnFloating
	case "DistributedNumberRange":
		return types.ColumnFloating
	case "Series":
		return types.ColumnFloating
	case "DateGenerator", "DistributedDateRange":
		return types.ColumnDate
	case "TimeRange", "DistributedTimeRange":
		return types.ColumnTime
	case "DistributedChoice":
		return types.ColumnCategorical
	case "Pattern", "RandomName", "Concat":
		return types.ColumnString
	default:
		return types.ColumnString
	}
}

// columnMetas returns the Table schema this plan describes, in
// configuration order.
func (p *plan) columnMetas() []table.ColumnMeta {
	metas := make([]table.ColumnMeta, len(p.columns))
	for i, c := range p.columns {
		metas[i] = table.ColumnMeta{Name: c.name, Type: c.columnType, Intermediate: c.intermediate}
	}
	return metas
}

// resetAll rewinds every column's strategy to its initial seed-determined
// state. Neither NormalProcessor nor StreamingProcessor calls it: each Run
// builds a fresh plan, whose strategies start in that state already.
func (p *plan) resetAll() {
	for _, c := range p.columns {
		c.instance.Reset()
	}
}
