package config

import (
	"fmt"
	"math"

	"github.com/genforge/genforge/errs"
)

// distributedStrategies is the set of strategy names whose params carry a
// weighted distribution that must sum to exactly 100.
var distributedStrategies = map[string]bool{
	"DistributedNumberRange": true,
	"DistributedDateRange":   true,
	"DistributedTimeRange":   true,
	"DistributedChoice":      true,
}

// referencingStrategies is the set of strategy names that read other
// columns by name and so are subject to the forward-reference check.
var referencingStrategies = map[string]bool{
	"Concat":      true,
	"Replacement": true,
}

// Options configures Validate with information the config package itself
// cannot know: the minimum row count in force, and the set of strategy
// names the registry actually supports (avoiding an import cycle between
// config and strategy).
type Options struct {
	MinRows         int
	KnownStrategies map[string]bool
}

// Result holds every error Validate accumulated. An empty Errors slice
// means the document is valid and Mode()/ShuffleEnabled() are safe to act
// on.
type Result struct {
	Errors []*errs.GenError
}

// OK reports whether validation found no errors.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// HasCritical reports whether any accumulated error is CRITICAL.
func (r *Result) HasCritical() bool {
	for _, e := range r.Errors {
		if e.Severity == errs.Critical {
			return true
		}
	}
	return false
}

// Validate checks doc's shape, cross-field references, and numeric
// invariants, and normalizes num_of_rows up to opts.MinRows when the
// configured value falls below it (silently, per the num_of_rows
// contract — this is not reported as an error).
func Validate(doc *Document, opts Options) *Result {
	result := &Result{}
	add := func(e *errs.GenError) { result.Errors = append(result.Errors, e) }

	if opts.MinRows <= 0 {
		opts.MinRows = 1
	}
	if doc.NumOfRows < opts.MinRows {
		doc.NumOfRows = opts.MinRows
	}

	if len(doc.ColumnName) == 0 {
		add(errs.ConfigError("CFG_NO_COLUMNS", "column_name must list at least one output column", errs.Context{}))
	}

	validateMode(doc, add)
	validateStrategyConfigs(doc, opts, add)

	return result
}

func validateMode(doc *Document, add func(*errs.GenError)) {
	hasStream := doc.Streaming != nil || doc.AMQP != nil || doc.Kafka != nil
	hasBatch := doc.BatchWriter != nil
	if hasStream && hasBatch {
		add(errs.ConfigCritical("CFG_MODE_CONFLICT",
			"configuration specifies both a streaming side document and a batch_writer side document; stream and batch are mutually exclusive",
			errs.Context{}))
	}
}

func validateStrategyConfigs(doc *Document, opts Options, add func(*errs.GenError)) {
	defined := make(map[string]bool, len(doc.Configs))

	for _, sc := range doc.Configs {
		if sc.Disabled {
			markDefined(defined, sc.Names)
			continue
		}

		ctx := errs.Context{Strategy: sc.Strategy.Name}
		if len(sc.Names) > 0 {
			ctx.Column = sc.Names[0]
		}

		if opts.KnownStrategies != nil && !opts.KnownStrategies[sc.Strategy.Name] {
			add(errs.ConfigCritical("CFG_BAD_STRATEGY",
				fmt.Sprintf("unsupported strategy name %q", sc.Strategy.Name), ctx))
			markDefined(defined, sc.Names)
			continue
		}

		if referencingStrategies[sc.Strategy.Name] {
			validateForwardReferences(sc, defined, add)
		}

		if distributedStrategies[sc.Strategy.Name] {
			validateWeightSum(sc, add)
		}

		markDefined(defined, sc.Names)
	}
}

func markDefined(defined map[string]bool, names []string) {
	for _, n := range names {
		defined[n] = true
	}
}

func validateForwardReferences(sc StrategyConfig, defined map[string]bool, add func(*errs.GenError)) {
	ctx := errs.Context{Strategy: sc.Strategy.Name}
	if len(sc.Names) > 0 {
		ctx.Column = sc.Names[0]
	}

	// Replacement has no lhs_col/rhs_col params: it transforms the column
	// named in sc.Names in place, so the forward reference is that same
	// name having already been produced by an earlier config entry.
	if sc.Strategy.Name == "Replacement" {
		for _, name := range sc.Names {
			if !defined[name] {
				add(errs.ConfigError("CFG_FORWARD_REF",
					fmt.Sprintf("column %q uses Replacement but is not yet defined by an earlier config entry", name),
					ctx))
			}
		}
		return
	}

	for _, key := range []string{"lhs_col", "rhs_col"} {
		ref, ok := sc.Strategy.Params[key].(string)
		if !ok || ref == "" {
			continue
		}
		if !defined[ref] {
			add(errs.ConfigError("CFG_FORWARD_REF",
				fmt.Sprintf("column %q references column %q which is not yet defined at this point in configs", ctx.Column, ref),
				ctx))
		}
	}
}

// validateWeightSum checks that a Distributed* strategy's weights sum to
// exactly 100, reporting the observed sum on failure per E6.
func validateWeightSum(sc StrategyConfig, add func(*errs.GenError)) {
	ctx := errs.Context{Strategy: sc.Strategy.Name}
	if len(sc.Names) > 0 {
		ctx.Column = sc.Names[0]
	}

	var sum float64
	var found bool

	switch sc.Strategy.Name {
	case "DistributedChoice":
		choices, ok := sc.Strategy.Params["choices"].(map[string]any)
		if !ok {
			return
		}
		found = true
		for _, w := range choices {
			sum += toFloat(w)
		}
	default: // DistributedNumberRange, DistributedDateRange, DistributedTimeRange
		ranges, ok := sc.Strategy.Params["ranges"].([]any)
		if !ok {
			return
		}
		found = true
		for _, r := range ranges {
			entry, ok := r.(map[string]any)
			if !ok {
				continue
			}
			sum += toFloat(entry["distribution"])
		}
	}

	if !found {
		return
	}
	if math.Abs(sum-100) > 1e-9 {
		add(errs.ConfigError("CFG_WEIGHT_SUM",
			fmt.Sprintf("weights for %s must sum to 100, observed sum=%g", sc.Strategy.Name, sum),
			ctx))
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case float32:
		return float64(n)
	default:
		return 0
	}
}
