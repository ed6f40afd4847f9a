package strategy

import (
	"fmt"

	"github.com/genforge/genforge/errs"
)

// Names lists every strategy variant, in the order they appear in the
// closed set. Built once at package init and never mutated; config
// validation passes it to the caller as the set of supported strategy
// names (see config.Options.KnownStrategies).
var Names = []string{
	"NumberRange",
	"DistributedNumberRange",
	"Series",
	"DateGenerator",
	"DistributedDateRange",
	"TimeRange",
	"DistributedTimeRange",
	"Pattern",
	"DistributedChoice",
	"RandomName",
	"Replacement",
	"Concat",
	"Delete",
}

// KnownNames returns Names as a set, the shape config.Options.KnownStrategies
// expects.
func KnownNames() map[string]bool {
	out := make(map[string]bool, len(Names))
	for _, n := range Names {
		out[n] = true
	}
	return out
}

// Create builds a Strategy instance for name, bound to columnName, seeded
// from masterSeed and configured from params. An unrecognized name yields a
// CONFIG:CRITICAL error with code CFG_BAD_STRATEGY — config validation is
// expected to have already rejected this case, so reaching Create with an
// unknown name here indicates the registry and the validator's
// KnownStrategies set have drifted apart.
func Create(name, columnName string, masterSeed uint64, params map[string]any) (Strategy, error) {
	switch name {
	case "NumberRange":
		return NewNumberRange(columnName, masterSeed, params), nil
	case "DistributedNumberRange":
		return NewDistributedNumberRange(columnName, masterSeed, params), nil
	case "Series":
		return NewSeries(columnName, params), nil
	case "DateGenerator":
		return NewDateGenerator(columnName, masterSeed, params)
	case "DistributedDateRange":
		return NewDistributedDateRange(columnName, masterSeed, params)
	case "TimeRange":
		return NewTimeRange(columnName, masterSeed, params)
	case "DistributedTimeRange":
		return NewDistributedTimeRange(columnName, masterSeed, params)
	case "Pattern":
		return NewPattern(columnName, masterSeed, params)
	case "DistributedChoice":
		return NewDistributedChoice(columnName, masterSeed, params), nil
	case "RandomName":
		return NewRandomName(columnName, masterSeed, params), nil
	case "Replacement":
		return NewReplacement(params), nil
	case "Concat":
		return NewConcat(params), nil
	case "Delete":
		return NewDelete(), nil
	default:
		return nil, errs.ConfigCritical("CFG_BAD_STRATEGY",
			fmt.Sprintf("unsupported strategy: %s", name),
			errs.Context{Strategy: name, Column: columnName})
	}
}
