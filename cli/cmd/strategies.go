package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/genforge/genforge/cli/render"
	"github.com/genforge/genforge/strategy"
)

// StrategyDescription is one entry of the describe_strategies() response:
// the strategy's name, a one-line semantic summary, and its key parameter
// names, per spec §4.3's closed set.
type StrategyDescription struct {
	Name       string   `json:"name"`
	Summary    string   `json:"summary"`
	Parameters []string `json:"parameters"`
}

// strategyDescriptions is the closed-set catalog backing the strategies
// command. Kept as a static table rather than derived from a Strategy
// instance's DescribeState (which reports runtime state, not parameter
// schema).
var strategyDescriptions = []StrategyDescription{
	{"NumberRange", "Uniform value over [start, end]; integer iff both bounds are integer.", []string{"start", "end", "seed"}},
	{"DistributedNumberRange", "Weighted union of numeric sub-ranges; weights must sum to 100.", []string{"ranges"}},
	{"Series", "Arithmetic progression start, start+step, ...", []string{"start", "step"}},
	{"DateGenerator", "Uniform date in [start_date, end_date] at day resolution.", []string{"start_date", "end_date", "format", "output_format"}},
	{"DistributedDateRange", "Weighted union of date ranges.", []string{"ranges"}},
	{"TimeRange", "Uniform time in [start_time, end_time]; overnight wrap if end < start.", []string{"start_time", "end_time", "format"}},
	{"DistributedTimeRange", "Weighted union of time ranges, supports overnight wrap.", []string{"ranges"}},
	{"Pattern", "Random string matching a regex; unique guarantees distinct values up to 3n tries.", []string{"regex", "unique"}},
	{"DistributedChoice", "Categorical with integer weights summing to 100.", []string{"choices"}},
	{"RandomName", "Name drawn from a bundled list: first/last/full, gender filter, case format.", []string{"name_type", "gender", "case"}},
	{"Replacement", "Replaces all occurrences of from_value with to_value in the existing column.", []string{"from_value", "to_value"}},
	{"Concat", "prefix + str(lhs_col) + separator + str(rhs_col) + suffix, row-wise.", []string{"lhs_col", "rhs_col", "prefix", "separator", "suffix"}},
	{"Delete", "Yields null for all rows the mask matches.", nil},
}

// StrategiesCommand returns the strategies command: list_strategies() and
// describe_strategies() from spec §6.5, exposed as one read-only
// subcommand with a --describe flag rather than two near-identical ones.
func StrategiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "strategies",
		Usage: "List the closed set of strategy variants",
		Flags: append(ReadOnlyFlags(), &cli.BoolFlag{
			Name:  "describe",
			Usage: "Include semantics and parameter names for each strategy",
		}),
		Action: strategiesAction,
	}
}

func strategiesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if c.Bool("describe") {
		return r.Render(strategyDescriptions)
	}
	return r.Render(strategy.Names)
}
