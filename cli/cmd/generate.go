package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/genforge/genforge/cli/render"
	"github.com/genforge/genforge/cli/tui"
	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/orchestrator"
	"github.com/genforge/genforge/rng"
	"github.com/genforge/genforge/types"
)

// Exit codes per spec §6.6.
const (
	exitSuccess     = 0
	exitConfigError = 1
	exitRuntimeErr  = 2
)

const minRows = 1

// GenerateCommand returns the generate command, the CLI's one execution
// entrypoint: load + validate a configuration document, select a
// processor/writer pair, and run it to completion.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a synthetic dataset from a configuration document",
		ArgsUsage: "<config-path>",
		Flags: []cli.Flag{
			FormatFlag,
			NoColorFlag,
			&cli.StringFlag{Name: "run-id", Usage: "Run identifier (default: a generated UUID)"},
			&cli.Uint64Flag{Name: "seed", Usage: "Master RNG seed override (default: config's seed, or random entropy)"},
			&cli.BoolFlag{Name: "progress", Usage: "Show a live progress bar while generating"},
			&cli.StringFlag{Name: "report", Usage: "Path to write the structured error report to (- for stderr)"},
			&cli.StringFlag{Name: "report-format", Usage: "json or both (json plus a .msgpack twin)", Value: "json"},
			&cli.IntFlag{Name: "report-error-threshold", Usage: "Export the report when the ERROR count exceeds this, even without a CRITICAL (0 disables)", Value: 0},
		},
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("generate: a config path is required", exitConfigError)
	}

	doc, err := config.Load(path)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	masterSeed := rng.EntropySeed()
	if doc.Seed != nil {
		masterSeed = *doc.Seed
	}
	if c.IsSet("seed") {
		masterSeed = c.Uint64("seed")
	}

	runID := c.String("run-id")
	if runID == "" {
		runID = uuid.NewString()
	}

	reportFormat, err := parseReportFormat(c.String("report-format"))
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	opts := orchestrator.Options{
		MinRows:              minRows,
		ReportPath:           c.String("report"),
		ReportFormat:         reportFormat,
		ReportErrorThreshold: c.Int("report-error-threshold"),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var progress *tui.ProgressReporter
	if c.Bool("progress") {
		progress = tui.NewProgressReporter(doc.NumOfRows)
		defer progress.Stop()
		opts.OnProgress = progress.Update
	}

	o := orchestrator.New(doc, masterSeed, opts)
	summary, err := o.Run(ctx, types.RunMeta{RunID: runID, ConfigName: doc.Metadata.Name})
	if progress != nil {
		progress.Finish(summary)
	}
	if err != nil {
		return cli.Exit(err.Error(), exitRuntimeErr)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if err := r.Render(summary); err != nil {
		return err
	}

	switch summary.Status {
	case types.OutcomeSuccess:
		return nil
	case types.OutcomeConfigError:
		return cli.Exit("", exitConfigError)
	default:
		return cli.Exit("", exitRuntimeErr)
	}
}

func parseReportFormat(s string) (orchestrator.ReportFormat, error) {
	switch s {
	case "", "json":
		return orchestrator.ReportFormatJSON, nil
	case "both":
		return orchestrator.ReportFormatBoth, nil
	default:
		return "", fmt.Errorf("invalid report-format %q (must be json or both)", s)
	}
}
