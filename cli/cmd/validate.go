package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/genforge/genforge/cli/render"
	"github.com/genforge/genforge/config"
	"github.com/genforge/genforge/strategy"
)

// ValidationResponse is the response for the validate command: ok, or the
// accumulated errors per spec §6.5's validate_config().
type ValidationResponse struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateCommand returns the validate command.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a configuration document without running it",
		ArgsUsage: "<config-path>",
		Flags:     ReadOnlyFlags(),
		Action:    validateAction,
	}
}

func validateAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("validate: a config path is required", exitConfigError)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	doc, err := config.Load(path)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	result := config.Validate(doc, config.Options{MinRows: minRows, KnownStrategies: strategy.KnownNames()})
	resp := ValidationResponse{OK: result.OK()}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, e.Error())
	}

	if err := r.Render(resp); err != nil {
		return err
	}
	if !result.OK() {
		return cli.Exit("", exitConfigError)
	}
	return nil
}
