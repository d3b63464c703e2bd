package config

import (
	"io"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/infra/actions"
)

// Output holds where step outputs are written
type Output struct {
	GitHubOutput string
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-output",
			Usage:       "File step outputs are appended to; printed to stdout when empty",
			Destination: &c.GitHubOutput,
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
		},
	}
}

// NewReporter creates a reporter writing workflow commands to w
func (c *Output) NewReporter(w io.Writer) *actions.Reporter {
	return actions.New(
		actions.WithOutputFile(c.GitHubOutput),
		actions.WithWriter(w),
	)
}
