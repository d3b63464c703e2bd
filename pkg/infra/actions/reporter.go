package actions

import (
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sethvargo/go-githubactions"

	"github.com/m-mizutani/autotag/pkg/domain/model"
)

const outputFileEnv = "GITHUB_OUTPUT"

// Reporter writes workflow commands and step outputs in the format GitHub
// Actions runners understand.
type Reporter struct {
	outputFile string
	stdout     io.Writer
}

// Option is a functional option for Reporter
type Option func(*Reporter)

// WithOutputFile sets the file outputs are appended to ($GITHUB_OUTPUT).
// When empty, outputs are issued as set-output commands on the writer.
func WithOutputFile(path string) Option {
	return func(r *Reporter) {
		r.outputFile = path
	}
}

// WithWriter sets the destination of workflow commands
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		r.stdout = w
	}
}

// New creates a Reporter
func New(opts ...Option) *Reporter {
	r := &Reporter{
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reporter) action() *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(r.stdout),
		githubactions.WithGetenv(r.getenv),
	)
}

// getenv serves the configured output file instead of the process
// environment so that --github-output is honored.
func (r *Reporter) getenv(key string) string {
	if key == outputFileEnv {
		return r.outputFile
	}
	return os.Getenv(key)
}

// Warning emits a ::warning:: annotation
func (r *Reporter) Warning(msg string) {
	r.action().Warningf("%s", msg)
}

// Error emits an ::error:: annotation
func (r *Reporter) Error(msg string) {
	r.action().Errorf("%s", msg)
}

// Debug emits a ::debug:: line, only shown when step debug logging is enabled
func (r *Reporter) Debug(msg string) {
	r.action().Debugf("%s", msg)
}

// SetOutputs writes all outputs at once
func (r *Reporter) SetOutputs(outputs []model.Output) error {
	if r.outputFile != "" {
		// githubactions panics when the file can not be written
		f, err := os.OpenFile(r.outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return goerr.Wrap(err, "failed to open output file", goerr.V("path", r.outputFile))
		}
		if err := f.Close(); err != nil {
			return goerr.Wrap(err, "failed to close output file", goerr.V("path", r.outputFile))
		}
	}

	a := r.action()
	for _, out := range outputs {
		a.SetOutput(out.Name, out.Value)
	}

	return nil
}
