package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"

	"github.com/m-mizutani/autotag/pkg/cli/config"
	"github.com/m-mizutani/autotag/pkg/domain/model"
)

// boundary writes the outputs of a run and reports its failure, if any
type boundary struct {
	output *config.Output
	sentry *config.Sentry
	stdout func() io.Writer

	done bool
}

func (b *boundary) writer() io.Writer {
	if b.stdout != nil {
		if w := b.stdout(); w != nil {
			return w
		}
	}
	return os.Stdout
}

func (b *boundary) finish(ctx context.Context, outputs *model.Outputs, err error) error {
	b.done = true
	logger := ctxlog.From(ctx)
	reporter := b.output.NewReporter(b.writer())

	if err != nil {
		reporter.Warning(err.Error())
		reporter.Error(err.Error())
		b.sentry.Capture(ctx, err)
	}

	if err == nil {
		reporter.Debug("tagrequested=" + outputs.TagRequested + " tagcreated=" + model.YesNo(outputs.TagCreated))
	}

	if wErr := reporter.SetOutputs(outputs.List()); wErr != nil {
		if err == nil {
			return wErr
		}
		logger.Error("Failed to write outputs", slog.Any("error", wErr))
	}

	return err
}
