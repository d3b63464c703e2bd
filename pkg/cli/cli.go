package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/cli/config"
	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		outputCfg config.Output
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	b := &boundary{output: &outputCfg, sentry: &sentryCfg}

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, outputCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:           "autotag",
		Usage:          "Create a Git tag from the version of a package.json, Dockerfile or any file",
		Version:        types.Version,
		Flags:          flags,
		DefaultCommand: "run",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			logger = logger.With(slog.String("run_id", uuid.NewString()))

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdRun(b),
			cmdExtract(),
		},
	}
	b.stdout = func() io.Writer { return app.Writer }

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))

		// Failures before the run command reached its own boundary, e.g. flag
		// validation, still produce the default outputs.
		if !b.done {
			_ = b.finish(ctxlog.With(ctx, logger), &model.Outputs{}, err)
		}
		return err
	}

	return nil
}
