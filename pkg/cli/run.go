package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/cli/config"
	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/usecase"
)

func cmdRun(b *boundary) *cli.Command {
	var (
		githubCfg config.GitHub
		tagCfg    config.Tag
		fileCfg   config.File
		slackCfg  config.Slack
	)

	var flags []cli.Flag
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, tagCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "run",
		Usage: "Extract the version and create the tag unless it exists",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			reporter := b.output.NewReporter(c.Root().Writer)
			outputs, err := runAutoTag(ctx, reporter, &githubCfg, &tagCfg, &fileCfg, &slackCfg)
			return b.finish(ctx, outputs, err)
		},
	}
}

func runAutoTag(
	ctx context.Context,
	reporter interfaces.Reporter,
	githubCfg *config.GitHub,
	tagCfg *config.Tag,
	fileCfg *config.File,
	slackCfg *config.Slack,
) (*model.Outputs, error) {
	logger := ctxlog.From(ctx)

	if err := githubCfg.Validate(); err != nil {
		return &model.Outputs{}, err
	}
	if err := fileCfg.Apply(tagCfg); err != nil {
		return &model.Outputs{}, err
	}

	repo, sha, err := githubCfg.Target()
	if err != nil {
		return &model.Outputs{}, err
	}

	req, err := tagCfg.Request(ctx, repo, sha)
	if err != nil {
		return &model.Outputs{}, err
	}

	logger.Debug("Loaded configuration",
		slog.Any("github", githubCfg),
		slog.Any("tag", tagCfg),
		slog.Any("slack", slackCfg),
	)

	githubClient, err := githubCfg.NewClient()
	if err != nil {
		return &model.Outputs{}, err
	}

	var opts []usecase.AutoTagOption
	if notifier := slackCfg.Notifier(); notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}

	uc := usecase.NewAutoTag(
		usecase.NewVersionExtractor(),
		usecase.NewTagPublisher(githubClient),
		reporter,
		opts...,
	)

	return uc.Run(ctx, req)
}
