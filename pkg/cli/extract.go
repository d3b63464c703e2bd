package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/cli/config"
	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/usecase"
)

func cmdExtract() *cli.Command {
	var (
		tagCfg  config.Tag
		fileCfg config.File
	)

	var flags []cli.Flag
	flags = append(flags, tagCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)

	return &cli.Command{
		Name:  "extract",
		Usage: "Print the detected version and tag name without calling the GitHub API",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := fileCfg.Apply(&tagCfg); err != nil {
				return err
			}

			req, err := tagCfg.ExtractRequest(ctx)
			if err != nil {
				return err
			}

			version, err := usecase.NewVersionExtractor().Extract(ctx, req)
			if err != nil {
				return goerr.Wrap(err, "no version identified "+req.Describe())
			}

			tag := model.NewTagDescriptor(tagCfg.Prefix, version, tagCfg.Suffix, tagCfg.Message)

			w := c.Root().Writer
			fmt.Fprintf(w, "%s=%s\n", model.OutputVersion, version)
			fmt.Fprintf(w, "%s=%s\n", model.OutputTagRequested, tag.Name)
			fmt.Fprintf(w, "%s=%s\n", model.OutputPrerelease, model.YesNo(tag.Prerelease()))
			fmt.Fprintf(w, "%s=%s\n", model.OutputBuild, model.YesNo(tag.Build()))
			return nil
		},
	}
}
