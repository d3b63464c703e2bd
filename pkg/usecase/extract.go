package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

type extractFunc func(ctx context.Context, req *model.ExtractRequest) (string, error)

type versionExtractor struct {
	handlers map[model.Strategy]extractFunc
}

// NewVersionExtractor creates a VersionExtractor supporting every model.Strategy
func NewVersionExtractor() interfaces.VersionExtractor {
	return &versionExtractor{
		handlers: map[model.Strategy]extractFunc{
			model.StrategyPackage: extractFromManifest,
			model.StrategyDocker:  extractFromDockerfile,
			model.StrategyRegex:   extractWithPattern,
		},
	}
}

// Extract dispatches to the handler of req.Strategy
func (x *versionExtractor) Extract(ctx context.Context, req *model.ExtractRequest) (string, error) {
	logger := ctxlog.From(ctx)

	handler, ok := x.handlers[req.Strategy]
	if !ok {
		return "", goerr.Wrap(types.ErrInvalidConfig, "unsupported strategy", goerr.V("strategy", req.Strategy))
	}

	logger.Debug("Extracting version",
		"strategy", req.Strategy,
		"root", req.Root,
		"pattern", req.PatternString(),
	)

	version, err := handler(ctx, req)
	if err != nil {
		return "", err
	}

	logger.Debug("Detected version", "version", version)
	return version, nil
}
