package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
)

type autoTag struct {
	extractor interfaces.VersionExtractor
	publisher interfaces.TagPublisher
	reporter  interfaces.Reporter
	notifier  interfaces.Notifier
}

// AutoTagOption is a functional option for the AutoTag use case
type AutoTagOption func(*autoTag)

// WithNotifier announces created tags through n
func WithNotifier(n interfaces.Notifier) AutoTagOption {
	return func(uc *autoTag) {
		uc.notifier = n
	}
}

// NewAutoTag creates a new instance of AutoTagUseCase
func NewAutoTag(
	extractor interfaces.VersionExtractor,
	publisher interfaces.TagPublisher,
	reporter interfaces.Reporter,
	opts ...AutoTagOption,
) interfaces.AutoTagUseCase {
	uc := &autoTag{
		extractor: extractor,
		publisher: publisher,
		reporter:  reporter,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run extracts the version, derives the tag and creates it unless it already
// exists. When an error is returned, every tag identifying output is cleared.
func (uc *autoTag) Run(ctx context.Context, req *model.AutoTagRequest) (outputs *model.Outputs, err error) {
	logger := ctxlog.From(ctx)

	outputs = &model.Outputs{}
	defer func() {
		if err != nil {
			outputs.ClearTag()
		}
	}()

	using := req.Extract.Describe()
	version, err := uc.extractor.Extract(ctx, &req.Extract)
	if err != nil {
		return outputs, goerr.Wrap(err, "no version identified "+using,
			goerr.V("strategy", req.Extract.Strategy),
			goerr.V("pattern", req.Extract.PatternString()),
		)
	}

	uc.reporter.Warning(fmt.Sprintf("Recognized %q %s.", version, using))
	outputs.Version = version

	tag := model.NewTagDescriptor(req.TagPrefix, version, req.TagSuffix, req.TagMessage)
	if !tag.IsSemver() {
		logger.Warn("Version is not a valid semantic version, tagging anyway", "version", version)
	}

	uc.reporter.Warning(fmt.Sprintf("Attempting to create %s tag.", tag.Name))
	outputs.TagRequested = tag.Name
	outputs.Prerelease = tag.Prerelease()
	outputs.Build = tag.Build()

	exists, err := uc.publisher.Exists(ctx, req.Repository, tag)
	if err != nil {
		return outputs, err
	}
	if exists {
		uc.reporter.Warning(fmt.Sprintf("%q tag already exists.", tag.Name))
		outputs.TagName = ""
		return outputs, nil
	}

	published, err := uc.publisher.Push(ctx, req.Repository, req.CommitSHA, tag, req.Tagger)
	if err != nil {
		return outputs, err
	}
	if err := outputs.SetPublished(published); err != nil {
		return outputs, err
	}

	logger.Info("Created tag",
		"repository", req.Repository.String(),
		"tag", published.Name,
		"ref", published.Ref,
		"sha", published.SHA,
		"prerelease", tag.Prerelease(),
		"build", tag.Build(),
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyTagCreated(ctx, req.Repository, published); err != nil {
			logger.Warn("Failed to send notification", "error", err)
			uc.reporter.Warning(fmt.Sprintf("Tag %s was created but the notification failed.", published.Name))
		}
	}

	return outputs, nil
}
