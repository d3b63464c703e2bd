package interfaces

import (
	"context"

	"github.com/m-mizutani/autotag/pkg/domain/model"
)

// VersionExtractor extracts a version string with the requested strategy
type VersionExtractor interface {
	// Extract returns the version or an error wrapping types.ErrVersionNotFound
	Extract(ctx context.Context, req *model.ExtractRequest) (string, error)
}

// TagPublisher checks for and creates annotated tags
type TagPublisher interface {
	// Exists reports whether a tag with the descriptor's name already exists
	Exists(ctx context.Context, repo model.Repository, tag *model.TagDescriptor) (bool, error)

	// Push creates the tag object and its ref
	Push(ctx context.Context, repo model.Repository, commitSHA string, tag *model.TagDescriptor, tagger *model.Tagger) (*model.PublishedTag, error)
}

// AutoTagUseCase runs a whole extraction and tagging pass
type AutoTagUseCase interface {
	// Run always returns outputs, also when it returns an error
	Run(ctx context.Context, req *model.AutoTagRequest) (*model.Outputs, error)
}

// Reporter surfaces user facing messages of a run (workflow annotations on
// GitHub Actions)
type Reporter interface {
	Warning(msg string)
	Error(msg string)
	SetOutputs(outputs []model.Output) error
}

// Notifier announces a created tag
type Notifier interface {
	NotifyTagCreated(ctx context.Context, repo model.Repository, tag *model.PublishedTag) error
}
