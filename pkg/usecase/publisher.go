package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
)

type tagPublisher struct {
	githubClient interfaces.GitHubClient
}

// NewTagPublisher creates a TagPublisher backed by the GitHub Git database API
func NewTagPublisher(githubClient interfaces.GitHubClient) interfaces.TagPublisher {
	return &tagPublisher{
		githubClient: githubClient,
	}
}

// Exists reports whether refs/tags/<name> exists in the repository
func (p *tagPublisher) Exists(ctx context.Context, repo model.Repository, tag *model.TagDescriptor) (bool, error) {
	exists, err := p.githubClient.RefExists(ctx, repo, tag.Ref())
	if err != nil {
		return false, goerr.Wrap(err, "failed to check tag existence", goerr.V("tag", tag.Name))
	}
	return exists, nil
}

// Push creates an annotated tag object and then the ref pointing at it. A
// failure of the second call leaves the tag object without a ref; no rollback
// is attempted.
func (p *tagPublisher) Push(ctx context.Context, repo model.Repository, commitSHA string, tag *model.TagDescriptor, tagger *model.Tagger) (*model.PublishedTag, error) {
	logger := ctxlog.From(ctx)

	obj, err := p.githubClient.CreateTag(ctx, repo, &model.TagObjectInput{
		Tag:     tag.Name,
		Message: tag.Message,
		Object:  commitSHA,
		Tagger:  tagger,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create tag", goerr.V("tag", tag.Name))
	}

	logger.Debug("Created tag object",
		"repository", repo.String(),
		"tag", tag.Name,
		"sha", obj.SHA,
	)

	ref, err := p.githubClient.CreateRef(ctx, repo, tag.Ref(), obj.SHA)
	if err != nil {
		logger.Warn("Tag object was created but its ref was not",
			"tag", tag.Name,
			"tag_sha", obj.SHA,
		)
		return nil, goerr.Wrap(err, "failed to create tag ref", goerr.V("tag", tag.Name), goerr.V("tag_sha", obj.SHA))
	}

	return &model.PublishedTag{
		Name:    tag.Name,
		SHA:     obj.SHA,
		URI:     obj.URL,
		Message: tag.Message,
		Ref:     ref,
	}, nil
}
