package interfaces

import (
	"context"

	"github.com/m-mizutani/autotag/pkg/domain/model"
)

// GitHubClient defines the Git database operations autotag needs from the
// GitHub API. Implementations mark API failures with types.ErrRemoteAPI.
type GitHubClient interface {
	// RefExists reports whether the fully qualified ref (e.g. refs/tags/v1.0.0)
	// exists. A not-found response is (false, nil).
	RefExists(ctx context.Context, repo model.Repository, ref string) (bool, error)

	// CreateTag creates an annotated tag object pointing at a commit
	CreateTag(ctx context.Context, repo model.Repository, input *model.TagObjectInput) (*model.TagObject, error)

	// CreateRef creates a ref pointing at sha and returns the created ref name
	CreateRef(ctx context.Context, repo model.Repository, ref, sha string) (string, error)
}
