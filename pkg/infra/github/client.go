package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

type config struct {
	baseURL string
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithBaseURL sets the REST API endpoint, e.g. https://ghe.example.com/api/v3
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// NewClient creates a new GitHub client authenticated with a token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "GitHub token is empty")
	}

	cfg := newConfig(opts...)
	githubClient := github.NewClient(nil).WithAuthToken(token)
	if err := applyBaseURL(githubClient, cfg.baseURL); err != nil {
		return nil, err
	}

	return &client{githubClient: githubClient}, nil
}

// NewAppClient creates a new GitHub client with App authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := newConfig(opts...)

	// Create GitHub App transport
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}
	if cfg.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(cfg.baseURL, "/")
	}

	githubClient := github.NewClient(&http.Client{Transport: itr})
	if err := applyBaseURL(githubClient, cfg.baseURL); err != nil {
		return nil, err
	}

	return &client{githubClient: githubClient}, nil
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func applyBaseURL(c *github.Client, baseURL string) error {
	if baseURL == "" {
		return nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return goerr.Wrap(types.ErrInvalidConfig, "invalid GitHub API URL", goerr.V("url", baseURL), goerr.V("error", err.Error()))
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.BaseURL = u
	return nil
}

// remoteError marks err as a GitHub API failure while keeping the original
// error (e.g. *github.ErrorResponse) reachable with errors.As.
func remoteError(err error, msg string, opts ...goerr.Option) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", types.ErrRemoteAPI, err), msg, opts...)
}

// RefExists reports whether the given fully qualified ref exists
func (c *client) RefExists(ctx context.Context, repo model.Repository, ref string) (bool, error) {
	r, resp, err := c.githubClient.Git.GetRef(ctx, repo.Owner, repo.Name, ref)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, remoteError(err, "failed to get ref",
			goerr.V("repository", repo.String()),
			goerr.V("ref", ref),
		)
	}

	return r.GetRef() == ref, nil
}

// CreateTag creates an annotated tag object pointing at a commit
func (c *client) CreateTag(ctx context.Context, repo model.Repository, input *model.TagObjectInput) (*model.TagObject, error) {
	req := github.CreateTag{
		Tag:     input.Tag,
		Message: input.Message,
		Object:  input.Object,
		Type:    "commit",
	}
	if input.Tagger != nil {
		req.Tagger = &github.CommitAuthor{
			Name:  github.Ptr(input.Tagger.Name),
			Email: github.Ptr(input.Tagger.Email),
		}
	}

	created, _, err := c.githubClient.Git.CreateTag(ctx, repo.Owner, repo.Name, req)
	if err != nil {
		return nil, remoteError(err, "failed to create tag object",
			goerr.V("repository", repo.String()),
			goerr.V("tag", input.Tag),
			goerr.V("object", input.Object),
		)
	}

	return &model.TagObject{
		SHA: created.GetSHA(),
		URL: created.GetURL(),
	}, nil
}

// CreateRef creates a ref pointing at sha
func (c *client) CreateRef(ctx context.Context, repo model.Repository, ref, sha string) (string, error) {
	created, _, err := c.githubClient.Git.CreateRef(ctx, repo.Owner, repo.Name, github.CreateRef{
		Ref: ref,
		SHA: sha,
	})
	if err != nil {
		return "", remoteError(err, "failed to create ref",
			goerr.V("repository", repo.String()),
			goerr.V("ref", ref),
			goerr.V("sha", sha),
		)
	}

	return created.GetRef(), nil
}
