package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/domain/interfaces"
	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
	"github.com/m-mizutani/autotag/pkg/infra/github"
)

// GitHub holds GitHub configuration
type GitHub struct {
	Token string `masq:"secret"`

	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`

	APIURL     string
	Repository string
	SHA        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used to create tags",
			Destination: &c.Token,
			Sources:     cli.EnvVars("INPUT_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used instead of a token",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("AUTOTAG_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("AUTOTAG_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("AUTOTAG_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Target repository (owner/name)",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "sha",
			Usage:       "Commit SHA the tag points at",
			Destination: &c.SHA,
			Sources:     cli.EnvVars("GITHUB_SHA"),
		},
	}
}

func (c *GitHub) useApp() bool {
	return c.AppID != 0 || c.InstallationID != 0 || c.PrivateKey != ""
}

// Validate checks that a credential is configured. It is called before any
// extraction work.
func (c *GitHub) Validate() error {
	if c.useApp() {
		if c.AppID == 0 || c.InstallationID == 0 || c.PrivateKey == "" {
			return goerr.Wrap(types.ErrInvalidConfig,
				"GitHub App authentication requires app ID, installation ID and private key",
				goerr.V("app_id", c.AppID),
				goerr.V("installation_id", c.InstallationID),
			)
		}
		return nil
	}

	if strings.TrimSpace(c.Token) == "" {
		return goerr.Wrap(types.ErrInvalidConfig, "the github_token input is required")
	}
	return nil
}

// Target returns the repository and commit the tag is created for
func (c *GitHub) Target() (model.Repository, string, error) {
	repo, err := model.ParseRepository(c.Repository)
	if err != nil {
		return model.Repository{}, "", err
	}

	sha := strings.TrimSpace(c.SHA)
	if sha == "" {
		return model.Repository{}, "", goerr.Wrap(types.ErrInvalidConfig, "commit SHA is required (GITHUB_SHA or --sha)")
	}

	return repo, sha, nil
}

// NewClient creates a GitHub client with App authentication when configured,
// otherwise with the token.
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	var opts []github.Option
	if c.APIURL != "" {
		opts = append(opts, github.WithBaseURL(c.APIURL))
	}

	if c.useApp() {
		return github.NewAppClient(c.AppID, c.InstallationID, []byte(c.PrivateKey), opts...)
	}
	return github.NewClient(strings.TrimSpace(c.Token), opts...)
}
