package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// DefaultRoot is searched when neither root nor package_root is given
const DefaultRoot = "./"

// Tag holds version extraction and tag naming configuration
type Tag struct {
	Root        string
	PackageRoot string
	Workspace   string

	Strategy     string
	RegexPattern string

	Prefix  string
	Suffix  string
	Message string

	TaggerName  string
	TaggerEmail string
}

// Flags returns CLI flags for tag configuration
func (c *Tag) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Usage:       "Directory to search for the version source, or the file the regex pattern is applied to",
			Destination: &c.Root,
			Sources:     cli.EnvVars("INPUT_ROOT", "AUTOTAG_ROOT"),
		},
		&cli.StringFlag{
			Name:        "package-root",
			Usage:       "Alias of --root",
			Destination: &c.PackageRoot,
			Sources:     cli.EnvVars("INPUT_PACKAGE_ROOT"),
		},
		&cli.StringFlag{
			Name:        "workspace",
			Usage:       "Base directory of relative roots",
			Destination: &c.Workspace,
			Sources:     cli.EnvVars("GITHUB_WORKSPACE"),
		},
		&cli.StringFlag{
			Name:        "strategy",
			Usage:       "Version source: package, docker or regex",
			Destination: &c.Strategy,
			Sources:     cli.EnvVars("INPUT_STRATEGY", "AUTOTAG_STRATEGY"),
		},
		&cli.StringFlag{
			Name:        "regex-pattern",
			Usage:       "Pattern whose first capture group is the version; selects the regex strategy",
			Destination: &c.RegexPattern,
			Sources:     cli.EnvVars("INPUT_REGEX_PATTERN", "AUTOTAG_REGEX_PATTERN"),
		},
		&cli.StringFlag{
			Name:        "tag-prefix",
			Usage:       "Text prepended to the version in the tag name",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("INPUT_TAG_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "tag-suffix",
			Usage:       "Text appended to the version in the tag name",
			Destination: &c.Suffix,
			Sources:     cli.EnvVars("INPUT_TAG_SUFFIX"),
		},
		&cli.StringFlag{
			Name:        "tag-message",
			Usage:       "Annotated tag message (default: Release <tag>)",
			Destination: &c.Message,
			Sources:     cli.EnvVars("INPUT_TAG_MESSAGE"),
		},
		&cli.StringFlag{
			Name:        "tagger-name",
			Usage:       "Tagger name recorded on the tag object",
			Destination: &c.TaggerName,
			Sources:     cli.EnvVars("INPUT_TAGGER_NAME"),
		},
		&cli.StringFlag{
			Name:        "tagger-email",
			Usage:       "Tagger email recorded on the tag object",
			Destination: &c.TaggerEmail,
			Sources:     cli.EnvVars("INPUT_TAGGER_EMAIL"),
		},
	}
}

// ResolvedRoot returns root, falling back to package root and then to
// DefaultRoot. Relative paths are joined to the workspace when it is set.
func (c *Tag) ResolvedRoot() string {
	root := strings.TrimSpace(c.Root)
	if root == "" {
		root = strings.TrimSpace(c.PackageRoot)
	}
	if root == "" {
		root = DefaultRoot
	}

	if c.Workspace != "" && !filepath.IsAbs(root) {
		root = filepath.Join(c.Workspace, root)
	}
	return root
}

// ExtractRequest resolves the strategy and compiles the pattern. An unknown
// strategy name is an error unless a pattern is set.
func (c *Tag) ExtractRequest(ctx context.Context) (*model.ExtractRequest, error) {
	strategy, err := model.ResolveStrategy(c.Strategy, c.RegexPattern)
	if err != nil {
		return nil, err
	}

	req := &model.ExtractRequest{
		Strategy: strategy,
		Root:     c.ResolvedRoot(),
	}

	if strategy != model.StrategyRegex {
		return req, nil
	}

	if s := strings.TrimSpace(c.Strategy); s != "" && !strings.EqualFold(s, model.StrategyRegex.String()) {
		ctxlog.From(ctx).Warn("regex_pattern is set, ignoring strategy",
			slog.String("strategy", s),
		)
	}

	pattern, err := regexp.Compile("(?im)" + c.RegexPattern)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "invalid regex_pattern",
			goerr.V("pattern", c.RegexPattern),
			goerr.V("cause", err.Error()),
		)
	}
	req.PatternExpr = c.RegexPattern
	req.Pattern = pattern

	return req, nil
}

// Tagger returns the tagger identity, or nil when none is configured
func (c *Tag) Tagger() (*model.Tagger, error) {
	name := strings.TrimSpace(c.TaggerName)
	email := strings.TrimSpace(c.TaggerEmail)

	switch {
	case name == "" && email == "":
		return nil, nil
	case name == "" || email == "":
		return nil, goerr.Wrap(types.ErrInvalidConfig, "tagger name and email must be set together",
			goerr.V("tagger_name", name),
			goerr.V("tagger_email", email),
		)
	}

	return &model.Tagger{Name: name, Email: email}, nil
}

// Request builds the request of a whole run
func (c *Tag) Request(ctx context.Context, repo model.Repository, sha string) (*model.AutoTagRequest, error) {
	extract, err := c.ExtractRequest(ctx)
	if err != nil {
		return nil, err
	}

	tagger, err := c.Tagger()
	if err != nil {
		return nil, err
	}

	return &model.AutoTagRequest{
		Extract:    *extract,
		TagPrefix:  c.Prefix,
		TagSuffix:  c.Suffix,
		TagMessage: c.Message,
		Tagger:     tagger,
		Repository: repo,
		CommitSHA:  sha,
	}, nil
}
