package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// Strategy is the source a version string is extracted from
type Strategy string

const (
	StrategyPackage Strategy = "package"
	StrategyDocker  Strategy = "docker"
	StrategyRegex   Strategy = "regex"
)

// DefaultStrategy is used when neither a strategy nor a regex pattern is given
const DefaultStrategy = StrategyPackage

// Strategies returns all supported strategies
func Strategies() []Strategy {
	return []Strategy{StrategyPackage, StrategyDocker, StrategyRegex}
}

// ParseStrategy converts a configuration value into a Strategy. Matching is
// case-insensitive and ignores surrounding whitespace. An empty value yields
// DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	v := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return DefaultStrategy, nil
	}

	for _, st := range Strategies() {
		if v == st {
			return st, nil
		}
	}

	return "", goerr.Wrap(types.ErrInvalidConfig,
		`not a recognized tagging strategy, choose from: 'package' (package.json), 'docker' (Dockerfile), or 'regex' (regular expression)`,
		goerr.V("strategy", s),
	)
}

// ResolveStrategy applies the precedence rule: a non-empty pattern always
// selects StrategyRegex, otherwise the explicit strategy, otherwise
// DefaultStrategy.
func ResolveStrategy(strategy, pattern string) (Strategy, error) {
	if strings.TrimSpace(pattern) != "" {
		return StrategyRegex, nil
	}
	return ParseStrategy(strategy)
}

func (s Strategy) String() string {
	return string(s)
}

// Filename returns the file read by the strategy within the root directory.
// StrategyRegex has no fixed file.
func (s Strategy) Filename() string {
	switch s {
	case StrategyPackage:
		return "package.json"
	case StrategyDocker:
		return "Dockerfile"
	default:
		return ""
	}
}
