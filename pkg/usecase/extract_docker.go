package usecase

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/moby/buildkit/frontend/dockerfile/parser"

	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// versionLabelKeys are the label keys treated as carrying the version, in
// order of preference.
var versionLabelKeys = []string{
	"version",
	"org.opencontainers.image.version",
}

// extractFromDockerfile returns the value of the first version label found in
// <root>/Dockerfile
func extractFromDockerfile(_ context.Context, req *model.ExtractRequest) (string, error) {
	path := filepath.Join(req.Root, model.StrategyDocker.Filename())

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(types.ErrVersionNotFound, "failed to read Dockerfile",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	labels, err := parseLabels(raw)
	if err != nil {
		return "", goerr.Wrap(types.ErrVersionNotFound, "failed to parse Dockerfile",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	for _, key := range versionLabelKeys {
		if v, ok := labels[key]; ok && v != "" {
			return v, nil
		}
	}

	return "", goerr.Wrap(types.ErrVersionNotFound, "no version label in Dockerfile",
		goerr.V("path", path),
		goerr.V("keys", versionLabelKeys),
	)
}

// parseLabels collects LABEL key/value pairs of all build stages. Keys are
// lower-cased; the first occurrence of a key wins.
func parseLabels(content []byte) (map[string]string, error) {
	result, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string)
	for _, child := range result.AST.Children {
		if child.Value != "label" {
			continue
		}

		// arguments are chained as key, value, key, value...
		for n := child.Next; n != nil && n.Next != nil; n = n.Next.Next {
			key := strings.ToLower(unquote(n.Value))
			if _, exists := labels[key]; exists {
				continue
			}
			labels[key] = unquote(n.Next.Value)
		}
	}

	return labels, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
