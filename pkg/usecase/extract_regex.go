package usecase

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// extractWithPattern applies the pattern to the file named by root, or to the
// top-level regular files of root when it is a directory. The first capture
// group of the first match is returned.
func extractWithPattern(ctx context.Context, req *model.ExtractRequest) (string, error) {
	if req.Pattern == nil {
		return "", goerr.Wrap(types.ErrInvalidConfig, "regex strategy requires a pattern")
	}

	files, err := patternTargets(req.Root)
	if err != nil {
		return "", err
	}

	logger := ctxlog.From(ctx)
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", goerr.Wrap(types.ErrVersionNotFound, "failed to read file",
				goerr.V("path", path),
				goerr.V("error", err.Error()),
			)
		}

		m := req.Pattern.FindStringSubmatch(string(raw))
		if m == nil {
			continue
		}

		version := m[0]
		if len(m) > 1 {
			version = m[1]
		}
		version = strings.TrimSpace(version)
		if version == "" {
			continue
		}

		logger.Debug("Pattern matched", "path", path)
		return version, nil
	}

	return "", goerr.Wrap(types.ErrVersionNotFound, "pattern did not match",
		goerr.V("root", req.Root),
		goerr.V("pattern", req.PatternString()),
	)
}

func patternTargets(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, goerr.Wrap(types.ErrVersionNotFound, "failed to stat regex target",
			goerr.V("root", root),
			goerr.V("error", err.Error()),
		)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, goerr.Wrap(types.ErrVersionNotFound, "failed to read directory",
			goerr.V("root", root),
			goerr.V("error", err.Error()),
		)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(root, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}
