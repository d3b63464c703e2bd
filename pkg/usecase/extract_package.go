package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/model"
	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// extractFromManifest returns the "version" field of <root>/package.json
func extractFromManifest(_ context.Context, req *model.ExtractRequest) (string, error) {
	path := filepath.Join(req.Root, model.StrategyPackage.Filename())

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(types.ErrVersionNotFound, "failed to read manifest",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	var manifest struct {
		Version any `json:"version"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return "", goerr.Wrap(types.ErrVersionNotFound, "failed to parse manifest",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	version, ok := manifest.Version.(string)
	if !ok || strings.TrimSpace(version) == "" {
		return "", goerr.Wrap(types.ErrVersionNotFound, "manifest has no version field",
			goerr.V("path", path),
		)
	}

	return strings.TrimSpace(version), nil
}
