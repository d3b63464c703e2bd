package cli_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/autotag/pkg/cli"
)

type fakeGitHub struct {
	existing    map[string]bool
	createdTags []map[string]any
	createdRefs []map[string]any
}

func newFakeGitHub(t *testing.T, existing ...string) (*fakeGitHub, *httptest.Server) {
	t.Helper()
	fake := &fakeGitHub{existing: map[string]bool{}}
	for _, name := range existing {
		fake.existing[name] = true
	}

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		gt.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/hello/git/ref/tags/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if !fake.existing[name] {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ref":    "refs/tags/" + name,
			"object": map[string]any{"type": "tag", "sha": "existing"},
		})
	})
	mux.HandleFunc("POST /repos/octo/hello/git/tags", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fake.createdTags = append(fake.createdTags, body)
		writeJSON(w, http.StatusCreated, map[string]any{
			"sha": "tagsha",
			"url": "https://api.github.com/repos/octo/hello/git/tags/tagsha",
			"tag": body["tag"],
		})
	})
	mux.HandleFunc("POST /repos/octo/hello/git/refs", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fake.createdRefs = append(fake.createdRefs, body)
		writeJSON(w, http.StatusCreated, map[string]any{
			"ref":    body["ref"],
			"object": map[string]any{"type": "tag", "sha": body["sha"]},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fake, server
}

func readOutputs(t *testing.T, path string) map[string]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	gt.NoError(t, err)

	outputs := map[string]string{}
	lines := strings.Split(string(raw), "\n")
	for i := 0; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		if name, delim, ok := strings.Cut(lines[i], "<<"); ok {
			var value []string
			for i++; i < len(lines) && lines[i] != delim; i++ {
				value = append(value, lines[i])
			}
			outputs[name] = strings.Join(value, "\n")
			continue
		}

		name, value, ok := strings.Cut(lines[i], "=")
		gt.True(t, ok)
		outputs[name] = value
	}
	return outputs
}

func setupRun(t *testing.T, manifest string) (root, outputFile string) {
	t.Helper()
	// Isolate from variables set by a surrounding workflow
	for _, key := range []string{
		"GITHUB_TOKEN", "INPUT_GITHUB_TOKEN", "GITHUB_OUTPUT", "GITHUB_WORKSPACE",
		"INPUT_ROOT", "INPUT_PACKAGE_ROOT", "INPUT_STRATEGY", "INPUT_REGEX_PATTERN",
		"INPUT_TAG_PREFIX", "INPUT_TAG_SUFFIX", "INPUT_TAG_MESSAGE",
		"AUTOTAG_CONFIG", "AUTOTAG_SLACK_WEBHOOK_URL", "AUTOTAG_SENTRY_DSN",
	} {
		t.Setenv(key, "")
	}

	root = t.TempDir()
	if manifest != "" {
		gt.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(manifest), 0644))
	}
	outputFile = filepath.Join(t.TempDir(), "github_output")
	return root, outputFile
}

func runArgs(outputFile, apiURL, root string, extra ...string) []string {
	args := []string{
		"autotag",
		"--log-level", "debug",
		"--github-output", outputFile,
		"run",
		"--github-token", "test-token",
		"--github-api-url", apiURL,
		"--repository", "octo/hello",
		"--sha", "0123abcd",
		"--root", root,
	}
	return append(args, extra...)
}

func TestRun_CreatesTag(t *testing.T) {
	root, outputFile := setupRun(t, `{"name":"hello","version":"2.0.0-rc.1"}`)
	fake, server := newFakeGitHub(t)

	err := cli.Run(context.Background(), runArgs(outputFile, server.URL, root, "--tag-prefix", "v"))
	gt.NoError(t, err)

	gt.Equal(t, len(fake.createdTags), 1)
	gt.Equal(t, fake.createdTags[0]["tag"], any("v2.0.0-rc.1"))
	gt.Equal(t, fake.createdTags[0]["message"], any("Release v2.0.0-rc.1"))
	gt.Equal(t, fake.createdTags[0]["object"], any("0123abcd"))
	gt.Equal(t, len(fake.createdRefs), 1)
	gt.Equal(t, fake.createdRefs[0]["ref"], any("refs/tags/v2.0.0-rc.1"))
	gt.Equal(t, fake.createdRefs[0]["sha"], any("tagsha"))

	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagcreated"], "yes")
	gt.Equal(t, outputs["version"], "2.0.0-rc.1")
	gt.Equal(t, outputs["tagrequested"], "v2.0.0-rc.1")
	gt.Equal(t, outputs["prerelease"], "yes")
	gt.Equal(t, outputs["build"], "no")
	gt.Equal(t, outputs["tagname"], "v2.0.0-rc.1")
	gt.Equal(t, outputs["tagsha"], "tagsha")
	gt.Equal(t, outputs["tagref"], "refs/tags/v2.0.0-rc.1")
	gt.Equal(t, outputs["tagmessage"], "Release v2.0.0-rc.1")
	gt.String(t, outputs["tag"]).Contains(`"name":"v2.0.0-rc.1"`)
}

func TestRun_TagExists(t *testing.T) {
	root, outputFile := setupRun(t, `{"version":"1.2.3"}`)
	fake, server := newFakeGitHub(t, "1.2.3")

	err := cli.Run(context.Background(), runArgs(outputFile, server.URL, root))
	gt.NoError(t, err)

	gt.Equal(t, len(fake.createdTags), 0)
	gt.Equal(t, len(fake.createdRefs), 0)

	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagcreated"], "no")
	gt.Equal(t, outputs["tagname"], "")
	gt.Equal(t, outputs["tagrequested"], "1.2.3")
	gt.Equal(t, outputs["version"], "1.2.3")
}

func TestRun_VersionNotFound(t *testing.T) {
	root, outputFile := setupRun(t, "")
	fake, server := newFakeGitHub(t)

	err := cli.Run(context.Background(), runArgs(outputFile, server.URL, root))
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("using the package extraction")

	gt.Equal(t, len(fake.createdTags), 0)

	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagcreated"], "no")
	gt.Equal(t, outputs["tagname"], "")
	gt.Equal(t, outputs["version"], "")
}

func TestRun_RegexPattern(t *testing.T) {
	root, outputFile := setupRun(t, "")
	target := filepath.Join(root, "VERSION.txt")
	gt.NoError(t, os.WriteFile(target, []byte("Version: 3.1.0+build.7\n"), 0644))
	_, server := newFakeGitHub(t)

	args := runArgs(outputFile, server.URL, target,
		"--strategy", "docker",
		"--regex-pattern", `^version:\s*(\S+)$`,
		"--tag-message", "  Custom message  ",
	)
	gt.NoError(t, cli.Run(context.Background(), args))

	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["version"], "3.1.0+build.7")
	gt.Equal(t, outputs["build"], "yes")
	gt.Equal(t, outputs["prerelease"], "no")
	gt.Equal(t, outputs["tagmessage"], "Custom message")
}

func TestRun_MissingToken(t *testing.T) {
	root, outputFile := setupRun(t, `{"version":"1.0.0"}`)
	fake, server := newFakeGitHub(t)

	args := []string{
		"autotag",
		"--github-output", outputFile,
		"run",
		"--github-api-url", server.URL,
		"--repository", "octo/hello",
		"--sha", "0123abcd",
		"--root", root,
	}
	gt.Error(t, cli.Run(context.Background(), args))
	gt.Equal(t, len(fake.createdTags), 0)

	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagcreated"], "no")
	gt.Equal(t, outputs["version"], "")
}

func TestRun_InvalidStrategy(t *testing.T) {
	root, outputFile := setupRun(t, `{"version":"1.0.0"}`)
	_, server := newFakeGitHub(t)

	err := cli.Run(context.Background(), runArgs(outputFile, server.URL, root, "--strategy", "gradle"))
	gt.Error(t, err)

	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagcreated"], "no")
}

func TestRun_PatternOverridesUnknownStrategy(t *testing.T) {
	root, outputFile := setupRun(t, `{"version":"1.4.0"}`)
	fake, server := newFakeGitHub(t)

	args := runArgs(outputFile, server.URL, root,
		"--strategy", "gradle",
		"--regex-pattern", `"version":\s*"([^"]+)"`,
	)
	gt.NoError(t, cli.Run(context.Background(), args))

	gt.Equal(t, len(fake.createdTags), 1)
	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagcreated"], "yes")
	gt.Equal(t, outputs["version"], "1.4.0")
	gt.Equal(t, outputs["tagname"], "1.4.0")
}

func TestExtract_PatternOverridesUnknownStrategy(t *testing.T) {
	root, _ := setupRun(t, "")
	gt.NoError(t, os.WriteFile(filepath.Join(root, "VERSION"), []byte("version: 1.2.3\n"), 0644))

	for _, strategy := range []string{"docker", "bogus"} {
		t.Run(strategy, func(t *testing.T) {
			err := cli.Run(context.Background(), []string{
				"autotag", "extract",
				"--root", root,
				"--strategy", strategy,
				"--regex-pattern", `version: (\S+)`,
			})
			gt.NoError(t, err)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	root, outputFile := setupRun(t, "")
	gt.NoError(t, os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM alpine\nLABEL version=\"0.9.0\"\n"), 0644))
	configFile := filepath.Join(t.TempDir(), "autotag.toml")
	gt.NoError(t, os.WriteFile(configFile, []byte("strategy = \"docker\"\ntag_prefix = \"release-\"\n"), 0644))
	fake, server := newFakeGitHub(t)

	gt.NoError(t, cli.Run(context.Background(), runArgs(outputFile, server.URL, root, "--config", configFile)))

	gt.Equal(t, len(fake.createdTags), 1)
	outputs := readOutputs(t, outputFile)
	gt.Equal(t, outputs["tagname"], "release-0.9.0")
}

func TestExtract(t *testing.T) {
	root, _ := setupRun(t, `{"version":"4.5.6"}`)

	err := cli.Run(context.Background(), []string{"autotag", "extract", "--root", root, "--tag-prefix", "v"})
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{"autotag", "extract", "--root", t.TempDir()})
	gt.Error(t, err)
}
