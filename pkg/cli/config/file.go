package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// File points at an optional file holding default tag settings
type File struct {
	Path string
}

// FileValues is the content of a config file. Values given by flags or
// environment variables take precedence.
type FileValues struct {
	Root         string `toml:"root" yaml:"root"`
	Strategy     string `toml:"strategy" yaml:"strategy"`
	RegexPattern string `toml:"regex_pattern" yaml:"regex_pattern"`
	TagPrefix    string `toml:"tag_prefix" yaml:"tag_prefix"`
	TagSuffix    string `toml:"tag_suffix" yaml:"tag_suffix"`
	TagMessage   string `toml:"tag_message" yaml:"tag_message"`
	TaggerName   string `toml:"tagger_name" yaml:"tagger_name"`
	TaggerEmail  string `toml:"tagger_email" yaml:"tagger_email"`
}

// Flags returns CLI flags for the config file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Config file with default settings (.toml, .yml or .yaml)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("AUTOTAG_CONFIG"),
		},
	}
}

// Load reads the config file. It returns empty values when no path is set.
func (c *File) Load() (*FileValues, error) {
	var v FileValues
	if c.Path == "" {
		return &v, nil
	}

	fd, err := os.Open(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open config file", goerr.V("path", c.Path))
	}
	defer fd.Close()

	switch ext := strings.ToLower(filepath.Ext(c.Path)); ext {
	case ".toml":
		if err := toml.NewDecoder(fd).DisallowUnknownFields().Decode(&v); err != nil {
			return nil, goerr.Wrap(errors.Join(types.ErrInvalidConfig, err), "failed to decode TOML config file", goerr.V("path", c.Path))
		}

	case ".yml", ".yaml":
		dec := yaml.NewDecoder(fd)
		dec.KnownFields(true)
		if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
			return nil, goerr.Wrap(errors.Join(types.ErrInvalidConfig, err), "failed to decode YAML config file", goerr.V("path", c.Path))
		}

	default:
		return nil, goerr.Wrap(types.ErrInvalidConfig, "unsupported config file extension", goerr.V("path", c.Path), goerr.V("ext", ext))
	}

	return &v, nil
}

// Apply loads the config file and fills fields of tag that are still empty
func (c *File) Apply(tag *Tag) error {
	v, err := c.Load()
	if err != nil {
		return err
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	if tag.PackageRoot == "" {
		fill(&tag.Root, v.Root)
	}
	fill(&tag.Strategy, v.Strategy)
	fill(&tag.RegexPattern, v.RegexPattern)
	fill(&tag.Prefix, v.TagPrefix)
	fill(&tag.Suffix, v.TagSuffix)
	fill(&tag.Message, v.TagMessage)
	fill(&tag.TaggerName, v.TaggerName)
	fill(&tag.TaggerEmail, v.TaggerEmail)

	return nil
}
