package model

import (
	"strings"

	"github.com/woozymasta/semver"
)

// TagRefPrefix is the namespace of tag references
const TagRefPrefix = "refs/tags/"

// TagDescriptor describes the tag to be created from an extracted version.
// Flags are derived once at construction and never change afterwards.
type TagDescriptor struct {
	Prefix  string
	Version string
	Suffix  string
	Name    string
	Message string

	prerelease bool
	build      bool
}

// NewTagDescriptor builds a descriptor. The name is prefix, version and suffix
// concatenated verbatim. A blank message is replaced by DefaultTagMessage.
func NewTagDescriptor(prefix, version, suffix, message string) *TagDescriptor {
	name := prefix + version + suffix

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = DefaultTagMessage(name)
	}

	pre, build := classifyVersion(version)

	return &TagDescriptor{
		Prefix:     prefix,
		Version:    version,
		Suffix:     suffix,
		Name:       name,
		Message:    msg,
		prerelease: pre,
		build:      build,
	}
}

// DefaultTagMessage returns the message used when none is configured
func DefaultTagMessage(name string) string {
	return "Release " + name
}

// classifyVersion reports whether version carries a prerelease segment ("-"
// before any "+") and a build metadata segment ("+").
func classifyVersion(version string) (prerelease, build bool) {
	core := version
	if idx := strings.Index(version, "+"); idx >= 0 {
		build = true
		core = version[:idx]
	}
	prerelease = strings.Contains(core, "-")
	return prerelease, build
}

// Prerelease reports whether the version has a prerelease segment
func (d *TagDescriptor) Prerelease() bool { return d.prerelease }

// Build reports whether the version has build metadata
func (d *TagDescriptor) Build() bool { return d.build }

// Ref returns the fully qualified tag reference, e.g. refs/tags/v1.2.3
func (d *TagDescriptor) Ref() string {
	return TagRefPrefix + d.Name
}

// IsSemver reports whether the version is a strictly valid semantic version.
// It is informational only; descriptors are built for any version string.
func (d *TagDescriptor) IsSemver() bool {
	v, ok := semver.Parse(d.Version)
	return ok && v.IsValid()
}

// YesNo renders a flag the way action outputs expect it
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
