package model

import (
	"regexp"
)

// ExtractRequest selects where and how a version is extracted
type ExtractRequest struct {
	Strategy Strategy
	Root     string

	// PatternExpr is the pattern as configured and Pattern its compiled
	// form. Both are set for StrategyRegex only.
	PatternExpr string
	Pattern     *regexp.Regexp
}

// PatternString returns the configured pattern, or "" when unset
func (r *ExtractRequest) PatternString() string {
	if r.PatternExpr != "" {
		return r.PatternExpr
	}
	if r.Pattern != nil {
		return r.Pattern.String()
	}
	return ""
}

// Describe renders how the version is looked up, for user facing messages
func (r *ExtractRequest) Describe() string {
	s := "using the " + r.Strategy.String() + " extraction"
	if r.Strategy == StrategyRegex {
		s += " with the /" + r.PatternString() + "/im pattern"
	}
	return s
}

// AutoTagRequest is a fully resolved configuration for a single run
type AutoTagRequest struct {
	Extract    ExtractRequest
	TagPrefix  string
	TagSuffix  string
	TagMessage string
	Tagger     *Tagger

	Repository Repository
	CommitSHA  string
}
