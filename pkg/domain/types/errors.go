package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrVersionNotFound is returned when no version could be extracted by the
	// selected strategy.
	ErrVersionNotFound = goerr.New("version not found")

	// ErrRemoteAPI marks any failure returned by the GitHub API, including
	// authentication, rate limit and network errors.
	ErrRemoteAPI = goerr.New("remote API error")

	// ErrInvalidConfig is returned when configuration can not be resolved.
	ErrInvalidConfig = goerr.New("invalid configuration")
)
