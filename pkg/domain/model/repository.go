package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/autotag/pkg/domain/types"
)

// Repository identifies a GitHub repository
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses "owner/repo". A GitHub URL is accepted as well.
func ParseRepository(s string) (Repository, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "https://")
	v = strings.TrimPrefix(v, "http://")
	v = strings.TrimPrefix(v, "github.com/")
	v = strings.TrimSuffix(v, ".git")
	v = strings.TrimSuffix(v, "/")

	parts := strings.SplitN(v, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, goerr.Wrap(types.ErrInvalidConfig, "cannot parse GitHub repository", goerr.V("repository", s))
	}

	return Repository{Owner: parts[0], Name: parts[1]}, nil
}
