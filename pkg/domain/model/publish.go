package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Tagger is the identity recorded on an annotated tag
type Tagger struct {
	Name  string
	Email string
}

// TagObjectInput is the payload to create an annotated tag object
type TagObjectInput struct {
	Tag     string
	Message string
	Object  string // commit SHA the tag points at
	Tagger  *Tagger
}

// TagObject is an annotated tag object created in the repository
type TagObject struct {
	SHA string
	URL string
}

// PublishedTag is the result of a successful push
type PublishedTag struct {
	Name    string `json:"name"`
	SHA     string `json:"sha"`
	URI     string `json:"uri"`
	Message string `json:"message"`
	Ref     string `json:"ref"`
}

// JSON returns the tag encoded for the "tag" output
func (t *PublishedTag) JSON() (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal published tag", goerr.V("name", t.Name))
	}
	return string(raw), nil
}
