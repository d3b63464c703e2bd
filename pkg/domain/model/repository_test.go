package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/autotag/pkg/domain/model"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Repository
		wantErr bool
	}{
		{name: "owner/repo", input: "octo/hello", want: model.Repository{Owner: "octo", Name: "hello"}},
		{name: "url", input: "https://github.com/octo/hello.git", want: model.Repository{Owner: "octo", Name: "hello"}},
		{name: "empty", input: "", wantErr: true},
		{name: "missing name", input: "octo/", wantErr: true},
		{name: "too many segments", input: "octo/hello/tree", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseRepository(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
			gt.Equal(t, got.String(), tt.want.Owner+"/"+tt.want.Name)
		})
	}
}
