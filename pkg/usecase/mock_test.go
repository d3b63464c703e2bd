package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/autotag/pkg/domain/model"
)

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	refExistsFunc func(ctx context.Context, repo model.Repository, ref string) (bool, error)
	createTagFunc func(ctx context.Context, repo model.Repository, input *model.TagObjectInput) (*model.TagObject, error)
	createRefFunc func(ctx context.Context, repo model.Repository, ref, sha string) (string, error)

	refExistsCalls []string
	createTagCalls []*model.TagObjectInput
	createRefCalls []MockRefCall
}

type MockRefCall struct {
	Ref string
	SHA string
}

func (m *MockGitHubClient) RefExists(ctx context.Context, repo model.Repository, ref string) (bool, error) {
	m.refExistsCalls = append(m.refExistsCalls, ref)
	if m.refExistsFunc != nil {
		return m.refExistsFunc(ctx, repo, ref)
	}
	return false, nil
}

func (m *MockGitHubClient) CreateTag(ctx context.Context, repo model.Repository, input *model.TagObjectInput) (*model.TagObject, error) {
	m.createTagCalls = append(m.createTagCalls, input)
	if m.createTagFunc != nil {
		return m.createTagFunc(ctx, repo, input)
	}
	return &model.TagObject{
		SHA: "tagsha-" + input.Tag,
		URL: "https://api.github.com/repos/" + repo.String() + "/git/tags/tagsha-" + input.Tag,
	}, nil
}

func (m *MockGitHubClient) CreateRef(ctx context.Context, repo model.Repository, ref, sha string) (string, error) {
	m.createRefCalls = append(m.createRefCalls, MockRefCall{Ref: ref, SHA: sha})
	if m.createRefFunc != nil {
		return m.createRefFunc(ctx, repo, ref, sha)
	}
	return ref, nil
}

// MockReporter records everything reported during a run
type MockReporter struct {
	warnings []string
	errors   []string
	outputs  []model.Output
}

func (m *MockReporter) Warning(msg string) { m.warnings = append(m.warnings, msg) }
func (m *MockReporter) Error(msg string)   { m.errors = append(m.errors, msg) }
func (m *MockReporter) SetOutputs(outputs []model.Output) error {
	m.outputs = outputs
	return nil
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	err   error
	calls []*model.PublishedTag
}

func (m *MockNotifier) NotifyTagCreated(ctx context.Context, repo model.Repository, tag *model.PublishedTag) error {
	m.calls = append(m.calls, tag)
	return m.err
}

var errMockAPI = errors.New("mock API failure")
