package mocks

import (
	"context"

	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/mock"
)

// MockIssuesService is a mock implementation of the go-github Issues API used for labels
type MockIssuesService struct {
	mock.Mock
}

// ListLabels mocks the ListLabels method
func (m *MockIssuesService) ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	return labels(args.Get(0)), response(args.Get(1)), args.Error(2)
}

// CreateLabel mocks the CreateLabel method
func (m *MockIssuesService) CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, label)
	var created *github.Label
	if args.Get(0) != nil {
		created = args.Get(0).(*github.Label)
	}
	return created, response(args.Get(1)), args.Error(2)
}

// RemoveLabelForIssue mocks the RemoveLabelForIssue method
func (m *MockIssuesService) RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error) {
	args := m.Called(ctx, owner, repo, number, label)
	return response(args.Get(0)), args.Error(1)
}

// MockRepositoriesService is a mock implementation of the go-github Repositories API
type MockRepositoriesService struct {
	mock.Mock
}

// ListCommits mocks the ListCommits method
func (m *MockRepositoriesService) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var commits []*github.RepositoryCommit
	if args.Get(0) != nil {
		commits = args.Get(0).([]*github.RepositoryCommit)
	}
	return commits, response(args.Get(1)), args.Error(2)
}

// GetContents mocks the GetContents method
func (m *MockRepositoriesService) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var content *github.RepositoryContent
	if args.Get(0) != nil {
		content = args.Get(0).(*github.RepositoryContent)
	}
	return content, nil, response(args.Get(1)), args.Error(2)
}

// UpdateFile mocks the UpdateFile method
func (m *MockRepositoriesService) UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var result *github.RepositoryContentResponse
	if args.Get(0) != nil {
		result = args.Get(0).(*github.RepositoryContentResponse)
	}
	return result, response(args.Get(1)), args.Error(2)
}

// CreateRelease mocks the CreateRelease method
func (m *MockRepositoriesService) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo, release)
	var created *github.RepositoryRelease
	if args.Get(0) != nil {
		created = args.Get(0).(*github.RepositoryRelease)
	}
	return created, response(args.Get(1)), args.Error(2)
}

func labels(v interface{}) []*github.Label {
	if v == nil {
		return nil
	}
	return v.([]*github.Label)
}

func response(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
