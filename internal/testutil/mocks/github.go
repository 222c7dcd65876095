package mocks

import (
	"context"
	"iter"

	"github.com/douhashi/verbump/internal/history"
	"github.com/douhashi/verbump/internal/versionfile"
	"github.com/stretchr/testify/mock"
)

// MockGitHubAPI is a mock implementation of the GitHub collaborator used by
// the reconciler and the dispatcher.
type MockGitHubAPI struct {
	mock.Mock
}

// NewMockGitHubAPI creates a new instance of MockGitHubAPI
func NewMockGitHubAPI() *MockGitHubAPI {
	return &MockGitHubAPI{}
}

// EnsureReleaseLabels mocks the EnsureReleaseLabels method
func (m *MockGitHubAPI) EnsureReleaseLabels(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// LoadVersionFile mocks the LoadVersionFile method
func (m *MockGitHubAPI) LoadVersionFile(ctx context.Context, ref string) (*versionfile.File, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*versionfile.File), args.Error(1)
}

// PushVersionFile mocks the PushVersionFile method
func (m *MockGitHubAPI) PushVersionFile(ctx context.Context, file *versionfile.File, message string) error {
	args := m.Called(ctx, file, message)
	return args.Error(0)
}

// RemoveLabel mocks the RemoveLabel method
func (m *MockGitHubAPI) RemoveLabel(ctx context.Context, number int, label string) error {
	args := m.Called(ctx, number, label)
	return args.Error(0)
}

// Commits mocks the Commits method
func (m *MockGitHubAPI) Commits(ctx context.Context) iter.Seq2[history.Commit, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[history.Commit, error])
}

// CreateRelease mocks the CreateRelease method
func (m *MockGitHubAPI) CreateRelease(ctx context.Context, branch string) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

// VersionFileContent matches a *versionfile.File whose content contains the
// version assignment for version.
func VersionFileContent(version string) interface{} {
	return mock.MatchedBy(func(f *versionfile.File) bool {
		v, err := f.VersionString()
		return err == nil && v == version
	})
}
