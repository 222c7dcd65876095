// Package mocks provides common mock implementations for interfaces used throughout the verbump codebase.
//
// These mocks are built using testify/mock and provide consistent behavior across all tests.
//
// # Available Mocks
//
//   - MockGitHubAPI: Mock for the GitHub collaborator (reconciler.GitHubAPI, dispatcher.GitHubAPI)
//   - MockIssuesService, MockRepositoriesService: Mocks for the go-github services wrapped by github.Client
//
// # Example
//
//	func TestSomething(t *testing.T) {
//	    api := mocks.NewMockGitHubAPI()
//	    api.On("LoadVersionFile", mock.Anything, "feature").
//	        Return(versionfile.New("setup.py", "feature", "sha", content), nil)
//
//	    r := reconciler.New(api, logger.NewNop())
//	    // ...
//	}
package mocks
