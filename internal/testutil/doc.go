// Package testutil provides common test utilities, mocks, and builders for testing verbump components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mocks for the GitHub collaborator and the go-github services
//   - builders: Test data builders for pull_request webhook payloads
//   - helpers: General test helpers such as an observable logger
//
// # Usage
//
// Import the specific sub-package you need:
//
//	import "github.com/douhashi/verbump/internal/testutil/mocks"
//	import "github.com/douhashi/verbump/internal/testutil/builders"
package testutil
