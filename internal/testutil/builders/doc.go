// Package builders provides test data builders using the builder pattern for creating test fixtures.
//
// # Available Builders
//
//   - PullRequestEventBuilder: Creates pull_request webhook events and their JSON payloads
//
// # Example
//
//	func TestParse(t *testing.T) {
//	    payload := builders.NewPullRequestEventBuilder().
//	        WithAction("labeled").
//	        WithNumber(12).
//	        WithLabels("bug", "minor-release").
//	        WithLabel("minor-release").
//	        Payload()
//
//	    event, err := dispatcher.ParseEvent("pull_request", payload)
//	    // ...
//	}
package builders
