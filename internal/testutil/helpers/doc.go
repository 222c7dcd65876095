// Package helpers provides test helpers shared across verbump packages.
//
// ObservableLogger implements logger.Logger on top of zaptest/observer so tests
// can assert on what was logged without parsing output.
package helpers
