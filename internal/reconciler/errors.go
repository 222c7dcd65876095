package reconciler

import (
	"errors"
	"fmt"

	"github.com/douhashi/verbump/internal/history"
)

// Stage names the step of a reconciliation that failed.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageRecover Stage = "recover"
	StageUnlabel Stage = "unlabel"
	StageCompute Stage = "compute"
	StageWrite   Stage = "write"
	StagePush    Stage = "push"
)

var (
	// ErrNoVersionCommit is returned when a conflicting release label has to be
	// rolled back but history holds no version bump commit to roll back to.
	ErrNoVersionCommit = history.ErrNoVersionCommit
	// ErrNotReleaseLabel is returned when Apply or Revert is given a label
	// that is not a release label.
	ErrNotReleaseLabel = errors.New("not a release label")
)

// StageError attributes a reconciliation failure to a stage.
type StageError struct {
	Stage       Stage
	PullRequest int
	Label       string
	Err         error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("reconcile %s on pull request #%d: %s failed: %v", e.Label, e.PullRequest, e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage err failed in, or "" when err is not a StageError.
func StageOf(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}
