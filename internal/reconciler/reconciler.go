// Package reconciler keeps the version file of a pull request in line with its
// release label.
//
// A pull request carries at most one release label. Adding a label bumps the
// version on the head branch; removing it undoes the bump. When a label is
// added while another release label is still attached, the other label is
// removed and the version is rebuilt from the last version recorded in commit
// history, because a major bump cannot be undone from the number alone.
//
// Label removal and the version push are not coordinated with other runs.
// Two runs for the same pull request can interleave; the later push wins or
// fails on a stale blob SHA.
package reconciler

import (
	"context"
	"iter"

	"github.com/douhashi/verbump/internal/history"
	"github.com/douhashi/verbump/internal/logger"
	"github.com/douhashi/verbump/internal/release"
	"github.com/douhashi/verbump/internal/versionfile"
)

// GitHubAPI is the part of the GitHub API the reconciler works through.
type GitHubAPI interface {
	// LoadVersionFile fetches the version file from ref.
	LoadVersionFile(ctx context.Context, ref string) (*versionfile.File, error)
	// PushVersionFile commits file to file.Ref with message.
	PushVersionFile(ctx context.Context, file *versionfile.File, message string) error
	// RemoveLabel removes label from pull request number.
	RemoveLabel(ctx context.Context, number int, label string) error
	// Commits yields the commits of the default branch, newest first.
	Commits(ctx context.Context) iter.Seq2[history.Commit, error]
}

// PullRequest is the state of a pull request at the time of the event.
type PullRequest struct {
	Number  int
	HeadRef string
	Labels  []string
}

// HasLabel reports whether the pull request carries label.
func (pr PullRequest) HasLabel(label string) bool {
	for _, l := range pr.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Result describes what a reconciliation did.
type Result struct {
	Previous release.Version
	Current  release.Version
	// Recovered is set when the version was rebuilt from history.
	Recovered *history.Match
	// RemovedLabels lists conflicting release labels taken off the pull request.
	RemovedLabels []string
	// Pushed is false when the version was already up to date.
	Pushed bool
}

// Reconciler applies release label changes to the version file.
type Reconciler struct {
	api    GitHubAPI
	marker history.Marker
	logger logger.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithMarker replaces the policy used to recognise version bump commits.
func WithMarker(m history.Marker) Option {
	return func(r *Reconciler) {
		r.marker = m
	}
}

// New creates a Reconciler working through api.
func New(api GitHubAPI, log logger.Logger, opts ...Option) *Reconciler {
	if log == nil {
		log = logger.NewNop()
	}
	r := &Reconciler{
		api:    api,
		marker: history.VersionMarker,
		logger: log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply bumps the version for a newly attached release label and removes any
// other release label from the pull request.
func (r *Reconciler) Apply(ctx context.Context, pr PullRequest, label string) (*Result, error) {
	vt, ok := release.FromLabel(label)
	if !ok {
		return nil, r.fail(StageCompute, pr, label, ErrNotReleaseLabel)
	}
	log := r.logger.WithFields("pr", pr.Number, "label", label, "ref", pr.HeadRef)

	file, current, err := r.load(ctx, pr, label)
	if err != nil {
		return nil, err
	}
	result := &Result{Previous: current}
	base := current

	if conflicts := conflictingLabels(pr, label); len(conflicts) > 0 {
		log.Info("Conflicting release labels found", "conflicts", conflicts)

		match, err := r.marker.FindLatest(r.api.Commits(ctx))
		if err != nil {
			return nil, r.fail(StageRecover, pr, label, err)
		}
		log.Info("Recovered version from history",
			"version", match.Version.String(),
			"commit", match.Commit.SHA,
		)
		result.Recovered = &match
		base = match.Version

		for _, conflict := range conflicts {
			if err := r.api.RemoveLabel(ctx, pr.Number, conflict); err != nil {
				return nil, r.fail(StageUnlabel, pr, label, err)
			}
			result.RemovedLabels = append(result.RemovedLabels, conflict)
			log.Info("Removed conflicting release label", "removed", conflict)
		}
	}

	next, err := base.Bump(vt, true)
	if err != nil {
		return nil, r.fail(StageCompute, pr, label, err)
	}
	result.Current = next
	if next == current {
		log.Info("Version already up to date", "version", next.String())
		return result, nil
	}

	if _, err := file.SetVersion(next); err != nil {
		return nil, r.fail(StageWrite, pr, label, err)
	}
	return r.push(ctx, pr, label, file, result)
}

// Revert undoes the bump of a release label that was taken off the pull request.
func (r *Reconciler) Revert(ctx context.Context, pr PullRequest, label string) (*Result, error) {
	vt, ok := release.FromLabel(label)
	if !ok {
		return nil, r.fail(StageCompute, pr, label, ErrNotReleaseLabel)
	}

	file, current, err := r.load(ctx, pr, label)
	if err != nil {
		return nil, err
	}

	next, err := file.Bump(vt, false)
	if err != nil {
		return nil, r.fail(StageCompute, pr, label, err)
	}
	return r.push(ctx, pr, label, file, &Result{Previous: current, Current: next})
}

func (r *Reconciler) load(ctx context.Context, pr PullRequest, label string) (*versionfile.File, release.Version, error) {
	file, err := r.api.LoadVersionFile(ctx, pr.HeadRef)
	if err != nil {
		return nil, release.Version{}, r.fail(StageLoad, pr, label, err)
	}
	current, err := file.Version()
	if err != nil {
		return nil, release.Version{}, r.fail(StageParse, pr, label, err)
	}
	return file, current, nil
}

// push commits file to the head branch with the marker message of result.Current.
func (r *Reconciler) push(ctx context.Context, pr PullRequest, label string, file *versionfile.File, result *Result) (*Result, error) {
	if err := r.api.PushVersionFile(ctx, file, history.Message(result.Current)); err != nil {
		return nil, r.fail(StagePush, pr, label, err)
	}
	result.Pushed = true

	r.logger.Info("Version updated",
		"pr", pr.Number,
		"label", label,
		"from", result.Previous.String(),
		"to", result.Current.String(),
	)
	return result, nil
}

func (r *Reconciler) fail(stage Stage, pr PullRequest, label string, err error) error {
	return &StageError{
		Stage:       stage,
		PullRequest: pr.Number,
		Label:       label,
		Err:         err,
	}
}

// conflictingLabels returns the release labels on pr other than label, once each.
func conflictingLabels(pr PullRequest, label string) []string {
	var conflicts []string
	seen := map[string]bool{label: true}
	for _, l := range pr.Labels {
		if seen[l] || !release.IsReleaseLabel(l) {
			continue
		}
		seen[l] = true
		conflicts = append(conflicts, l)
	}
	return conflicts
}
