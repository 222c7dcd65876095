// Package history recovers previously released versions from commit history.
//
// Every version bump the bot pushes carries a commit message produced by
// Message. A Marker recognises those messages, and FindLatest walks a
// newest-first commit sequence until the first marker.
package history

import (
	"errors"
	"fmt"
	"iter"
	"regexp"

	"github.com/douhashi/verbump/internal/release"
)

// ErrNoVersionCommit is returned when no commit in the sequence carries a
// version marker.
var ErrNoVersionCommit = errors.New("no version bump commit found in history")

const messagePrefix = "Updated version to "

var markerPattern = regexp.MustCompile(regexp.QuoteMeta(messagePrefix) + `(\d+\.\d+\.\d+)\b`)

// Commit is a commit record as far as version recovery is concerned.
type Commit struct {
	SHA     string
	Message string
}

// Message returns the commit message recorded for a bump to v.
func Message(v release.Version) string {
	return messagePrefix + v.String()
}

// Marker extracts the version recorded by a commit, if any.
type Marker func(Commit) (release.Version, bool)

// VersionMarker matches commits whose message contains "Updated version to X.Y.Z".
// The match may appear anywhere in the message, so squash merges that keep
// the original commit lines are recognised too.
func VersionMarker(c Commit) (release.Version, bool) {
	m := markerPattern.FindStringSubmatch(c.Message)
	if m == nil {
		return release.Version{}, false
	}
	v, err := release.Parse(m[1])
	if err != nil {
		return release.Version{}, false
	}
	return v, true
}

// Match is a commit together with the version its marker recorded.
type Match struct {
	Commit  Commit
	Version release.Version
}

// FindLatest returns the first commit of commits accepted by m. The
// sequence is expected newest-first and is not consumed past the match.
func (m Marker) FindLatest(commits iter.Seq2[Commit, error]) (Match, error) {
	scanned := 0
	for c, err := range commits {
		if err != nil {
			return Match{}, fmt.Errorf("failed to read commit history after %d commits: %w", scanned, err)
		}
		scanned++
		if v, ok := m(c); ok {
			return Match{Commit: c, Version: v}, nil
		}
	}
	return Match{}, fmt.Errorf("%w (%d commits scanned)", ErrNoVersionCommit, scanned)
}

// Slice adapts a newest-first slice of commits to a sequence.
func Slice(commits []Commit) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		for _, c := range commits {
			if !yield(c, nil) {
				return
			}
		}
	}
}
