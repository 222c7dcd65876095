// Package versionfile reads and rewrites the version string embedded in a
// setup.py file.
package versionfile

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/douhashi/verbump/internal/release"
)

// DefaultPath is the version file looked up when none is configured.
const DefaultPath = "setup.py"

var (
	// ErrVersionNotFound is returned when the file has no version assignment.
	ErrVersionNotFound = errors.New("version string not found")
	// ErrAmbiguousVersion is returned when the file has more than one version assignment.
	ErrAmbiguousVersion = errors.New("more than one version string found")
)

// versionPattern matches `version="1.2.3"` style keyword arguments.
// Group 1 is the prefix up to and including the opening quote, group 2 the
// version text, group 3 the closing quote.
var versionPattern = regexp.MustCompile(`(\bversion\s*=\s*["'])([^"'\n]*)(["'])`)

// File is the content of a version file on one branch.
type File struct {
	// Path is the repository relative path of the file.
	Path string
	// Ref is the branch the content was loaded from and is pushed back to.
	Ref string
	// SHA is the blob SHA of the loaded content. Empty for new files.
	SHA string

	content string
}

// New creates a File holding content.
func New(path, ref, sha, content string) *File {
	return &File{
		Path:    path,
		Ref:     ref,
		SHA:     sha,
		content: content,
	}
}

// Content returns the current text of the file.
func (f *File) Content() string {
	return f.content
}

// VersionString returns the version text embedded in the file, without quotes.
func (f *File) VersionString() (string, error) {
	loc, err := f.locate()
	if err != nil {
		return "", err
	}
	return f.content[loc[4]:loc[5]], nil
}

// Version parses the embedded version string.
func (f *File) Version() (release.Version, error) {
	s, err := f.VersionString()
	if err != nil {
		return release.Version{}, err
	}
	return release.Parse(s)
}

// ReplaceVersion substitutes newVersion for oldVersion inside the version
// assignment. Other occurrences of oldVersion in the file are left alone.
func (f *File) ReplaceVersion(oldVersion, newVersion string) error {
	loc, err := f.locate()
	if err != nil {
		return err
	}
	current := f.content[loc[4]:loc[5]]
	if current != oldVersion {
		return fmt.Errorf("%s: expected version %q, found %q", f.Path, oldVersion, current)
	}
	f.content = f.content[:loc[4]] + newVersion + f.content[loc[5]:]
	return nil
}

// SetVersion overwrites the embedded version with v and returns the version
// it replaced.
func (f *File) SetVersion(v release.Version) (release.Version, error) {
	previous, err := f.Version()
	if err != nil {
		return release.Version{}, err
	}
	if err := f.ReplaceVersion(previous.String(), v.String()); err != nil {
		return release.Version{}, err
	}
	return previous, nil
}

// Bump applies the bump rule of t to the embedded version and returns the
// resulting version.
func (f *File) Bump(t release.VersionType, increment bool) (release.Version, error) {
	current, err := f.Version()
	if err != nil {
		return release.Version{}, err
	}
	next, err := current.Bump(t, increment)
	if err != nil {
		return release.Version{}, err
	}
	if _, err := f.SetVersion(next); err != nil {
		return release.Version{}, err
	}
	return next, nil
}

func (f *File) locate() ([]int, error) {
	matches := versionPattern.FindAllStringSubmatchIndex(f.content, -1)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%s: %w", f.Path, ErrVersionNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%s: %w (%d matches)", f.Path, ErrAmbiguousVersion, len(matches))
	}
}
