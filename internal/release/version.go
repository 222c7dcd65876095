package release

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrVersionUnderflow is returned when undoing a bump would drive a
	// component below zero.
	ErrVersionUnderflow = errors.New("version component would become negative")
	// ErrUnknownVersionType is returned for a VersionType outside Major, Minor, Revision.
	ErrUnknownVersionType = errors.New("unknown version type")
)

// Version is a MAJOR.MINOR.PATCH triple without pre-release or build metadata.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse parses a strict "X.Y.Z" version string.
func Parse(s string) (Version, error) {
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, fmt.Errorf("invalid version %q: pre-release and build metadata are not supported", s)
	}
	return fromSemver(sv), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func fromSemver(sv *semver.Version) Version {
	return Version{Major: sv.Major(), Minor: sv.Minor(), Patch: sv.Patch()}
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

// String returns the version as "X.Y.Z".
func (v Version) String() string {
	return v.semver().String()
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to,
// or after other.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Bump applies the bump rule of t. With increment=false the rule is undone
// arithmetically: the bumped component is decremented and the lower
// components are reset to zero.
func (v Version) Bump(t VersionType, increment bool) (Version, error) {
	if !t.Valid() {
		return v, fmt.Errorf("%w: %d", ErrUnknownVersionType, int(t))
	}
	if increment {
		return v.increment(t), nil
	}
	return v.decrement(t)
}

func (v Version) increment(t VersionType) Version {
	sv := v.semver()
	var next semver.Version
	switch t {
	case Major:
		next = sv.IncMajor()
	case Minor:
		next = sv.IncMinor()
	default:
		next = sv.IncPatch()
	}
	return fromSemver(&next)
}

func (v Version) decrement(t VersionType) (Version, error) {
	switch t {
	case Major:
		if v.Major == 0 {
			return v, fmt.Errorf("cannot undo %s bump of %s: %w", t, v, ErrVersionUnderflow)
		}
		return Version{Major: v.Major - 1}, nil
	case Minor:
		if v.Minor == 0 {
			return v, fmt.Errorf("cannot undo %s bump of %s: %w", t, v, ErrVersionUnderflow)
		}
		return Version{Major: v.Major, Minor: v.Minor - 1}, nil
	default:
		if v.Patch == 0 {
			return v, fmt.Errorf("cannot undo %s bump of %s: %w", t, v, ErrVersionUnderflow)
		}
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch - 1}, nil
	}
}
