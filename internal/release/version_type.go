package release

import "fmt"

// VersionType is the component of a version a release label bumps.
type VersionType int

const (
	// Major bumps the major component and resets minor and patch.
	Major VersionType = iota + 1
	// Minor bumps the minor component and resets patch.
	Minor
	// Revision bumps the patch component.
	Revision
)

// Release label names attached to pull requests.
const (
	MajorLabel    = "major-release"
	MinorLabel    = "minor-release"
	RevisionLabel = "revision-release"
)

var labelsByType = map[VersionType]string{
	Major:    MajorLabel,
	Minor:    MinorLabel,
	Revision: RevisionLabel,
}

var typesByLabel = map[string]VersionType{
	MajorLabel:    Major,
	MinorLabel:    Minor,
	RevisionLabel: Revision,
}

// VersionTypes returns every version type, highest precedence first.
func VersionTypes() []VersionType {
	return []VersionType{Major, Minor, Revision}
}

// ReleaseLabels returns the release label names, highest precedence first.
func ReleaseLabels() []string {
	return []string{MajorLabel, MinorLabel, RevisionLabel}
}

// FromLabel returns the version type a label name maps to.
// The second result is false for labels that are not release labels.
func FromLabel(name string) (VersionType, bool) {
	t, ok := typesByLabel[name]
	return t, ok
}

// IsReleaseLabel reports whether name is one of the release labels.
func IsReleaseLabel(name string) bool {
	_, ok := typesByLabel[name]
	return ok
}

// Label returns the release label name for t.
func (t VersionType) Label() string {
	return labelsByType[t]
}

// Valid reports whether t is one of the declared version types.
func (t VersionType) Valid() bool {
	_, ok := labelsByType[t]
	return ok
}

// String returns a short lower-case name for t.
func (t VersionType) String() string {
	switch t {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Revision:
		return "revision"
	default:
		return fmt.Sprintf("VersionType(%d)", int(t))
	}
}
