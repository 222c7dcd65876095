// Package release models the release labels a pull request can carry and the
// semantic versions they bump.
//
// A release label maps to exactly one VersionType, and a VersionType decides
// which component of a Version moves:
//
//	major-release     1.2.3 -> 2.0.0
//	minor-release     1.2.3 -> 1.3.0
//	revision-release  1.2.3 -> 1.2.4
//
// Bumps can be undone with increment=false. Undoing a revision bump always
// restores the previous version. A minor bump drops the patch and a major bump
// drops minor and patch, so undoing those only restores the previous version
// when the dropped components were zero.
package release
