// Package paths reconciles the paths declared in a package description with
// the files that actually exist on disk.
//
// Package authors usually work on case-insensitive filesystems, so declared
// paths mix slash conventions and rarely match the on-disk casing. Normalize
// fixes the separators; Resolve additionally rebuilds a path segment by
// segment, picking the real casing of each directory entry. Walk expands a
// folder into the files beneath it.
//
// All paths produced here use forward slashes and never start with one.
package paths
