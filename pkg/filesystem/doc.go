// Package filesystem provides the types.FS implementations used by the
// installer: the host OS filesystem and an afero-backed view that tests use
// with an in-memory filesystem.
package filesystem
