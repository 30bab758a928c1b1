// Package testutil provides utilities for testing fomod components.
//
// Key components:
//   - TestPackage: declarative package setup on an in-memory filesystem
//   - FaultyFS: wraps a filesystem and injects errors for chosen paths
//
// All test data should be defined inline, not in external files.
package testutil
