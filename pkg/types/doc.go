// Package types defines the object model consumed by the installer engine:
// the package tree (PackageRoot, Page, Group, Option, Pattern), the install
// entries (File, Folder), the dependency expressions, and the FS abstraction
// used for every filesystem probe.
//
// Dependency expressions and install entries are closed sum types. Each
// variant implements a marker method so that consumers can switch over the
// variants exhaustively instead of relying on reflection.
package types
