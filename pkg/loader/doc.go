// Package loader reads a package description (fomod/ModuleConfig.xml) into
// the object model consumed by the installer.
//
// Descriptions are frequently saved as UTF-16 with a byte order mark, or
// declare a legacy charset; both are decoded before parsing. Source paths
// and images are resolved against the package root with the on-disk
// casing. Destinations are only normalized, since they need not exist yet.
//
// Elements keep their document order. Dependency children that the
// evaluator does not understand are rejected with ErrMalformedExpression.
package loader
