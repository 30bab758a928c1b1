// Package installer drives the page-by-page installation wizard of a
// package and resolves which source file ends up at each destination.
//
// Wizard state lives in snapshots. A snapshot is built once, published, and
// never changed afterwards: advancing copies the current snapshot's flags
// and file maps into a new one before applying the user's choices, and the
// new snapshot keeps a back-reference to the one it was derived from.
// Going back is a pointer move along that chain, so any published snapshot
// can be shared freely between readers without locking.
//
// When two entries claim the same destination (compared case-insensitively),
// the first casing seen becomes the canonical key and a later entry only
// replaces the recorded source when its priority is strictly higher. An
// entry without priority only wins an unclaimed destination, or one whose
// current winner declared no priority either.
package installer
