package types

// GroupType tells the host UI how many options of a group may be selected.
// The engine does not enforce it.
type GroupType string

const (
	SelectExactlyOne GroupType = "SelectExactlyOne"
	SelectAtMostOne  GroupType = "SelectAtMostOne"
	SelectAtLeastOne GroupType = "SelectAtLeastOne"
	SelectAll        GroupType = "SelectAll"
	SelectAny        GroupType = "SelectAny"
)

// Option type descriptors as they appear in package descriptions.
const (
	OptionRequired      = "Required"
	OptionOptional      = "Optional"
	OptionRecommended   = "Recommended"
	OptionNotUsable     = "NotUsable"
	OptionCouldBeUsable = "CouldBeUsable"
)

// PackageRoot is the root of a parsed package description
type PackageRoot struct {
	Name string
	// Image is relative to the package root; empty when absent.
	Image string
	Pages []Page
	// RequiredFiles are installed unconditionally when the wizard starts.
	RequiredFiles []InstallEntry
	// Dependencies gates whether the package applies at all. Nil means always.
	Dependencies Dependency
	// Patterns are evaluated once all pages are exhausted.
	Patterns []Pattern
}

// Page is one step of the installation wizard
type Page struct {
	Name    string
	Groups  []Group
	Visible Dependency
}

// Group is a named set of options on a page
type Group struct {
	Name    string
	Type    GroupType
	Options []Option
}

// Option is a selectable unit within a group
type Option struct {
	Name        string
	Description string
	Image       string
	// Type is the advisory descriptor (Required, Optional, Recommended...).
	Type  string
	Files []InstallEntry
	Flags map[string]string
}

// Pattern is a conditional install rule applied after the last page
type Pattern struct {
	Files        []InstallEntry
	Dependencies Dependency
}

// Flags maps flag names to their values.
type Flags map[string]string

// Clone returns an independent copy of f. A nil receiver yields an empty map.
func (f Flags) Clone() Flags {
	out := make(Flags, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
