package types

import (
	"fmt"
	"strings"
)

// Dependency is a boolean expression: one of FlagDependency, GameDependency,
// FileDependency or CompositeDependency.
type Dependency interface {
	isDependency()
}

// Operator combines the children of a CompositeDependency.
type Operator string

const (
	OperatorAnd Operator = "And"
	OperatorOr  Operator = "Or"
)

// FileState is the expected state of a file named by a FileDependency.
type FileState string

const (
	FileMissing  FileState = "Missing"
	FileInactive FileState = "Inactive"
	FileActive   FileState = "Active"
)

// ParseFileState accepts a state name in any letter case.
func ParseFileState(s string) (FileState, error) {
	for _, state := range []FileState{FileMissing, FileInactive, FileActive} {
		if strings.EqualFold(strings.TrimSpace(s), string(state)) {
			return state, nil
		}
	}
	return "", fmt.Errorf("unknown file state %q", s)
}

// FlagDependency holds when the flag is set to exactly Value.
type FlagDependency struct {
	Flag  string
	Value string
}

// GameDependency holds when the host game version equals Version.
type GameDependency struct {
	Version string
}

// FileDependency is answered by the host FileOracle.
type FileDependency struct {
	File  string
	State FileState
}

// CompositeDependency combines child expressions with Operator.
type CompositeDependency struct {
	Operator Operator
	Children []Dependency
}

func (FlagDependency) isDependency()      {}
func (GameDependency) isDependency()      {}
func (FileDependency) isDependency()      {}
func (CompositeDependency) isDependency() {}
