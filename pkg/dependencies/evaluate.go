// Package dependencies evaluates the boolean expressions that gate pages,
// conditional patterns and whole packages.
package dependencies

import (
	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/types"
)

// Context is the state an expression is evaluated against.
type Context struct {
	Flags       types.Flags
	GameVersion string
	// Files answers file dependencies. A nil oracle treats every file
	// dependency as met.
	Files types.FileOracle
}

// Evaluate reports whether expr holds in ctx. A nil expression always holds.
//
// Composite expressions evaluate every child, so an oracle error or a
// malformed node anywhere in the tree is reported even when the result is
// already decided. An empty And is true and an empty Or is false.
func Evaluate(expr types.Dependency, ctx Context) (bool, error) {
	switch dep := expr.(type) {
	case nil:
		return true, nil

	case types.FlagDependency:
		value, ok := ctx.Flags[dep.Flag]
		return ok && value == dep.Value, nil

	case types.GameDependency:
		return dep.Version == ctx.GameVersion, nil

	case types.FileDependency:
		if ctx.Files == nil {
			return true, nil
		}
		met, err := ctx.Files(dep)
		if err != nil {
			return false, fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
				"file dependency on %q", dep.File).
				WithDetail("file", dep.File).
				WithDetail("state", string(dep.State))
		}
		return met, nil

	case types.CompositeDependency:
		return evaluateComposite(dep, ctx)

	default:
		return false, fomoderrors.Newf(fomoderrors.ErrMalformedExpression,
			"unsupported dependency node %T", expr).
			WithDetail("kind", "unknown")
	}
}

func evaluateComposite(dep types.CompositeDependency, ctx Context) (bool, error) {
	if dep.Operator != types.OperatorAnd && dep.Operator != types.OperatorOr {
		return false, fomoderrors.Newf(fomoderrors.ErrMalformedExpression,
			"unknown operator %q", dep.Operator).
			WithDetail("kind", "operator")
	}

	passed := 0
	for _, child := range dep.Children {
		ok, err := Evaluate(child, ctx)
		if err != nil {
			return false, err
		}
		if ok {
			passed++
		}
	}

	if dep.Operator == types.OperatorOr {
		return passed > 0, nil
	}
	return passed == len(dep.Children), nil
}
