package paths

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/types"
)

// Normalize converts backslashes to slashes, collapses repeated slashes and
// strips leading ones. It never touches the filesystem.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")

	var b strings.Builder
	b.Grow(len(p))
	lastSlash := false
	for _, r := range p {
		if r == '/' {
			if lastSlash {
				continue
			}
			lastSlash = true
		} else {
			lastSlash = false
		}
		b.WriteRune(r)
	}

	return strings.TrimLeft(b.String(), "/")
}

// Resolve normalizes p and, when it does not exist under root as written,
// rebuilds it one segment at a time using the on-disk casing of each entry.
// It fails with ErrPathNotFound when a segment has no case-insensitive match
// or its parent directory does not exist.
func Resolve(fsys types.FS, p, root string) (string, error) {
	p = Normalize(p)

	found, err := exists(fsys, Join(root, p))
	if err != nil {
		return "", err
	}
	if found {
		return p, nil
	}

	logger := logging.GetLogger("paths.resolve")
	current := ""
	for _, segment := range strings.Split(p, "/") {
		if segment == "" {
			continue
		}

		candidate := joinRelative(current, segment)
		found, err := exists(fsys, Join(root, candidate))
		if err != nil {
			return "", err
		}
		if found {
			current = candidate
			continue
		}

		match, err := matchEntry(fsys, root, current, segment)
		if err != nil {
			return "", err
		}
		current = joinRelative(current, match)
	}

	logger.Trace().
		Str("declared", p).
		Str("resolved", current).
		Msg("Reconstructed path casing")
	return current, nil
}

// Join places a slash-separated relative path under root using the host
// separator.
func Join(root, rel string) string {
	if rel == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

// matchEntry lists root/dir and returns the first entry, in listing order,
// whose lowercase name equals the lowercase segment.
func matchEntry(fsys types.FS, root, dir, segment string) (string, error) {
	full := Join(root, dir)

	info, err := fsys.Stat(full)
	if err != nil {
		if isMissing(err) {
			return "", notFound(segment, dir, root)
		}
		return "", fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
			"cannot stat directory %q", full).
			WithDetail("path", full)
	}
	if !info.IsDir() {
		return "", notFound(segment, dir, root)
	}

	entries, err := fsys.ReadDir(full)
	if err != nil {
		return "", fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
			"cannot list directory %q", full).
			WithDetail("path", full)
	}

	want := strings.ToLower(segment)
	for _, entry := range entries {
		if strings.ToLower(entry.Name()) == want {
			return entry.Name(), nil
		}
	}

	return "", notFound(segment, dir, root)
}

func exists(fsys types.FS, full string) (bool, error) {
	_, err := fsys.Stat(full)
	if err == nil {
		return true, nil
	}
	if isMissing(err) {
		return false, nil
	}
	return false, fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
		"cannot stat %q", full).
		WithDetail("path", full)
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func notFound(segment, dir, root string) error {
	return fomoderrors.Newf(fomoderrors.ErrPathNotFound,
		"no entry matching %q in %q", segment, Join(root, dir)).
		WithDetail("segment", segment).
		WithDetail("directory", dir).
		WithDetail("root", root)
}

func joinRelative(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
