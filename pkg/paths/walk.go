package paths

import (
	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/types"
)

// Walk lists every file beneath root/directory, recursing into
// subdirectories. Returned paths are relative to directory, slash-separated,
// and ordered as the filesystem lists them. Symlinks are reported as files.
func Walk(fsys types.FS, directory, root string) ([]string, error) {
	base := Join(root, Normalize(directory))

	info, err := fsys.Stat(base)
	if err != nil {
		return nil, fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
			"cannot read directory %q", base).
			WithDetail("path", base)
	}
	if !info.IsDir() {
		return nil, fomoderrors.Newf(fomoderrors.ErrIOFailure,
			"%q is not a directory", base).
			WithDetail("path", base)
	}

	var files []string
	if err := walk(fsys, base, "", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func walk(fsys types.FS, base, rel string, files *[]string) error {
	full := Join(base, rel)
	entries, err := fsys.ReadDir(full)
	if err != nil {
		return fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
			"cannot read directory %q", full).
			WithDetail("path", full)
	}

	for _, entry := range entries {
		child := joinRelative(rel, entry.Name())
		if entry.IsDir() {
			if err := walk(fsys, base, child, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, child)
	}
	return nil
}
