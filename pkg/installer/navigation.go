package installer

import (
	"github.com/arthur-debert/fomod/pkg/types"
)

// next builds the snapshot that follows s once the selected options of the
// current page are applied. Pages whose visibility is false are skipped;
// once the pages run out, every pattern that holds installs its files.
func (s *snapshot) next(selected []types.Option) (*snapshot, error) {
	n := s.derive()

	for _, option := range selected {
		for flag, value := range option.Flags {
			n.flags[flag] = value
		}
		if err := n.installFiles(option.Files); err != nil {
			return nil, err
		}
	}

	pages := s.env.root.Pages
	for n.pageIndex < len(pages) {
		page := &pages[n.pageIndex]
		visible, err := n.evaluate(page.Visible)
		if err != nil {
			return nil, err
		}
		if visible {
			return n, nil
		}
		s.env.logger.Debug().
			Int("page", n.pageIndex).
			Str("name", page.Name).
			Msg("Skipping hidden page")
		n.pageIndex++
	}

	for i, pattern := range s.env.root.Patterns {
		ok, err := n.evaluate(pattern.Dependencies)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		s.env.logger.Debug().Int("pattern", i).Msg("Applying conditional pattern")
		if err := n.installFiles(pattern.Files); err != nil {
			return nil, err
		}
	}
	return n, nil
}
