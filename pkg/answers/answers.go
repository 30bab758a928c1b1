// Package answers drives the installer without a user: a YAML document
// names the options to pick on each page.
//
//	pages:
//	  - name: Options
//	    groups:
//	      - name: Main
//	        options: [Lite]
//
// Groups the document does not mention get their default selection.
package answers

import (
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/types"
	"gopkg.in/yaml.v3"
)

// Answers is a parsed answers document
type Answers struct {
	Pages []PageAnswer `yaml:"pages"`
}

// PageAnswer holds the choices for one page
type PageAnswer struct {
	Name   string        `yaml:"name"`
	Groups []GroupAnswer `yaml:"groups"`
}

// GroupAnswer lists the option names chosen in one group
type GroupAnswer struct {
	Name    string   `yaml:"name"`
	Options []string `yaml:"options"`
}

// Parse reads an answers document
func Parse(data []byte) (*Answers, error) {
	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fomoderrors.Wrap(err, fomoderrors.ErrAnswersInvalid, "cannot parse answers")
	}
	return &a, nil
}

// Load reads an answers document from fs
func Load(fs types.FS, path string) (*Answers, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure, "cannot read answers %q", path).
			WithDetail("path", path)
	}
	return Parse(data)
}

// Select returns the options chosen on page, in page order. A nil receiver
// selects defaults everywhere.
func (a *Answers) Select(page *types.Page) ([]types.Option, error) {
	if page == nil {
		return nil, nil
	}

	logger := logging.GetLogger("answers")
	answer := a.page(page.Name)

	if answer != nil {
		for _, g := range answer.Groups {
			if findGroup(page, g.Name) == nil {
				return nil, fomoderrors.Newf(fomoderrors.ErrAnswersInvalid,
					"page %q has no group %q", page.Name, g.Name).
					WithDetail("page", page.Name).
					WithDetail("group", g.Name)
			}
		}
	}

	var selected []types.Option
	for i := range page.Groups {
		group := &page.Groups[i]

		ga := answer.group(group.Name)
		if ga == nil {
			chosen := Defaults(group)
			logger.Debug().
				Str("page", page.Name).
				Str("group", group.Name).
				Int("options", len(chosen)).
				Msg("Using default selection")
			selected = append(selected, chosen...)
			continue
		}

		chosen, err := pick(page, group, ga.Options)
		if err != nil {
			return nil, err
		}
		selected = append(selected, chosen...)
	}
	return selected, nil
}

// Defaults is the selection made for a group nobody answered.
func Defaults(group *types.Group) []types.Option {
	var chosen []types.Option
	switch group.Type {
	case types.SelectAll:
		return append(chosen, group.Options...)
	case types.SelectExactlyOne:
		if opt := firstOfType(group, types.OptionRecommended); opt != nil {
			return append(chosen, *opt)
		}
		for _, opt := range group.Options {
			if opt.Type != types.OptionNotUsable {
				return append(chosen, opt)
			}
		}
		return nil
	}

	for _, opt := range group.Options {
		if opt.Type == types.OptionRequired {
			chosen = append(chosen, opt)
		}
	}
	return chosen
}

func pick(page *types.Page, group *types.Group, names []string) ([]types.Option, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		found := false
		for _, opt := range group.Options {
			if strings.EqualFold(opt.Name, name) {
				found = true
				break
			}
		}
		if !found {
			return nil, fomoderrors.Newf(fomoderrors.ErrAnswersInvalid,
				"group %q has no option %q", group.Name, name).
				WithDetail("page", page.Name).
				WithDetail("group", group.Name).
				WithDetail("option", name)
		}
		wanted[strings.ToLower(name)] = true
	}

	var chosen []types.Option
	for _, opt := range group.Options {
		if wanted[strings.ToLower(opt.Name)] {
			chosen = append(chosen, opt)
		}
	}
	return chosen, nil
}

func (a *Answers) page(name string) *PageAnswer {
	if a == nil {
		return nil
	}
	for i := range a.Pages {
		if strings.EqualFold(a.Pages[i].Name, name) {
			return &a.Pages[i]
		}
	}
	return nil
}

func (p *PageAnswer) group(name string) *GroupAnswer {
	if p == nil {
		return nil
	}
	for i := range p.Groups {
		if strings.EqualFold(p.Groups[i].Name, name) {
			return &p.Groups[i]
		}
	}
	return nil
}

func findGroup(page *types.Page, name string) *types.Group {
	for i := range page.Groups {
		if strings.EqualFold(page.Groups[i].Name, name) {
			return &page.Groups[i]
		}
	}
	return nil
}

func firstOfType(group *types.Group, kind string) *types.Option {
	for i := range group.Options {
		if group.Options[i].Type == kind {
			return &group.Options[i]
		}
	}
	return nil
}
