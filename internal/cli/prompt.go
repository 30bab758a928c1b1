package cli

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/fomod/pkg/answers"
	"github.com/arthur-debert/fomod/pkg/installer"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/pterm/pterm"
)

// prompter asks the user to pick among named choices
type prompter interface {
	SelectOne(title string, choices []string, def string) (string, error)
	SelectMany(title string, choices []string, defs []string) ([]string, error)
}

// ptermPrompter prompts on the terminal
type ptermPrompter struct{}

func (ptermPrompter) SelectOne(title string, choices []string, def string) (string, error) {
	sel := pterm.DefaultInteractiveSelect.WithOptions(choices)
	if def != "" {
		sel = sel.WithDefaultOption(def)
	}
	return sel.Show(title)
}

func (ptermPrompter) SelectMany(title string, choices []string, defs []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.
		WithOptions(choices).
		WithDefaultOptions(defs).
		Show(title)
}

// wizard walks an installer page by page, asking p for each group
type wizard struct {
	inst   *installer.Installer
	prompt prompter
	show   func(page *types.Page)
}

// run drives the installer until no pages remain
func (w *wizard) run() error {
	if _, err := w.inst.Next(nil); err != nil {
		return err
	}

	depth := 0
	for page := w.inst.Page(); page != nil; page = w.inst.Page() {
		if w.show != nil {
			w.show(page)
		}

		selected, back, err := w.ask(page, depth > 0)
		if err != nil {
			return err
		}

		if back {
			w.inst.Previous()
			depth--
			continue
		}

		if _, err := w.inst.Next(selected); err != nil {
			return err
		}
		depth++
	}
	return nil
}

// ask collects the selection for every group of page. back reports that
// the user asked to return to the previous page.
func (w *wizard) ask(page *types.Page, canGoBack bool) ([]types.Option, bool, error) {
	var selected []types.Option
	for i := range page.Groups {
		group := &page.Groups[i]

		choices := make([]string, 0, len(group.Options)+1)
		for _, opt := range group.Options {
			choices = append(choices, opt.Name)
		}
		if canGoBack {
			choices = append(choices, MsgBackOption)
		}

		var defs []string
		for _, opt := range answers.Defaults(group) {
			defs = append(defs, opt.Name)
		}

		var picked []string
		if group.Type == types.SelectExactlyOne || group.Type == types.SelectAtMostOne {
			def := ""
			if len(defs) > 0 {
				def = defs[0]
			}
			choice, err := w.prompt.SelectOne(fmt.Sprintf(MsgSelectOne, group.Name), choices, def)
			if err != nil {
				return nil, false, err
			}
			picked = []string{choice}
		} else {
			many, err := w.prompt.SelectMany(fmt.Sprintf(MsgSelectMany, group.Name), choices, defs)
			if err != nil {
				return nil, false, err
			}
			picked = many
		}

		if slices.Contains(picked, MsgBackOption) {
			return nil, true, nil
		}
		for _, opt := range group.Options {
			if slices.Contains(picked, opt.Name) {
				selected = append(selected, opt)
			}
		}
	}
	return selected, false, nil
}
