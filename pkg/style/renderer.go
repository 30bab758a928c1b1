package style

import (
	"fmt"
	"sort"
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/plan"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderPackage(pkg *types.PackageRoot) string
	RenderPage(page *types.Page) string
	RenderPlan(entries []plan.Entry) string
	RenderError(err error) string
}

// NewRenderer returns the renderer for a resolved, non-structured format
func NewRenderer(format Format) Renderer {
	if format == FormatTerminal {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderPackage renders the page, group and option tree of a package
func (r *TerminalRenderer) RenderPackage(pkg *types.PackageRoot) string {
	var result strings.Builder
	result.WriteString(TitleStyle.Render(pkg.Name) + "\n")

	if pkg.Dependencies != nil {
		result.WriteString(MutedStyle.Render("requires ") + ConditionStyle.Render(DescribeDependency(pkg.Dependencies)) + "\n")
	}
	if len(pkg.RequiredFiles) > 0 {
		result.WriteString(SubtitleStyle.Render("Required files") + "\n")
		for _, e := range pkg.RequiredFiles {
			result.WriteString(Indent(r.entry(e), 1) + "\n")
		}
	}

	for _, page := range pkg.Pages {
		result.WriteString("\n" + r.RenderPage(&page) + "\n")
	}

	if len(pkg.Patterns) > 0 {
		result.WriteString("\n" + SubtitleStyle.Render("Conditional installs") + "\n")
		for _, pattern := range pkg.Patterns {
			result.WriteString(Indent(ConditionStyle.Render("when "+DescribeDependency(pattern.Dependencies)), 1) + "\n")
			for _, e := range pattern.Files {
				result.WriteString(Indent(r.entry(e), 2) + "\n")
			}
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderPage renders one wizard page with its groups and options
func (r *TerminalRenderer) RenderPage(page *types.Page) string {
	if page == nil {
		return MutedStyle.Render("No page")
	}

	var result strings.Builder
	result.WriteString(SubtitleStyle.Render(page.Name))
	if page.Visible != nil {
		result.WriteString(" " + ConditionStyle.Render("(visible when "+DescribeDependency(page.Visible)+")"))
	}
	result.WriteString("\n")

	for _, group := range page.Groups {
		result.WriteString(Indent(Bold(group.Name)+" "+GroupTypeStyle.Render(string(group.Type)), 1) + "\n")
		for _, opt := range group.Options {
			result.WriteString(Indent(r.option(opt), 2) + "\n")
			if opt.Description != "" {
				result.WriteString(Indent(MutedStyle.Render(firstLine(opt.Description)), 3) + "\n")
			}
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

func (r *TerminalRenderer) option(opt types.Option) string {
	var indicator string
	switch opt.Type {
	case types.OptionRecommended:
		indicator = RecommendedIndicator
	case types.OptionRequired:
		indicator = RequiredIndicator
	case types.OptionNotUsable:
		indicator = NotUsableIndicator
	default:
		indicator = OptionIndicator
	}

	line := fmt.Sprintf("%s %s", indicator, OptionStyle.Render(opt.Name))
	if flags := describeFlags(opt.Flags); flags != "" {
		line += " " + FlagStyle.Render(flags)
	}
	return line
}

func (r *TerminalRenderer) entry(e types.InstallEntry) string {
	source, destination, kind := describeEntry(e)
	return fmt.Sprintf("%s %s → %s", MutedStyle.Render(kind), PathStyle.Render(source), FileStyle.Render(destination))
}

// RenderPlan renders the resolved destination to source mapping
func (r *TerminalRenderer) RenderPlan(entries []plan.Entry) string {
	if len(entries) == 0 {
		return MutedStyle.Render("No files to install")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render(fmt.Sprintf("%d files to install", len(entries))) + "\n")
	for _, e := range entries {
		result.WriteString(fmt.Sprintf("%s %s ← %s\n",
			pterm.Success.Prefix.Text,
			FileStyle.Render(e.Destination),
			PathStyle.Render(e.Source)))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	code := fomoderrors.GetErrorCode(err)
	if code == fomoderrors.ErrUnknown {
		return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s Error [%s]: %s",
		pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(string(code)),
		err.Error()))
	for _, line := range describeDetails(err) {
		result.WriteString("\n" + Indent(MutedStyle.Render(line), 1))
	}
	return result.String()
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderPackage renders a plain package tree
func (r *PlainRenderer) RenderPackage(pkg *types.PackageRoot) string {
	var result strings.Builder
	result.WriteString(pkg.Name + "\n")

	if pkg.Dependencies != nil {
		result.WriteString("requires " + DescribeDependency(pkg.Dependencies) + "\n")
	}
	for _, e := range pkg.RequiredFiles {
		source, destination, kind := describeEntry(e)
		result.WriteString(fmt.Sprintf("  required %s %s -> %s\n", kind, source, destination))
	}
	for _, page := range pkg.Pages {
		result.WriteString(r.RenderPage(&page) + "\n")
	}
	for _, pattern := range pkg.Patterns {
		result.WriteString("when " + DescribeDependency(pattern.Dependencies) + "\n")
		for _, e := range pattern.Files {
			source, destination, kind := describeEntry(e)
			result.WriteString(fmt.Sprintf("  %s %s -> %s\n", kind, source, destination))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderPage renders a plain page
func (r *PlainRenderer) RenderPage(page *types.Page) string {
	if page == nil {
		return "No page"
	}

	var result strings.Builder
	result.WriteString("Page: " + page.Name)
	if page.Visible != nil {
		result.WriteString(" (visible when " + DescribeDependency(page.Visible) + ")")
	}
	result.WriteString("\n")

	for _, group := range page.Groups {
		result.WriteString(fmt.Sprintf("  %s [%s]\n", group.Name, group.Type))
		for _, opt := range group.Options {
			line := "    - " + opt.Name
			if opt.Type != "" {
				line += " (" + opt.Type + ")"
			}
			if flags := describeFlags(opt.Flags); flags != "" {
				line += " " + flags
			}
			result.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderPlan renders a plain plan
func (r *PlainRenderer) RenderPlan(entries []plan.Entry) string {
	if len(entries) == 0 {
		return "No files to install"
	}

	var result strings.Builder
	for _, e := range entries {
		result.WriteString(fmt.Sprintf("%s <- %s\n", e.Destination, e.Source))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %s", err.Error())
	for _, line := range describeDetails(err) {
		msg += "\n  " + line
	}
	return msg
}

// DescribeDependency renders an expression as a single readable line.
func DescribeDependency(dep types.Dependency) string {
	switch d := dep.(type) {
	case nil:
		return "always"
	case types.FlagDependency:
		return fmt.Sprintf("%s = %q", d.Flag, d.Value)
	case types.GameDependency:
		return "game " + d.Version
	case types.FileDependency:
		return fmt.Sprintf("%s is %s", d.File, strings.ToLower(string(d.State)))
	case types.CompositeDependency:
		if len(d.Children) == 0 {
			if d.Operator == types.OperatorOr {
				return "never"
			}
			return "always"
		}
		parts := make([]string, len(d.Children))
		for i, child := range d.Children {
			parts[i] = DescribeDependency(child)
			if c, ok := child.(types.CompositeDependency); ok && len(c.Children) > 1 {
				parts[i] = "(" + parts[i] + ")"
			}
		}
		return strings.Join(parts, " "+strings.ToLower(string(d.Operator))+" ")
	default:
		return fmt.Sprintf("%T", dep)
	}
}

func describeEntry(e types.InstallEntry) (source, destination, kind string) {
	switch v := e.(type) {
	case types.File:
		return v.Source, v.Destination, "file"
	case types.Folder:
		return v.Source + "/", v.Destination + "/", "folder"
	default:
		return "", "", fmt.Sprintf("%T", e)
	}
}

func describeFlags(flags map[string]string) string {
	if len(flags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, flags[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func describeDetails(err error) []string {
	details := fomoderrors.GetErrorDetails(err)
	if len(details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s: %v", k, details[k])
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " …"
	}
	return s
}
