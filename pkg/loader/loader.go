package loader

import (
	"strconv"
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/paths"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

// ConfigPath is the location of the package description inside a package.
const ConfigPath = "fomod/ModuleConfig.xml"

// Loader parses package descriptions from a filesystem
type Loader struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a loader reading from fs
func New(fs types.FS) *Loader {
	return &Loader{
		fs:     fs,
		logger: logging.GetLogger("loader"),
	}
}

// Load locates fomod/ModuleConfig.xml under root, in any casing, and parses it.
func (l *Loader) Load(root string) (*types.PackageRoot, error) {
	done := logging.LogOperationStart(l.logger, "load")
	defer done()

	rel, err := paths.Resolve(l.fs, ConfigPath, root)
	if err != nil {
		return nil, fomoderrors.Wrapf(err, fomoderrors.ErrPackageInvalid,
			"no package description in %q", root).
			WithDetail("root", root)
	}

	data, err := l.fs.ReadFile(paths.Join(root, rel))
	if err != nil {
		return nil, fomoderrors.Wrapf(err, fomoderrors.ErrIOFailure,
			"cannot read %q", rel).
			WithDetail("path", rel)
	}

	return l.Parse(data, root)
}

// Parse builds a PackageRoot from the bytes of a package description.
// root is the package directory that source paths are resolved against.
func (l *Loader) Parse(data []byte, root string) (*types.PackageRoot, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	config := doc.Root()
	if config == nil || config.Tag != "config" {
		return nil, fomoderrors.New(fomoderrors.ErrPackageInvalid,
			"package description has no <config> root element")
	}

	p := &parser{fs: l.fs, root: root, logger: l.logger}
	pkg, err := p.config(config)
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("name", pkg.Name).
		Int("pages", len(pkg.Pages)).
		Int("patterns", len(pkg.Patterns)).
		Int("requiredFiles", len(pkg.RequiredFiles)).
		Msg("Package description parsed")
	return pkg, nil
}

// parser carries what every node needs while walking one document.
type parser struct {
	fs     types.FS
	root   string
	logger zerolog.Logger
}

func (p *parser) config(el *etree.Element) (*types.PackageRoot, error) {
	pkg := &types.PackageRoot{
		Name: text(el.SelectElement("moduleName")),
	}

	if image := el.SelectElement("moduleImage"); image != nil {
		pkg.Image = p.sourcePath(image.SelectAttrValue("path", ""))
	}

	var err error
	if deps := el.SelectElement("moduleDependencies"); deps != nil {
		if pkg.Dependencies, err = p.dependencies(deps); err != nil {
			return nil, err
		}
	}

	if pkg.RequiredFiles, err = p.files(el.SelectElement("requiredInstallFiles")); err != nil {
		return nil, err
	}

	if steps := el.SelectElement("installSteps"); steps != nil {
		for _, step := range steps.SelectElements("installStep") {
			page, err := p.page(step)
			if err != nil {
				return nil, err
			}
			pkg.Pages = append(pkg.Pages, page)
		}
	}

	if conditional := el.SelectElement("conditionalFileInstalls"); conditional != nil {
		if patterns := conditional.SelectElement("patterns"); patterns != nil {
			for _, pat := range patterns.SelectElements("pattern") {
				pattern, err := p.pattern(pat)
				if err != nil {
					return nil, err
				}
				pkg.Patterns = append(pkg.Patterns, pattern)
			}
		}
	}

	return pkg, nil
}

func (p *parser) page(el *etree.Element) (types.Page, error) {
	page := types.Page{Name: el.SelectAttrValue("name", "")}

	if visible := el.SelectElement("visible"); visible != nil {
		dep, err := p.dependencies(visible)
		if err != nil {
			return page, err
		}
		page.Visible = dep
	}

	if groups := el.SelectElement("optionalFileGroups"); groups != nil {
		for _, g := range groups.SelectElements("group") {
			group, err := p.group(g)
			if err != nil {
				return page, err
			}
			page.Groups = append(page.Groups, group)
		}
	}
	return page, nil
}

func (p *parser) group(el *etree.Element) (types.Group, error) {
	group := types.Group{
		Name: el.SelectAttrValue("name", ""),
		Type: types.GroupType(el.SelectAttrValue("type", string(types.SelectAny))),
	}

	if plugins := el.SelectElement("plugins"); plugins != nil {
		for _, plugin := range plugins.SelectElements("plugin") {
			option, err := p.option(plugin)
			if err != nil {
				return group, err
			}
			group.Options = append(group.Options, option)
		}
	}
	return group, nil
}

func (p *parser) option(el *etree.Element) (types.Option, error) {
	option := types.Option{
		Name:        el.SelectAttrValue("name", ""),
		Description: strings.TrimSpace(text(el.SelectElement("description"))),
		Type:        typeDescriptor(el.SelectElement("typeDescriptor")),
	}

	if image := el.SelectElement("image"); image != nil {
		option.Image = p.sourcePath(image.SelectAttrValue("path", ""))
	}

	var err error
	if option.Files, err = p.files(el.SelectElement("files")); err != nil {
		return option, err
	}

	if flags := el.SelectElement("conditionFlags"); flags != nil {
		option.Flags = make(map[string]string)
		for _, flag := range flags.SelectElements("flag") {
			option.Flags[flag.SelectAttrValue("name", "")] = flag.Text()
		}
	}
	return option, nil
}

// typeDescriptor returns the plain type name, or the default of a
// dependency-driven descriptor.
func typeDescriptor(el *etree.Element) string {
	if el == nil {
		return ""
	}
	if t := el.SelectElement("type"); t != nil {
		return t.SelectAttrValue("name", "")
	}
	if dt := el.SelectElement("dependencyType"); dt != nil {
		if def := dt.SelectElement("defaultType"); def != nil {
			return def.SelectAttrValue("name", "")
		}
	}
	return ""
}

func (p *parser) pattern(el *etree.Element) (types.Pattern, error) {
	var pattern types.Pattern
	var err error

	if deps := el.SelectElement("dependencies"); deps != nil {
		if pattern.Dependencies, err = p.dependencies(deps); err != nil {
			return pattern, err
		}
	}
	pattern.Files, err = p.files(el.SelectElement("files"))
	return pattern, err
}

func (p *parser) files(el *etree.Element) ([]types.InstallEntry, error) {
	if el == nil {
		return nil, nil
	}

	var entries []types.InstallEntry
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "file":
			source, destination, priority := p.entry(child)
			entries = append(entries, types.File{Source: source, Destination: destination, Priority: priority})
		case "folder":
			source, destination, priority := p.entry(child)
			entries = append(entries, types.Folder{Source: source, Destination: destination, Priority: priority})
		default:
			p.logger.Debug().Str("element", child.Tag).Msg("Ignoring unknown install entry")
		}
	}
	return entries, nil
}

// entry reads the attributes shared by file and folder elements. A missing
// destination installs to the declared source path.
func (p *parser) entry(el *etree.Element) (string, string, *int) {
	declared := el.SelectAttrValue("source", "")
	source := p.sourcePath(declared)

	destination := paths.Normalize(declared)
	if attr := el.SelectAttr("destination"); attr != nil {
		destination = paths.Normalize(attr.Value)
	}

	var priority *int
	if raw := el.SelectAttrValue("priority", ""); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			priority = types.PriorityOf(n)
		} else {
			p.logger.Warn().Str("priority", raw).Str("source", declared).Msg("Ignoring invalid priority")
		}
	}
	return source, destination, priority
}

// sourcePath resolves a path declared relative to the package root. Paths
// that cannot be found are kept as declared (normalized); installing them
// fails later if they are folders.
func (p *parser) sourcePath(declared string) string {
	if declared == "" {
		return ""
	}
	resolved, err := paths.Resolve(p.fs, declared, p.root)
	if err != nil {
		p.logger.Warn().Err(err).Str("path", declared).Msg("Declared path not found in package")
		return paths.Normalize(declared)
	}
	return resolved
}

func (p *parser) dependencies(el *etree.Element) (types.Dependency, error) {
	operator, err := parseOperator(el.SelectAttrValue("operator", string(types.OperatorAnd)))
	if err != nil {
		return nil, err
	}

	composite := types.CompositeDependency{Operator: operator}
	for _, child := range el.ChildElements() {
		var dep types.Dependency
		switch child.Tag {
		case "flagDependency":
			dep = types.FlagDependency{
				Flag:  child.SelectAttrValue("flag", ""),
				Value: child.SelectAttrValue("value", ""),
			}
		case "gameDependency":
			dep = types.GameDependency{Version: child.SelectAttrValue("version", "")}
		case "fileDependency":
			state, err := types.ParseFileState(child.SelectAttrValue("state", ""))
			if err != nil {
				return nil, fomoderrors.Wrap(err, fomoderrors.ErrMalformedExpression,
					"invalid file dependency").
					WithDetail("kind", "file")
			}
			dep = types.FileDependency{
				File:  paths.Normalize(child.SelectAttrValue("file", "")),
				State: state,
			}
		case "dependencies":
			if dep, err = p.dependencies(child); err != nil {
				return nil, err
			}
		default:
			return nil, fomoderrors.Newf(fomoderrors.ErrMalformedExpression,
				"unsupported dependency element <%s>", child.Tag).
				WithDetail("kind", child.Tag)
		}
		composite.Children = append(composite.Children, dep)
	}
	return composite, nil
}

func parseOperator(raw string) (types.Operator, error) {
	for _, op := range []types.Operator{types.OperatorAnd, types.OperatorOr} {
		if strings.EqualFold(strings.TrimSpace(raw), string(op)) {
			return op, nil
		}
	}
	return "", fomoderrors.Newf(fomoderrors.ErrMalformedExpression,
		"unknown dependency operator %q", raw).
		WithDetail("kind", "operator")
}

func text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Text()
}
