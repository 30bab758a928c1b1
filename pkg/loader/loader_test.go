// pkg/loader/loader_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory afero filesystem
// PURPOSE: Test parsing of package descriptions into PackageRoot values

package loader

import (
	"errors"
	"testing"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/filesystem"
	"github.com/arthur-debert/fomod/pkg/testutil"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const pkgRoot = "/mods/pkg"

const sampleConfig = `<?xml version="1.0" encoding="utf-8"?>
<config xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <moduleName>Sample Mod</moduleName>
  <moduleImage path="FOMOD\Images\Cover.png"/>
  <moduleDependencies operator="And">
    <fileDependency file="Base.esm" state="Active"/>
  </moduleDependencies>
  <requiredInstallFiles>
    <file source="Core\core.esp" destination="core.esp"/>
    <folder source="textures" priority="2"/>
  </requiredInstallFiles>
  <installSteps order="Explicit">
    <installStep name="Options">
      <optionalFileGroups order="Explicit">
        <group name="Main" type="SelectExactlyOne">
          <plugins order="Explicit">
            <plugin name="Lite">
              <description>
                Lighter variant.
              </description>
              <image path="fomod/images/lite.png"/>
              <files>
                <file source="opt/lite.esp" destination="Lite.esp" priority="-3"/>
              </files>
              <conditionFlags>
                <flag name="variant">lite</flag>
                <flag name="empty"></flag>
              </conditionFlags>
              <typeDescriptor>
                <type name="Recommended"/>
              </typeDescriptor>
            </plugin>
            <plugin name="Full">
              <description>Everything.</description>
              <typeDescriptor>
                <dependencyType>
                  <defaultType name="Optional"/>
                  <patterns/>
                </dependencyType>
              </typeDescriptor>
            </plugin>
          </plugins>
        </group>
      </optionalFileGroups>
    </installStep>
    <installStep name="Extras">
      <visible>
        <dependencies operator="or">
          <flagDependency flag="variant" value="full"/>
          <gameDependency version="1.6.640"/>
        </dependencies>
      </visible>
    </installStep>
  </installSteps>
  <conditionalFileInstalls>
    <patterns>
      <pattern>
        <dependencies>
          <flagDependency flag="variant" value="lite"/>
        </dependencies>
        <files>
          <file source="patch/lite.esp" destination="patch.esp" priority="5"/>
        </files>
      </pattern>
    </patterns>
  </conditionalFileInstalls>
</config>`

func writePackage(t *testing.T, config []byte, files ...string) types.FS {
	t.Helper()
	return testutil.NewTestPackage(t, pkgRoot).
		AddConfig(t, "FOMOD/moduleconfig.xml", string(config)).
		AddFiles(t, files...).
		FS
}

func TestLoadSamplePackage(t *testing.T) {
	fsys := writePackage(t, []byte(sampleConfig),
		"core/Core.esp", "Textures/a.dds", "FOMOD/images/cover.png")

	pkg, err := New(fsys).Load(pkgRoot)
	require.NoError(t, err)

	assert.Equal(t, "Sample Mod", pkg.Name)
	assert.Equal(t, "FOMOD/images/cover.png", pkg.Image)

	assert.Equal(t, types.CompositeDependency{
		Operator: types.OperatorAnd,
		Children: []types.Dependency{
			types.FileDependency{File: "Base.esm", State: types.FileActive},
		},
	}, pkg.Dependencies)

	require.Len(t, pkg.RequiredFiles, 2)
	assert.Equal(t, types.File{Source: "core/Core.esp", Destination: "core.esp"}, pkg.RequiredFiles[0])
	assert.Equal(t, types.Folder{Source: "Textures", Destination: "textures", Priority: types.PriorityOf(2)}, pkg.RequiredFiles[1])

	require.Len(t, pkg.Pages, 2)
	page := pkg.Pages[0]
	assert.Equal(t, "Options", page.Name)
	assert.Nil(t, page.Visible)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, types.SelectExactlyOne, page.Groups[0].Type)

	options := page.Groups[0].Options
	require.Len(t, options, 2)
	assert.Equal(t, "Lite", options[0].Name)
	assert.Equal(t, "Lighter variant.", options[0].Description)
	assert.Equal(t, "fomod/images/lite.png", options[0].Image)
	assert.Equal(t, types.OptionRecommended, options[0].Type)
	assert.Equal(t, map[string]string{"variant": "lite", "empty": ""}, options[0].Flags)
	assert.Equal(t, []types.InstallEntry{types.File{Source: "opt/lite.esp", Destination: "Lite.esp"}}, options[0].Files)
	assert.Equal(t, types.OptionOptional, options[1].Type)
	assert.Nil(t, options[1].Flags)

	// <visible> is itself an And node wrapping the nested <dependencies>.
	assert.Equal(t, types.CompositeDependency{
		Operator: types.OperatorAnd,
		Children: []types.Dependency{
			types.CompositeDependency{
				Operator: types.OperatorOr,
				Children: []types.Dependency{
					types.FlagDependency{Flag: "variant", Value: "full"},
					types.GameDependency{Version: "1.6.640"},
				},
			},
		},
	}, pkg.Pages[1].Visible)

	require.Len(t, pkg.Patterns, 1)
	assert.Equal(t, []types.InstallEntry{
		types.File{Source: "patch/lite.esp", Destination: "patch.esp", Priority: types.PriorityOf(5)},
	}, pkg.Patterns[0].Files)
}

func TestLoadUTF16Document(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-16"?>
<config><moduleName>Wide Mod</moduleName></config>`
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	pkg, err := New(writePackage(t, encoded)).Load(pkgRoot)
	require.NoError(t, err)
	assert.Equal(t, "Wide Mod", pkg.Name)
}

func TestLoadUTF8WithBOM(t *testing.T) {
	doc := append([]byte("\xEF\xBB\xBF"), []byte(`<config><moduleName>BOM Mod</moduleName></config>`)...)

	pkg, err := New(writePackage(t, doc)).Load(pkgRoot)
	require.NoError(t, err)
	assert.Equal(t, "BOM Mod", pkg.Name)
}

func TestLoadMissingDescription(t *testing.T) {
	tp := testutil.NewTestPackage(t, pkgRoot)

	_, err := New(tp.FS).Load(pkgRoot)
	require.Error(t, err)
	assert.True(t, fomoderrors.IsErrorCode(err, fomoderrors.ErrPackageInvalid))
}

func TestLoadReadFailure(t *testing.T) {
	fsys := writePackage(t, []byte(sampleConfig))
	faulty := testutil.NewFaultyFS(fsys).Fail(pkgRoot+"/FOMOD/moduleconfig.xml", errors.New("disk error"))

	_, err := New(faulty).Load(pkgRoot)
	require.Error(t, err)
	assert.True(t, fomoderrors.IsErrorCode(err, fomoderrors.ErrIOFailure))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code fomoderrors.ErrorCode
	}{
		{
			name: "not xml",
			doc:  "this is not a package",
			code: fomoderrors.ErrPackageInvalid,
		},
		{
			name: "wrong root element",
			doc:  `<installer><moduleName>x</moduleName></installer>`,
			code: fomoderrors.ErrPackageInvalid,
		},
		{
			name: "unknown operator",
			doc:  `<config><moduleDependencies operator="Xor"/></config>`,
			code: fomoderrors.ErrMalformedExpression,
		},
		{
			name: "unknown dependency element",
			doc:  `<config><moduleDependencies><pluginDependency/></moduleDependencies></config>`,
			code: fomoderrors.ErrMalformedExpression,
		},
		{
			name: "unknown file state",
			doc:  `<config><moduleDependencies><fileDependency file="a.esp" state="Broken"/></moduleDependencies></config>`,
			code: fomoderrors.ErrMalformedExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, _ := filesystem.NewMemory()
			_, err := New(fsys).Parse([]byte(tt.doc), pkgRoot)
			require.Error(t, err)
			assert.Equal(t, tt.code, fomoderrors.GetErrorCode(err))
		})
	}
}

func TestParseNestedDependencies(t *testing.T) {
	doc := `<config>
  <moduleDependencies>
    <dependencies operator="Or">
      <flagDependency flag="a" value="1"/>
      <dependencies>
        <gameDependency version="1.0"/>
      </dependencies>
    </dependencies>
  </moduleDependencies>
</config>`
	fsys, _ := filesystem.NewMemory()

	pkg, err := New(fsys).Parse([]byte(doc), pkgRoot)
	require.NoError(t, err)
	assert.Equal(t, types.CompositeDependency{
		Operator: types.OperatorAnd,
		Children: []types.Dependency{
			types.CompositeDependency{
				Operator: types.OperatorOr,
				Children: []types.Dependency{
					types.FlagDependency{Flag: "a", Value: "1"},
					types.CompositeDependency{
						Operator: types.OperatorAnd,
						Children: []types.Dependency{types.GameDependency{Version: "1.0"}},
					},
				},
			},
		},
	}, pkg.Dependencies)
}

func TestParseUnresolvedSourceKeepsDeclaredPath(t *testing.T) {
	doc := `<config><requiredInstallFiles><file source="Missing\\Thing.esp"/></requiredInstallFiles></config>`
	tp := testutil.NewTestPackage(t, pkgRoot)

	pkg, err := New(tp.FS).Parse([]byte(doc), pkgRoot)
	require.NoError(t, err)
	assert.Equal(t, []types.InstallEntry{
		types.File{Source: "Missing/Thing.esp", Destination: "Missing/Thing.esp"},
	}, pkg.RequiredFiles)
}

func TestParseOperatorCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"AND", "and", " Or "} {
		op, err := parseOperator(raw)
		require.NoError(t, err, raw)
		assert.Contains(t, []types.Operator{types.OperatorAnd, types.OperatorOr}, op)
	}
}
