// internal/cli/commands_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: In-memory afero filesystem, temp config files
// PURPOSE: Test the inspect, plan and run commands end to end

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/plan"
	"github.com/arthur-debert/fomod/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const pkgDir = "/mods/sample"

const moduleConfig = `<config>
  <moduleName>Sample Mod</moduleName>
  <moduleDependencies>
    <fileDependency file="Base.esm" state="Active"/>
  </moduleDependencies>
  <requiredInstallFiles>
    <file source="core/core.esp" destination="core.esp"/>
  </requiredInstallFiles>
  <installSteps>
    <installStep name="Options">
      <optionalFileGroups>
        <group name="Main" type="SelectExactlyOne">
          <plugins>
            <plugin name="Lite">
              <description>Small.</description>
              <files><file source="opt/lite.esp" destination="variant.esp"/></files>
              <conditionFlags><flag name="variant">lite</flag></conditionFlags>
              <typeDescriptor><type name="Optional"/></typeDescriptor>
            </plugin>
            <plugin name="Full">
              <description>Big.</description>
              <files><file source="opt/full.esp" destination="variant.esp"/></files>
              <conditionFlags><flag name="variant">full</flag></conditionFlags>
              <typeDescriptor><type name="Recommended"/></typeDescriptor>
            </plugin>
          </plugins>
        </group>
      </optionalFileGroups>
    </installStep>
    <installStep name="Extras">
      <visible><flagDependency flag="variant" value="full"/></visible>
      <optionalFileGroups>
        <group name="Addons" type="SelectAny">
          <plugins>
            <plugin name="Music">
              <description>Songs.</description>
              <files><folder source="music" destination="sound"/></files>
              <typeDescriptor><type name="Optional"/></typeDescriptor>
            </plugin>
          </plugins>
        </group>
      </optionalFileGroups>
    </installStep>
  </installSteps>
  <conditionalFileInstalls>
    <patterns>
      <pattern>
        <dependencies><flagDependency flag="preset" value="low"/></dependencies>
        <files><file source="patch/low.esp" destination="low.esp"/></files>
      </pattern>
    </patterns>
  </conditionalFileInstalls>
</config>`

type testEnv struct {
	opts   *rootOptions
	mem    afero.Fs
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("FOMOD_LOG_FILE", filepath.Join(t.TempDir(), "fomod.log"))

	tp := testutil.NewTestPackage(t, pkgDir).
		AddConfig(t, "Fomod/ModuleConfig.xml", moduleConfig).
		AddFiles(t, "Core/Core.esp", "opt/lite.esp", "opt/full.esp", "Music/a.ogg", "Music/b.ogg", "patch/low.esp")

	env := &testEnv{opts: &rootOptions{fs: tp.FS}, mem: tp.Mem}
	env.writeConfig(t, `
[[files]]
path = "Base.esm"
state = "active"
`)
	return env
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	e.config = filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(e.config, []byte(content), 0644))
}

func (e *testEnv) execute(t *testing.T, p prompter, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(e.opts)
	if p != nil {
		for _, c := range root.Commands() {
			if c.Name() == "run" {
				root.RemoveCommand(c)
			}
		}
		root.AddCommand(newRunCmd(e.opts, p))
	}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func decodePlan(t *testing.T, out string) []plan.Entry {
	t.Helper()
	var doc struct {
		Files []plan.Entry `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	return doc.Files
}

func TestInspect(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, nil, "inspect", pkgDir, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample Mod")
	assert.Contains(t, out, "Page: Options")
	assert.Contains(t, out, `Page: Extras (visible when variant = "full")`)
	assert.Contains(t, out, "when preset = \"low\"")
}

func TestPlanDefaults(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, nil, "plan", pkgDir, "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, []plan.Entry{
		{Destination: "core.esp", Source: "Core/Core.esp"},
		{Destination: "variant.esp", Source: "opt/full.esp"},
	}, decodePlan(t, out))
}

func TestPlanWithAnswersAndFlags(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, afero.WriteFile(env.mem, "/answers.yaml", []byte(`
pages:
  - name: Options
    groups:
      - name: Main
        options: [Full]
  - name: Extras
    groups:
      - name: Addons
        options: [Music]
`), 0644))

	out, err := env.execute(t, nil, "plan", pkgDir, "-o", "yaml",
		"--answers", "/answers.yaml", "--flag", "preset=low")
	require.NoError(t, err)
	assert.Equal(t, []plan.Entry{
		{Destination: "core.esp", Source: "Core/Core.esp"},
		{Destination: "low.esp", Source: "patch/low.esp"},
		{Destination: "sound/a.ogg", Source: "Music/a.ogg"},
		{Destination: "sound/b.ogg", Source: "Music/b.ogg"},
		{Destination: "variant.esp", Source: "opt/full.esp"},
	}, decodePlan(t, out))
}

func TestPlanRefusesInapplicablePackage(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, `
[oracle]
default = "missing"
`)

	_, err := env.execute(t, nil, "plan", pkgDir)
	require.Error(t, err)
	assert.True(t, fomoderrors.IsErrorCode(err, fomoderrors.ErrPackageInvalid))

	_, err = env.execute(t, nil, "plan", pkgDir, "--force", "-o", "json")
	assert.NoError(t, err)
}

func TestPlanErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, nil, "plan", "/nowhere")
	assert.True(t, fomoderrors.IsErrorCode(err, fomoderrors.ErrPackageInvalid))

	_, err = env.execute(t, nil, "plan", pkgDir, "--flag", "novalue")
	assert.True(t, fomoderrors.IsErrorCode(err, fomoderrors.ErrInvalidInput))

	_, err = env.execute(t, nil, "plan", pkgDir, "-o", "xml")
	assert.True(t, fomoderrors.IsErrorCode(err, fomoderrors.ErrConfigParse))
}

// scriptedPrompter answers prompts from a fixed list, one entry per prompt.
type scriptedPrompter struct {
	answers [][]string
	titles  []string
}

func (s *scriptedPrompter) next(title string) []string {
	s.titles = append(s.titles, title)
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer
}

func (s *scriptedPrompter) SelectOne(title string, choices []string, def string) (string, error) {
	return s.next(title)[0], nil
}

func (s *scriptedPrompter) SelectMany(title string, choices []string, defs []string) ([]string, error) {
	return s.next(title), nil
}

func TestRunWithBack(t *testing.T) {
	env := newTestEnv(t)
	p := &scriptedPrompter{answers: [][]string{
		{"Full"},
		{MsgBackOption},
		{"Lite"},
	}}

	out, err := env.execute(t, p, "run", pkgDir, "-o", "yaml")
	require.NoError(t, err)
	assert.Empty(t, p.answers)
	assert.Equal(t, []string{"Main (choose one)", "Addons (choose any)", "Main (choose one)"}, p.titles)

	idx := strings.Index(out, "files:")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, []plan.Entry{
		{Destination: "core.esp", Source: "Core/Core.esp"},
		{Destination: "variant.esp", Source: "opt/lite.esp"},
	}, decodePlan(t, out[idx:]))
}

func TestVersionAndMan(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fomod version")

	out, err = env.execute(t, nil, "man")
	require.NoError(t, err)
	assert.Contains(t, out, "FOMOD")

	out, err = env.execute(t, nil, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "fomod")
}

func TestInitialFlags(t *testing.T) {
	flags, err := initialFlags(map[string]string{"a": "1", "b": "2"}, []string{"b=3", "c=x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "x=y"}, map[string]string(flags))

	_, err = initialFlags(nil, []string{"=v"})
	assert.Error(t, err)
}
