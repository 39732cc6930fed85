package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/ax/axtest"
	"github.com/mj1618/axcore/internal/platform"
)

type fixture struct {
	backend *axtest.Backend
	trust   *axtest.Trust
	app     *axtest.Node
	window  *axtest.Node
	field   *axtest.Node
	button  *axtest.Node
}

// newFixture installs a fake provider: pid 42 is an app with one window
// holding a text field and a button.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("AXCORE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	b := axtest.NewBackend()
	field := &axtest.Node{Name: "field", PID: 42, Settable: map[string]bool{ax.AttrValue: true, "AXSelectedTextRange": true}}
	field.Set(ax.AttrRole, ax.StringOf("AXTextField"))
	field.Set(ax.AttrValue, ax.StringOf("hello"))
	field.Set("AXSelectedTextRange", ax.Boxed{Type: ax.BoxRange, Range: ax.CFRange{Location: 1, Length: 2}})
	field.Params = map[string]axtest.ParamFunc{
		"AXStringForRange": func(p ax.Value) ax.Value {
			r := p.(ax.Boxed).Range
			return ax.StringOf("hello"[r.Location : r.Location+r.Length])
		},
	}
	button := &axtest.Node{Name: "button", PID: 42, Actions: []string{"AXPress", "AXShowMenu"}}
	button.Set(ax.AttrRole, ax.StringOf("AXButton"))
	button.Set(ax.AttrTitle, ax.StringOf("OK"))
	window := &axtest.Node{Name: "window", PID: 42}
	window.Set(ax.AttrRole, ax.StringOf("AXWindow"))
	window.Set(ax.AttrTitle, ax.StringOf("Main"))
	window.Set(ax.AttrChildren, ax.Array{b.Ref(field), b.Ref(button)})
	app := &axtest.Node{Name: "app", PID: 42}
	app.Set(ax.AttrRole, ax.StringOf("AXApplication"))
	app.Set(ax.AttrChildren, ax.Array{b.Ref(window)})
	app.HitTest = func(ax.Point) *axtest.Node { return button }
	b.AddApp(app)

	trust := &axtest.Trust{Trusted: true}
	orig := platform.NewProviderFunc
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Backend:   b,
			Processes: axtest.Processes{42: true},
			RunLoop:   &axtest.RunLoop{},
			Trust:     trust,
		}, nil
	}
	t.Cleanup(func() { platform.NewProviderFunc = orig })
	return &fixture{backend: b, trust: trust, app: app, window: window, field: field, button: button}
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--format", "json"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	out, err := runCLI(t, args...)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"attrs", "get", "set", "count", "writable", "actions", "perform", "at", "pid", "tree", "type", "trust", "serve", "version"}
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestAttrs(t *testing.T) {
	newFixture(t)
	m := runJSON(t, "attrs", "--pid", "42", "--child", "0,0")
	assert.Equal(t, "<AXUIElement field>", m["element"])
	assert.Equal(t, []any{"AXRole", "AXSelectedTextRange", "AXValue"}, m["names"])

	m = runJSON(t, "attrs", "--param", "--pid", "42", "--child", "0,0")
	assert.Equal(t, []any{"AXStringForRange"}, m["names"])
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	live := f.backend.Live()

	m := runJSON(t, "get", "AXValue", "--pid", "42", "--child", "0,0")
	assert.Equal(t, "hello", m["value"])

	m = runJSON(t, "get", "AXSelectedTextRange", "--pid", "42", "--child", "0,0")
	assert.Equal(t, "1..2", m["value"])

	m = runJSON(t, "get", "AXChildren", "--pid", "42", "--child", "0")
	assert.Equal(t, []any{"<AXUIElement field>", "<AXUIElement button>"}, m["value"])

	m = runJSON(t, "get", "AXStringForRange", "--param", "1...4", "--param-type", "range", "--pid", "42", "--child", "0,0")
	assert.Equal(t, "ell", m["value"])

	assert.Equal(t, live, f.backend.Live(), "commands leaked objects")
}

func TestSet(t *testing.T) {
	f := newFixture(t)
	m := runJSON(t, "set", "AXSelectedTextRange", "0...0", "--type", "range", "--pid", "42", "--child", "0,0")
	assert.Equal(t, "0...0", m["value"])
	assert.Equal(t, ax.Boxed{Type: ax.BoxRange, Range: ax.CFRange{Location: 0, Length: 0}}, f.field.Attrs["AXSelectedTextRange"])

	runJSON(t, "set", "AXValue", "bye", "--pid", "42", "--child", "0,0")
	assert.Equal(t, ax.StringOf("bye"), f.field.Attrs[ax.AttrValue])

	_, err := runCLI(t, "set", "AXValue", "x", "--type", "complex", "--pid", "42")
	assert.Error(t, err)
}

func TestCountAndWritable(t *testing.T) {
	newFixture(t)
	m := runJSON(t, "count", "AXChildren", "--pid", "42", "--child", "0")
	assert.Equal(t, float64(2), m["value"])

	m = runJSON(t, "writable", "AXValue", "--pid", "42", "--child", "0,0")
	assert.Equal(t, true, m["value"])
}

func TestActionsAndPerform(t *testing.T) {
	f := newFixture(t)
	m := runJSON(t, "actions", "--pid", "42", "--at", "5,5")
	assert.Equal(t, []any{"AXPress", "AXShowMenu"}, m["names"])

	m = runJSON(t, "perform", "AXPress", "--pid", "42", "--child", "0,1")
	assert.Equal(t, true, m["performed"])
	assert.Equal(t, []string{"AXPress"}, f.button.Performed)
}

func TestAtAndPID(t *testing.T) {
	newFixture(t)
	m := runJSON(t, "at", "5,5", "--pid", "42")
	assert.Equal(t, "<AXUIElement button>", m["element"])
	assert.Equal(t, float64(42), m["pid"])
	assert.Equal(t, "AXButton", m["r"])
	assert.Equal(t, "OK", m["t"])

	m = runJSON(t, "pid", "--pid", "42", "--child", "0")
	assert.Equal(t, float64(42), m["value"])

	m = runJSON(t, "pid")
	assert.Equal(t, float64(0), m["value"], "system-wide element")
}

func TestTree(t *testing.T) {
	newFixture(t)
	m := runJSON(t, "tree", "--pid", "42", "--flat", "--roles", "textfield")
	elements := m["elements"].([]any)
	require.Len(t, elements, 1)
	el := elements[0].(map[string]any)
	assert.Equal(t, "AXTextField", el["r"])
	assert.Equal(t, "0,0", el["c"])
	assert.Equal(t, "Application > Window > TextField", el["p"])

	m = runJSON(t, "tree", "--pid", "42", "--flat", "--roles", "pressable")
	elements = m["elements"].([]any)
	require.Len(t, elements, 1)
	assert.Equal(t, "OK", elements[0].(map[string]any)["t"])

	m = runJSON(t, "tree", "--pid", "42", "--depth", "2")
	root := m["elements"].([]any)[0].(map[string]any)
	window := root["children"].([]any)[0].(map[string]any)
	assert.Nil(t, window["children"], "depth 2 stops at the window")

	_, err := runCLI(t, "tree", "--depth", "-1")
	assert.Error(t, err)
}

func TestType(t *testing.T) {
	f := newFixture(t)
	m := runJSON(t, "type", "--pid", "42", "--key-rate", "0", "cmd+a", "x")
	assert.Equal(t, float64(6), m["events"])
	assert.Equal(t, []ax.KeyEvent{
		{Key: 0x37, Down: true}, {Key: 0x00, Down: true}, {Key: 0x00, Down: false}, {Key: 0x37, Down: false},
		{Key: 0x07, Down: true}, {Key: 0x07, Down: false},
	}, f.app.Events)

	_, err := runCLI(t, "type", "--pid", "42", "hyper+q")
	assert.Error(t, err)
}

func TestTrust(t *testing.T) {
	f := newFixture(t)
	m := runJSON(t, "trust")
	assert.Equal(t, true, m["value"])

	f.trust.Trusted = false
	m = runJSON(t, "trust", "--prompt")
	assert.Equal(t, false, m["value"])
	assert.True(t, f.trust.Prompted)

	_, err := runCLI(t, "attrs")
	assert.ErrorIs(t, err, ax.ErrPermissionDenied)
}

func TestTargetErrors(t *testing.T) {
	newFixture(t)
	for _, args := range [][]string{
		{"attrs", "--pid", "7"},
		{"attrs", "--at", "nope"},
		{"attrs", "--child", "a"},
		{"attrs", "--pid", "42", "--child", "9"},
		{"get"},
		{"--format", "xml", "attrs"},
	} {
		_, err := runCLI(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "axcore dev")
}

func TestConfigFile(t *testing.T) {
	newFixture(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, writeFile(path, "depth: 1\n"))
	m := runJSON(t, "--config", path, "tree", "--pid", "42")
	root := m["elements"].([]any)[0].(map[string]any)
	assert.Nil(t, root["children"], "depth from config")
}

func TestSetup_ReadsRootFlagsFromSubcommand(t *testing.T) {
	newFixture(t)
	out, err := runCLI(t, "--pretty", "pid", "--pid", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"value\": 42")

	out, err = runCLI(t, "pid", "--pid", "42")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n  ")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, writeFile(path, "format: table\n"))
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--config", path, "pid", "--pid", "42"})
	require.NoError(t, rootCmd.Execute())
	assert.NotContains(t, buf.String(), "{", "table output from the config file")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, assert.AnError)
	assert.Contains(t, buf.String(), "error: ")
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o600)
}
