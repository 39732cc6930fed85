package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mj1618/axcore/internal/model"
	"gopkg.in/yaml.v3"
)

func withFormat(t *testing.T, f Format, pretty bool) {
	t.Helper()
	oldFormat, oldPretty := OutputFormat, PrettyOutput
	OutputFormat, PrettyOutput = f, pretty
	t.Cleanup(func() { OutputFormat, PrettyOutput = oldFormat, oldPretty })
}

func treeResult() TreeResult {
	return TreeResult{
		PID:  1234,
		Root: "<AXUIElement Application>",
		TS:   1707500000,
		Elements: []model.Element{
			{ID: 1, Role: "AXButton", Title: "OK", Bounds: [4]int{10, 20, 100, 30}},
		},
	}
}

func TestFprint_YAML(t *testing.T) {
	withFormat(t, FormatYAML, false)
	var buf bytes.Buffer
	if err := Fprint(&buf, treeResult()); err != nil {
		t.Fatal(err)
	}
	output := buf.String()

	// YAML output should be multi-line
	if strings.Count(output, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", output)
	}

	var decoded TreeResult
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.PID != 1234 {
		t.Errorf("pid: got %d, want 1234", decoded.PID)
	}
	if len(decoded.Elements) != 1 {
		t.Errorf("elements: got %d, want 1", len(decoded.Elements))
	}
}

func TestFprint_JSONCompact(t *testing.T) {
	withFormat(t, FormatJSON, false)
	var buf bytes.Buffer
	if err := Fprint(&buf, treeResult()); err != nil {
		t.Fatal(err)
	}
	output := buf.String()

	// Compact output should be a single line (plus newline from Encode)
	if strings.Count(output, "\n") > 1 {
		t.Errorf("compact output should be single line, got:\n%s", output)
	}
	var decoded TreeResult
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Root != "<AXUIElement Application>" {
		t.Errorf("root: got %q", decoded.Root)
	}
	// HTML escaping is disabled
	if !strings.Contains(output, "<AXUIElement") {
		t.Errorf("expected unescaped angle brackets, got:\n%s", output)
	}
}

func TestFprint_JSONPretty(t *testing.T) {
	withFormat(t, FormatJSON, true)
	var buf bytes.Buffer
	if err := Fprint(&buf, treeResult()); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", buf.String())
	}
}

func TestTreeResult_OmitEmpty(t *testing.T) {
	result := TreeResult{
		TS:       123,
		Elements: []model.Element{},
	}
	data, err := yaml.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["pid"]; ok {
		t.Error("zero pid should be omitted")
	}
	// TS should always be present
	if _, ok := m["ts"]; !ok {
		t.Error("ts should always be present")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "JSON": FormatJSON, " table ": FormatTable} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(\"xml\") should fail")
	}
}

func TestFprint_UnsupportedFormat(t *testing.T) {
	withFormat(t, Format("xml"), false)
	if err := Fprint(&bytes.Buffer{}, "x"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
