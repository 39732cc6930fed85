package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/axcore/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %q (expected yaml, json or table)", s)
}

// ValueResult is the output of commands that read or write one value.
type ValueResult struct {
	Element string `yaml:"element"        json:"element"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Value   any    `yaml:"value"          json:"value"`
}

// ListResult is the output of commands that list names.
type ListResult struct {
	Element string   `yaml:"element" json:"element"`
	Names   []string `yaml:"names"   json:"names"`
}

// ElementResult describes a single element, as returned by a hit test.
type ElementResult struct {
	Handle        string `yaml:"element" json:"element"`
	PID           int    `yaml:"pid"     json:"pid"`
	model.Element `yaml:",inline"`
}

// TreeResult is the top-level output of the `tree` command.
type TreeResult struct {
	PID      int             `yaml:"pid,omitempty" json:"pid,omitempty"`
	Root     string          `yaml:"root"          json:"root"`
	TS       int64           `yaml:"ts"            json:"ts"`
	Elements []model.Element `yaml:"elements"      json:"elements"`
}

// TreeFlatResult is the top-level output when --flat is used.
type TreeFlatResult struct {
	PID      int                 `yaml:"pid,omitempty" json:"pid,omitempty"`
	Root     string              `yaml:"root"          json:"root"`
	TS       int64               `yaml:"ts"            json:"ts"`
	Elements []model.FlatElement `yaml:"elements"      json:"elements"`
}

// Print serializes v to stdout in the current output format.
func Print(v any) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format. Host values from
// the bridge are normalized first.
func Fprint(w io.Writer, v any) error {
	v = Normalize(v)
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return WritePrettyJSON(w, v)
		}
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatTable:
		return WriteTable(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// WriteJSON serializes v to w as compact single-line JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WritePrettyJSON serializes v to w as indented JSON.
func WritePrettyJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v to w as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// YAML renders v as a YAML document string.
func YAML(v any) (string, error) {
	var sb strings.Builder
	if err := WriteYAML(&sb, Normalize(v)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
