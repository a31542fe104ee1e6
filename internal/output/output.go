package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes. Tests swap it for a buffer.
var Stdout io.Writer = os.Stdout

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (want yaml or json)", s)
	}
}

// InspectResult is the output of the `inspect` command: the element under
// one point of the target application.
type InspectResult struct {
	App       string                   `yaml:"app,omitempty"     json:"app,omitempty"`
	PID       int                      `yaml:"pid"               json:"pid"`
	Point     geom.Point               `yaml:"point"             json:"point"`
	Frontmost bool                     `yaml:"frontmost"         json:"frontmost"`
	Occluder  string                   `yaml:"occluder,omitempty" json:"occluder,omitempty"`
	Element   *model.ElementDescriptor `yaml:"element,omitempty" json:"element,omitempty"`
}

// ScanResult is the output of the `scan` command.
type ScanResult struct {
	App      string                    `yaml:"app,omitempty" json:"app,omitempty"`
	PID      int                       `yaml:"pid"           json:"pid"`
	Region   geom.Rect                 `yaml:"region"        json:"region"`
	Elements []model.ElementDescriptor `yaml:"elements"      json:"elements"`
}

// AnnotationsResult is the output of the annotation commands.
type AnnotationsResult struct {
	App         string             `yaml:"app,omitempty" json:"app,omitempty"`
	NextBadge   int                `yaml:"next_badge"    json:"next_badge"`
	Annotations []model.Annotation `yaml:"annotations"   json:"annotations"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(Stdout, OutputFormat, v)
}

// Fprint serializes v to w in format f.
func Fprint(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

// WriteJSON serializes v as JSON. If pretty is true, uses indentation;
// otherwise single-line.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
