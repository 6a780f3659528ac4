// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/agentstation/tourvault/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatWide represents wide table output format.
	FormatWide Format = "wide"
)

// Formatter writes data in one output format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// Data represents data formatted for table output.
type Data struct {
	Headers []string
	Rows    [][]string
}

// Tabular is implemented by values that know their own table layout.
type Tabular interface {
	TableData(wide bool) Data
}

// NewFormatter returns the formatter for format. Unknown formats get a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Wide: format == FormatWide}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format. Multi-line strings such as video
// descriptions are written as literal blocks.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return errors.WrapParse("yaml", "output", err)
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter renders Data, or any Tabular value, with tablewriter.
type TableFormatter struct {
	Wide bool
}

// Format implements the Formatter interface for table output.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return f.render(w, v)
	case *Data:
		return f.render(w, *v)
	case Tabular:
		return f.render(w, v.TableData(f.Wide))
	default:
		return errors.NewValidationError("data", fmt.Sprintf("%T", data), "has no table form; use json or yaml")
	}
}

func (f *TableFormatter) render(w io.Writer, data Data) error {
	table := tablewriter.NewTable(w)
	if len(data.Headers) > 0 {
		table.Header(toCells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(toCells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// DetectFormat returns explicit when set, a table on a terminal, and json
// when stdout is piped or redirected.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts s to a Format. The empty string is accepted and
// means auto-detect.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide")
	}
}
