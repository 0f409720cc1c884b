package pins

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat resolves a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want table, json or yaml)", s)
}

// Write encodes v in the given format. Tables are only defined for component
// listings and net lists.
func Write(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatTable:
		var out string
		switch v := v.(type) {
		case []Component:
			out = RenderTable(v)
		case []string:
			out = RenderNets(v)
		default:
			return errors.New(errors.ErrCodeInternal, "no table layout for %T", v)
		}
		_, err := fmt.Fprintln(w, out)
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
}

// RenderTable lays components out one row per pin. Component columns are
// only filled on a component's first row.
func RenderTable(cs []Component) string {
	t := newTable("Ref", "Value", "Footprint", "Layer", "Connector", "Pin", "Net")
	for _, c := range cs {
		head := []string{c.Reference, c.Value, c.Footprint, c.Layer, c.ConnectorType}
		if len(c.Pins) == 0 {
			t.Row(append(head, "", "")...)
			continue
		}
		for i, p := range c.Pins {
			row := head
			if i > 0 {
				row = []string{"", "", "", "", ""}
			}
			t.Row(append(slices.Clone(row), p.Number, p.Net)...)
		}
	}
	return t.Render()
}

// RenderNets lays out a numbered net list.
func RenderNets(nets []string) string {
	t := newTable("#", "Net")
	for i, n := range nets {
		t.Row(strconv.Itoa(i+1), n)
	}
	return t.Render()
}
