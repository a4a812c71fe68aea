package formatter

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/accio/value"
)

// Output formats
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
	FormatYAML   = "yaml"
)

// DefaultIndent is the indentation width for pretty JSON and YAML.
const DefaultIndent = 2

// Formatter renders query results as text
type Formatter struct {
	format string
	indent int
}

// NewFormatter creates a Formatter producing compact JSON
func NewFormatter() *Formatter {
	return &Formatter{format: FormatJSON, indent: DefaultIndent}
}

// NewFormatterWithOptions creates a Formatter for the named format. An
// indent of zero or less selects DefaultIndent.
func NewFormatterWithOptions(format string, indent int) (*Formatter, error) {
	switch format {
	case FormatJSON, FormatPretty, FormatYAML:
	case "":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("unknown output format '%s'", format)
	}
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Formatter{format: format, indent: indent}, nil
}

// Format renders v. An undefined value renders as the empty string.
func (f *Formatter) Format(v value.Value) (string, error) {
	if v.IsUndefined() {
		return "", nil
	}

	switch f.format {
	case FormatPretty:
		out, err := value.MarshalIndent(v, "", strings.Repeat(" ", f.indent))
		if err != nil {
			return "", fmt.Errorf("failed to render JSON: %w", err)
		}
		return string(out), nil
	case FormatYAML:
		return f.formatYAML(v)
	default:
		out, err := value.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to render JSON: %w", err)
		}
		return string(out), nil
	}
}

func (f *Formatter) formatYAML(v value.Value) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(f.indent)
	if err := enc.Encode(toNode(v)); err != nil {
		return "", fmt.Errorf("failed to render YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to render YAML: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// toNode builds a YAML node tree so object members keep their order.
func toNode(v value.Value) *yaml.Node {
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.AsBool()
		return scalar("!!bool", fmt.Sprint(b))
	case value.KindNumber:
		n, _ := v.AsNumber()
		switch {
		case math.IsNaN(n) || math.IsInf(n, 0):
			return scalar("!!null", "null")
		case n == math.Trunc(n) && math.Abs(n) < 1e21:
			return scalar("!!int", value.FormatNumber(n))
		}
		return scalar("!!float", value.FormatNumber(n))
	case value.KindString:
		s, _ := v.AsString()
		return scalar("!!str", s)
	case value.KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			node.Content = append(node.Content, toNode(item))
		}
		if len(node.Content) == 0 {
			node.Style = yaml.FlowStyle
		}
		return node
	case value.KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			if m.Value.IsUndefined() {
				continue
			}
			node.Content = append(node.Content, scalar("!!str", m.Key), toNode(m.Value))
		}
		if len(node.Content) == 0 {
			node.Style = yaml.FlowStyle
		}
		return node
	}
	return scalar("!!null", "null")
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
