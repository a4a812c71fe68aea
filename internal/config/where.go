package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/accio/internal/errors"
	"github.com/mcncl/accio/query"
	"github.com/mcncl/accio/value"
)

// Where is the YAML form of a query.Spec. Each field maps to one of:
//
//	name: accio                      # literal
//	"4": [string, not_date]          # any of the types
//	"1": {all: [string, not_date]}   # every one of the types
//	code: {eq: "007"}                # literal, spelled out
type Where map[string]query.Condition

// Spec returns w as a query.Spec.
func (w Where) Spec() query.Spec {
	if len(w) == 0 {
		return nil
	}
	spec := make(query.Spec, len(w))
	for field, cond := range w {
		spec[field] = cond
	}
	return spec
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Where) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: where must be a mapping", node.Line)
	}
	out := make(Where, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		field := node.Content[i].Value
		cond, err := conditionFromNode(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("where %q: %w", field, err)
		}
		out[field] = cond
	}
	*w = out
	return nil
}

func conditionFromNode(node *yaml.Node) (query.Condition, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		lit, err := literalFromNode(node)
		if err != nil {
			return query.Condition{}, err
		}
		return query.EqValue(lit), nil
	case yaml.SequenceNode:
		types, err := typesFromNode(node)
		if err != nil {
			return query.Condition{}, err
		}
		return query.Is(types...), nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return query.Condition{}, fmt.Errorf("line %d: expected exactly one of any, all or eq", node.Line)
		}
		key, val := node.Content[0].Value, node.Content[1]
		switch key {
		case "eq":
			lit, err := literalFromNode(val)
			if err != nil {
				return query.Condition{}, err
			}
			return query.EqValue(lit), nil
		case "any", "all":
			types, err := typesFromNode(val)
			if err != nil {
				return query.Condition{}, err
			}
			if key == "all" {
				return query.IsAll(types...), nil
			}
			return query.Is(types...), nil
		}
		return query.Condition{}, fmt.Errorf("line %d: unknown operator %q", node.Line, key)
	}
	return query.Condition{}, fmt.Errorf("line %d: unsupported condition", node.Line)
}

func literalFromNode(node *yaml.Node) (value.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return value.Value{}, fmt.Errorf("line %d: literal must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.Number(f), nil
	case "!!str":
		return value.String(node.Value), nil
	}
	return value.Value{}, fmt.Errorf("line %d: %s cannot be matched literally", node.Line, node.ShortTag())
}

func typesFromNode(node *yaml.Node) ([]query.FieldType, error) {
	var names []string
	if err := node.Decode(&names); err != nil {
		return nil, fmt.Errorf("line %d: expected a list of field types", node.Line)
	}
	return parseTypes(names)
}

func parseTypes(names []string) ([]query.FieldType, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no field types given", errors.ErrUnknownFieldType)
	}
	types := make([]query.FieldType, 0, len(names))
	for _, name := range names {
		t := query.ParseFieldType(name)
		if t == query.Unknown {
			return nil, fmt.Errorf("%w: %q", errors.ErrUnknownFieldType, name)
		}
		types = append(types, t)
	}
	return types, nil
}

// ParseWhere reads a command-line where clause:
//
//	field=value             literal; true, false and numbers are typed, quote to force a string
//	field=:type1,type2      any of the field types
//	field=:all:type1,type2  every one of the field types
func ParseWhere(expr string) (string, query.Condition, error) {
	field, raw, ok := strings.Cut(expr, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", query.Condition{}, errors.NewQueryError(
			fmt.Sprintf("expected field=value, got '%s'", expr), errors.ErrInvalidWhere)
	}

	if tags, isTypes := strings.CutPrefix(raw, ":"); isTypes {
		all := false
		if rest, ok := strings.CutPrefix(tags, "all:"); ok {
			all, tags = true, rest
		}
		types, err := parseTypes(splitList(tags))
		if err != nil {
			return "", query.Condition{}, errors.NewQueryError(fmt.Sprintf("where '%s'", expr), err)
		}
		if all {
			return field, query.IsAll(types...), nil
		}
		return field, query.Is(types...), nil
	}

	return field, query.EqValue(parseLiteral(raw)), nil
}

// ParseWheres combines several where clauses into one spec.
func ParseWheres(exprs []string) (query.Spec, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	spec := make(query.Spec, len(exprs))
	for _, expr := range exprs {
		field, cond, err := ParseWhere(expr)
		if err != nil {
			return nil, err
		}
		spec[field] = cond
	}
	return spec, nil
}

func parseLiteral(raw string) value.Value {
	switch raw {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if s, err := strconv.Unquote(raw); err == nil && strings.HasPrefix(raw, `"`) {
		return value.String(s)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return value.Number(f)
	}
	return value.String(raw)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
