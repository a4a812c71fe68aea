// Package query decides whether JSON items satisfy a field query.
//
// A Spec maps field names to Conditions. A condition is either a literal
// (Eq) compared by strict equality, or a set of field types of which at least
// one (Is) or every one (IsAll) must describe the field's value. Every field
// of a Spec must pass for an item to match.
package query

import (
	"sort"
	"strings"

	"github.com/mcncl/accio/value"
)

type operator int

const (
	opInvalid operator = iota
	opEqual
	opIs
	opIsAll
)

// Condition is the test applied to one field.
type Condition struct {
	op      operator
	literal value.Value
	tags    []FieldType
}

// Spec maps field names to the condition their value has to satisfy.
type Spec map[string]Condition

// Eq matches a field holding exactly v. Only booleans, numbers and strings are
// usable literals; any other v produces a condition that never matches.
// String literals are trimmed before comparison.
func Eq(v any) Condition {
	lit, err := value.FromAny(v)
	if err != nil {
		return Condition{}
	}
	return EqValue(lit)
}

// EqValue is Eq for a literal that is already a value.Value.
func EqValue(v value.Value) Condition {
	switch v.Kind() {
	case value.KindBool, value.KindNumber, value.KindString:
		return Condition{op: opEqual, literal: v}
	}
	return Condition{}
}

// Is matches a field whose value belongs to any of the given types. Without
// types the condition never matches.
func Is(types ...FieldType) Condition {
	if len(types) == 0 {
		return Condition{}
	}
	return Condition{op: opIs, tags: append([]FieldType(nil), types...)}
}

// IsAll matches a field whose value belongs to every one of the given types,
// as in Is(String) combined with Is(NotDate). Without types the condition
// never matches.
func IsAll(types ...FieldType) Condition {
	if len(types) == 0 {
		return Condition{}
	}
	return Condition{op: opIsAll, tags: append([]FieldType(nil), types...)}
}

// Valid reports whether c can ever match.
func (c Condition) Valid() bool { return c.op != opInvalid }

// Literal returns the literal of an Eq condition.
func (c Condition) Literal() (value.Value, bool) {
	return c.literal, c.op == opEqual
}

// Types returns the field types of an Is or IsAll condition.
func (c Condition) Types() []FieldType {
	if c.op != opIs && c.op != opIsAll {
		return nil
	}
	return append([]FieldType(nil), c.tags...)
}

func (c Condition) String() string {
	switch c.op {
	case opEqual:
		return "= " + c.literal.String()
	case opIs, opIsAll:
		sep, prefix := "|", "is "
		if c.op == opIsAll {
			sep, prefix = "&", "is all "
		}
		names := make([]string, len(c.tags))
		for i, t := range c.tags {
			names[i] = t.String()
		}
		return prefix + strings.Join(names, sep)
	}
	return "invalid"
}

// Fields returns the field names of s in sorted order.
func (s Spec) Fields() []string {
	fields := make([]string, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (s Spec) String() string {
	parts := make([]string, 0, len(s))
	for _, f := range s.Fields() {
		parts = append(parts, f+" "+s[f].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
