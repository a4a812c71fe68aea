package query

import (
	"strings"

	"github.com/mcncl/accio/value"
)

// Match reports whether item satisfies every field of spec.
//
// Only arrays and objects can match. A field whose value is falsy (missing,
// null, false, 0, NaN or "") fails whatever its condition is, so a query can
// never select on a false or zero field. A spec without fields matches
// nothing.
func Match(item value.Value, spec Spec) bool {
	if !item.IsComposite() || len(spec) == 0 {
		return false
	}
	for field, cond := range spec {
		if !matchField(item.Lookup(field), cond) {
			return false
		}
	}
	return true
}

func matchField(v value.Value, cond Condition) bool {
	if !v.Truthy() {
		return false
	}
	switch cond.op {
	case opEqual:
		return equalLiteral(v, cond.literal)
	case opIs:
		for _, t := range cond.tags {
			if MatchesTag(v, t) {
				return true
			}
		}
	case opIsAll:
		for _, t := range cond.tags {
			if !MatchesTag(v, t) {
				return false
			}
		}
		return true
	}
	return false
}

func equalLiteral(v, lit value.Value) bool {
	if v.Kind() != lit.Kind() {
		return false
	}
	if s, ok := lit.AsString(); ok {
		got, _ := v.AsString()
		return got == strings.TrimSpace(s)
	}
	return v.Equal(lit)
}

// MatchesTag reports whether v belongs to the structural category t. Unknown
// types never match.
func MatchesTag(v value.Value, t FieldType) bool {
	switch t {
	case Array:
		return v.Kind() == value.KindArray
	case Boolean:
		return v.Kind() == value.KindBool
	case Number:
		return v.Kind() == value.KindNumber
	case String:
		return v.Kind() == value.KindString
	case Object:
		return v.Kind() == value.KindObject
	case Date:
		return IsDate(v)
	case NotDate:
		return !IsDate(v)
	}
	return false
}
