// Package value models schema-less JSON data as a tagged union.
//
// A Value is one of Undefined, Null, Bool, Number, String, Array or Object.
// Objects order their members the way ECMAScript orders object properties:
// keys that are array indexes ("0", "17") come first in ascending numeric
// order, followed by every other key in insertion order. Traversal and
// serialization follow that order. The zero Value is Undefined and stands for
// the absence of a value (a missing field, an out of range index).
package value

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = map[Kind]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "boolean",
	KindNumber:    "number",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is a single key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON-like value. Use the constructors in this package
// to build one; the zero Value is Undefined.
type Value struct {
	kind    Kind
	b       bool
	n       float64
	s       string
	items   []Value
	members []Member
}

// Undefined returns the absent value.
func Undefined() Value { return Value{} }

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a number.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array builds an array value from items. The slice is retained.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object builds an object value from members in property order. When a key
// repeats, the first position is kept and the last value wins.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = setMember(out, m.Key, m.Value)
	}
	return Value{kind: KindObject, members: out}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsArray() bool     { return v.kind == KindArray }
func (v Value) IsObject() bool    { return v.kind == KindObject }

// IsComposite reports whether v is an array or an object.
func (v Value) IsComposite() bool {
	return v.kind == KindArray || v.kind == KindObject
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Items returns the elements of an array, or nil for any other kind. The
// returned slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Members returns the members of an object in order, or nil for any other
// kind. The returned slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Keys returns the member keys of an object in order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Index returns the i-th element of an array. Out of range indexes and
// non-array values yield Undefined.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Lookup returns the field called name. On objects it is the member with that
// key; on arrays a canonical decimal index ("0", "12") selects an element.
// Every other case yields Undefined.
func (v Value) Lookup(name string) Value {
	switch v.kind {
	case KindObject:
		for _, m := range v.members {
			if m.Key == name {
				return m.Value
			}
		}
	case KindArray:
		if i, ok := canonicalIndex(name); ok {
			return v.Index(i)
		}
	}
	return Value{}
}

// Has reports whether an object has a member called key.
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	for _, m := range v.members {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Set returns a copy of the object v with key set to val. Setting a key on a
// non-object starts from an empty object.
func (v Value) Set(key string, val Value) Value {
	members := make([]Member, len(v.Members()), len(v.Members())+1)
	copy(members, v.Members())
	return Value{kind: KindObject, members: setMember(members, key, val)}
}

// Truthy reports whether v counts as true: undefined, null, false, 0, NaN and
// the empty string are falsy, everything else (including empty arrays and
// objects) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s != ""
	case KindArray, KindObject:
		return true
	}
	return false
}

// IsEmpty reports whether v is falsy or an array or object without entries.
func (v Value) IsEmpty() bool {
	if v.IsComposite() {
		return v.Len() == 0
	}
	return !v.Truthy()
}

// Equal reports structural equality. Object member order is ignored and
// numbers compare with ==, so NaN never equals itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for _, m := range v.members {
			if !o.Has(m.Key) || !m.Value.Equal(o.Lookup(m.Key)) {
				return false
			}
		}
		return true
	}
	return true
}

// String returns the compact JSON text of v, or "undefined".
func (v Value) String() string {
	if v.kind == KindUndefined {
		return "undefined"
	}
	b, err := Marshal(v)
	if err != nil {
		return "!" + err.Error()
	}
	return string(b)
}

func setMember(members []Member, key string, val Value) []Member {
	for i := range members {
		if members[i].Key == key {
			members[i].Value = val
			return members
		}
	}
	idx, ok := arrayIndex(key)
	if !ok {
		return append(members, Member{Key: key, Value: val})
	}
	pos := 0
	for pos < len(members) {
		other, ok := arrayIndex(members[pos].Key)
		if !ok || other > idx {
			break
		}
		pos++
	}
	members = append(members, Member{})
	copy(members[pos+1:], members[pos:])
	members[pos] = Member{Key: key, Value: val}
	return members
}

// arrayIndex reports whether key is the canonical form of an integer in
// [0, 2^32-2].
func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}

// canonicalIndex accepts the decimal form of a non-negative int without
// leading zeros or signs.
func canonicalIndex(name string) (int, bool) {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || strconv.Itoa(i) != name {
		return 0, false
	}
	return i, true
}
