package query

import (
	"fmt"
	"strings"
)

// FieldType is a structural category used in place of a literal when the
// exact value of a field is unknown.
type FieldType int

const (
	// Unknown is any unrecognized type name. It never matches.
	Unknown FieldType = iota
	Array
	Boolean
	Date
	Object
	Number
	String
	NotDate
)

// Types is the catalog of recognized field types.
var Types = struct {
	Array, Boolean, Date, Object, Number, String, NotDate FieldType
}{
	Array:   Array,
	Boolean: Boolean,
	Date:    Date,
	Object:  Object,
	Number:  Number,
	String:  String,
	NotDate: NotDate,
}

var fieldTypeNames = map[FieldType]string{
	Array:   "array",
	Boolean: "boolean",
	Date:    "date",
	Object:  "object",
	Number:  "number",
	String:  "string",
	NotDate: "not_date",
}

var fieldTypeAliases = map[string]FieldType{
	"bool":     Boolean,
	"not-date": NotDate,
	"notdate":  NotDate,
}

// String returns the tag name of t.
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseFieldType resolves a tag name case-insensitively. Names that are not
// recognized resolve to Unknown rather than an error so that queries built
// from user input simply fail to match.
func ParseFieldType(name string) FieldType {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range fieldTypeNames {
		if n == name {
			return t
		}
	}
	if t, ok := fieldTypeAliases[name]; ok {
		return t
	}
	return Unknown
}

// MarshalText implements encoding.TextMarshaler.
func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FieldType) UnmarshalText(text []byte) error {
	*t = ParseFieldType(string(text))
	return nil
}
