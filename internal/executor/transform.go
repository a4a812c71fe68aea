package executor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/accio/collection"
	"github.com/mcncl/accio/value"
)

// keyCases maps transform names to key conversions.
var keyCases = map[string]func(string) string{
	"camel":       strcase.ToCamel,
	"lower-camel": strcase.ToLowerCamel,
	"snake":       strcase.ToSnake,
	"kebab":       strcase.ToKebab,
	"lower":       strings.ToLower,
}

// TransformNames lists the accepted transform names, "none" first.
func TransformNames() []string {
	names := make([]string, 0, len(keyCases)+1)
	for name := range keyCases {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{"none"}, names...)
}

// Transformer returns the search transformer called name. "none" and the
// empty name return nil.
func Transformer(name string) (collection.Transformer, error) {
	if name == "" || name == "none" {
		return nil, nil
	}
	convert, ok := keyCases[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform, want one of %s", strings.Join(TransformNames(), ", "))
	}
	return RenameKeys(convert), nil
}

// RenameKeys returns a transformer that rewrites every object key below and
// including its argument with convert. When two keys collide the later
// member wins.
func RenameKeys(convert func(string) string) collection.Transformer {
	var rename func(v value.Value) value.Value
	rename = func(v value.Value) value.Value {
		switch v.Kind() {
		case value.KindObject:
			members := v.Members()
			out := make([]value.Member, len(members))
			for i, m := range members {
				out[i] = value.Member{Key: convert(m.Key), Value: rename(m.Value)}
			}
			return value.Object(out...)
		case value.KindArray:
			items := v.Items()
			out := make([]value.Value, len(items))
			for i, item := range items {
				out[i] = rename(item)
			}
			return value.Array(out...)
		}
		return v
	}
	return rename
}
