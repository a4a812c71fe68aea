package collection

import (
	"iter"
	"strconv"

	"github.com/mcncl/accio/query"
	"github.com/mcncl/accio/value"
)

// RootLocation is the first segment of every search location.
const RootLocation = "top"

// Result is a value found by a search together with its location, written as
// "top" followed by ".key" for each object member and "[i]" for each array
// element on the way down.
type Result struct {
	Location string
	Value    value.Value
}

// ToValue returns r as the object {"location": ..., "value": ...}.
func (r Result) ToValue() value.Value {
	return value.Object(
		value.Member{Key: "location", Value: value.String(r.Location)},
		value.Member{Key: "value", Value: r.Value},
	)
}

// Walk yields every value below root that matches spec, in traversal order.
//
// The root itself is never tested. Object members are visited in order: each
// member value is tested whatever its kind, then descended into. Array
// elements are visited by index: objects are tested and descended into,
// nested arrays are descended into under the same location as their parent
// array, and scalars are skipped.
func Walk(root value.Value, spec query.Spec) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		w := &walker{spec: spec, yield: yield}
		switch root.Kind() {
		case value.KindArray:
			w.array(root.Items(), RootLocation)
		case value.KindObject:
			w.object(root.Members(), RootLocation)
		}
	}
}

type walker struct {
	spec    query.Spec
	yield   func(Result) bool
	stopped bool
}

func (w *walker) test(v value.Value, location string) {
	if w.stopped || !query.Match(v, w.spec) {
		return
	}
	if !w.yield(Result{Location: location, Value: v}) {
		w.stopped = true
	}
}

func (w *walker) array(items []value.Value, location string) {
	for i, item := range items {
		if w.stopped {
			return
		}
		switch item.Kind() {
		case value.KindArray:
			w.array(item.Items(), location)
		case value.KindObject:
			at := location + "[" + strconv.Itoa(i) + "]"
			w.test(item, at)
			w.object(item.Members(), at)
		}
	}
}

func (w *walker) object(members []value.Member, location string) {
	for _, m := range members {
		if w.stopped {
			return
		}
		at := location + "." + m.Key
		w.test(m.Value, at)
		switch m.Value.Kind() {
		case value.KindArray:
			w.array(m.Value.Items(), at)
		case value.KindObject:
			w.object(m.Value.Members(), at)
		}
	}
}

// Search finds every value below the Container's unwrapped value that matches
// spec and returns them in a new array Container. Without options each entry
// is a {"location", "value"} object. Options are applied in a fixed order:
// projection, then flatten, then the transformer.
func (c *Container) Search(spec query.Spec, opts ...SearchOption) *Container {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	var results []Result
	for r := range Walk(c.Get(), spec) {
		results = append(results, r)
		if o.maxResults > 0 && len(results) >= o.maxResults {
			break
		}
	}

	if o.project {
		for i := range results {
			results[i].Value = Project(results[i].Value, o.projection...)
		}
	}

	entries := make([]value.Value, 0, len(results))
	for _, r := range results {
		if !o.flatten {
			entries = append(entries, r.ToValue())
			continue
		}
		if !r.Value.IsEmpty() {
			entries = append(entries, r.Value)
		}
	}

	if o.transformer != nil {
		for i := range entries {
			entries[i] = o.transformer(entries[i])
		}
	}

	return New(value.Array(entries...))
}

// Results decodes the items of a search Container back into Results. Items
// that are not {"location": string, "value": ...} objects, such as flattened
// entries, are skipped.
func (c *Container) Results() []Result {
	var out []Result
	for _, item := range c.data {
		loc, ok := item.Lookup("location").AsString()
		if !ok || !item.Has("value") {
			continue
		}
		out = append(out, Result{Location: loc, Value: item.Lookup("value")})
	}
	return out
}

// Project returns an object holding the members of v whose keys are listed in
// fields, in v's order. Array elements are addressed by their index. Any
// other value projects to an empty object.
func Project(v value.Value, fields ...string) value.Value {
	want := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		want[f] = struct{}{}
	}

	var members []value.Member
	switch v.Kind() {
	case value.KindObject:
		for _, m := range v.Members() {
			if _, ok := want[m.Key]; ok {
				members = append(members, m)
			}
		}
	case value.KindArray:
		for i, item := range v.Items() {
			key := strconv.Itoa(i)
			if _, ok := want[key]; ok {
				members = append(members, value.Member{Key: key, Value: item})
			}
		}
	}
	return value.Object(members...)
}
