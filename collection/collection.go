// Package collection wraps parsed JSON data in a searchable Container.
//
// A Container always holds a sequence of items. Wrapping an array keeps its
// elements; wrapping anything else stores it as a single item and remembers
// to unwrap it again on the way out. Navigation never fails on missing data:
// it yields a Container around an undefined value, and further navigation
// keeps propagating that absence.
//
//	c, err := collection.Parse(`{"users":[{"name":"ada","admin":true},{"name":"bob"}]}`)
//	if err != nil {
//		return err
//	}
//	admin := c.Array("users").FindOne(query.Spec{"admin": query.Is(query.Boolean)})
//	fmt.Println(admin.Field("name").Stringify()) // "ada"
//
// Containers are immutable: Find and the navigation methods return new
// Containers, so a Container can be shared between goroutines. Values passed
// to search transformers must be treated as read-only.
package collection

import (
	"encoding/json"

	"github.com/mcncl/accio/query"
	"github.com/mcncl/accio/value"
)

// Shape records whether a Container was built from an array.
type Shape int

const (
	ShapeSingle Shape = iota
	ShapeArray
)

func (s Shape) String() string {
	if s == ShapeArray {
		return "array"
	}
	return "single"
}

// Container is a searchable wrapper around one or many JSON items.
type Container struct {
	shape Shape
	data  []value.Value
}

// New wraps v. Arrays keep their elements as the Container's items; any other
// value, including Undefined, becomes a single item.
func New(v value.Value) *Container {
	if v.IsArray() {
		return &Container{shape: ShapeArray, data: v.Items()}
	}
	return &Container{shape: ShapeSingle, data: []value.Value{v}}
}

// Parse decodes JSON text and wraps the result. Malformed text yields an
// error matching value.ErrSyntax.
func Parse(text string) (*Container, error) {
	v, err := value.ParseString(text)
	if err != nil {
		return nil, err
	}
	return New(v), nil
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(data []byte) (*Container, error) {
	v, err := value.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(v), nil
}

// FromAny wraps an already-decoded Go value, see value.FromAny.
func FromAny(x any) (*Container, error) {
	v, err := value.FromAny(x)
	if err != nil {
		return nil, err
	}
	return New(v), nil
}

// Shape returns the shape the Container was built with.
func (c *Container) Shape() Shape { return c.shape }

// Len returns the number of items held.
func (c *Container) Len() int { return len(c.data) }

// IsEmpty reports whether the Container holds nothing usable: no items, or a
// single undefined item.
func (c *Container) IsEmpty() bool {
	return len(c.data) == 0 || (c.shape == ShapeSingle && c.data[0].IsUndefined())
}

// Items returns a copy of the items held.
func (c *Container) Items() []value.Value {
	return append([]value.Value(nil), c.data...)
}

// Get unwraps the Container: the single item for a single Container
// (Undefined when there is none), otherwise all items as an array.
func (c *Container) Get() value.Value {
	if c.shape == ShapeSingle {
		if len(c.data) == 0 {
			return value.Undefined()
		}
		return c.data[0]
	}
	return value.Array(c.Items()...)
}

// First wraps the first item, or Undefined when there are no items.
func (c *Container) First() *Container {
	return New(c.at(0))
}

// Index wraps the i-th item. It fails with ErrInvalidOperation unless the
// Container was built from an array. Out of range indexes wrap Undefined.
func (c *Container) Index(i int) (*Container, error) {
	if c.shape != ShapeArray {
		return nil, &OpError{Op: "index", Reason: "cannot index a non-array collection"}
	}
	return New(c.at(i)), nil
}

// Field wraps the field called name of the first item. See value.Lookup.
func (c *Container) Field(name string) *Container {
	return New(c.at(0).Lookup(name))
}

// Array is Field, for fields expected to hold arrays.
func (c *Container) Array(name string) *Container {
	return c.Field(name)
}

// Object is Field, for fields expected to hold objects.
func (c *Container) Object(name string) *Container {
	return c.Field(name)
}

// Find returns a Container of the same shape holding only the items that
// match spec, in their original order.
func (c *Container) Find(spec query.Spec) *Container {
	kept := make([]value.Value, 0, len(c.data))
	for _, item := range c.data {
		if query.Match(item, spec) {
			kept = append(kept, item)
		}
	}
	return &Container{shape: c.shape, data: kept}
}

// FindOne wraps the first item matching spec, or Undefined.
func (c *Container) FindOne(spec query.Spec) *Container {
	return c.Find(spec).First()
}

// Stringify returns the compact JSON text of Get. An undefined result
// stringifies to the empty string.
func (c *Container) Stringify() string {
	v := c.Get()
	if v.IsUndefined() {
		return ""
	}
	return v.String()
}

// MarshalJSON implements json.Marshaler using the unwrapped value.
func (c *Container) MarshalJSON() ([]byte, error) {
	return value.Marshal(c.Get())
}

var _ json.Marshaler = (*Container)(nil)

func (c *Container) at(i int) value.Value {
	if i < 0 || i >= len(c.data) {
		return value.Undefined()
	}
	return c.data[i]
}
