package collection

import "github.com/mcncl/accio/value"

// Document resolves named top-level fields of a JSON object before handing
// off to a Container.
type Document struct {
	root value.Value
}

// NewDocument wraps an already-parsed value.
func NewDocument(root value.Value) *Document {
	return &Document{root: root}
}

// ParseDocument decodes JSON text into a Document.
func ParseDocument(text string) (*Document, error) {
	v, err := value.ParseString(text)
	if err != nil {
		return nil, err
	}
	return NewDocument(v), nil
}

// Get returns the top-level field called name.
func (d *Document) Get(name string) value.Value {
	return d.root.Lookup(name)
}

// Array wraps the top-level field called name.
func (d *Document) Array(name string) *Container {
	return New(d.Get(name))
}

// Object wraps the top-level field called name.
func (d *Document) Object(name string) *Container {
	return New(d.Get(name))
}

// Container wraps the whole document.
func (d *Document) Container() *Container {
	return New(d.root)
}
