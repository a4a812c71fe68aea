package collection

import "github.com/mcncl/accio/value"

// Transformer maps one search entry to another. It receives a result object
// or, after WithFlatten, the bare value.
type Transformer func(value.Value) value.Value

// SearchOption configures Search.
type SearchOption func(*searchOptions)

type searchOptions struct {
	project     bool
	projection  []string
	flatten     bool
	transformer Transformer
	maxResults  int
}

// WithProjection keeps only the listed keys of each result value.
func WithProjection(fields ...string) SearchOption {
	return func(o *searchOptions) {
		o.project = true
		o.projection = append(o.projection, fields...)
	}
}

// WithFlatten replaces each result by its value and drops values that are
// falsy or empty.
func WithFlatten() SearchOption {
	return func(o *searchOptions) {
		o.flatten = true
	}
}

// WithTransformer maps every remaining entry through fn.
func WithTransformer(fn Transformer) SearchOption {
	return func(o *searchOptions) {
		o.transformer = fn
	}
}

// WithMaxResults stops the search after n matches. Zero means no limit.
func WithMaxResults(n int) SearchOption {
	return func(o *searchOptions) {
		o.maxResults = n
	}
}
