package models

import (
	"strconv"
	"strings"

	"github.com/mcncl/accio/query"
)

// Mode selects what a Request does once navigation is done.
type Mode string

const (
	ModeGet     Mode = "get"
	ModeFind    Mode = "find"
	ModeFindOne Mode = "find-one"
	ModeSearch  Mode = "search"
)

// Modes lists every supported mode, in help order.
var Modes = []Mode{ModeGet, ModeFind, ModeFindOne, ModeSearch}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// StepKind tells a navigation step apart.
type StepKind int

const (
	StepField StepKind = iota
	StepIndex
)

// Step is one navigation hop: a field lookup on the first item, or an index
// into an array collection.
type Step struct {
	Kind  StepKind
	Name  string
	Index int
}

// ParseStep reads a step from its textual form. Non-negative integers become
// index steps, anything else names a field. A leading '.' forces a field
// step, so ".0" looks up the field "0".
func ParseStep(s string) Step {
	if name, ok := strings.CutPrefix(s, "."); ok {
		return Step{Kind: StepField, Name: name}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 {
		return Step{Kind: StepIndex, Index: i, Name: s}
	}
	return Step{Kind: StepField, Name: s}
}

// ParseSteps splits a dotted path such as "users.0.address" into steps.
func ParseSteps(path string) []Step {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	steps := make([]Step, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		steps = append(steps, ParseStep(p))
	}
	return steps
}

func (s Step) String() string {
	if s.Kind == StepIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "." + s.Name
}

// Request is a fully resolved query: where to go, what to match there and
// how to shape the result.
type Request struct {
	Steps      []Step
	Mode       Mode
	Where      query.Spec
	Projection []string
	Flatten    bool
	Transform  string
	MaxResults int
}

// NeedsSpec reports whether the request's mode matches items against Where.
func (r Request) NeedsSpec() bool {
	return r.Mode == ModeFind || r.Mode == ModeFindOne || r.Mode == ModeSearch
}
