package pipeline

import (
	"maps"
	"slices"

	"github.com/futureCreator/pulse/internal/types"
)

// State is the record threaded through a graph run. Inputs are opaque
// message strings supplied by the caller; Fields holds values written by
// steps.
type State struct {
	Inputs []string
	Fields map[string]string
}

// Update is the partial state a step intends to set.
type Update map[string]string

// Result returns the value of the result field and whether it is present.
// It is absent before a run and present, possibly empty, after a
// successful one.
func (s State) Result() (string, bool) {
	v, ok := s.Fields[types.DefaultOutput]
	return v, ok
}

// Get returns a field value, or "" when unset.
func (s State) Get(field string) string {
	return s.Fields[field]
}

// Clone returns a deep copy so a step can never alias the caller's state.
func (s State) Clone() State {
	out := State{
		Inputs: slices.Clone(s.Inputs),
		Fields: maps.Clone(s.Fields),
	}
	if out.Fields == nil {
		out.Fields = map[string]string{}
	}
	return out
}

// merge applies u on top of s; later writes win.
func (s State) merge(u Update) State {
	out := s.Clone()
	for k, v := range u {
		out.Fields[k] = v
	}
	return out
}
