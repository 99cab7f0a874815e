/*
   Copyright 2022 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hgn

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type (
	// State is a snapshot of the world, an immutable mapping from
	// (predicate, subject) keys to object values. The zero value is an empty
	// state. All mutating operations return a new value, leaving the
	// receiver unchanged, which is what makes backtracking over state
	// snapshots sound.
	State struct {
		bindings map[stateKey]any
	}

	// Triple is the atomic unit of state.
	Triple struct {
		Predicate string
		Subject   string
		Object    any
	}

	stateKey struct {
		predicate string
		subject   string
	}

	absentValue struct{}
)

// Absent is the sentinel object value for an unbound (predicate, subject)
// key. Get returns it for missing bindings, and Set interprets it as
// deletion.
var Absent any = absentValue{}

func (absentValue) String() string { return `<absent>` }

// NewState returns an empty state.
func NewState() State { return State{} }

// FromTriples returns the state holding the given bindings, later triples
// winning on key collision.
func FromTriples(triples []Triple) State {
	s := State{}
	for _, t := range triples {
		s = s.Set(t.Predicate, t.Subject, t.Object)
	}
	return s
}

// Set returns a new state with the binding added or updated, or removed
// when object is Absent.
func (s State) Set(predicate, subject string, object any) State {
	key := stateKey{predicate, subject}
	next := make(map[stateKey]any, len(s.bindings)+1)
	for k, v := range s.bindings {
		next[k] = v
	}
	if object == Absent {
		delete(next, key)
	} else {
		next[key] = object
	}
	return State{bindings: next}
}

// Get returns the object bound to (predicate, subject), or Absent.
func (s State) Get(predicate, subject string) any {
	if v, ok := s.bindings[stateKey{predicate, subject}]; ok {
		return v
	}
	return Absent
}

// Has returns true if (predicate, subject) is bound to object, comparing
// objects structurally so non-comparable values such as slices are
// supported.
func (s State) Has(predicate, subject string, object any) bool {
	v, ok := s.bindings[stateKey{predicate, subject}]
	return ok && reflect.DeepEqual(v, object)
}

// Holds returns true if the goal's target literal holds in the state.
func (s State) Holds(g Goal) bool { return s.Has(g.Predicate, g.Subject, g.Object) }

// Merge returns the union of the two states, other winning on key
// collision.
func (s State) Merge(other State) State {
	next := make(map[stateKey]any, len(s.bindings)+len(other.bindings))
	for k, v := range s.bindings {
		next[k] = v
	}
	for k, v := range other.bindings {
		next[k] = v
	}
	return State{bindings: next}
}

// Equal returns true if both states hold exactly the same bindings,
// comparing objects structurally.
func (s State) Equal(other State) bool {
	if len(s.bindings) != len(other.bindings) {
		return false
	}
	for k, v := range s.bindings {
		o, ok := other.bindings[k]
		if !ok || !reflect.DeepEqual(v, o) {
			return false
		}
	}
	return true
}

// Len returns the number of bindings.
func (s State) Len() int { return len(s.bindings) }

// Triples enumerates the bindings, ordered by predicate then subject.
func (s State) Triples() []Triple {
	keys := make([]stateKey, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].predicate != keys[j].predicate {
			return keys[i].predicate < keys[j].predicate
		}
		return keys[i].subject < keys[j].subject
	})
	triples := make([]Triple, 0, len(keys))
	for _, k := range keys {
		triples = append(triples, Triple{k.predicate, k.subject, s.bindings[k]})
	}
	return triples
}

func (s State) String() string {
	var b strings.Builder
	b.WriteString(`{`)
	for i, t := range s.Triples() {
		if i != 0 {
			b.WriteString(` `)
		}
		fmt.Fprintf(&b, `%s/%s=%v`, t.Predicate, t.Subject, t.Object)
	}
	b.WriteString(`}`)
	return b.String()
}
