// Copyright the Palisade authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package constprop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/palisade-tools/palisade/analysis/ir"
)

// Fact maps variables to their lattice Value at a program point. A variable absent from
// the map is Undef; the Update method maintains that invariant by removing variables whose
// value becomes Undef, so a key is never present twice and never bound to Undef.
type Fact struct {
	m map[*ir.Var]Value
}

// NewFact returns the empty fact, in which every variable is Undef.
func NewFact() *Fact {
	return &Fact{m: make(map[*ir.Var]Value)}
}

// Get returns the value of v in this fact, Undef when v is absent.
func (f *Fact) Get(v *ir.Var) Value {
	if val, ok := f.m[v]; ok {
		return val
	}
	return Undef()
}

// Update binds v to val and reports whether the fact changed. Binding a variable to Undef
// removes it.
func (f *Fact) Update(v *ir.Var, val Value) bool {
	old, present := f.m[v]
	if val.IsUndef() {
		if present {
			delete(f.m, v)
			return true
		}
		return false
	}
	if present && old == val {
		return false
	}
	f.m[v] = val
	return true
}

// CopyFrom updates this fact with every binding of other and reports whether this fact
// changed. Bindings present here but absent in other are kept.
func (f *Fact) CopyFrom(other *Fact) bool {
	changed := false
	for v, val := range other.m {
		if f.Update(v, val) {
			changed = true
		}
	}
	return changed
}

// Copy returns a fact with the same bindings sharing no storage with this one.
func (f *Fact) Copy() *Fact {
	c := &Fact{m: make(map[*ir.Var]Value, len(f.m))}
	for v, val := range f.m {
		c.m[v] = val
	}
	return c
}

// Equal reports whether both facts hold the same bindings.
func (f *Fact) Equal(other *Fact) bool {
	if len(f.m) != len(other.m) {
		return false
	}
	for v, val := range f.m {
		if o, ok := other.m[v]; !ok || o != val {
			return false
		}
	}
	return true
}

// Len returns the number of tracked variables.
func (f *Fact) Len() int { return len(f.m) }

// Vars returns the tracked variables in ID order.
func (f *Fact) Vars() []*ir.Var {
	vars := make([]*ir.Var, 0, len(f.m))
	for v := range f.m {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].ID() < vars[j].ID() })
	return vars
}

func (f *Fact) String() string {
	entries := make([]string, 0, len(f.m))
	for _, v := range f.Vars() {
		entries = append(entries, fmt.Sprintf("%s=%s", v.Name(), f.m[v]))
	}
	return "{" + strings.Join(entries, ", ") + "}"
}
