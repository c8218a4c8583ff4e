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

package livevars

import (
	"golang.org/x/tools/container/intsets"

	"github.com/palisade-tools/palisade/analysis/ir"
)

// Fact is a set of live variables, represented as a sparse bitset over the method-unique
// variable IDs. The zero Fact is the empty set, but a Fact must only be used through a
// pointer once populated.
type Fact struct {
	vars intsets.Sparse
}

// NewFact returns the empty set.
func NewFact() *Fact { return &Fact{} }

// Add inserts v into the set.
func (f *Fact) Add(v *ir.Var) { f.vars.Insert(v.ID()) }

// Remove deletes v from the set.
func (f *Fact) Remove(v *ir.Var) { f.vars.Remove(v.ID()) }

// Has reports whether v is in the set.
func (f *Fact) Has(v *ir.Var) bool { return f.vars.Has(v.ID()) }

// Union adds every element of other to this set and reports whether this set changed.
func (f *Fact) Union(other *Fact) bool { return f.vars.UnionWith(&other.vars) }

// Set replaces this set's contents with those of other.
func (f *Fact) Set(other *Fact) { f.vars.Copy(&other.vars) }

// Copy returns a set with the same elements sharing no storage with this one.
func (f *Fact) Copy() *Fact {
	c := NewFact()
	c.vars.Copy(&f.vars)
	return c
}

// Equal reports whether both sets hold the same elements.
func (f *Fact) Equal(other *Fact) bool { return f.vars.Equals(&other.vars) }

// Len returns the number of live variables.
func (f *Fact) Len() int { return f.vars.Len() }

// IDs returns the variable IDs in the set, in increasing order.
func (f *Fact) IDs() []int { return f.vars.AppendTo(nil) }

func (f *Fact) String() string { return f.vars.String() }
