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

// Package livevars implements classic backward live-variable analysis:
// IN = USE ∪ (OUT − DEF), with set union as the meet.
package livevars

import (
	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/ir"
)

// ID is the identifier under which the driver stores live-variable results.
const ID = "livevars"

// Analysis is the live-variable analysis. It implements dataflow.Analysis[*Fact].
type Analysis struct{}

// New returns the live-variable analysis.
func New() *Analysis { return &Analysis{} }

// IsForward reports that liveness is a backward analysis.
func (a *Analysis) IsForward() bool { return false }

// NewBoundaryFact returns the empty set: nothing is live past the method exit.
func (a *Analysis) NewBoundaryFact(g *cfg.Graph) *Fact { return NewFact() }

// NewInitialFact returns the empty set.
func (a *Analysis) NewInitialFact() *Fact { return NewFact() }

// MeetInto unions fact into target.
func (a *Analysis) MeetInto(fact *Fact, target *Fact) {
	target.Union(fact)
}

// TransferNode recomputes the IN set of stmt from its OUT set. The solver passes the OUT
// fact as out and the IN fact as in, since liveness flows backward. The statement's
// defined variable is killed when it is a plain variable; then every variable referenced
// at any nesting depth of the statement's uses is added. Reports whether IN changed, and
// replaces IN only when it did.
func (a *Analysis) TransferNode(stmt ir.Stmt, out *Fact, in *Fact) bool {
	newIn := out.Copy()
	if def, ok := stmt.Def(); ok {
		if v, ok := def.(*ir.Var); ok {
			newIn.Remove(v)
		}
	}
	for _, use := range stmt.Uses() {
		addVars(use, newIn)
	}
	if in.Equal(newIn) {
		return false
	}
	in.Set(newIn)
	return true
}

// addVars walks the expression tree rooted at exp and adds every variable reference found
// at any depth, so a use nested inside an array index or a binary operand still counts.
func addVars(exp ir.Exp, result *Fact) {
	if v, ok := exp.(*ir.Var); ok {
		result.Add(v)
	}
	for _, use := range exp.Uses() {
		addVars(use, result)
	}
}
