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

// Package dataflow contains the direction-agnostic fixpoint engine of the analysis
// framework. A concrete analysis provides a fact lattice and a monotone transfer function
// through the Analysis interface; the Solver drives it to a fixpoint over a control-flow
// graph and produces a Result holding one IN and one OUT fact per node.
package dataflow

import (
	"fmt"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/ir"
)

// Fact is the constraint on dataflow facts. A fact is an element of the analysis's lattice;
// it must support copying and semantic equality. Facts are mutated in place by their owning
// analysis step and never aliased across statements without an explicit Copy.
type Fact[F any] interface {
	fmt.Stringer

	// Copy returns a fact equal to this one that shares no mutable state with it.
	Copy() F

	// Equal reports semantic equality of two facts.
	Equal(other F) bool
}

// Analysis is the contract every dataflow analysis implements. The solver guarantees
// termination only when MeetInto and TransferNode are monotone over a finite-height
// lattice; this is a caller contract, not a runtime-checked invariant.
type Analysis[F Fact[F]] interface {
	// IsForward reports the direction of the analysis.
	IsForward() bool

	// NewBoundaryFact returns the fact installed at the CFG entry (forward) or exit
	// (backward), representing assumptions about the unanalyzed calling context.
	NewBoundaryFact(g *cfg.Graph) F

	// NewInitialFact returns the fact used for every non-boundary node before the first
	// iteration.
	NewInitialFact() F

	// MeetInto merges fact into target in place. It must be monotone, and idempotent when
	// fact has already been merged into target.
	MeetInto(fact F, target F)

	// TransferNode recomputes the output-side fact of stmt from its input-side fact and
	// reports whether the output side changed. For a forward analysis the input side is
	// the IN fact; for a backward analysis it is the OUT fact.
	TransferNode(stmt ir.Stmt, input F, output F) bool
}
