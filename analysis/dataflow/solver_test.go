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

package dataflow_test

import (
	"strings"
	"testing"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/constprop"
	"github.com/palisade-tools/palisade/analysis/dataflow"
	"github.com/palisade-tools/palisade/analysis/ir"
	"github.com/palisade-tools/palisade/analysis/livevars"
	"github.com/palisade-tools/palisade/internal/irtest"
)

// loopMethod is a method with a back edge, so the solver needs more than one pass:
//
//	x = 0; while (x < p) { x = x + 1 }; return x
func loopMethod() (*ir.Method, *cfg.Graph) {
	method := ir.NewMethod("loop")
	p := method.NewVar("p", ir.TypeInt)
	method.AddParam(p)
	x := method.NewVar("x", ir.TypeInt)
	method.Append(&ir.Assign{LHS: x, RHS: &ir.IntLit{Value: 0}})                               // 0
	method.Append(&ir.If{Cond: &ir.Binary{Op: ir.OpLt, X: x, Y: p}})                           // 1
	method.Append(&ir.Assign{LHS: x, RHS: &ir.Binary{Op: ir.OpAdd, X: x, Y: &ir.IntLit{Value: 1}}}) // 2
	method.Append(&ir.Return{Value: x})                                                        // 3
	g := irtest.BuildCFG(method, []irtest.EdgeSpec{
		{Kind: cfg.EdgeEntry, Src: irtest.Entry, Dst: 0},
		{Kind: cfg.EdgeFallthrough, Src: 0, Dst: 1},
		{Kind: cfg.EdgeIfTrue, Src: 1, Dst: 2},
		{Kind: cfg.EdgeIfFalse, Src: 1, Dst: 3},
		{Kind: cfg.EdgeFallthrough, Src: 2, Dst: 1},
		{Kind: cfg.EdgeReturn, Src: 3, Dst: irtest.Exit},
	})
	return method, g
}

func assertSameFacts[F dataflow.Fact[F]](t *testing.T, g *cfg.Graph, r1, r2 *dataflow.Result[F]) {
	t.Helper()
	for _, stmt := range g.Nodes() {
		if !r1.InFact(stmt).Equal(r2.InFact(stmt)) {
			t.Errorf("IN facts differ at [%d] %s: %s vs %s", stmt.Index(), stmt, r1.InFact(stmt), r2.InFact(stmt))
		}
		if !r1.OutFact(stmt).Equal(r2.OutFact(stmt)) {
			t.Errorf("OUT facts differ at [%d] %s: %s vs %s", stmt.Index(), stmt, r1.OutFact(stmt), r2.OutFact(stmt))
		}
	}
}

func TestSolversAgreeForward(t *testing.T) {
	_, g := loopMethod()
	solver := dataflow.NewSolver[*constprop.Fact](constprop.New())
	assertSameFacts(t, g, solver.Solve(g), solver.SolveWorklist(g))
}

func TestSolversAgreeBackward(t *testing.T) {
	_, g := loopMethod()
	solver := dataflow.NewSolver[*livevars.Fact](livevars.New())
	assertSameFacts(t, g, solver.Solve(g), solver.SolveWorklist(g))
}

// Solving an already-solved graph again yields the same facts: the fixpoint is stable.
func TestFixpointIsStable(t *testing.T) {
	_, g := loopMethod()
	solver := dataflow.NewSolver[*constprop.Fact](constprop.New())
	assertSameFacts(t, g, solver.Solve(g), solver.Solve(g))
}

func TestInFactPanicsOnForeignStatement(t *testing.T) {
	_, g := loopMethod()
	result := dataflow.RunAnalysis[*constprop.Fact](g, constprop.New())
	defer func() {
		if recover() == nil {
			t.Errorf("InFact on a statement outside the graph did not panic")
		}
	}()
	result.InFact(&ir.Nop{})
}

func TestShowListsAllNodes(t *testing.T) {
	_, g := loopMethod()
	result := dataflow.RunAnalysis[*constprop.Fact](g, constprop.New())
	var sb strings.Builder
	result.Show(&sb)
	for _, stmt := range g.Nodes() {
		if !strings.Contains(sb.String(), stmt.String()) {
			t.Errorf("Show output missing node %q", stmt)
		}
	}
}
