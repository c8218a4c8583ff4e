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

package graphutil

import (
	"testing"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/ir"
)

// loopGraph builds the CFG of x = 0; while (cond) { x = x + 1 }; return x, whose two loop
// nodes form the only non-trivial strongly connected component.
func loopGraph(t *testing.T) *cfg.Graph {
	t.Helper()
	method := ir.NewMethod("loop")
	x := method.NewVar("x", ir.TypeInt)
	s0 := method.Append(&ir.Assign{LHS: x, RHS: &ir.IntLit{Value: 0}})
	s1 := method.Append(&ir.If{Cond: x})
	s2 := method.Append(&ir.Assign{LHS: x, RHS: &ir.Binary{Op: ir.OpAdd, X: x, Y: &ir.IntLit{Value: 1}}})
	s3 := method.Append(&ir.Return{Value: x})

	b := cfg.NewBuilder(method)
	b.AddEdge(cfg.EdgeEntry, b.Entry(), s0)
	b.AddEdge(cfg.EdgeFallthrough, s0, s1)
	b.AddEdge(cfg.EdgeIfTrue, s1, s2)
	b.AddEdge(cfg.EdgeIfFalse, s1, s3)
	b.AddEdge(cfg.EdgeFallthrough, s2, s1)
	b.AddEdge(cfg.EdgeReturn, s3, b.Exit())
	return b.Build()
}

func TestFlowIteratorVisit(t *testing.T) {
	g := loopGraph(t)
	it := NewFlowIterator(g)
	if it.Order() != g.Size() {
		t.Fatalf("Order() = %d, want %d", it.Order(), g.Size())
	}
	// The branch node (ID 2) has two successors: the loop body and the return.
	var succs []int
	it.Visit(2, func(w int, _ int64) bool {
		succs = append(succs, w)
		return false
	})
	if len(succs) != 2 {
		t.Errorf("Visit(2) found successors %v, want 2 of them", succs)
	}
}

// The gonum view of the graph agrees with yourbasic's strongly connected components: both
// must find exactly one component holding the two loop nodes.
func TestGonumViewAgreesOnComponents(t *testing.T) {
	g := loopGraph(t)
	it := NewFlowIterator(g)

	var loop []int64
	for _, scc := range topo.TarjanSCC(it) {
		if len(scc) > 1 {
			for _, n := range scc {
				loop = append(loop, n.ID())
			}
		}
	}
	if len(loop) != 2 {
		t.Fatalf("gonum found SCC %v, want the 2-node loop", loop)
	}
	for _, id := range loop {
		stmt := g.Node(int(id))
		if stmt.Index() != 1 && stmt.Index() != 2 {
			t.Errorf("node [%d] %s is not part of the loop", stmt.Index(), stmt)
		}
	}
}

func TestGonumEdgeAccessors(t *testing.T) {
	g := loopGraph(t)
	it := NewFlowIterator(g)
	branch, _ := g.NodeID(g.Nodes()[2]) // statement index 1, the if

	if !it.HasEdgeFromTo(int64(branch), int64(branch+1)) {
		t.Errorf("missing if-true edge from the branch to the loop body")
	}
	if it.HasEdgeFromTo(0, int64(g.Size()-1)) {
		t.Errorf("entry connected directly to exit")
	}
	if e := it.Edge(int64(branch), int64(branch+1)); e == nil {
		t.Errorf("Edge returned nil for an existing edge")
	} else if r := e.ReversedEdge(); r.From().ID() != e.To().ID() {
		t.Errorf("ReversedEdge does not swap endpoints")
	}
	if got := it.From(int64(branch)); got.Len() != 2 {
		t.Errorf("From(branch).Len() = %d, want 2", got.Len())
	}
}

func TestConvergenceOrderCoversAllNodes(t *testing.T) {
	g := loopGraph(t)
	for _, forward := range []bool{true, false} {
		order := ConvergenceOrder(g, forward)
		if len(order) != g.Size() {
			t.Fatalf("order has %d nodes, want %d", len(order), g.Size())
		}
		seen := make(map[int]bool)
		for _, id := range order {
			if seen[id] {
				t.Errorf("node %d enumerated twice (forward=%t)", id, forward)
			}
			seen[id] = true
		}
	}
}

// In forward order the entry comes before the return; in backward order after it.
func TestConvergenceOrderDirection(t *testing.T) {
	g := loopGraph(t)
	pos := func(order []int, stmt ir.Stmt) int {
		id, _ := g.NodeID(stmt)
		for i, x := range order {
			if x == id {
				return i
			}
		}
		return -1
	}

	forward := ConvergenceOrder(g, true)
	if pos(forward, g.Entry()) > pos(forward, g.Exit()) {
		t.Errorf("forward order enumerates exit before entry: %v", forward)
	}
	backward := ConvergenceOrder(g, false)
	if pos(backward, g.Exit()) > pos(backward, g.Entry()) {
		t.Errorf("backward order enumerates entry before exit: %v", backward)
	}
}
