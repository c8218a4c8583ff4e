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

package dataflow

import (
	"fmt"
	"io"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/ir"
)

// Result holds the IN and OUT facts computed for every node of a control-flow graph. Facts
// are stored in arena slices addressed by the graph's stable node IDs, so the solver's
// working state and the published result are the same storage without pointer aliasing
// surprises between statements.
//
// A Result is populated by the Solver and must be treated as immutable by all consumers
// once the Solver returns.
type Result[F Fact[F]] struct {
	graph *cfg.Graph
	in    []F
	out   []F
}

func newResult[F Fact[F]](g *cfg.Graph) *Result[F] {
	return &Result[F]{
		graph: g,
		in:    make([]F, g.Size()),
		out:   make([]F, g.Size()),
	}
}

// Graph returns the control-flow graph the result was computed over.
func (r *Result[F]) Graph() *cfg.Graph { return r.graph }

// InFact returns the fact holding before stmt in program order.
func (r *Result[F]) InFact(stmt ir.Stmt) F {
	id, ok := r.graph.NodeID(stmt)
	if !ok {
		panic(fmt.Sprintf("dataflow: statement %v is not a node of the analyzed graph", stmt))
	}
	return r.in[id]
}

// OutFact returns the fact holding after stmt in program order.
func (r *Result[F]) OutFact(stmt ir.Stmt) F {
	id, ok := r.graph.NodeID(stmt)
	if !ok {
		panic(fmt.Sprintf("dataflow: statement %v is not a node of the analyzed graph", stmt))
	}
	return r.out[id]
}

// Show prints the IN and OUT facts at each node of the graph, in program order.
func (r *Result[F]) Show(w io.Writer) {
	for _, stmt := range r.graph.Nodes() {
		id, _ := r.graph.NodeID(stmt)
		fmt.Fprintf(w, "[%d] %s\n", stmt.Index(), stmt)
		fmt.Fprintf(w, "  in:  %s\n", r.in[id])
		fmt.Fprintf(w, "  out: %s\n", r.out[id])
	}
}
