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

// Package irtest provides helpers to assemble small method bodies and control-flow graphs
// for tests, replacing the frontend that a full toolchain would provide.
package irtest

import (
	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/constprop"
	"github.com/palisade-tools/palisade/analysis/dataflow"
	"github.com/palisade-tools/palisade/analysis/ir"
	"github.com/palisade-tools/palisade/analysis/livevars"
)

// EdgeSpec describes one CFG edge by the program indexes of its endpoints. Index Entry
// denotes the synthetic entry node and Exit the synthetic exit node.
type EdgeSpec struct {
	Kind cfg.EdgeKind
	Src  int
	Dst  int
	Case int32
}

// Entry and Exit are the endpoint indexes of the synthetic nodes in an EdgeSpec.
const (
	Entry = -1
	Exit  = -2
)

// BuildCFG assembles the control-flow graph of method from the given edge specs and stores
// it on the method under cfg.ID.
func BuildCFG(method *ir.Method, edges []EdgeSpec) *cfg.Graph {
	b := cfg.NewBuilder(method)
	node := func(ix int) ir.Stmt {
		switch ix {
		case Entry:
			return b.Entry()
		case Exit:
			return b.Exit()
		default:
			return method.Stmts()[ix]
		}
	}
	for _, e := range edges {
		if e.Kind == cfg.EdgeSwitchCase {
			b.AddCaseEdge(node(e.Src), node(e.Dst), e.Case)
		} else {
			b.AddEdge(e.Kind, node(e.Src), node(e.Dst))
		}
	}
	g := b.Build()
	method.StoreResult(cfg.ID, g)
	return g
}

// LinearCFG builds the straight-line graph of method, falling through the statements in
// program order, and stores it on the method under cfg.ID.
func LinearCFG(method *ir.Method) *cfg.Graph {
	n := len(method.Stmts())
	edges := make([]EdgeSpec, 0, n+1)
	prev := Entry
	kind := cfg.EdgeEntry
	for i := 0; i < n; i++ {
		edges = append(edges, EdgeSpec{Kind: kind, Src: prev, Dst: i})
		prev, kind = i, cfg.EdgeFallthrough
	}
	edges = append(edges, EdgeSpec{Kind: cfg.EdgeReturn, Src: prev, Dst: Exit})
	return BuildCFG(method, edges)
}

// RunAll solves constant propagation and live variables over the method's stored CFG and
// stores both results under their analysis IDs, leaving the method ready for the dead-code
// detector.
func RunAll(method *ir.Method) {
	r, ok := method.Result(cfg.ID)
	if !ok {
		panic("irtest: method has no stored CFG")
	}
	g := r.(*cfg.Graph)
	method.StoreResult(constprop.ID, dataflow.RunAnalysis[*constprop.Fact](g, constprop.New()))
	method.StoreResult(livevars.ID, dataflow.RunAnalysis[*livevars.Fact](g, livevars.New()))
}
