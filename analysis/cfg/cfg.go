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

// Package cfg defines the control-flow graph consumed by the dataflow solver and the
// dead-code detector. How edges are derived from statements is the business of a frontend;
// this package only provides the graph structure, a programmatic builder and read-only
// accessors. Once built, a Graph is immutable and may be shared across analyses.
package cfg

import "github.com/palisade-tools/palisade/analysis/ir"

// ID is the identifier under which the driver stores a method's CFG on its Method.
const ID = "cfg"

// EdgeKind is the kind tag carried by every CFG edge.
type EdgeKind int

const (
	// EdgeEntry connects the synthetic entry node to the first real statement.
	EdgeEntry EdgeKind = iota

	// EdgeFallthrough is plain sequential control flow.
	EdgeFallthrough

	// EdgeIfTrue is taken when a two-way branch condition holds.
	EdgeIfTrue

	// EdgeIfFalse is taken when a two-way branch condition does not hold.
	EdgeIfFalse

	// EdgeSwitchCase is taken when a multi-way branch discriminant equals the edge's
	// case value.
	EdgeSwitchCase

	// EdgeSwitchDefault is taken when no case value of a multi-way branch matches.
	EdgeSwitchDefault

	// EdgeReturn connects a method exit point to the synthetic exit node.
	EdgeReturn
)

var edgeKindNames = [...]string{"entry", "fallthrough", "if-true", "if-false", "switch-case", "switch-default", "return"}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return "unknown"
}

// Edge is a directed edge between two statements.
type Edge struct {
	kind      EdgeKind
	caseValue int32
	source    ir.Stmt
	target    ir.Stmt
}

// Kind returns the edge's kind tag.
func (e Edge) Kind() EdgeKind { return e.kind }

// CaseValue returns the case literal of a switch-case edge. Only meaningful when Kind is
// EdgeSwitchCase.
func (e Edge) CaseValue() int32 { return e.caseValue }

// Source returns the statement the edge leaves.
func (e Edge) Source() ir.Stmt { return e.source }

// Target returns the statement the edge enters.
func (e Edge) Target() ir.Stmt { return e.target }

// IsSwitchCase returns true if the edge is a switch-case edge with a case value.
func (e Edge) IsSwitchCase() bool { return e.kind == EdgeSwitchCase }

// Graph is the control-flow graph of a single method. Nodes are the method's statements
// plus one synthetic entry node and one synthetic exit node; every node has a stable small
// integer ID usable as an index into per-node arrays.
type Graph struct {
	method *ir.Method
	entry  ir.Stmt
	exit   ir.Stmt
	nodes  []ir.Stmt
	ids    map[ir.Stmt]int
	out    [][]Edge
	in     [][]Edge
}

// Method returns the method this graph belongs to.
func (g *Graph) Method() *ir.Method { return g.method }

// Entry returns the synthetic entry node.
func (g *Graph) Entry() ir.Stmt { return g.entry }

// Exit returns the synthetic exit node.
func (g *Graph) Exit() ir.Stmt { return g.exit }

// Size returns the number of nodes, including the synthetic entry and exit.
func (g *Graph) Size() int { return len(g.nodes) }

// Nodes returns all nodes in program order, entry first and exit last. The returned slice
// must not be modified.
func (g *Graph) Nodes() []ir.Stmt { return g.nodes }

// NodeID returns the stable ID of a node.
func (g *Graph) NodeID(s ir.Stmt) (int, bool) {
	id, ok := g.ids[s]
	return id, ok
}

// Node returns the node with the given ID.
func (g *Graph) Node(id int) ir.Stmt { return g.nodes[id] }

// OutEdges returns the outgoing edges of s. The returned slice must not be modified.
func (g *Graph) OutEdges(s ir.Stmt) []Edge {
	if id, ok := g.ids[s]; ok {
		return g.out[id]
	}
	return nil
}

// InEdges returns the incoming edges of s. The returned slice must not be modified.
func (g *Graph) InEdges(s ir.Stmt) []Edge {
	if id, ok := g.ids[s]; ok {
		return g.in[id]
	}
	return nil
}

// Builder assembles a Graph for a method. The builder registers the method's statements as
// nodes and creates the synthetic entry and exit; callers add edges, including the entry
// and return edges.
type Builder struct {
	g *Graph
}

// NewBuilder returns a builder for the control-flow graph of method.
func NewBuilder(method *ir.Method) *Builder {
	entry := ir.NewSyntheticNop(-1)
	exit := ir.NewSyntheticNop(-2)
	stmts := method.Stmts()

	g := &Graph{
		method: method,
		entry:  entry,
		exit:   exit,
		nodes:  make([]ir.Stmt, 0, len(stmts)+2),
		ids:    make(map[ir.Stmt]int, len(stmts)+2),
	}
	g.addNode(entry)
	for _, s := range stmts {
		g.addNode(s)
	}
	g.addNode(exit)
	g.out = make([][]Edge, len(g.nodes))
	g.in = make([][]Edge, len(g.nodes))
	return &Builder{g: g}
}

func (g *Graph) addNode(s ir.Stmt) {
	g.ids[s] = len(g.nodes)
	g.nodes = append(g.nodes, s)
}

// Entry returns the graph's synthetic entry node.
func (b *Builder) Entry() ir.Stmt { return b.g.entry }

// Exit returns the graph's synthetic exit node.
func (b *Builder) Exit() ir.Stmt { return b.g.exit }

// AddEdge adds an edge of the given kind from source to target. Both statements must be
// nodes of the graph.
func (b *Builder) AddEdge(kind EdgeKind, source, target ir.Stmt) {
	b.addEdge(Edge{kind: kind, source: source, target: target})
}

// AddCaseEdge adds a switch-case edge carrying the given case literal.
func (b *Builder) AddCaseEdge(source, target ir.Stmt, caseValue int32) {
	b.addEdge(Edge{kind: EdgeSwitchCase, caseValue: caseValue, source: source, target: target})
}

func (b *Builder) addEdge(e Edge) {
	src, ok := b.g.ids[e.source]
	if !ok {
		panic("cfg: edge source is not a node of the graph")
	}
	tgt, ok := b.g.ids[e.target]
	if !ok {
		panic("cfg: edge target is not a node of the graph")
	}
	b.g.out[src] = append(b.g.out[src], e)
	b.g.in[tgt] = append(b.g.in[tgt], e)
}

// Build returns the assembled graph. The builder must not be used afterwards.
func (b *Builder) Build() *Graph { return b.g }
