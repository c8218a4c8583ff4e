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

// Package graphutil adapts the control-flow graph to existing graph libraries.
package graphutil

import (
	"gonum.org/v1/gonum/graph"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/ir"
)

// FlowIterator is an abstraction over a control-flow graph to work with existing graph
// libraries. It implements the methods to satisfy yourbasic's graph.Iterator and Gonum's
// graph.Directed.
type FlowIterator struct {
	// The original control-flow graph the iterator was constructed from
	Graph *cfg.Graph

	// order is the number of nodes
	order int
}

// NewFlowIterator returns a new flow-graph iterator where node ids correspond to the
// stable node IDs of the control-flow graph.
func NewFlowIterator(g *cfg.Graph) FlowIterator {
	return FlowIterator{Graph: g, order: g.Size()}
}

// Order implements the order of the graph.Iterator interface for the FlowIterator
func (c FlowIterator) Order() int {
	return c.order
}

// Visit implements the graph.Iterator interface for the FlowIterator
func (c FlowIterator) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= c.order {
		return false
	}
	for _, e := range c.Graph.OutEdges(c.Graph.Node(v)) {
		w, _ := c.Graph.NodeID(e.Target())
		if do(w, 1) {
			return true
		}
	}
	return false
}

// *************** Gonum Directed interface implementation **********************

// Node implements the Graph interface
func (c FlowIterator) Node(id int64) graph.Node {
	if id < 0 || id >= int64(c.order) {
		return nil
	}
	return FlowNode{id: id, Stmt: c.Graph.Node(int(id))}
}

// Nodes returns the set of nodes in the graph
func (c FlowIterator) Nodes() graph.Nodes {
	ids := make([]int64, c.order)
	for i := range ids {
		ids[i] = int64(i)
	}
	return &NodeSet{graph: c, ids: ids, cur: -1}
}

// From returns the set of nodes reachable from the id by one edge
func (c FlowIterator) From(id int64) graph.Nodes {
	var ids []int64
	for _, e := range c.Graph.OutEdges(c.Graph.Node(int(id))) {
		w, _ := c.Graph.NodeID(e.Target())
		ids = append(ids, int64(w))
	}
	return &NodeSet{graph: c, ids: ids, cur: -1}
}

// To returns the set of nodes that can reach the id by one edge
func (c FlowIterator) To(id int64) graph.Nodes {
	var ids []int64
	for _, e := range c.Graph.InEdges(c.Graph.Node(int(id))) {
		w, _ := c.Graph.NodeID(e.Source())
		ids = append(ids, int64(w))
	}
	return &NodeSet{graph: c, ids: ids, cur: -1}
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two node
// identifiers, in either direction
func (c FlowIterator) HasEdgeBetween(xid, yid int64) bool {
	return c.HasEdgeFromTo(xid, yid) || c.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo returns a boolean indicating whether a directed edge exists from uid to vid
func (c FlowIterator) HasEdgeFromTo(uid, vid int64) bool {
	for _, e := range c.Graph.OutEdges(c.Graph.Node(int(uid))) {
		if w, _ := c.Graph.NodeID(e.Target()); int64(w) == vid {
			return true
		}
	}
	return false
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (c FlowIterator) Edge(uid, vid int64) graph.Edge {
	if c.HasEdgeFromTo(uid, vid) {
		return FlowEdge{from: c.Node(uid), to: c.Node(vid)}
	}
	return nil
}

// *************** Nodes implementation **********************

// FlowNode is a wrapper around an ir.Stmt that implements the graph.Node interface
type FlowNode struct {
	Stmt ir.Stmt
	id   int64
}

// ID returns the id of the node
func (n FlowNode) ID() int64 {
	return n.id
}

func (n FlowNode) String() string {
	if n.Stmt == nil {
		return ""
	}
	return n.Stmt.String()
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	graph FlowIterator

	// ids is the set of node ids in the iterator
	ids []int64

	// cur is the current index of the iterator; -1 before the first call to Next
	cur int
}

// Next moves the current node to the next, and returns true if such a node exists.
// Otherwise, returns false and the current node has not changed.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

// Len returns the number of remaining nodes in the set
func (ns *NodeSet) Len() int {
	return len(ns.ids) - ns.cur - 1
}

// Reset resets the iterator to its initial position
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node in the set
func (ns *NodeSet) Node() graph.Node {
	return ns.graph.Node(ns.ids[ns.cur])
}

// *************** Edge implementation **********************

// FlowEdge implements the graph.Edge interface
type FlowEdge struct {
	from graph.Node
	to   graph.Node
}

// From returns the origin of the edge
func (e FlowEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e FlowEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e FlowEdge) ReversedEdge() graph.Edge {
	return FlowEdge{from: e.to, to: e.from}
}
