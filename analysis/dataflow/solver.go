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
	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/internal/graphutil"
)

// Solver drives an Analysis to a fixpoint over a control-flow graph. The same solver works
// for forward and backward analyses; the direction only decides which node is the boundary
// and which neighbors' facts are met into a node's input side.
type Solver[F Fact[F]] struct {
	analysis Analysis[F]
}

// NewSolver returns a solver for the given analysis.
func NewSolver[F Fact[F]](analysis Analysis[F]) *Solver[F] {
	return &Solver[F]{analysis: analysis}
}

// RunAnalysis computes the fixpoint of analysis over g and returns the completed result.
// This is the generic entry point drivers register concrete analyses through.
func RunAnalysis[F Fact[F]](g *cfg.Graph, analysis Analysis[F]) *Result[F] {
	return NewSolver(analysis).Solve(g)
}

// Solve runs repeated full passes over all nodes until a pass produces no change.
// Termination follows from the finite height of the fact lattice and the monotonicity of
// MeetInto and TransferNode: the number of distinct fact values per node is bounded, so the
// number of reported changes is bounded.
func (s *Solver[F]) Solve(g *cfg.Graph) *Result[F] {
	result, order := s.initialize(g)
	for changed := true; changed; {
		changed = false
		for _, id := range order {
			if s.processNode(g, result, id) {
				changed = true
			}
		}
	}
	return result
}

// SolveWorklist computes the same fixpoint as Solve, revisiting only the nodes whose
// dependencies changed. Every node is processed at least once.
func (s *Solver[F]) SolveWorklist(g *cfg.Graph) *Result[F] {
	result, order := s.initialize(g)
	forward := s.analysis.IsForward()
	boundaryID := s.boundaryID(g)

	queue := make([]int, len(order))
	copy(queue, order)
	inQueue := make([]bool, g.Size())
	for _, id := range queue {
		inQueue[id] = true
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		inQueue[id] = false
		if !s.processNode(g, result, id) {
			continue
		}
		// The recomputed side feeds the meet of the dependent nodes.
		node := g.Node(id)
		var dependents []cfg.Edge
		if forward {
			dependents = g.OutEdges(node)
		} else {
			dependents = g.InEdges(node)
		}
		for _, e := range dependents {
			next := e.Target()
			if !forward {
				next = e.Source()
			}
			nid, _ := g.NodeID(next)
			if nid == boundaryID || inQueue[nid] {
				continue
			}
			inQueue[nid] = true
			queue = append(queue, nid)
		}
	}
	return result
}

// initialize materializes the IN and OUT fact slots of every node from the initial fact,
// seeds the boundary node with the boundary fact, and returns the node enumeration order
// with the boundary node removed.
func (s *Solver[F]) initialize(g *cfg.Graph) (*Result[F], []int) {
	result := newResult[F](g)
	for id := range result.in {
		result.in[id] = s.analysis.NewInitialFact()
		result.out[id] = s.analysis.NewInitialFact()
	}

	boundaryID := s.boundaryID(g)
	if s.analysis.IsForward() {
		result.out[boundaryID] = s.analysis.NewBoundaryFact(g)
	} else {
		result.in[boundaryID] = s.analysis.NewBoundaryFact(g)
	}

	fullOrder := graphutil.ConvergenceOrder(g, s.analysis.IsForward())
	order := make([]int, 0, len(fullOrder)-1)
	for _, id := range fullOrder {
		if id != boundaryID {
			order = append(order, id)
		}
	}
	return result, order
}

func (s *Solver[F]) boundaryID(g *cfg.Graph) int {
	boundary := g.Entry()
	if !s.analysis.IsForward() {
		boundary = g.Exit()
	}
	id, _ := g.NodeID(boundary)
	return id
}

// processNode meets the facts of the node's dependency edges into its input side, applies
// the transfer function and reports whether the output side changed. The meet is over plain
// CFG edges regardless of their branch kind; pruning of statically resolved branches is the
// business of clients, not of the solver.
func (s *Solver[F]) processNode(g *cfg.Graph, result *Result[F], id int) bool {
	node := g.Node(id)
	if s.analysis.IsForward() {
		for _, e := range g.InEdges(node) {
			pid, _ := g.NodeID(e.Source())
			s.analysis.MeetInto(result.out[pid], result.in[id])
		}
		return s.analysis.TransferNode(node, result.in[id], result.out[id])
	}
	for _, e := range g.OutEdges(node) {
		sid, _ := g.NodeID(e.Target())
		s.analysis.MeetInto(result.in[sid], result.out[id])
	}
	return s.analysis.TransferNode(node, result.out[id], result.in[id])
}
