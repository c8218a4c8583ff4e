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

// Package deadcode detects dead statements by composing the completed constant-propagation
// and live-variable results with a reachability walk over the control-flow graph. A
// statement is dead when the walk never reaches it, or when it is a side-effect-free
// assignment to a variable that is not live afterwards.
package deadcode

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/constprop"
	"github.com/palisade-tools/palisade/analysis/dataflow"
	"github.com/palisade-tools/palisade/analysis/ir"
	"github.com/palisade-tools/palisade/analysis/livevars"
)

// ID is the identifier under which the driver stores dead-code results.
const ID = "deadcode"

// Detect returns the dead statements of method, ordered by program index with no
// duplicates. It requires the method's CFG, constant-propagation result and live-variable
// result to have been stored on the method beforehand.
func Detect(method *ir.Method) ([]ir.Stmt, error) {
	g, err := resultOf[*cfg.Graph](method, cfg.ID)
	if err != nil {
		return nil, err
	}
	constants, err := resultOf[*dataflow.Result[*constprop.Fact]](method, constprop.ID)
	if err != nil {
		return nil, err
	}
	liveVars, err := resultOf[*dataflow.Result[*livevars.Fact]](method, livevars.ID)
	if err != nil {
		return nil, err
	}

	reachable := walkReachable(g, constants)

	deadSet := make(map[ir.Stmt]bool)
	for _, stmt := range method.Stmts() {
		if !reachable[stmt] {
			deadSet[stmt] = true
			continue
		}
		assign, ok := stmt.(*ir.Assign)
		if !ok {
			continue
		}
		v, ok := assign.LHS.(*ir.Var)
		if !ok {
			continue
		}
		if !liveVars.OutFact(stmt).Has(v) && hasNoSideEffect(assign.RHS) {
			deadSet[stmt] = true
		}
	}

	dead := make([]ir.Stmt, 0, len(deadSet))
	for stmt := range deadSet {
		dead = append(dead, stmt)
	}
	slices.SortFunc(dead, func(a, b ir.Stmt) bool { return a.Index() < b.Index() })
	return dead, nil
}

func resultOf[T any](method *ir.Method, id string) (T, error) {
	var zero T
	r, ok := method.Result(id)
	if !ok {
		return zero, fmt.Errorf("deadcode: method %s has no %q result", method.Name(), id)
	}
	typed, ok := r.(T)
	if !ok {
		return zero, fmt.Errorf("deadcode: result %q of method %s has unexpected type %T", id, method.Name(), r)
	}
	return typed, nil
}

// walkReachable runs a breadth-first traversal from the CFG entry, pruning the outgoing
// branch edges whose condition or discriminant folds to a constant. A non-constant branch
// value (NAC or Undef) conservatively follows every outgoing edge.
func walkReachable(g *cfg.Graph, constants *dataflow.Result[*constprop.Fact]) map[ir.Stmt]bool {
	reachable := make(map[ir.Stmt]bool)
	var queue []ir.Stmt

	enqueue := func(s ir.Stmt) {
		if !reachable[s] {
			reachable[s] = true
			queue = append(queue, s)
		}
	}
	enqueue(g.Entry())

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		outEdges := g.OutEdges(curr)

		val := constprop.NAC()
		switch s := curr.(type) {
		case *ir.If:
			val = constprop.Evaluate(s.Cond, constants.InFact(curr))
		case *ir.Switch:
			val = constprop.Evaluate(s.X, constants.InFact(curr))
		}
		if !val.IsConstant() {
			for _, e := range outEdges {
				enqueue(e.Target())
			}
			continue
		}

		switch curr.(type) {
		case *ir.If:
			liveKind := cfg.EdgeIfFalse
			if val.Constant() != 0 {
				liveKind = cfg.EdgeIfTrue
			}
			for _, e := range outEdges {
				switch e.Kind() {
				case cfg.EdgeIfTrue, cfg.EdgeIfFalse:
					if e.Kind() == liveKind {
						enqueue(e.Target())
					}
				default:
					// Edges that are not part of the branch construct are always followed.
					enqueue(e.Target())
				}
			}
		case *ir.Switch:
			matched := false
			for _, e := range outEdges {
				switch {
				case e.IsSwitchCase():
					if e.CaseValue() == val.Constant() {
						enqueue(e.Target())
						matched = true
					}
				case e.Kind() != cfg.EdgeSwitchDefault:
					enqueue(e.Target())
				}
			}
			if !matched {
				for _, e := range outEdges {
					if e.Kind() == cfg.EdgeSwitchDefault {
						enqueue(e.Target())
					}
				}
			}
		}
	}
	return reachable
}

// hasNoSideEffect classifies an r-value expression as safe to eliminate. Allocations may
// run initializers, casts may fail, field accesses may trigger class initialization or a
// null fault, array accesses may trigger a null or bounds fault, and integer divide and
// remainder may trigger a division fault; every other shape is pure.
func hasNoSideEffect(rvalue ir.Exp) bool {
	switch e := rvalue.(type) {
	case *ir.Alloc, *ir.Cast, *ir.FieldAccess, *ir.ArrayAccess:
		return false
	case *ir.Binary:
		if op, ok := e.Op.(ir.ArithmeticOp); ok {
			return op != ir.OpDiv && op != ir.OpRem
		}
		return true
	}
	return true
}
