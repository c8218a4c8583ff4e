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
	"sort"

	"github.com/yourbasic/graph"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/internal/funcutil"
)

// ConvergenceOrder returns the node IDs of g in an enumeration order that tends to minimize
// the number of solver passes: for a forward analysis, a node's predecessors come before the
// node whenever the graph's strongly connected components allow it; for a backward analysis
// the successors do. Within a component the order is by node ID.
//
// The order is a heuristic only. The fixpoint solver converges in any enumeration order;
// callers must not rely on this order for correctness.
func ConvergenceOrder(g *cfg.Graph, forward bool) []int {
	// Tarjan emits components with successors first, i.e. in reverse topological order
	// of the component DAG.
	components := graph.StrongComponents(NewFlowIterator(g))
	for _, component := range components {
		sort.Ints(component)
	}
	if forward {
		funcutil.Reverse(components)
	}
	order := make([]int, 0, g.Size())
	for _, component := range components {
		order = append(order, component...)
	}
	return order
}
