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

// Package analysis contains the driver that runs analysis plans over methods.
package analysis

import (
	"fmt"
	"os"
	"time"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/config"
	"github.com/palisade-tools/palisade/analysis/constprop"
	"github.com/palisade-tools/palisade/analysis/dataflow"
	"github.com/palisade-tools/palisade/analysis/deadcode"
	"github.com/palisade-tools/palisade/analysis/ir"
	"github.com/palisade-tools/palisade/analysis/livevars"
)

// A methodAnalysis computes one result for a method and returns it for storage under its ID.
// The method's CFG is always available; earlier plan entries' results are already stored on
// the method when a later entry runs.
type methodAnalysis struct {
	id  string
	run func(state *State, method *ir.Method, g *cfg.Graph) (any, error)
}

// State carries the configuration and logger shared by all analyses of a run.
type State struct {
	Config *config.Config
	Logger *config.LogGroup
}

// NewState returns a run state for the given configuration.
func NewState(conf *config.Config) *State {
	return &State{Config: conf, Logger: config.NewLogGroup(conf)}
}

var analyses = []methodAnalysis{
	{
		id: constprop.ID,
		run: func(state *State, method *ir.Method, g *cfg.Graph) (any, error) {
			return solve[*constprop.Fact](state, g, constprop.New()), nil
		},
	},
	{
		id: livevars.ID,
		run: func(state *State, method *ir.Method, g *cfg.Graph) (any, error) {
			return solve[*livevars.Fact](state, g, livevars.New()), nil
		},
	},
	{
		id: deadcode.ID,
		run: func(state *State, method *ir.Method, g *cfg.Graph) (any, error) {
			dead, err := deadcode.Detect(method)
			if err != nil {
				return nil, err
			}
			if max := state.Config.MaxAlarms; max > 0 && len(dead) > max {
				state.Logger.Warnf("truncating dead-code result of %s to %d of %d statements",
					method.Name(), max, len(dead))
				dead = dead[:max]
			}
			if state.Config.ReportDeadCode {
				deadcode.WriteReport(os.Stdout, method, dead)
			}
			return dead, nil
		},
	},
}

// solve runs a dataflow analysis over g with the solver variant the configuration selects
// and dumps the per-node facts when trace logging is on.
func solve[F dataflow.Fact[F]](state *State, g *cfg.Graph, analysis dataflow.Analysis[F]) *dataflow.Result[F] {
	solver := dataflow.NewSolver(analysis)
	var result *dataflow.Result[F]
	if state.Config.UseWorklistSolver {
		result = solver.SolveWorklist(g)
	} else {
		result = solver.Solve(g)
	}
	if state.Logger.LogsTrace() {
		result.Show(state.Logger.GetDebug().Writer())
	}
	return result
}

// RunPlan runs the configured analysis plan on method, storing each analysis result on the
// method under the analysis ID. The method's control-flow graph must already be stored
// under cfg.ID. Plan entries run in order, so an entry may consume the results of earlier
// ones; an entry naming no registered analysis fails the whole plan.
func RunPlan(state *State, method *ir.Method) error {
	g, err := methodCFG(method)
	if err != nil {
		return err
	}
	for _, id := range state.Config.AnalysisPlan {
		a, ok := lookup(id)
		if !ok {
			return fmt.Errorf("analysis plan names unknown analysis %q", id)
		}
		state.Logger.Infof("Running %s on %s ...", id, method.Name())
		start := time.Now()
		result, err := a.run(state, method, g)
		if err != nil {
			return fmt.Errorf("analysis %s failed on method %s: %w", id, method.Name(), err)
		}
		method.StoreResult(id, result)
		state.Logger.Infof("%s done on %s (%.2f s).", id, method.Name(), time.Since(start).Seconds())
	}
	return nil
}

func lookup(id string) (methodAnalysis, bool) {
	for _, a := range analyses {
		if a.id == id {
			return a, true
		}
	}
	return methodAnalysis{}, false
}

func methodCFG(method *ir.Method) (*cfg.Graph, error) {
	r, ok := method.Result(cfg.ID)
	if !ok {
		return nil, fmt.Errorf("method %s has no control-flow graph", method.Name())
	}
	g, ok := r.(*cfg.Graph)
	if !ok {
		return nil, fmt.Errorf("result %q of method %s has unexpected type %T", cfg.ID, method.Name(), r)
	}
	return g, nil
}
