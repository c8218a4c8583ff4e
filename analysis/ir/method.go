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

package ir

// Method is the IR of a single method body: its receiver, formal parameters and statements
// in program order. It also caches completed analysis results keyed by analysis ID, so that
// client analyses can retrieve the results of the analyses they depend on.
//
// Result storage is not synchronized: the driver stores each result before any dependent
// analysis runs, and results are never mutated afterwards.
type Method struct {
	name     string
	receiver *Var
	params   []*Var
	stmts    []Stmt
	vars     []*Var
	results  map[string]any
}

// NewMethod returns an empty method body with the given name.
func NewMethod(name string) *Method {
	return &Method{
		name:    name,
		results: make(map[string]any),
	}
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// NewVar allocates a fresh local variable of the given type. The variable's ID is its
// allocation order, unique within the method.
func (m *Method) NewVar(name string, t Type) *Var {
	v := &Var{id: len(m.vars), name: name, typ: t}
	m.vars = append(m.vars, v)
	return v
}

// NewConstVar allocates a variable that the frontend substituted for the compile-time
// integer literal c.
func (m *Method) NewConstVar(name string, t Type, c int32) *Var {
	v := m.NewVar(name, t)
	v.constVal = c
	v.isConst = true
	return v
}

// SetReceiver declares v as the implicit receiver of the method.
func (m *Method) SetReceiver(v *Var) { m.receiver = v }

// Receiver returns the implicit receiver variable, if the method has one.
func (m *Method) Receiver() (*Var, bool) {
	if m.receiver == nil {
		return nil, false
	}
	return m.receiver, true
}

// AddParam appends v to the ordered formal parameter list.
func (m *Method) AddParam(v *Var) { m.params = append(m.params, v) }

// Params returns the formal parameters in declaration order.
func (m *Method) Params() []*Var { return m.params }

// Append adds a statement to the method body, assigning its program-order index.
func (m *Method) Append(s Stmt) Stmt {
	s.setIndex(len(m.stmts))
	m.stmts = append(m.stmts, s)
	return s
}

// Stmts returns the statements of the method in program order.
func (m *Method) Stmts() []Stmt { return m.stmts }

// NumVars returns the number of variables allocated in the method. Variable IDs are
// always smaller than NumVars.
func (m *Method) NumVars() int { return len(m.vars) }

// Vars returns all variables of the method, indexed by ID.
func (m *Method) Vars() []*Var { return m.vars }

// Result returns the analysis result stored under the given analysis ID.
func (m *Method) Result(id string) (any, bool) {
	r, ok := m.results[id]
	return r, ok
}

// StoreResult records a completed analysis result under the given analysis ID. Storing a
// result twice overwrites the previous one.
func (m *Method) StoreResult(id string, result any) {
	m.results[id] = result
}
