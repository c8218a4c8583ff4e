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

import "fmt"

// Stmt is the interface of all statements. Like Exp, the family is sealed.
type Stmt interface {
	fmt.Stringer

	// Index is the position of the statement in the enclosing method, in program order.
	// Synthetic statements owned by the CFG carry negative indexes.
	Index() int

	// Def returns the l-value defined by this statement, if any. A statement defines at
	// most one l-value.
	Def() (LValue, bool)

	// Uses returns the top-level r-values of this statement. For stores through a field or
	// array access, the base (and index) of the access count as uses.
	Uses() []Exp

	isStmt()
	setIndex(int)
}

// DefStmt is implemented by statements that assign the value of an r-value expression to
// their definition: plain assignments and invocations with a result.
type DefStmt interface {
	Stmt

	// RValue returns the expression whose value is assigned.
	RValue() Exp
}

type stmtIndex int

func (s stmtIndex) Index() int       { return int(s) }
func (s *stmtIndex) setIndex(ix int) { *s = stmtIndex(ix) }

// Assign assigns the value of RHS to LHS.
type Assign struct {
	stmtIndex
	LHS LValue
	RHS Exp
}

func (s *Assign) Def() (LValue, bool) { return s.LHS, true }

func (s *Assign) Uses() []Exp {
	// For a store through a field or array access, the access's own operands are used,
	// not defined.
	if _, ok := s.LHS.(*Var); ok {
		return []Exp{s.RHS}
	}
	return append(s.LHS.Uses(), s.RHS)
}

func (s *Assign) RValue() Exp    { return s.RHS }
func (s *Assign) String() string { return fmt.Sprintf("%s = %s", s.LHS, s.RHS) }
func (s *Assign) isStmt()        {}

// Invoke calls a method for its effects, optionally assigning the result to Result.
type Invoke struct {
	stmtIndex
	Call   *Call
	Result *Var
}

func (s *Invoke) Def() (LValue, bool) {
	if s.Result == nil {
		return nil, false
	}
	return s.Result, true
}

func (s *Invoke) Uses() []Exp { return []Exp{s.Call} }
func (s *Invoke) RValue() Exp { return s.Call }

func (s *Invoke) String() string {
	if s.Result == nil {
		return s.Call.String()
	}
	return fmt.Sprintf("%s = %s", s.Result, s.Call)
}
func (s *Invoke) isStmt() {}

// If is a two-way branch on a boolean-valued condition.
type If struct {
	stmtIndex
	Cond Exp
}

func (s *If) Def() (LValue, bool) { return nil, false }
func (s *If) Uses() []Exp         { return []Exp{s.Cond} }
func (s *If) String() string      { return fmt.Sprintf("if (%s)", s.Cond) }
func (s *If) isStmt()             {}

// Switch is a multi-way branch on an integer discriminant variable.
type Switch struct {
	stmtIndex
	X *Var
}

func (s *Switch) Def() (LValue, bool) { return nil, false }
func (s *Switch) Uses() []Exp         { return []Exp{s.X} }
func (s *Switch) String() string      { return fmt.Sprintf("switch (%s)", s.X) }
func (s *Switch) isStmt()             {}

// Return exits the method, optionally yielding a value.
type Return struct {
	stmtIndex
	Value Exp
}

func (s *Return) Def() (LValue, bool) { return nil, false }

func (s *Return) Uses() []Exp {
	if s.Value == nil {
		return nil
	}
	return []Exp{s.Value}
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", s.Value)
}
func (s *Return) isStmt() {}

// Nop does nothing. The CFG uses synthetic Nops for its entry and exit nodes.
type Nop struct {
	stmtIndex
}

// NewSyntheticNop returns a Nop with the given negative index, for use as a synthetic CFG
// node that does not belong to any method body.
func NewSyntheticNop(index int) *Nop {
	n := &Nop{}
	n.setIndex(index)
	return n
}

func (s *Nop) Def() (LValue, bool) { return nil, false }
func (s *Nop) Uses() []Exp         { return nil }
func (s *Nop) String() string      { return "nop" }
func (s *Nop) isStmt()             {}
