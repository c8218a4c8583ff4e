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

// Package constprop implements intraprocedural constant propagation over the three-level
// lattice Undef < Constant(c) < NAC. Only variables of integer-compatible primitive types
// are tracked; all folding uses exact 32-bit two's-complement semantics.
package constprop

import (
	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/ir"
)

// ID is the identifier under which the driver stores constant-propagation results.
const ID = "constprop"

// Analysis is the constant-propagation analysis. It implements dataflow.Analysis[*Fact].
type Analysis struct{}

// New returns the constant-propagation analysis.
func New() *Analysis { return &Analysis{} }

// IsForward reports that constant propagation is a forward analysis.
func (a *Analysis) IsForward() bool { return true }

// NewBoundaryFact maps the implicit receiver and every formal parameter to NAC: the calling
// context is unanalyzed, so parameters are assumed arbitrary on entry.
func (a *Analysis) NewBoundaryFact(g *cfg.Graph) *Fact {
	fact := NewFact()
	method := g.Method()
	if recv, ok := method.Receiver(); ok {
		fact.Update(recv, NAC())
	}
	for _, param := range method.Params() {
		fact.Update(param, NAC())
	}
	return fact
}

// NewInitialFact returns the empty fact, in which every variable is Undef.
func (a *Analysis) NewInitialFact() *Fact { return NewFact() }

// MeetInto merges fact into target, applying the value meet per variable. Variables whose
// type cannot hold an integer are excluded from the meet.
func (a *Analysis) MeetInto(fact *Fact, target *Fact) {
	for v, val := range fact.m {
		if v.CanHoldInt() {
			target.Update(v, MeetValue(val, target.Get(v)))
		}
	}
}

// MeetValue computes the meet of two lattice values:
//   - equal constants meet to that constant, unequal constants to NAC;
//   - NAC absorbs everything;
//   - Undef is the identity.
//
// A pair outside the three-way kind classification indicates the lattice contract was
// violated by a caller, which is an unrecoverable internal-consistency fault.
func MeetValue(v1, v2 Value) Value {
	switch {
	case v1.IsConstant() && v2.IsConstant():
		if v1 == v2 {
			return v1
		}
		return NAC()
	case v1.IsNAC() || v2.IsNAC():
		return NAC()
	case v1.IsUndef() || v2.IsUndef():
		if v1.IsUndef() {
			return v2
		}
		return v1
	}
	panic("constprop: meet value rule not matched")
}

// TransferNode copies IN into OUT; when the statement defines an integer-compatible
// variable, the right-hand expression is re-evaluated against IN and overwrites that
// variable's binding in OUT. Reports whether OUT changed.
func (a *Analysis) TransferNode(stmt ir.Stmt, in *Fact, out *Fact) bool {
	changed := out.CopyFrom(in)
	def, ok := stmt.Def()
	if !ok {
		return changed
	}
	v, ok := def.(*ir.Var)
	if !ok || !v.CanHoldInt() {
		return changed
	}
	val := NAC()
	if ds, ok := stmt.(ir.DefStmt); ok {
		val = Evaluate(ds.RValue(), in)
	}
	if out.Update(v, val) {
		changed = true
	}
	return changed
}

// Evaluate computes the lattice value of an expression under the given fact. It is a pure
// function of the expression tree and the fact, and is also used by the dead-code detector
// to resolve branch conditions.
//
// Every expression shape has a total fallback: unrecognized shapes evaluate to NAC, and a
// zero divisor yields Undef rather than a fault, representing unreachable-in-practice code.
func Evaluate(exp ir.Exp, in *Fact) Value {
	switch e := exp.(type) {
	case *ir.Var:
		// A variable substituted for a compile-time literal is that constant no matter
		// what the fact says.
		if e.IsConstSubstituted() {
			return MakeConstant(e.ConstValue())
		}
		return in.Get(e)
	case *ir.IntLit:
		return MakeConstant(e.Value)
	case *ir.Binary:
		v1 := Evaluate(e.X, in)
		v2 := Evaluate(e.Y, in)
		if v1.IsConstant() && v2.IsConstant() {
			return foldBinary(e.Op, v1.Constant(), v2.Constant())
		}
		if v1.IsNAC() || v2.IsNAC() {
			return NAC()
		}
		return Undef()
	}
	return NAC()
}

// foldBinary folds a binary operator applied to two constants with exact 32-bit semantics.
// Shift distances are masked to the low five bits.
func foldBinary(op ir.BinaryOp, c1, c2 int32) Value {
	switch op := op.(type) {
	case ir.ArithmeticOp:
		switch op {
		case ir.OpAdd:
			return MakeConstant(c1 + c2)
		case ir.OpSub:
			return MakeConstant(c1 - c2)
		case ir.OpMul:
			return MakeConstant(c1 * c2)
		case ir.OpDiv:
			if c2 == 0 {
				return Undef()
			}
			return MakeConstant(c1 / c2)
		case ir.OpRem:
			if c2 == 0 {
				return Undef()
			}
			return MakeConstant(c1 % c2)
		}
	case ir.ConditionOp:
		var res bool
		switch op {
		case ir.OpEq:
			res = c1 == c2
		case ir.OpNe:
			res = c1 != c2
		case ir.OpLt:
			res = c1 < c2
		case ir.OpGt:
			res = c1 > c2
		case ir.OpLe:
			res = c1 <= c2
		case ir.OpGe:
			res = c1 >= c2
		}
		if res {
			return MakeConstant(1)
		}
		return MakeConstant(0)
	case ir.ShiftOp:
		shift := uint32(c2) & 31
		switch op {
		case ir.OpShl:
			return MakeConstant(c1 << shift)
		case ir.OpShr:
			return MakeConstant(c1 >> shift)
		case ir.OpUShr:
			return MakeConstant(int32(uint32(c1) >> shift))
		}
	case ir.BitwiseOp:
		switch op {
		case ir.OpAnd:
			return MakeConstant(c1 & c2)
		case ir.OpOr:
			return MakeConstant(c1 | c2)
		case ir.OpXor:
			return MakeConstant(c1 ^ c2)
		}
	}
	return NAC()
}
