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

package constprop_test

import (
	"math"
	"testing"

	"github.com/palisade-tools/palisade/analysis/cfg"
	"github.com/palisade-tools/palisade/analysis/constprop"
	"github.com/palisade-tools/palisade/analysis/dataflow"
	"github.com/palisade-tools/palisade/analysis/ir"
	"github.com/palisade-tools/palisade/internal/irtest"
)

func lit(c int32) *ir.IntLit { return &ir.IntLit{Value: c} }

func bin(op ir.BinaryOp, x, y ir.Exp) *ir.Binary { return &ir.Binary{Op: op, X: x, Y: y} }

func TestEvaluateFolding(t *testing.T) {
	in := constprop.NewFact()
	tests := []struct {
		name     string
		exp      ir.Exp
		expected constprop.Value
	}{
		{"add", bin(ir.OpAdd, lit(2), lit(3)), constprop.MakeConstant(5)},
		{"sub", bin(ir.OpSub, lit(2), lit(3)), constprop.MakeConstant(-1)},
		{"mul", bin(ir.OpMul, lit(-4), lit(3)), constprop.MakeConstant(-12)},
		{"div", bin(ir.OpDiv, lit(7), lit(2)), constprop.MakeConstant(3)},
		{"div-negative", bin(ir.OpDiv, lit(-7), lit(2)), constprop.MakeConstant(-3)},
		{"rem", bin(ir.OpRem, lit(-7), lit(2)), constprop.MakeConstant(-1)},
		{"div-by-zero", bin(ir.OpDiv, lit(7), lit(0)), constprop.Undef()},
		{"rem-by-zero", bin(ir.OpRem, lit(7), lit(0)), constprop.Undef()},
		{"add-wraparound", bin(ir.OpAdd, lit(math.MaxInt32), lit(1)), constprop.MakeConstant(math.MinInt32)},
		{"mul-wraparound", bin(ir.OpMul, lit(math.MaxInt32), lit(2)), constprop.MakeConstant(-2)},
		{"div-overflow", bin(ir.OpDiv, lit(math.MinInt32), lit(-1)), constprop.MakeConstant(math.MinInt32)},
		{"eq-true", bin(ir.OpEq, lit(4), lit(4)), constprop.MakeConstant(1)},
		{"eq-false", bin(ir.OpEq, lit(4), lit(5)), constprop.MakeConstant(0)},
		{"ne", bin(ir.OpNe, lit(4), lit(5)), constprop.MakeConstant(1)},
		{"lt", bin(ir.OpLt, lit(-1), lit(0)), constprop.MakeConstant(1)},
		{"gt", bin(ir.OpGt, lit(-1), lit(0)), constprop.MakeConstant(0)},
		{"le", bin(ir.OpLe, lit(3), lit(3)), constprop.MakeConstant(1)},
		{"ge", bin(ir.OpGe, lit(2), lit(3)), constprop.MakeConstant(0)},
		{"shl", bin(ir.OpShl, lit(1), lit(4)), constprop.MakeConstant(16)},
		{"shl-masked", bin(ir.OpShl, lit(1), lit(33)), constprop.MakeConstant(2)},
		{"shr", bin(ir.OpShr, lit(-8), lit(1)), constprop.MakeConstant(-4)},
		{"ushr", bin(ir.OpUShr, lit(-8), lit(1)), constprop.MakeConstant(0x7FFFFFFC)},
		{"ushr-zero", bin(ir.OpUShr, lit(-1), lit(0)), constprop.MakeConstant(-1)},
		{"and", bin(ir.OpAnd, lit(0b1100), lit(0b1010)), constprop.MakeConstant(0b1000)},
		{"or", bin(ir.OpOr, lit(0b1100), lit(0b1010)), constprop.MakeConstant(0b1110)},
		{"xor", bin(ir.OpXor, lit(0b1100), lit(0b1010)), constprop.MakeConstant(0b0110)},
		{"literal", lit(9), constprop.MakeConstant(9)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := constprop.Evaluate(test.exp, in); got != test.expected {
				t.Errorf("Evaluate(%s) = %s, want %s", test.exp, got, test.expected)
			}
		})
	}
}

func TestEvaluateOperands(t *testing.T) {
	method := ir.NewMethod("operands")
	x := method.NewVar("x", ir.TypeInt)
	y := method.NewVar("y", ir.TypeInt)
	z := method.NewVar("z", ir.TypeInt)
	k := method.NewConstVar("k", ir.TypeInt, 10)

	in := constprop.NewFact()
	in.Update(x, constprop.MakeConstant(2))
	in.Update(y, constprop.NAC())
	// z stays Undef.

	tests := []struct {
		name     string
		exp      ir.Exp
		expected constprop.Value
	}{
		{"const-var", x, constprop.MakeConstant(2)},
		{"nac-var", y, constprop.NAC()},
		{"undef-var", z, constprop.Undef()},
		{"const-substituted", k, constprop.MakeConstant(10)},
		{"nac-operand", bin(ir.OpAdd, x, y), constprop.NAC()},
		{"undef-operand", bin(ir.OpAdd, x, z), constprop.Undef()},
		{"nac-beats-undef", bin(ir.OpAdd, y, z), constprop.NAC()},
		{"const-operands", bin(ir.OpMul, x, k), constprop.MakeConstant(20)},
		{"call", &ir.Call{Callee: "f"}, constprop.NAC()},
		{"field", &ir.FieldAccess{Base: x, Field: "f"}, constprop.NAC()},
		{"array", &ir.ArrayAccess{Base: x, Index: lit(0)}, constprop.NAC()},
		{"cast", &ir.Cast{Target: ir.TypeInt, Operand: x}, constprop.NAC()},
		{"alloc", &ir.Alloc{Class: "T"}, constprop.NAC()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := constprop.Evaluate(test.exp, in); got != test.expected {
				t.Errorf("Evaluate(%s) = %s, want %s", test.exp, got, test.expected)
			}
		})
	}
}

func TestBoundaryFactMakesParamsNAC(t *testing.T) {
	method := ir.NewMethod("params")
	recv := method.NewVar("this", ir.TypeRef)
	method.SetReceiver(recv)
	p := method.NewVar("p", ir.TypeInt)
	method.AddParam(p)
	method.Append(&ir.Return{Value: p})
	g := irtest.LinearCFG(method)

	boundary := constprop.New().NewBoundaryFact(g)
	if !boundary.Get(p).IsNAC() {
		t.Errorf("parameter p = %s on entry, want NAC", boundary.Get(p))
	}
	if !boundary.Get(recv).IsNAC() {
		t.Errorf("receiver = %s on entry, want NAC", boundary.Get(recv))
	}
}

// x = 1; y = x + 2; z = y * x yields all constants along a straight line.
func TestSolveStraightLine(t *testing.T) {
	method := ir.NewMethod("straight")
	x := method.NewVar("x", ir.TypeInt)
	y := method.NewVar("y", ir.TypeInt)
	z := method.NewVar("z", ir.TypeInt)
	s0 := method.Append(&ir.Assign{LHS: x, RHS: lit(1)})
	_ = method.Append(&ir.Assign{LHS: y, RHS: bin(ir.OpAdd, x, lit(2))})
	last := method.Append(&ir.Assign{LHS: z, RHS: bin(ir.OpMul, y, x)})
	g := irtest.LinearCFG(method)

	result := dataflow.RunAnalysis[*constprop.Fact](g, constprop.New())
	out := result.OutFact(last)
	if got := out.Get(x); got != constprop.MakeConstant(1) {
		t.Errorf("x = %s, want 1", got)
	}
	if got := out.Get(y); got != constprop.MakeConstant(3) {
		t.Errorf("y = %s, want 3", got)
	}
	if got := out.Get(z); got != constprop.MakeConstant(3) {
		t.Errorf("z = %s, want 3", got)
	}
	if got := result.InFact(s0).Get(x); !got.IsUndef() {
		t.Errorf("x before its definition = %s, want UNDEF", got)
	}
}

// Two branches assigning different constants to x meet to NAC at the join, while branches
// assigning the same constant meet to that constant.
func TestSolveBranchMeet(t *testing.T) {
	build := func(c1, c2 int32) (*ir.Method, ir.Stmt, *ir.Var) {
		method := ir.NewMethod("branch")
		p := method.NewVar("p", ir.TypeInt)
		method.AddParam(p)
		x := method.NewVar("x", ir.TypeInt)
		method.Append(&ir.If{Cond: bin(ir.OpGt, p, lit(0))})   // 0
		method.Append(&ir.Assign{LHS: x, RHS: lit(c1)})        // 1
		method.Append(&ir.Assign{LHS: x, RHS: lit(c2)})        // 2
		join := method.Append(&ir.Return{Value: x})            // 3
		irtest.BuildCFG(method, []irtest.EdgeSpec{
			{Kind: cfg.EdgeEntry, Src: irtest.Entry, Dst: 0},
			{Kind: cfg.EdgeIfTrue, Src: 0, Dst: 1},
			{Kind: cfg.EdgeIfFalse, Src: 0, Dst: 2},
			{Kind: cfg.EdgeFallthrough, Src: 1, Dst: 3},
			{Kind: cfg.EdgeFallthrough, Src: 2, Dst: 3},
			{Kind: cfg.EdgeReturn, Src: 3, Dst: irtest.Exit},
		})
		return method, join, x
	}

	method, join, x := build(5, 6)
	r, _ := method.Result(cfg.ID)
	result := dataflow.RunAnalysis[*constprop.Fact](r.(*cfg.Graph), constprop.New())
	if got := result.InFact(join).Get(x); !got.IsNAC() {
		t.Errorf("x at join of different constants = %s, want NAC", got)
	}

	method, join, x = build(5, 5)
	r, _ = method.Result(cfg.ID)
	result = dataflow.RunAnalysis[*constprop.Fact](r.(*cfg.Graph), constprop.New())
	if got := result.InFact(join).Get(x); got != constprop.MakeConstant(5) {
		t.Errorf("x at join of equal constants = %s, want 5", got)
	}
}

// A loop whose body increments x drives x to NAC at the loop head without diverging.
func TestSolveLoopConverges(t *testing.T) {
	method := ir.NewMethod("loop")
	p := method.NewVar("p", ir.TypeInt)
	method.AddParam(p)
	x := method.NewVar("x", ir.TypeInt)
	method.Append(&ir.Assign{LHS: x, RHS: lit(0)})              // 0
	head := method.Append(&ir.If{Cond: bin(ir.OpLt, x, p)})     // 1
	method.Append(&ir.Assign{LHS: x, RHS: bin(ir.OpAdd, x, lit(1))}) // 2
	method.Append(&ir.Return{Value: x})                         // 3
	g := irtest.BuildCFG(method, []irtest.EdgeSpec{
		{Kind: cfg.EdgeEntry, Src: irtest.Entry, Dst: 0},
		{Kind: cfg.EdgeFallthrough, Src: 0, Dst: 1},
		{Kind: cfg.EdgeIfTrue, Src: 1, Dst: 2},
		{Kind: cfg.EdgeIfFalse, Src: 1, Dst: 3},
		{Kind: cfg.EdgeFallthrough, Src: 2, Dst: 1},
		{Kind: cfg.EdgeReturn, Src: 3, Dst: irtest.Exit},
	})

	result := dataflow.RunAnalysis[*constprop.Fact](g, constprop.New())
	if got := result.InFact(head).Get(x); !got.IsNAC() {
		t.Errorf("x at loop head = %s, want NAC", got)
	}
}

// Variables whose type cannot hold an int are not tracked.
func TestNonIntVariablesUntracked(t *testing.T) {
	method := ir.NewMethod("nonint")
	f := method.NewVar("f", ir.TypeFloat)
	last := method.Append(&ir.Assign{LHS: f, RHS: lit(1)})
	g := irtest.LinearCFG(method)

	result := dataflow.RunAnalysis[*constprop.Fact](g, constprop.New())
	if got := result.OutFact(last).Get(f); !got.IsUndef() {
		t.Errorf("float variable tracked with value %s", got)
	}
}
