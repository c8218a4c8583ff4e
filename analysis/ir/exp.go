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

import (
	"fmt"
	"strings"
)

// Exp is the interface of all expressions. The family is sealed: every implementation lives
// in this package, which keeps type switches over expression shapes exhaustive.
type Exp interface {
	fmt.Stringer

	// Uses returns the r-values directly nested in this expression. Walking Uses
	// recursively visits every variable reference at any depth.
	Uses() []Exp

	isExp()
}

// LValue is implemented by the expressions that may appear on the left-hand side of an
// assignment: variables, field accesses and array accesses.
type LValue interface {
	Exp
	isLValue()
}

// Var is a local variable, parameter or receiver. Identity is pointer identity; the ID is a
// small integer unique within the enclosing Method, usable as an index into per-variable
// arrays and bitsets.
type Var struct {
	id       int
	name     string
	typ      Type
	constVal int32
	isConst  bool
}

// ID returns the method-unique index of the variable.
func (v *Var) ID() int { return v.id }

// Name returns the source-level name of the variable.
func (v *Var) Name() string { return v.name }

// Type returns the declared type category of the variable.
func (v *Var) Type() Type { return v.typ }

// CanHoldInt returns true if the variable's declared type is an integer-compatible primitive.
func (v *Var) CanHoldInt() bool { return v.typ.IsIntCompatible() }

// IsConstSubstituted returns true if the frontend substituted this variable for a
// compile-time integer literal. Such a variable always evaluates to that constant,
// regardless of any fact map.
func (v *Var) IsConstSubstituted() bool { return v.isConst }

// ConstValue returns the substituted literal value. Only meaningful when
// IsConstSubstituted is true.
func (v *Var) ConstValue() int32 { return v.constVal }

func (v *Var) Uses() []Exp    { return nil }
func (v *Var) String() string { return v.name }
func (v *Var) isExp()         {}
func (v *Var) isLValue()      {}

// IntLit is an integer literal expression.
type IntLit struct {
	Value int32
}

func (l *IntLit) Uses() []Exp    { return nil }
func (l *IntLit) String() string { return fmt.Sprintf("%d", l.Value) }
func (l *IntLit) isExp()         {}

// BinaryOp is the operator of a binary expression. Operators are grouped in four families;
// the evaluator folds each family with its exact fixed-width semantics.
type BinaryOp interface {
	fmt.Stringer
	isBinaryOp()
}

// ArithmeticOp is the family of arithmetic operators.
type ArithmeticOp int

// Arithmetic operators.
const (
	OpAdd ArithmeticOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
)

func (op ArithmeticOp) String() string {
	return [...]string{"+", "-", "*", "/", "%"}[op]
}
func (ArithmeticOp) isBinaryOp() {}

// ConditionOp is the family of relational operators. Relational expressions fold to the
// integer constants 1 (true) and 0 (false).
type ConditionOp int

// Relational operators.
const (
	OpEq ConditionOp = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op ConditionOp) String() string {
	return [...]string{"==", "!=", "<", ">", "<=", ">="}[op]
}
func (ConditionOp) isBinaryOp() {}

// ShiftOp is the family of shift operators. Shift distances are masked to the low five bits,
// matching 32-bit shift semantics.
type ShiftOp int

// Shift operators.
const (
	OpShl ShiftOp = iota
	OpShr
	OpUShr
)

func (op ShiftOp) String() string {
	return [...]string{"<<", ">>", ">>>"}[op]
}
func (ShiftOp) isBinaryOp() {}

// BitwiseOp is the family of bitwise operators.
type BitwiseOp int

// Bitwise operators.
const (
	OpAnd BitwiseOp = iota
	OpOr
	OpXor
)

func (op BitwiseOp) String() string {
	return [...]string{"&", "|", "^"}[op]
}
func (BitwiseOp) isBinaryOp() {}

// Binary is a binary expression over two operand expressions.
type Binary struct {
	Op BinaryOp
	X  Exp
	Y  Exp
}

func (b *Binary) Uses() []Exp    { return []Exp{b.X, b.Y} }
func (b *Binary) String() string { return fmt.Sprintf("%s %s %s", b.X, b.Op, b.Y) }
func (b *Binary) isExp()         {}

// FieldAccess is a read of or store to an instance or static field. Base is nil for static
// fields. Reading a field may trigger class initialization or a null fault, so field
// accesses are never side-effect free.
type FieldAccess struct {
	Base  *Var
	Field string
}

func (f *FieldAccess) Uses() []Exp {
	if f.Base == nil {
		return nil
	}
	return []Exp{f.Base}
}

func (f *FieldAccess) String() string {
	if f.Base == nil {
		return f.Field
	}
	return fmt.Sprintf("%s.%s", f.Base, f.Field)
}
func (f *FieldAccess) isExp()    {}
func (f *FieldAccess) isLValue() {}

// ArrayAccess is an indexed read of or store to an array element. The index is a full
// expression; variables nested inside it count as uses.
type ArrayAccess struct {
	Base  *Var
	Index Exp
}

func (a *ArrayAccess) Uses() []Exp    { return []Exp{a.Base, a.Index} }
func (a *ArrayAccess) String() string { return fmt.Sprintf("%s[%s]", a.Base, a.Index) }
func (a *ArrayAccess) isExp()         {}
func (a *ArrayAccess) isLValue()      {}

// Cast is a checked type cast of an operand expression.
type Cast struct {
	Target  Type
	Operand Exp
}

func (c *Cast) Uses() []Exp    { return []Exp{c.Operand} }
func (c *Cast) String() string { return fmt.Sprintf("(%s) %s", c.Target, c.Operand) }
func (c *Cast) isExp()         {}

// Alloc is an object or array allocation.
type Alloc struct {
	Class string
}

func (a *Alloc) Uses() []Exp    { return nil }
func (a *Alloc) String() string { return fmt.Sprintf("new %s", a.Class) }
func (a *Alloc) isExp()         {}

// Call is a method invocation appearing as an r-value. Its result is never a tracked
// constant.
type Call struct {
	Callee string
	Args   []Exp
}

func (c *Call) Uses() []Exp { return c.Args }

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}
func (c *Call) isExp() {}
