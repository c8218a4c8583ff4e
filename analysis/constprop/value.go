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

package constprop

import "fmt"

type valueKind uint8

const (
	undef valueKind = iota
	constant
	nac
)

// Value is an element of the constant-propagation lattice: Undef (no information yet),
// a single 32-bit integer constant, or NAC (provably not a constant). The lattice has
// finite height two; constants are mutually incomparable. Values are immutable.
type Value struct {
	kind valueKind
	c    int32
}

// Undef returns the bottom element, meaning no information yet.
func Undef() Value { return Value{kind: undef} }

// NAC returns the top element, meaning provably non-constant or unknown.
func NAC() Value { return Value{kind: nac} }

// MakeConstant returns the lattice element for the constant c.
func MakeConstant(c int32) Value { return Value{kind: constant, c: c} }

// IsUndef reports whether the value is the bottom element.
func (v Value) IsUndef() bool { return v.kind == undef }

// IsConstant reports whether the value is a single known constant.
func (v Value) IsConstant() bool { return v.kind == constant }

// IsNAC reports whether the value is the top element.
func (v Value) IsNAC() bool { return v.kind == nac }

// Constant returns the constant held by the value. It panics when the value is not a
// constant: asking a non-constant for its constant means the caller broke the lattice
// contract, which is an internal-consistency fault rather than an input error.
func (v Value) Constant() int32 {
	if v.kind != constant {
		panic("constprop: Constant() called on a non-constant value")
	}
	return v.c
}

func (v Value) String() string {
	switch v.kind {
	case constant:
		return fmt.Sprintf("%d", v.c)
	case nac:
		return "NAC"
	default:
		return "UNDEF"
	}
}
