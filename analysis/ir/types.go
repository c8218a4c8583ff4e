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

// Type is the declared type category of a variable. The analyses only need to distinguish
// the integer-compatible primitives from everything else, so types are a flat enumeration
// rather than a full type object model.
type Type int

const (
	// TypeByte is the 8-bit signed integer primitive.
	TypeByte Type = iota

	// TypeShort is the 16-bit signed integer primitive.
	TypeShort

	// TypeInt is the 32-bit signed integer primitive.
	TypeInt

	// TypeChar is the 16-bit unsigned character primitive.
	TypeChar

	// TypeBoolean is the boolean primitive. Booleans are tracked as 0/1 integers.
	TypeBoolean

	// TypeLong is the 64-bit integer primitive. Not integer-compatible for tracking purposes.
	TypeLong

	// TypeFloat is the single-precision floating point primitive.
	TypeFloat

	// TypeDouble is the double-precision floating point primitive.
	TypeDouble

	// TypeRef is any reference (object or array) type.
	TypeRef
)

var typeNames = map[Type]string{
	TypeByte:    "byte",
	TypeShort:   "short",
	TypeInt:     "int",
	TypeChar:    "char",
	TypeBoolean: "boolean",
	TypeLong:    "long",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeRef:     "ref",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// IsIntCompatible returns true if values of this type fit in a 32-bit signed integer and can
// therefore be tracked by constant propagation. Variables of other types are excluded from
// fact maps entirely.
func (t Type) IsIntCompatible() bool {
	switch t {
	case TypeByte, TypeShort, TypeInt, TypeChar, TypeBoolean:
		return true
	default:
		return false
	}
}
