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

// Package ir defines the three-address intermediate representation consumed by the dataflow
// analyses: variables with declared type categories, a closed family of expressions, a closed
// family of statements, and the Method container that owns them.
//
// Expressions and statements are sealed: every variant lives in this package so that the
// evaluator, the liveness use-walker and the side-effect classifier can dispatch over them
// exhaustively with a type switch. Analyses treat all values in this package as read-only;
// a Method may be shared by concurrently running analyses as long as none of them mutates it.
package ir
