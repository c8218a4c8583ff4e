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

package deadcode

import (
	"fmt"
	"io"

	"github.com/palisade-tools/palisade/analysis/ir"
	"github.com/palisade-tools/palisade/internal/formatutil"
)

// WriteReport prints every statement of method to w in program order, marking the dead
// ones. Dead statements are printed in red with a "dead" tag, live ones in faint text.
func WriteReport(w io.Writer, method *ir.Method, dead []ir.Stmt) {
	deadSet := make(map[ir.Stmt]bool, len(dead))
	for _, stmt := range dead {
		deadSet[stmt] = true
	}
	fmt.Fprintf(w, "%s: %d dead statement(s)\n",
		formatutil.Bold(method.Name()), len(dead))
	for _, stmt := range method.Stmts() {
		line := fmt.Sprintf("[%d] %s", stmt.Index(), stmt)
		if deadSet[stmt] {
			fmt.Fprintf(w, "  %s  %s\n", formatutil.Red(formatutil.Sanitize(line)), formatutil.Yellow("dead"))
		} else {
			fmt.Fprintf(w, "  %s\n", formatutil.Faint(formatutil.Sanitize(line)))
		}
	}
}
