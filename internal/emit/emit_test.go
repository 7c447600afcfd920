// Copyright 2026 The Flowc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emit_test

import (
	"strings"
	"testing"

	"github.com/flowlang/flowc/internal/emit"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/objectform"
	"github.com/flowlang/flowc/internal/sclock"
	"github.com/flowlang/flowc/internal/types"
)

func TestProgramEmitsMachineAndMain(t *testing.T) {
	m := objectform.Machine{
		Name:    "cnt",
		Outputs: []fast.Param{{Name: "k_result", Type: types.Int}},
		Memories: []objectform.Memory{
			{Name: "k", Init: types.IntVal(0), Clk: sclock.Base},
		},
		Locals: []string{"k_result"},
		Body: []objectform.Stmt{
			&objectform.LocalAssign{Name: "k_result", Expr: &objectform.MemRef{Name: "k"}},
			&objectform.MemAssign{Name: "k", Expr: &objectform.Binary{Op: types.Add, X: &objectform.MemRef{Name: "k"}, Y: &objectform.Lit{Value: types.IntVal(1)}}},
		},
	}

	out, err := emit.Program([]objectform.Machine{m}, "cnt")
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	for _, want := range []string{"machine cnt {", "mem k: int", "proc reset(self)", "proc step(self)", "main {", "m.reset(m)", "m.step(m)", "print(k_result)", "print(m)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestProgramRejectsUnknownEntry(t *testing.T) {
	_, err := emit.Program(nil, "missing")
	if err == nil {
		t.Fatal("expected an error for an unknown entry machine")
	}
}
