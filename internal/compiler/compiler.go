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

// Package compiler wires together every pipeline stage described by
// §4: it is the one entry point cmd/flowc's collaborators
// call, and the only package besides tests that is allowed to import
// every stage package at once.
package compiler

import (
	"github.com/google/uuid"

	"github.com/flowlang/flowc/internal/causality"
	"github.com/flowlang/flowc/internal/clockcheck"
	"github.com/flowlang/flowc/internal/emit"
	"github.com/flowlang/flowc/internal/errs"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/minidf"
	"github.com/flowlang/flowc/internal/normalize"
	"github.com/flowlang/flowc/internal/objectform"
	"github.com/flowlang/flowc/internal/objsched"
	"github.com/flowlang/flowc/internal/stats"
	"github.com/flowlang/flowc/internal/typecheck"
)

// Result is the product of a successful Compile: the generated target
// source plus counters describing the run.
type Result struct {
	Source string
	Stats  stats.Counts
}

// Config holds the handful of optional knobs Compile accepts, mirroring
// the teacher's small compile.Config rather than a file-backed
// configuration format (the core has none to read).
type Config struct {
	// Dialect selects the emitted target-language rendering.
	// Only "" (the default dialect) is currently implemented.
	Dialect string

	// SkipCoalesce disables the control-coalescing peephole of §4.8,
	// useful for inspecting the pre-coalesced statement trees.
	SkipCoalesce bool
}

// Compile implements §6's core contract with the default Config: given
// a source program and an entry node name, it produces the
// target-language source or the first typed error encountered.
func Compile(prog fast.Program) (Result, error) {
	return CompileWithConfig(prog, Config{})
}

// CompileWithConfig is Compile with explicit Config.
//
// Stages run in the fixed order of §4: source scheduling, type
// checking, clock checking, MiniDF lowering, normalization, object
// scheduling, object-form translation and control coalescing, then
// emission. Each stage consumes the previous stage's output and builds
// a fresh IR of its own (§3's lifecycle rule); Compile does not retain
// or mutate any intermediate tree after handing it to the next stage.
func CompileWithConfig(prog fast.Program, cfg Config) (Result, error) {
	var c stats.Counts
	c.RunID = uuid.NewString()
	c.SourceNodes = int64(len(prog.Nodes))

	orderedNodes, err := causality.OrderNodes(prog.Nodes)
	if err != nil {
		return Result{}, err
	}

	sigs := make(typecheck.Signatures, len(orderedNodes))
	var machines []objectform.Machine

	for _, n := range orderedNodes {
		orderedEqs, err := causality.OrderEquations(n)
		if err != nil {
			return Result{}, err
		}
		n.Equations = orderedEqs
		c.SourceEquations += int64(len(n.Equations))

		typed, sig, err := typecheck.Node(n, sigs)
		if err != nil {
			return Result{}, err
		}
		sigs[n.Name] = sig

		clocked, err := clockcheck.Node(typed)
		if err != nil {
			return Result{}, err
		}

		lowered, err := minidf.Lower(clocked)
		if err != nil {
			return Result{}, err
		}

		normalized := normalize.Normalize(lowered)
		c.NormalizedEquations += int64(len(normalized.Equations))

		scheduled := objsched.Schedule(normalized)

		machine := objectform.Translate(scheduled)
		if !cfg.SkipCoalesce {
			machine = objectform.CoalesceMachine(machine)
		}
		c.MemoryCells += int64(len(machine.Memories))
		c.Instances += int64(len(machine.Instances))
		machines = append(machines, machine)
	}

	if _, ok := sigs[prog.Entry]; !ok {
		return Result{}, &errs.UndeclaredError{Name: prog.Entry}
	}

	src, err := emit.Program(machines, prog.Entry)
	if err != nil {
		return Result{}, err
	}
	c.Machines = int64(len(machines))

	return Result{Source: src, Stats: c}, nil
}
