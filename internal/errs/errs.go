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

// Package errs defines the error taxonomy of §7. Every pass failure is
// a typed value implementing Error; a List aggregates the errors a
// single stage manages to collect before giving up, mirroring
// cue/errors' error-list idiom but without source-position tracking
// (the language has no concrete syntax in the core's scope, and
// diagnostics-with-locations is an explicit Non-goal).
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Is and As are thin re-exports so callers don't need to import the
// standard errors package alongside this one.
func Is(err, target error) bool   { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }

// Kind classifies an Error; the CLI prints it ahead of the message.
type Kind string

const (
	KindMultipleDefinition Kind = "multiple-definition"
	KindDuplicateNode      Kind = "duplicate-node"
	KindCyclicNodes        Kind = "cyclic-nodes"
	KindNonCausalNode      Kind = "non-causal-node"
	KindUndeclared         Kind = "undeclared"
	KindTypeMismatch       Kind = "type-mismatch"
	KindArityMismatch      Kind = "arity-mismatch"
	KindTupleNotAllowed    Kind = "tuple-not-allowed"
	KindBadClock           Kind = "bad-clock"
	KindResetTooSlow       Kind = "reset-too-slow"
	KindPreUninitialized   Kind = "pre-uninitialized"
)

// Error is the common interface satisfied by every error kind in this
// package.
type Error interface {
	error
	Kind() Kind
}

// List aggregates zero or more Errors. A nil *List is a valid, empty
// error value; use Add to grow it and AsError to get back either nil
// (no errors) or the list.
type List struct {
	errs []Error
}

func (l *List) Add(e Error) {
	if e == nil {
		return
	}
	l.errs = append(l.errs, e)
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.errs)
}

// AsError returns nil if l has no errors, the single wrapped error if
// it has exactly one, or l itself otherwise.
func (l *List) AsError() error {
	switch l.Len() {
	case 0:
		return nil
	case 1:
		return l.errs[0]
	default:
		return l
	}
}

func (l *List) Error() string {
	msgs := make([]string, len(l.errs))
	for i, e := range l.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Errors returns the individual errors collected in l.
func (l *List) Errors() []Error {
	return l.errs
}

type MultipleDefinitionError struct{ Name string }

func (e *MultipleDefinitionError) Kind() Kind { return KindMultipleDefinition }
func (e *MultipleDefinitionError) Error() string {
	return fmt.Sprintf("multiple-definition: %q is defined by more than one equation", e.Name)
}

type DuplicateNodeError struct{ Name string }

func (e *DuplicateNodeError) Kind() Kind { return KindDuplicateNode }
func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate-node: %q declared more than once", e.Name)
}

type CyclicNodesError struct{ Witness string }

func (e *CyclicNodesError) Kind() Kind { return KindCyclicNodes }
func (e *CyclicNodesError) Error() string {
	return fmt.Sprintf("cyclic-nodes: call graph cycle through %q", e.Witness)
}

type NonCausalNodeError struct {
	Node    string
	Witness string
}

func (e *NonCausalNodeError) Kind() Kind { return KindNonCausalNode }
func (e *NonCausalNodeError) Error() string {
	return fmt.Sprintf("non-causal-node: node %q has a dependency cycle through %q", e.Node, e.Witness)
}

type UndeclaredError struct{ Name string }

func (e *UndeclaredError) Kind() Kind { return KindUndeclared }
func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("undeclared: %q has no binding", e.Name)
}

type TypeMismatchError struct {
	Context  string
	Expected string
	Found    string
}

func (e *TypeMismatchError) Kind() Kind { return KindTypeMismatch }
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type-mismatch: %s: expected %s, found %s", e.Context, e.Expected, e.Found)
}

type ArityMismatchError struct {
	Node     string
	Expected int
	Found    int
}

func (e *ArityMismatchError) Kind() Kind { return KindArityMismatch }
func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity-mismatch: call to %q expects %d argument(s), found %d", e.Node, e.Expected, e.Found)
}

type TupleNotAllowedError struct{ Context string }

func (e *TupleNotAllowedError) Kind() Kind { return KindTupleNotAllowed }
func (e *TupleNotAllowedError) Error() string {
	return fmt.Sprintf("tuple-not-allowed: %s", e.Context)
}

type BadClockError struct{ Reason string }

func (e *BadClockError) Kind() Kind { return KindBadClock }
func (e *BadClockError) Error() string {
	return fmt.Sprintf("bad-clock: %s", e.Reason)
}

type ResetTooSlowError struct {
	Node string
	Call string
}

func (e *ResetTooSlowError) Kind() Kind { return KindResetTooSlow }
func (e *ResetTooSlowError) Error() string {
	return fmt.Sprintf("reset-too-slow: reset carrier %q for call to %q is slower than the call's clock", e.Call, e.Node)
}

type PreUninitializedError struct{ Defines string }

func (e *PreUninitializedError) Kind() Kind { return KindPreUninitialized }
func (e *PreUninitializedError) Error() string {
	return fmt.Sprintf("pre-uninitialized: %q uses pre at arrow-depth 0", e.Defines)
}
