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

// Package cmd implements the flowc command tree, grounded on
// cmd/cue/cmd's root+subcommand layout.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowlang/flowc/internal/errs"
)

// New builds the root flowc command with its subcommands attached.
func New(args []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "flowc",
		Short:         "flowc compiles flow source to target pseudocode",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCmd())
	root.SetArgs(args)
	return root
}

// Main runs flowc and returns the process exit code.
func Main(args []string) int {
	root := New(args)
	if err := root.Execute(); err != nil {
		printErr(root, err)
		return 1
	}
	return 0
}

// printErr writes err to stderr, prefixed with its errs.Kind when the
// error is one of the typed taxonomy of failure modes; any other error
// (a parse failure, a bad flag) is printed as-is.
func printErr(cmd *cobra.Command, err error) {
	var e errs.Error
	if errs.As(err, &e) {
		fmt.Fprintf(os.Stderr, "flowc: %s: %v\n", e.Kind(), e)
		return
	}
	fmt.Fprintf(os.Stderr, "flowc: %v\n", err)
}
