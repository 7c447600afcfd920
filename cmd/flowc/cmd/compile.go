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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/flowlang/flowc/internal/compiler"
	"github.com/flowlang/flowc/internal/fast"
	"github.com/flowlang/flowc/internal/fastparse"
)

func newCompileCmd() *cobra.Command {
	var entry string
	var skipCoalesce bool
	var debug bool

	c := &cobra.Command{
		Use:   "compile <file>",
		Short: "compile a flow source file to target pseudocode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			nodes, err := fastparse.Parse(src)
			if err != nil {
				return err
			}
			if entry == "" && len(nodes) > 0 {
				entry = nodes[len(nodes)-1].Name
			}

			res, err := compiler.CompileWithConfig(fast.Program{Nodes: nodes, Entry: entry}, compiler.Config{
				SkipCoalesce: skipCoalesce,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Source)
			if debug {
				p := message.NewPrinter(language.English)
				fmt.Fprintln(cmd.ErrOrStderr(), res.Stats.Summary(p))
				fmt.Fprint(cmd.ErrOrStderr(), res.Stats.String())
			}
			return nil
		},
	}

	c.Flags().StringVar(&entry, "entry", "", "entry node name (defaults to the last node declared)")
	c.Flags().BoolVar(&skipCoalesce, "skip-coalesce", false, "disable control coalescing")
	c.Flags().BoolVar(&debug, "debug", false, "print run stats to stderr")
	return c
}
