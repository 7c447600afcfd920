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

// Package stats collects counters describing one internal/compiler.Compile
// run and renders them for the CLI's --debug output, grounded on
// cue/stats' Counts type and its text/template-based summary.
package stats

import (
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/message"
)

// Counts holds counters for a single compilation run.
type Counts struct {
	// RunID correlates a --debug report with a specific invocation; it
	// has no bearing on the generated output.
	RunID string

	SourceNodes         int64
	SourceEquations     int64
	NormalizedEquations int64
	MemoryCells         int64
	Instances           int64
	Machines            int64
}

var tmpl = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("stats").Parse(`{{"" -}}
run:          {{.RunID}}
source nodes: {{.SourceNodes}}
equations:    {{.SourceEquations}} ({{.NormalizedEquations}} after normalization)
memory cells: {{.MemoryCells}}
instances:    {{.Instances}}
machines:     {{.Machines}}
`))
})

// String renders the full counter set, one line each.
func (c Counts) String() string {
	var b strings.Builder
	if err := tmpl().Execute(&b, c); err != nil {
		panic(err)
	}
	return b.String()
}

// Summary renders a short, pluralization-aware one-liner through p,
// e.g. "3 nodes, 1 machine, 2 instances".
func (c Counts) Summary(p *message.Printer) string {
	count := func(n int64, one, many string) string {
		if n == 1 {
			return p.Sprintf("%d %s", n, one)
		}
		return p.Sprintf("%d %s", n, many)
	}
	return count(c.SourceNodes, "node", "nodes") + ", " +
		count(c.Machines, "machine", "machines") + ", " +
		count(c.Instances, "instance", "instances")
}
