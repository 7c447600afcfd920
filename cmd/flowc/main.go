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

// Command flowc compiles flow source files to the target pseudocode
// dialect emitted by internal/emit.
package main

import (
	"os"

	"github.com/flowlang/flowc/cmd/flowc/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args[1:]))
}
