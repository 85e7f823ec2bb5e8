// Copyright 2024-2025 Buf Technologies, Inc.
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

package rustgen

import (
	"fmt"
	"strings"
)

const indentation = "    "

// printer accumulates Rust source, one line per call to P.
type printer struct {
	builder strings.Builder
	indent  int
}

// P prints a line, indented at the current level, made of the concatenation of args.
//
// P with no args prints an empty line.
func (p *printer) P(args ...any) {
	if len(args) > 0 {
		p.builder.WriteString(strings.Repeat(indentation, p.indent))
		for _, arg := range args {
			_, _ = fmt.Fprint(&p.builder, arg)
		}
	}
	p.builder.WriteString("\n")
}

// In increases the indentation.
func (p *printer) In() {
	p.indent++
}

// Out decreases the indentation.
func (p *printer) Out() {
	p.indent--
}

// Comments prints the comments as /// doc lines.
func (p *printer) Comments(comments string) {
	comments = strings.TrimSuffix(comments, "\n")
	if comments == "" {
		return
	}
	for _, line := range strings.Split(comments, "\n") {
		p.P("///", line)
	}
}

func (p *printer) String() string {
	return p.builder.String()
}
