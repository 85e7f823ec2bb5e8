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

package modtree

import (
	"io"

	"github.com/ddddddO/gtree"
)

// RootLabel is the label given to the root node by Render.
const RootLabel = "crate"

// Render writes an ASCII tree of the module names under root to w.
//
// Nodes that carry Content are suffixed with "*".
func Render(w io.Writer, root *Node) error {
	gtreeRoot := gtree.NewRoot(RootLabel)
	addGtreeChildren(gtreeRoot, root)
	return gtree.OutputProgrammably(w, gtreeRoot)
}

// *** PRIVATE ***

func addGtreeChildren(gtreeNode *gtree.Node, node *Node) {
	for _, child := range node.Children {
		label := child.Name
		if child.Content != nil {
			label += "*"
		}
		addGtreeChildren(gtreeNode.Add(label), child)
	}
}
