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

// Package modtree reorganizes flat generated Rust files into a module hierarchy.
//
// Generated files are named after their proto package with the segments joined by
// ".", for example "foo.bar.v1.rs". When the hierarchical layout is requested, the
// files are rebuilt into a tree following the dotted path, and written back out
// as one file per tree node, with each file declaring its children as submodules:
//
//	foo.rs        pub mod bar;
//	foo/bar.rs    pub mod v1;
//	foo/bar/v1.rs <generated content>
package modtree

import (
	"strings"

	"google.golang.org/protobuf/types/pluginpb"
)

// FileExtension is the extension of every file consumed and produced by this package.
const FileExtension = ".rs"

// Node is a single segment of a module path.
type Node struct {
	// Name is the path segment.
	//
	// Name is empty only for the root.
	Name string
	// Content is the generated text for exactly this path.
	//
	// Content is nil if no file mapped to this path. The pointer is shared with the
	// CodeGeneratorResponse_File it came from, and must not be modified.
	Content *string
	// Children are the submodules of this node, in the order they were first seen.
	//
	// No two children share a Name.
	Children []*Node
}

// Build builds a module tree from the given flat files.
//
// The extension is stripped from each file name and the remainder is split on "."
// to produce the module path. Files with empty names are skipped. If two files map
// to the same path, the content of the later file is kept.
//
// The returned root has an empty Name and no Content.
func Build(files []*pluginpb.CodeGeneratorResponse_File) *Node {
	root := &Node{}
	for _, file := range files {
		name := file.GetName()
		if name == "" {
			continue
		}
		path := strings.Split(strings.TrimSuffix(name, FileExtension), ".")
		root.put(path, file.Content)
	}
	return root
}

// Child returns the child with the given name, or nil if there is no such child.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// *** PRIVATE ***

func (n *Node) put(path []string, content *string) {
	if len(path) == 0 {
		n.Content = content
		return
	}
	child := n.Child(path[0])
	if child == nil {
		child = &Node{Name: path[0]}
		n.Children = append(n.Children, child)
	}
	child.put(path[1:], content)
}
