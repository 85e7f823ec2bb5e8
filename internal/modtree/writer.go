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
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// Write writes the tree rooted at root as one file per node.
//
// The root itself never produces a file. Every other node produces a file named by
// joining its path with "/" and appending FileExtension. The file starts with a
// "pub mod <name>;" line per child, followed by the node's Content, separated from
// the declarations by a blank line.
//
// Files are returned in post-order: the file for a node comes after the files of
// all of its descendants.
func Write(root *Node) []*pluginpb.CodeGeneratorResponse_File {
	var files []*pluginpb.CodeGeneratorResponse_File
	for _, child := range root.Children {
		files = appendNodeFiles(files, child, []string{child.Name})
	}
	return files
}

// *** PRIVATE ***

func appendNodeFiles(
	files []*pluginpb.CodeGeneratorResponse_File,
	node *Node,
	path []string,
) []*pluginpb.CodeGeneratorResponse_File {
	name := proto.String(strings.Join(path, "/") + FileExtension)
	if len(node.Children) == 0 {
		// Leaves share the generated content instead of copying it.
		content := node.Content
		if content == nil {
			content = proto.String("")
		}
		return append(files, &pluginpb.CodeGeneratorResponse_File{Name: name, Content: content})
	}
	var builder strings.Builder
	for _, child := range node.Children {
		builder.WriteString(moduleDeclaration(child.Name))
		// Full slice expression so that siblings never share a backing array.
		files = appendNodeFiles(files, child, append(path[:len(path):len(path)], child.Name))
	}
	if node.Content != nil {
		builder.WriteString("\n")
		builder.WriteString(*node.Content)
	}
	return append(
		files,
		&pluginpb.CodeGeneratorResponse_File{
			Name:    name,
			Content: proto.String(builder.String()),
		},
	)
}

func moduleDeclaration(name string) string {
	return "pub mod " + name + ";\n"
}
