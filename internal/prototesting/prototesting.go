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

// Package prototesting compiles .proto sources into CodeGeneratorRequests for tests.
package prototesting

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sort"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/protoutil"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// Compile compiles the files in pathToData, with source info included.
//
// The well-known types can be imported without being in pathToData. The returned
// FileDescriptorProtos are in topological order, and include every imported file.
func Compile(ctx context.Context, pathToData map[string][]byte) ([]*descriptorpb.FileDescriptorProto, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(
			&protocompile.SourceResolver{
				Accessor: func(path string) (io.ReadCloser, error) {
					data, ok := pathToData[path]
					if !ok {
						return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
					}
					return io.NopCloser(bytes.NewReader(data)), nil
				},
			},
		),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	paths := make([]string, 0, len(pathToData))
	for path := range pathToData {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	files, err := compiler.Compile(ctx, paths...)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var fileDescriptorProtos []*descriptorpb.FileDescriptorProto
	for _, file := range files {
		fileDescriptorProtos = appendFileDescriptorProtos(fileDescriptorProtos, seen, file)
	}
	return fileDescriptorProtos, nil
}

// NewCodeGeneratorRequest compiles the files in pathToData and returns a
// CodeGeneratorRequest to generate fileToGenerate with the given parameter.
func NewCodeGeneratorRequest(
	ctx context.Context,
	fileToGenerate []string,
	pathToData map[string][]byte,
	parameter string,
) (*pluginpb.CodeGeneratorRequest, error) {
	fileDescriptorProtos, err := Compile(ctx, pathToData)
	if err != nil {
		return nil, err
	}
	codeGeneratorRequest := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: fileToGenerate,
		ProtoFile:      fileDescriptorProtos,
	}
	if parameter != "" {
		codeGeneratorRequest.Parameter = proto.String(parameter)
	}
	return codeGeneratorRequest, nil
}

// *** PRIVATE ***

func appendFileDescriptorProtos(
	fileDescriptorProtos []*descriptorpb.FileDescriptorProto,
	seen map[string]struct{},
	file protoreflect.FileDescriptor,
) []*descriptorpb.FileDescriptorProto {
	if _, ok := seen[file.Path()]; ok {
		return fileDescriptorProtos
	}
	seen[file.Path()] = struct{}{}
	imports := file.Imports()
	for i := 0; i < imports.Len(); i++ {
		fileDescriptorProtos = appendFileDescriptorProtos(fileDescriptorProtos, seen, imports.Get(i).FileDescriptor)
	}
	return append(fileDescriptorProtos, protoutil.ProtoFromFileDescriptor(file))
}
