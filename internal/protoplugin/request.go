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

package protoplugin

import (
	"sync"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// Request wraps a validated CodeGeneratorRequest.
type Request interface {
	// Parameter returns the parameter field of the CodeGeneratorRequest.
	Parameter() string
	// FileDescriptorsToGenerate returns the FileDescriptors for the files in file_to_generate,
	// in the order of file_to_generate.
	FileDescriptorsToGenerate() ([]protoreflect.FileDescriptor, error)
	// AllFiles returns a registry of all files in proto_file.
	//
	// The registry is built once and shared between calls.
	AllFiles() (*protoregistry.Files, error)
	// CompilerVersion returns the compiler_version of the CodeGeneratorRequest, or nil if
	// it was not set.
	CompilerVersion() *CompilerVersion
	// CodeGeneratorRequest returns the underlying CodeGeneratorRequest.
	//
	// This is not a copy - do not modify it!
	CodeGeneratorRequest() *pluginpb.CodeGeneratorRequest

	isRequest()
}

// NewRequest validates the CodeGeneratorRequest and returns a new Request for it.
func NewRequest(codeGeneratorRequest *pluginpb.CodeGeneratorRequest) (Request, error) {
	if err := validateCodeGeneratorRequest(codeGeneratorRequest); err != nil {
		return nil, err
	}
	request := &request{
		codeGeneratorRequest: codeGeneratorRequest,
	}
	request.getFiles = sync.OnceValues(request.getFilesUncached)
	return request, nil
}

// *** PRIVATE ***

type request struct {
	codeGeneratorRequest *pluginpb.CodeGeneratorRequest

	getFiles func() (*protoregistry.Files, error)
}

func (r *request) Parameter() string {
	return r.codeGeneratorRequest.GetParameter()
}

func (r *request) FileDescriptorsToGenerate() ([]protoreflect.FileDescriptor, error) {
	files, err := r.AllFiles()
	if err != nil {
		return nil, err
	}
	fileDescriptors := make([]protoreflect.FileDescriptor, len(r.codeGeneratorRequest.GetFileToGenerate()))
	for i, fileToGenerate := range r.codeGeneratorRequest.GetFileToGenerate() {
		fileDescriptor, err := files.FindFileByPath(fileToGenerate)
		if err != nil {
			return nil, err
		}
		fileDescriptors[i] = fileDescriptor
	}
	return fileDescriptors, nil
}

func (r *request) AllFiles() (*protoregistry.Files, error) {
	return r.getFiles()
}

func (r *request) CompilerVersion() *CompilerVersion {
	return newCompilerVersion(r.codeGeneratorRequest.GetCompilerVersion())
}

func (r *request) CodeGeneratorRequest() *pluginpb.CodeGeneratorRequest {
	return r.codeGeneratorRequest
}

func (r *request) getFilesUncached() (*protoregistry.Files, error) {
	return protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: r.codeGeneratorRequest.GetProtoFile()})
}

func (*request) isRequest() {}
