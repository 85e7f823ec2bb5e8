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
	"errors"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// ResponseWriter is used by Handlers to build the CodeGeneratorResponse.
//
// It is safe to call from multiple goroutines.
type ResponseWriter struct {
	codeGeneratorResponse *pluginpb.CodeGeneratorResponse
	written               bool

	warningHandlerFunc func(error)

	lock sync.RWMutex
}

// AddFile adds a file with the given name and content to the response.
//
// The name must be a valid path: non-empty, relative, using '/' as the path separator,
// and not jumping context. Unnormalized and duplicate names produce warnings.
func (r *ResponseWriter) AddFile(name string, content string) {
	r.AddCodeGeneratorResponseFiles(
		&pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(name),
			Content: proto.String(content),
		},
	)
}

// AddCodeGeneratorResponseFiles adds the files to the response, in order.
//
// Files without a name are appended to the content of the previous file.
func (r *ResponseWriter) AddCodeGeneratorResponseFiles(files ...*pluginpb.CodeGeneratorResponse_File) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.codeGeneratorResponse.File = append(r.codeGeneratorResponse.GetFile(), files...)
}

// SetError sets the error message on the response, overwriting any previous message.
//
// Empty messages are ignored, as protoc only treats non-empty errors as errors.
func (r *ResponseWriter) SetError(message string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if message == "" {
		return
	}
	r.codeGeneratorResponse.Error = proto.String(message)
}

// SetFeatureProto3Optional adds FEATURE_PROTO3_OPTIONAL to the supported features.
func (r *ResponseWriter) SetFeatureProto3Optional() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.codeGeneratorResponse.SupportedFeatures = proto.Uint64(
		r.codeGeneratorResponse.GetSupportedFeatures() | uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL),
	)
}

// SetSupportedFeatures sets the supported features, overwriting any previous value.
func (r *ResponseWriter) SetSupportedFeatures(supportedFeatures uint64) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if supportedFeatures == 0 {
		r.codeGeneratorResponse.SupportedFeatures = nil
	} else {
		r.codeGeneratorResponse.SupportedFeatures = proto.Uint64(supportedFeatures)
	}
}

// *** PRIVATE ***

func newResponseWriter(warningHandlerFunc func(error)) *ResponseWriter {
	return &ResponseWriter{
		codeGeneratorResponse: &pluginpb.CodeGeneratorResponse{},
		warningHandlerFunc:    warningHandlerFunc,
	}
}

func (r *ResponseWriter) toCodeGeneratorResponse() (*pluginpb.CodeGeneratorResponse, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.written {
		return nil, errors.New("ResponseWriter cannot be reused")
	}
	r.written = true

	if err := validateAndNormalizeCodeGeneratorResponse(r.codeGeneratorResponse, r.warningHandlerFunc); err != nil {
		return nil, err
	}
	return r.codeGeneratorResponse, nil
}
