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
	"context"
)

// Handler is implemented by plugins.
type Handler interface {
	// Handle turns a Request into a response by calling methods on the ResponseWriter.
	//
	// The Request has been validated:
	//
	//   - file_to_generate and proto_file are non-empty.
	//   - Each name in proto_file and file_to_generate is a valid path with the .proto extension.
	//   - Each value of file_to_generate has a corresponding value in proto_file.
	//
	// Paths are considered valid if they are non-empty, relative, use '/' as the path separator,
	// and do not jump context.
	//
	// Returning an error is a failure of the plugin itself, and results in a non-zero exit code.
	// Problems with the input .proto files should instead be reported with ResponseWriter.SetError.
	Handle(
		ctx context.Context,
		handlerEnv HandlerEnv,
		responseWriter *ResponseWriter,
		request Request,
	) error
}

// HandlerFunc is a function that implements Handler.
type HandlerFunc func(context.Context, HandlerEnv, *ResponseWriter, Request) error

// Handle implements Handler.
func (h HandlerFunc) Handle(
	ctx context.Context,
	handlerEnv HandlerEnv,
	responseWriter *ResponseWriter,
	request Request,
) error {
	return h(ctx, handlerEnv, responseWriter, request)
}
