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
	"google.golang.org/protobuf/types/pluginpb"
)

// Modularize returns the response with its files reorganized into the hierarchical
// module layout.
//
// If flat is true, response is returned as-is. If response has an error set, it is
// also returned as-is, so that the error reaches the compiler instead of being
// replaced by an empty successful response.
//
// Otherwise a new response is returned, with the files replaced by the result of
// Write(Build(response.File)) and the remaining fields copied over. response is
// not modified.
func Modularize(response *pluginpb.CodeGeneratorResponse, flat bool) *pluginpb.CodeGeneratorResponse {
	if flat || response.GetError() != "" {
		return response
	}
	return &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: response.SupportedFeatures,
		MinimumEdition:    response.MinimumEdition,
		MaximumEdition:    response.MaximumEdition,
		File:              Write(Build(response.GetFile())),
	}
}
