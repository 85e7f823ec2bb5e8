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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

const allSupportedFeaturesMask = uint64(
	pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL |
		pluginpb.CodeGeneratorResponse_FEATURE_SUPPORTS_EDITIONS,
)

// validateCodeGeneratorRequest validates the guarantees documented on Handler.
func validateCodeGeneratorRequest(request *pluginpb.CodeGeneratorRequest) (retErr error) {
	defer func() {
		if retErr != nil {
			retErr = fmt.Errorf("CodeGeneratorRequest: %w", retErr)
		}
	}()

	if request == nil {
		return errors.New("nil")
	}
	if len(request.GetProtoFile()) == 0 {
		return errors.New("proto_file: empty")
	}
	if len(request.GetFileToGenerate()) == 0 {
		return errors.New("file_to_generate: empty")
	}
	if err := validateProtoPaths("file_to_generate", request.GetFileToGenerate()); err != nil {
		return err
	}
	protoFileNames := make(map[string]struct{}, len(request.GetProtoFile()))
	for _, fileDescriptorProto := range request.GetProtoFile() {
		if fileDescriptorProto == nil {
			return errors.New("proto_file: nil")
		}
		name := fileDescriptorProto.GetName()
		if err := validateProtoPath("proto_file.name", name); err != nil {
			return err
		}
		if err := validateProtoPaths("proto_file.dependency", fileDescriptorProto.GetDependency()); err != nil {
			return err
		}
		if _, ok := protoFileNames[name]; ok {
			return fmt.Errorf("proto_file: duplicate path %q", name)
		}
		protoFileNames[name] = struct{}{}
	}
	for _, fileToGenerate := range request.GetFileToGenerate() {
		if _, ok := protoFileNames[fileToGenerate]; !ok {
			return fmt.Errorf("file_to_generate: path %q is not contained within proto_file", fileToGenerate)
		}
	}
	if version := request.GetCompilerVersion(); version != nil {
		if err := validateCompilerVersion(version); err != nil {
			return fmt.Errorf("compiler_version: %w", err)
		}
	}
	return nil
}

// validateAndNormalizeCodeGeneratorResponse validates the response built by a Handler,
// modifying it in place:
//
//   - Files without a name are appended to the content of the previous file.
//   - Unnormalized names are normalized, with a warning.
//   - Duplicate names without an insertion point are dropped, with a warning.
func validateAndNormalizeCodeGeneratorResponse(
	response *pluginpb.CodeGeneratorResponse,
	warningHandlerFunc func(error),
) (retErr error) {
	defer func() {
		if retErr != nil {
			retErr = fmt.Errorf("CodeGeneratorResponse: %w", retErr)
		}
	}()

	files, err := mergeFilesWithEmptyNames(response.GetFile())
	if err != nil {
		return fmt.Errorf("file: %w", err)
	}
	files, err = normalizeFileNames(files, warningHandlerFunc)
	if err != nil {
		return fmt.Errorf("file: %w", err)
	}
	response.File = files

	if response.GetSupportedFeatures()|allSupportedFeaturesMask != allSupportedFeaturesMask {
		return fmt.Errorf("supported_features: unknown CodeGeneratorResponse.Features: %s", strconv.FormatUint(response.GetSupportedFeatures(), 2))
	}
	return nil
}

// mergeFilesWithEmptyNames appends the content of each file without a name to
// the previous file.
//
// plugin.proto defines this for a streaming use case that protoc never implemented,
// so the merged form is what every consumer expects.
func mergeFilesWithEmptyNames(files []*pluginpb.CodeGeneratorResponse_File) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	if len(files) == 0 {
		return files, nil
	}
	if files[0].GetName() == "" {
		return nil, errors.New("first value had no name set")
	}
	result := make([]*pluginpb.CodeGeneratorResponse_File, 0, len(files))
	for _, file := range files {
		if file.GetName() != "" {
			result = append(result, file)
			continue
		}
		if file.GetInsertionPoint() != "" {
			return nil, errors.New("empty name with non-empty insertion point")
		}
		if file.Content == nil {
			continue
		}
		prevFile := result[len(result)-1]
		if prevFile.Content == nil {
			prevFile.Content = file.Content
		} else {
			prevFile.Content = proto.String(prevFile.GetContent() + file.GetContent())
		}
	}
	return result, nil
}

// normalizeFileNames must be called after mergeFilesWithEmptyNames.
func normalizeFileNames(
	files []*pluginpb.CodeGeneratorResponse_File,
	warningHandlerFunc func(error),
) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	seenNames := make(map[string]struct{}, len(files))
	result := make([]*pluginpb.CodeGeneratorResponse_File, 0, len(files))
	for _, file := range files {
		name := file.GetName()
		normalizedName, err := normalizePath(name)
		if err != nil {
			return nil, err
		}
		if name != normalizedName {
			warningHandlerFunc(newUnnormalizedFileNameError(name, normalizedName))
			name = normalizedName
			file.Name = proto.String(name)
		}
		// A duplicate with an insertion point is an insertion into a previous file.
		if _, ok := seenNames[name]; ok && file.GetInsertionPoint() == "" {
			warningHandlerFunc(newDuplicateFileNameError(name))
			continue
		}
		seenNames[name] = struct{}{}
		result = append(result, file)
	}
	return result, nil
}

func validateProtoPaths(fieldName string, paths []string) error {
	seenPaths := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if err := validateProtoPath(fieldName, path); err != nil {
			return err
		}
		if _, ok := seenPaths[path]; ok {
			return fmt.Errorf("%s: duplicate path %q", fieldName, path)
		}
		seenPaths[path] = struct{}{}
	}
	return nil
}

// validateProtoPath validates that the path is valid, already normalized, and has the .proto extension.
func validateProtoPath(fieldName string, path string) error {
	normalizedPath, err := normalizePath(path)
	if err != nil {
		return fmt.Errorf("%s: %w", fieldName, err)
	}
	if path != normalizedPath {
		return fmt.Errorf("%s: path %q to be given as %q", fieldName, path, normalizedPath)
	}
	if filepath.Ext(path) != ".proto" {
		return fmt.Errorf("%s: path %q should have the .proto file extension", fieldName, path)
	}
	return nil
}

// normalizePath validates that the path is non-empty, relative, and does not jump
// context, and returns filepath.ToSlash(filepath.Clean(path)).
func normalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path was empty")
	}
	normalizedPath := filepath.ToSlash(filepath.Clean(path))
	if filepath.IsAbs(normalizedPath) || strings.HasPrefix(normalizedPath, "/") {
		return "", fmt.Errorf("path %q should be relative", normalizedPath)
	}
	if normalizedPath == ".." || strings.HasPrefix(normalizedPath, "../") {
		return "", fmt.Errorf("path %q should not jump context", normalizedPath)
	}
	return normalizedPath, nil
}
