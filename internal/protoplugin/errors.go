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
	"fmt"
	"strings"
)

// unknownArgumentsError is returned if Run is given arguments it does not know.
//
// The only known argument is --version, and only if WithVersion was given.
type unknownArgumentsError struct {
	args []string
}

func newUnknownArgumentsError(args []string) error {
	return &unknownArgumentsError{args: args}
}

func (a *unknownArgumentsError) Error() string {
	if len(a.args) == 1 {
		return fmt.Sprintf("unknown argument: %s", a.args[0])
	}
	return fmt.Sprintf("unknown arguments: %s", strings.Join(a.args, " "))
}

// unnormalizedFileNameError is produced if a CodeGeneratorResponse.File name is not
// equal to filepath.ToSlash(filepath.Clean(name)).
//
// This is reported as a warning, and the name is replaced with its normalized form.
type unnormalizedFileNameError struct {
	name           string
	normalizedName string
}

func newUnnormalizedFileNameError(name string, normalizedName string) *unnormalizedFileNameError {
	return &unnormalizedFileNameError{
		name:           name,
		normalizedName: normalizedName,
	}
}

func (u *unnormalizedFileNameError) Error() string {
	return fmt.Sprintf(
		`generated file path %q is not normalized, using %q instead. Paths must be relative, use "/" as the path separator, and not use "." or ".." as path components.`,
		u.name,
		u.normalizedName,
	)
}

// duplicateFileNameError is produced if a CodeGeneratorResponse has the same file
// name more than once without an insertion point.
//
// This is reported as a warning, and the second occurrence is dropped.
type duplicateFileNameError struct {
	name string
}

func newDuplicateFileNameError(name string) *duplicateFileNameError {
	return &duplicateFileNameError{name: name}
}

func (d *duplicateFileNameError) Error() string {
	return fmt.Sprintf("duplicate generated file name %q, dropping all but the first occurrence", d.name)
}
