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

	"google.golang.org/protobuf/types/pluginpb"
)

// CompilerVersion is the version of the compiler that invoked the plugin.
type CompilerVersion struct {
	// Major is the major version, always >= 0.
	Major int
	// Minor is the minor version, always >= 0.
	Minor int
	// Patch is the patch version, always >= 0.
	Patch int
	// Suffix is the suffix for non-mainline releases, such as "rc1".
	Suffix string
}

// String returns "Major.Minor.Patch[-Suffix]" for versions up to 3.x and for any
// version with a non-zero patch, and "Major.Minor[-Suffix]" otherwise, matching
// how protoc prints its version since 4.x (e.g. "27.1").
//
// If the CompilerVersion is nil, this returns empty.
func (c *CompilerVersion) String() string {
	if c == nil {
		return ""
	}
	var value string
	if c.Major <= 3 || c.Patch != 0 {
		value = fmt.Sprintf("%d.%d.%d", c.Major, c.Minor, c.Patch)
	} else {
		value = fmt.Sprintf("%d.%d", c.Major, c.Minor)
	}
	if c.Suffix != "" {
		return value + "-" + c.Suffix
	}
	return value
}

// *** PRIVATE ***

// newCompilerVersion returns nil if version is nil. The version must already be validated.
func newCompilerVersion(version *pluginpb.Version) *CompilerVersion {
	if version == nil {
		return nil
	}
	return &CompilerVersion{
		Major:  int(version.GetMajor()),
		Minor:  int(version.GetMinor()),
		Patch:  int(version.GetPatch()),
		Suffix: version.GetSuffix(),
	}
}

func validateCompilerVersion(version *pluginpb.Version) error {
	if major := version.GetMajor(); major < 0 {
		return fmt.Errorf("major: negative: %d", int(major))
	}
	if minor := version.GetMinor(); minor < 0 {
		return fmt.Errorf("minor: negative: %d", int(minor))
	}
	if patch := version.GetPatch(); patch < 0 {
		return fmt.Errorf("patch: negative: %d", int(patch))
	}
	return nil
}
