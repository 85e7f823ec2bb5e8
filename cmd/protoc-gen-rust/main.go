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

// Package main implements protoc-gen-rust.
//
// protoc-gen-rust generates prost and tonic Rust code, one file per package, and
// optionally arranges the files into a Rust module hierarchy.
package main

import (
	"github.com/bufbuild/protoc-gen-rust/internal/plugin"
	"github.com/bufbuild/protoc-gen-rust/internal/protoplugin"
)

func main() {
	protoplugin.Main(
		protoplugin.HandlerFunc(plugin.Handle),
		protoplugin.WithVersion(plugin.Version),
	)
}
