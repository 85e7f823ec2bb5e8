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

package rustgen

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bufbuild/protoc-gen-rust/internal/config"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// defaultExternPaths are used unless overridden by an extern-path option with the same proto path.
//
// The wrapper types map to the Rust primitive they wrap, which implement prost::Message.
var defaultExternPaths = []config.ExternPath{
	{ProtoPath: ".google.protobuf", RustPath: "::prost_types"},
	{ProtoPath: ".google.protobuf.BoolValue", RustPath: "bool"},
	{ProtoPath: ".google.protobuf.BytesValue", RustPath: "::prost::alloc::vec::Vec<u8>"},
	{ProtoPath: ".google.protobuf.DoubleValue", RustPath: "f64"},
	{ProtoPath: ".google.protobuf.Empty", RustPath: "()"},
	{ProtoPath: ".google.protobuf.FloatValue", RustPath: "f32"},
	{ProtoPath: ".google.protobuf.Int32Value", RustPath: "i32"},
	{ProtoPath: ".google.protobuf.Int64Value", RustPath: "i64"},
	{ProtoPath: ".google.protobuf.StringValue", RustPath: "::prost::alloc::string::String"},
	{ProtoPath: ".google.protobuf.UInt32Value", RustPath: "u32"},
	{ProtoPath: ".google.protobuf.UInt64Value", RustPath: "u64"},
}

var rustKeywords = map[string]struct{}{
	"abstract": {}, "as": {}, "async": {}, "await": {}, "become": {}, "box": {}, "break": {},
	"const": {}, "continue": {}, "do": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {},
	"false": {}, "final": {}, "fn": {}, "for": {}, "gen": {}, "if": {}, "impl": {}, "in": {},
	"let": {}, "loop": {}, "macro": {}, "match": {}, "mod": {}, "move": {}, "mut": {},
	"override": {}, "priv": {}, "pub": {}, "ref": {}, "return": {}, "static": {}, "struct": {},
	"trait": {}, "true": {}, "try": {}, "type": {}, "typeof": {}, "unsafe": {}, "unsized": {},
	"use": {}, "virtual": {}, "where": {}, "while": {}, "yield": {},
}

// Path keywords cannot be raw identifiers.
var rustPathKeywords = map[string]struct{}{
	"crate": {}, "self": {}, "Self": {}, "super": {},
}

// resolver computes Rust paths for proto types.
type resolver struct {
	externPaths []config.ExternPath
	// emptyPackageModule is the module of the empty package, or empty if the empty
	// package is the crate root.
	emptyPackageModule string
}

func newResolver(externPaths []config.ExternPath, emptyPackageModule string) *resolver {
	overridden := make(map[string]struct{}, len(externPaths))
	merged := make([]config.ExternPath, 0, len(externPaths)+len(defaultExternPaths))
	for _, externPath := range externPaths {
		overridden[externPath.ProtoPath] = struct{}{}
		merged = append(merged, externPath)
	}
	for _, externPath := range defaultExternPaths {
		if _, ok := overridden[externPath.ProtoPath]; !ok {
			merged = append(merged, externPath)
		}
	}
	// Longest proto path first, so the most specific mapping wins.
	sort.SliceStable(merged, func(i, j int) bool {
		return len(merged[i].ProtoPath) > len(merged[j].ProtoPath)
	})
	return &resolver{
		externPaths:        merged,
		emptyPackageModule: emptyPackageModule,
	}
}

// typePath returns the Rust path of the message or enum, relative to the module at modulePath.
func (r *resolver) typePath(descriptor protoreflect.Descriptor, modulePath []string) string {
	fullName := "." + string(descriptor.FullName())
	for _, externPath := range r.externPaths {
		if fullName == externPath.ProtoPath {
			return externPath.RustPath
		}
		if remainder, ok := strings.CutPrefix(fullName, externPath.ProtoPath+"."); ok {
			segments := strings.Split(remainder, ".")
			for i, segment := range segments[:len(segments)-1] {
				segments[i] = moduleName(segment)
			}
			segments[len(segments)-1] = typeName(segments[len(segments)-1])
			return externPath.RustPath + "::" + strings.Join(segments, "::")
		}
	}
	targetPath := r.typeModulePath(descriptor)
	common := 0
	for common < len(modulePath) && common < len(targetPath) && modulePath[common] == targetPath[common] {
		common++
	}
	segments := make([]string, 0, len(modulePath)-common+len(targetPath)-common+1)
	for i := common; i < len(modulePath); i++ {
		segments = append(segments, "super")
	}
	segments = append(segments, targetPath[common:]...)
	segments = append(segments, typeName(string(descriptor.Name())))
	return strings.Join(segments, "::")
}

// typeModulePath returns the module path the message or enum is declared in.
func (r *resolver) typeModulePath(descriptor protoreflect.Descriptor) []string {
	var messageModules []string
	for parent := descriptor.Parent(); parent != nil; parent = parent.Parent() {
		if message, ok := parent.(protoreflect.MessageDescriptor); ok {
			messageModules = append(messageModules, moduleName(string(message.Name())))
		}
	}
	modulePath := r.packageModulePath(descriptor.ParentFile().Package())
	for i := len(messageModules) - 1; i >= 0; i-- {
		modulePath = append(modulePath, messageModules[i])
	}
	return modulePath
}

// packageModulePath returns the module path of a package, one module per package segment.
//
// Segments that are Rust keywords get a "_" suffix. Raw identifiers cannot be used, as
// the segments also name the files of a module hierarchy.
func (r *resolver) packageModulePath(packageName protoreflect.FullName) []string {
	if packageName == "" {
		if r.emptyPackageModule == "" {
			return nil
		}
		return []string{r.emptyPackageModule}
	}
	modulePath := strings.Split(string(packageName), ".")
	for i, segment := range modulePath {
		modulePath[i] = packageSegment(segment)
	}
	return modulePath
}

// moduleName returns the snake_case module name for a message or service.
func moduleName(name string) string {
	return escapeIdent(toSnakeCase(name))
}

// typeName returns the UpperCamelCase name of a struct, enum or trait.
func typeName(name string) string {
	return escapeIdent(toUpperCamelCase(name))
}

// fieldName returns the snake_case name of a field or method.
func fieldName(name string) string {
	return escapeIdent(toSnakeCase(name))
}

func packageSegment(segment string) string {
	if _, ok := rustKeywords[segment]; ok {
		return segment + "_"
	}
	if _, ok := rustPathKeywords[segment]; ok {
		return segment + "_"
	}
	return segment
}

func escapeIdent(ident string) string {
	if _, ok := rustPathKeywords[ident]; ok {
		return ident + "_"
	}
	if _, ok := rustKeywords[ident]; ok {
		return "r#" + ident
	}
	return ident
}

func toSnakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

func toUpperCamelCase(s string) string {
	var builder strings.Builder
	for _, word := range splitWords(s) {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	return builder.String()
}

// splitWords splits on separators, lower-to-upper transitions ("fooBar"), and the last
// upper of an acronym followed by a lower ("HTTPRequest" is "HTTP", "Request").
// Digits stay with the preceding word.
func splitWords(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || r == ' ' {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if !unicode.IsUpper(r) {
			continue
		}
		prev := runes[i-1]
		if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}
