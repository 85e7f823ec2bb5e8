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
	"testing"

	"github.com/bufbuild/protoc-gen-rust/internal/config"
	"github.com/stretchr/testify/require"
)

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	testToSnakeCase(t, "foo", "foo")
	testToSnakeCase(t, "Foo", "foo")
	testToSnakeCase(t, "fooBar", "foo_bar")
	testToSnakeCase(t, "FooBar", "foo_bar")
	testToSnakeCase(t, "foo_bar", "foo_bar")
	testToSnakeCase(t, "HTTPRequest", "http_request")
	testToSnakeCase(t, "GetHTTP", "get_http")
	testToSnakeCase(t, "Foo2Bar", "foo2_bar")
	testToSnakeCase(t, "__foo__bar", "foo_bar")
}

func TestToUpperCamelCase(t *testing.T) {
	t.Parallel()

	testToUpperCamelCase(t, "foo", "Foo")
	testToUpperCamelCase(t, "foo_bar", "FooBar")
	testToUpperCamelCase(t, "FOO_BAR", "FooBar")
	testToUpperCamelCase(t, "HTTPRequest", "HttpRequest")
	testToUpperCamelCase(t, "fooBar", "FooBar")
	testToUpperCamelCase(t, "value_2", "Value2")
}

func TestEscapeIdent(t *testing.T) {
	t.Parallel()

	require.Equal(t, "foo", escapeIdent("foo"))
	require.Equal(t, "r#type", escapeIdent("type"))
	require.Equal(t, "r#async", escapeIdent("async"))
	require.Equal(t, "self_", escapeIdent("self"))
	require.Equal(t, "Self_", escapeIdent("Self"))
	require.Equal(t, "super_", escapeIdent("super"))
	require.Equal(t, "r#type", fieldName("type"))
	require.Equal(t, "r#match", moduleName("Match"))
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	resolver := newResolver(
		[]config.ExternPath{
			{ProtoPath: ".google.protobuf", RustPath: "::pbjson_types"},
			{ProtoPath: ".foo", RustPath: "::foo"},
		},
		"",
	)
	require.Len(t, resolver.externPaths, len(defaultExternPaths)+1)
	for i := 1; i < len(resolver.externPaths); i++ {
		require.GreaterOrEqual(t, len(resolver.externPaths[i-1].ProtoPath), len(resolver.externPaths[i].ProtoPath))
	}
	require.Contains(t, resolver.externPaths, config.ExternPath{ProtoPath: ".google.protobuf", RustPath: "::pbjson_types"})
	require.NotContains(t, resolver.externPaths, config.ExternPath{ProtoPath: ".google.protobuf", RustPath: "::prost_types"})
}

func TestPackageModulePath(t *testing.T) {
	t.Parallel()

	resolver := newResolver(nil, "")
	require.Empty(t, resolver.packageModulePath(""))
	require.Equal(t, []string{"foo", "bar"}, resolver.packageModulePath("foo.bar"))
	require.Equal(t, []string{"foo", "type_", "self_"}, resolver.packageModulePath("foo.type.self"))

	resolver = newResolver(nil, EmptyPackageModule)
	require.Equal(t, []string{EmptyPackageModule}, resolver.packageModulePath(""))
	require.Equal(t, []string{"foo", "mod_"}, resolver.packageModulePath("foo.mod"))
}

func testToSnakeCase(t *testing.T, input string, expected string) {
	require.Equal(t, expected, toSnakeCase(input), input)
}

func testToUpperCamelCase(t *testing.T, input string, expected string) {
	require.Equal(t, expected, toUpperCamelCase(input), input)
}
