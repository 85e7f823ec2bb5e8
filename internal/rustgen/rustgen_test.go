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
	"context"
	"strings"
	"testing"

	"github.com/bufbuild/protoc-gen-rust/internal/config"
	"github.com/bufbuild/protoc-gen-rust/internal/prototesting"
	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	response := generate(
		t,
		map[string][]byte{
			"a.proto": []byte(`
				syntax = "proto3";
				package foo.bar;
				message Person {
				  string name = 1;
				  optional int32 age = 2;
				  repeated bytes tags = 3;
				  Address address = 4;
				  map<string, int64> counts = 5;
				  Kind kind = 6;
				}
				message Address {
				  string city = 1;
				}
				enum Kind {
				  KIND_UNSPECIFIED = 0;
				  KIND_FRIEND = 1;
				}
			`),
		},
		[]string{"a.proto"},
		Options{},
	)
	require.Empty(t, response.GetError())
	require.Equal(
		t,
		uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL),
		response.GetSupportedFeatures(),
	)
	require.Len(t, response.GetFile(), 1)
	require.Equal(t, "foo.bar.rs", response.GetFile()[0].GetName())
	require.Equal(
		t,
		trimDedent(`
			// @generated by protoc-gen-rust. DO NOT EDIT.
			// source: a.proto

			#[derive(Clone, PartialEq, ::prost::Message)]
			pub struct Person {
			    #[prost(string, tag = "1")]
			    pub name: ::prost::alloc::string::String,
			    #[prost(int32, optional, tag = "2")]
			    pub age: ::core::option::Option<i32>,
			    #[prost(bytes = "vec", repeated, tag = "3")]
			    pub tags: ::prost::alloc::vec::Vec<::prost::alloc::vec::Vec<u8>>,
			    #[prost(message, optional, tag = "4")]
			    pub address: ::core::option::Option<Address>,
			    #[prost(map = "string, int64", tag = "5")]
			    pub counts: ::std::collections::HashMap<::prost::alloc::string::String, i64>,
			    #[prost(enumeration = "Kind", tag = "6")]
			    pub kind: i32,
			}

			#[derive(Clone, PartialEq, ::prost::Message)]
			pub struct Address {
			    #[prost(string, tag = "1")]
			    pub city: ::prost::alloc::string::String,
			}

			#[derive(Clone, Copy, Debug, PartialEq, Eq, Hash, PartialOrd, Ord, ::prost::Enumeration)]
			#[repr(i32)]
			pub enum Kind {
			    Unspecified = 0,
			    Friend = 1,
			}
			impl Kind {
			    /// String value of the enum field names used in the ProtoBuf definition.
			    ///
			    /// The values are not transformed in any way and thus are considered stable
			    /// (if the ProtoBuf definition does not change) and safe for programmatic use.
			    pub fn as_str_name(&self) -> &'static str {
			        match self {
			            Self::Unspecified => "KIND_UNSPECIFIED",
			            Self::Friend => "KIND_FRIEND",
			        }
			    }
			    /// Creates an enum from field names used in the ProtoBuf definition.
			    pub fn from_str_name(value: &str) -> ::core::option::Option<Self> {
			        match value {
			            "KIND_UNSPECIFIED" => Some(Self::Unspecified),
			            "KIND_FRIEND" => Some(Self::Friend),
			            _ => None,
			        }
			    }
			}
		`),
		response.GetFile()[0].GetContent(),
	)
}

func TestGenerateNested(t *testing.T) {
	t.Parallel()

	testGenerateContains(
		t,
		map[string][]byte{
			"a.proto": []byte(`
				syntax = "proto3";
				package foo;
				// Outer is outer.
				message Outer {
				  message Inner {
				    Outer parent = 1;
				  }
				  enum State {
				    STATE_UNKNOWN = 0;
				  }
				  Inner inner = 1;
				  State state = 2;
				  oneof value {
				    string text = 3;
				    Outer child = 4;
				  }
				  Outer next = 5;
				  string old = 6 [deprecated = true];
				}
			`),
		},
		Options{},
		"foo.rs",
		trimDedent(`
			/// Outer is outer.
			#[derive(Clone, PartialEq, ::prost::Message)]
			pub struct Outer {
			    #[prost(message, optional, boxed, tag = "1")]
			    pub inner: ::core::option::Option<::prost::alloc::boxed::Box<outer::Inner>>,
			    #[prost(enumeration = "outer::State", tag = "2")]
			    pub state: i32,
			    #[prost(message, optional, boxed, tag = "5")]
			    pub next: ::core::option::Option<::prost::alloc::boxed::Box<Outer>>,
			    #[deprecated]
			    #[prost(string, tag = "6")]
			    pub old: ::prost::alloc::string::String,
			    #[prost(oneof = "outer::Value", tags = "3, 4")]
			    pub value: ::core::option::Option<outer::Value>,
			}
			/// Nested message and enum types in ` + "`Outer`" + `.
			pub mod outer {
			    #[derive(Clone, PartialEq, ::prost::Message)]
			    pub struct Inner {
			        #[prost(message, optional, boxed, tag = "1")]
			        pub parent: ::core::option::Option<::prost::alloc::boxed::Box<super::Outer>>,
			    }
		`),
		"    #[repr(i32)]\n    pub enum State {\n        Unknown = 0,\n    }\n",
		trimDedent(`
			    #[derive(Clone, PartialEq, ::prost::Oneof)]
			    pub enum Value {
			        #[prost(string, tag = "3")]
			        Text(::prost::alloc::string::String),
			        #[prost(message, boxed, tag = "4")]
			        Child(::prost::alloc::boxed::Box<super::Outer>),
			    }
			}
		`),
	)
}

func TestGenerateRecursiveMessages(t *testing.T) {
	t.Parallel()

	testGenerateContains(
		t,
		map[string][]byte{
			"a.proto": []byte(`
				syntax = "proto3";
				package foo;
				message Tree {
				  message Inner {
				    Tree t = 1;
				  }
				  Node root = 1;
				  Inner inner = 2;
				  repeated Tree children = 3;
				  Leaf leaf = 4;
				}
				message Node {
				  Tree child = 1;
				  oneof kind {
				    Tree tree = 2;
				    Leaf leaf = 3;
				  }
				}
				message Leaf {
				  string name = 1;
				}
			`),
		},
		Options{},
		"foo.rs",
		trimDedent(`
			pub struct Tree {
			    #[prost(message, optional, boxed, tag = "1")]
			    pub root: ::core::option::Option<::prost::alloc::boxed::Box<Node>>,
			    #[prost(message, optional, boxed, tag = "2")]
			    pub inner: ::core::option::Option<::prost::alloc::boxed::Box<tree::Inner>>,
			    #[prost(message, repeated, tag = "3")]
			    pub children: ::prost::alloc::vec::Vec<Tree>,
			    #[prost(message, optional, tag = "4")]
			    pub leaf: ::core::option::Option<Leaf>,
			}
		`),
		"    pub struct Inner {\n" +
			"        #[prost(message, optional, boxed, tag = \"1\")]\n" +
			"        pub t: ::core::option::Option<::prost::alloc::boxed::Box<super::Tree>>,\n",
		trimDedent(`
			pub struct Node {
			    #[prost(message, optional, boxed, tag = "1")]
			    pub child: ::core::option::Option<::prost::alloc::boxed::Box<Tree>>,
		`),
		"        #[prost(message, boxed, tag = \"2\")]\n" +
			"        Tree(::prost::alloc::boxed::Box<super::Tree>),\n" +
			"        #[prost(message, tag = \"3\")]\n" +
			"        Leaf(super::Leaf),\n",
	)
}

func TestGenerateModuleNames(t *testing.T) {
	t.Parallel()

	pathToData := map[string][]byte{
		"a.proto": []byte(`syntax = "proto3"; package foo.type; message A {}`),
		"b.proto": []byte(`syntax = "proto3"; import "a.proto"; message B { foo.type.A a = 1; }`),
	}

	response := generate(t, pathToData, []string{"a.proto", "b.proto"}, Options{})
	require.Empty(t, response.GetError())
	require.Len(t, response.GetFile(), 2)
	require.Equal(t, "foo.type_.rs", response.GetFile()[0].GetName())
	require.Equal(t, "_.rs", response.GetFile()[1].GetName())
	require.Contains(t, response.GetFile()[1].GetContent(), "pub a: ::core::option::Option<foo::type_::A>,")

	response = generate(t, pathToData, []string{"a.proto", "b.proto"}, Options{ModuleHierarchy: true})
	require.Empty(t, response.GetError())
	require.Len(t, response.GetFile(), 2)
	require.Equal(t, "foo.type_.rs", response.GetFile()[0].GetName())
	require.Equal(t, EmptyPackageModule+".rs", response.GetFile()[1].GetName())
	require.Contains(t, response.GetFile()[1].GetContent(), "pub a: ::core::option::Option<super::foo::type_::A>,")
}

func TestGenerateTypePaths(t *testing.T) {
	t.Parallel()

	pathToData := map[string][]byte{
		"a.proto": []byte(`
			syntax = "proto3";
			package foo.bar;
			import "common.proto";
			import "google/protobuf/timestamp.proto";
			import "google/protobuf/wrappers.proto";
			message Order {
			  foo.common.Money amount = 1;
			  foo.common.Money.Currency currency = 2;
			  google.protobuf.Timestamp time = 3;
			  google.protobuf.StringValue note = 4;
			}
		`),
		"common.proto": []byte(`
			syntax = "proto3";
			package foo.common;
			message Money {
			  enum Currency {
			    CURRENCY_UNSPECIFIED = 0;
			  }
			  int64 units = 1;
			}
		`),
	}
	testGenerateContains(
		t,
		pathToData,
		Options{},
		"foo.bar.rs",
		"pub amount: ::core::option::Option<super::common::Money>,",
		`#[prost(enumeration = "super::common::money::Currency", tag = "2")]`,
		"pub time: ::core::option::Option<::prost_types::Timestamp>,",
		"pub note: ::core::option::Option<::prost::alloc::string::String>,",
	)
	testGenerateContains(
		t,
		pathToData,
		Options{
			ExternPaths: []config.ExternPath{
				{ProtoPath: ".foo.common", RustPath: "::common"},
				{ProtoPath: ".google.protobuf.Timestamp", RustPath: "::pbjson_types::Timestamp"},
			},
		},
		"foo.bar.rs",
		"pub amount: ::core::option::Option<::common::Money>,",
		`#[prost(enumeration = "::common::money::Currency", tag = "2")]`,
		"pub time: ::core::option::Option<::pbjson_types::Timestamp>,",
	)
}

func TestGenerateServices(t *testing.T) {
	t.Parallel()

	pathToData := map[string][]byte{
		"a.proto": []byte(`
			syntax = "proto3";
			package foo.v1;
			import "google/protobuf/empty.proto";
			message Ping {}
			service PingService {
			  rpc Ping(Ping) returns (google.protobuf.Empty);
			  rpc Watch(Ping) returns (stream Ping);
			  rpc Upload(stream Ping) returns (Ping);
			}
		`),
	}
	response := generate(t, pathToData, []string{"a.proto"}, Options{})
	require.Len(t, response.GetFile(), 1)
	require.NotContains(t, response.GetFile()[0].GetContent(), "ping_service_client")
	require.NotContains(t, response.GetFile()[0].GetContent(), "ping_service_server")

	testGenerateContains(
		t,
		pathToData,
		Options{GenerateClient: true, GenerateServer: true},
		"foo.v1.rs",
		"pub mod ping_service_client {",
		"pub struct PingServiceClient<T> {",
		"pub async fn ping(\n            &mut self,\n            request: impl tonic::IntoRequest<super::Ping>,\n" +
			"        ) -> std::result::Result<tonic::Response<()>, tonic::Status> {\n",
		`let path = http::uri::PathAndQuery::from_static("/foo.v1.PingService/Ping");`,
		`req.extensions_mut().insert(GrpcMethod::new("foo.v1.PingService", "Ping"));`,
		"self.inner.unary(req, path, codec).await",
		"self.inner.server_streaming(req, path, codec).await",
		"request: impl tonic::IntoStreamingRequest<Message = super::Ping>,",
		"self.inner.client_streaming(req, path, codec).await",
		"pub mod ping_service_server {",
		"pub trait PingService: std::marker::Send + std::marker::Sync + 'static {",
		"type WatchStream: tonic::codegen::tokio_stream::Stream<",
		") -> std::result::Result<tonic::Response<Self::WatchStream>, tonic::Status>;",
		"request: tonic::Request<tonic::Streaming<super::Ping>>,",
		`pub const SERVICE_NAME: &str = "foo.v1.PingService";`,
	)
}

func TestGenerateGroupsUnsupported(t *testing.T) {
	t.Parallel()

	response := generate(
		t,
		map[string][]byte{
			"a.proto": []byte(`
				syntax = "proto3";
				package foo;
				message A {}
			`),
			"g.proto": []byte(`
				syntax = "proto2";
				package bar;
				message M {
				  optional group G = 1 {
				    optional int32 a = 2;
				  }
				}
			`),
		},
		[]string{"a.proto", "g.proto"},
		Options{},
	)
	require.Equal(t, "g.proto: bar.M.g: group fields are not supported", response.GetError())
	require.Empty(t, response.GetFile())
}

func TestGenerateFilesPerPackage(t *testing.T) {
	t.Parallel()

	response := generate(
		t,
		map[string][]byte{
			"a.proto": []byte(`syntax = "proto3"; package foo; message A {}`),
			"b.proto": []byte(`syntax = "proto3"; message B {}`),
			"c.proto": []byte(`syntax = "proto3"; package foo; message C {}`),
		},
		[]string{"a.proto", "b.proto", "c.proto"},
		Options{
			PluginVersion:   "1.0.0",
			CompilerVersion: "27.1",
		},
	)
	require.Empty(t, response.GetError())
	require.Len(t, response.GetFile(), 2)
	require.Equal(t, "foo.rs", response.GetFile()[0].GetName())
	require.True(
		t,
		strings.HasPrefix(
			response.GetFile()[0].GetContent(),
			"// @generated by protoc-gen-rust v1.0.0. DO NOT EDIT.\n// protoc v27.1\n// source: a.proto\n// source: c.proto\n\n",
		),
	)
	require.Contains(t, response.GetFile()[0].GetContent(), "pub struct A {")
	require.Contains(t, response.GetFile()[0].GetContent(), "pub struct C {")
	require.Equal(t, "_.rs", response.GetFile()[1].GetName())
	require.Contains(t, response.GetFile()[1].GetContent(), "pub struct B {")
}

func generate(
	t *testing.T,
	pathToData map[string][]byte,
	fileToGenerate []string,
	options Options,
) *pluginpb.CodeGeneratorResponse {
	fileDescriptorProtos, err := prototesting.Compile(context.Background(), pathToData)
	require.NoError(t, err)
	files, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: fileDescriptorProtos})
	require.NoError(t, err)
	fileDescriptors := make([]protoreflect.FileDescriptor, len(fileToGenerate))
	for i, path := range fileToGenerate {
		fileDescriptors[i], err = files.FindFileByPath(path)
		require.NoError(t, err)
	}
	return Generate(fileDescriptors, options)
}

// testGenerateContains generates a.proto and checks that the file with the given name
// contains each of the expected snippets.
func testGenerateContains(
	t *testing.T,
	pathToData map[string][]byte,
	options Options,
	expectedName string,
	expectedSnippets ...string,
) {
	response := generate(t, pathToData, []string{"a.proto"}, options)
	require.Empty(t, response.GetError())
	require.Len(t, response.GetFile(), 1)
	require.Equal(t, expectedName, response.GetFile()[0].GetName())
	for _, expectedSnippet := range expectedSnippets {
		require.Contains(t, response.GetFile()[0].GetContent(), expectedSnippet)
	}
}

func trimDedent(s string) string {
	return strings.TrimPrefix(dedent.Dedent(s), "\n")
}
