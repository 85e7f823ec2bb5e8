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
	"google.golang.org/protobuf/reflect/protoreflect"
)

const allowLints = "#![allow(unused_variables, dead_code, missing_docs, clippy::let_unit_value)]"

func (g *generator) printClient(p *printer, service protoreflect.ServiceDescriptor, modulePath []string) {
	clientModule := moduleName(string(service.Name())) + "_client"
	clientName := typeName(string(service.Name())) + "Client"
	clientModulePath := append(modulePath[:len(modulePath):len(modulePath)], clientModule)

	p.P("/// Generated client implementations.")
	p.P("pub mod ", clientModule, " {")
	p.In()
	p.P(allowLints)
	p.P("use tonic::codegen::*;")
	p.P("use tonic::codegen::http::Uri;")
	p.Comments(leadingComments(service))
	p.P("#[derive(Debug, Clone)]")
	p.P("pub struct ", clientName, "<T> {")
	p.In()
	p.P("inner: tonic::client::Grpc<T>,")
	p.Out()
	p.P("}")
	p.P("impl ", clientName, "<tonic::transport::Channel> {")
	p.In()
	p.P("/// Attempt to create a new client by connecting to a given endpoint.")
	p.P("pub async fn connect<D>(dst: D) -> Result<Self, tonic::transport::Error>")
	p.P("where")
	p.In()
	p.P("D: TryInto<tonic::transport::Endpoint>,")
	p.P("D::Error: Into<StdError>,")
	p.Out()
	p.P("{")
	p.In()
	p.P("let conn = tonic::transport::Endpoint::new(dst)?.connect().await?;")
	p.P("Ok(Self::new(conn))")
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
	p.P("impl<T> ", clientName, "<T>")
	p.P("where")
	p.In()
	p.P("T: tonic::client::GrpcService<tonic::body::BoxBody>,")
	p.P("T::Error: Into<StdError>,")
	p.P("T::ResponseBody: Body<Data = Bytes> + std::marker::Send + 'static,")
	p.P("<T::ResponseBody as Body>::Error: Into<StdError> + std::marker::Send,")
	p.Out()
	p.P("{")
	p.In()
	p.P("pub fn new(inner: T) -> Self {")
	p.In()
	p.P("let inner = tonic::client::Grpc::new(inner);")
	p.P("Self { inner }")
	p.Out()
	p.P("}")
	p.P("pub fn with_origin(inner: T, origin: Uri) -> Self {")
	p.In()
	p.P("let inner = tonic::client::Grpc::with_origin(inner, origin);")
	p.P("Self { inner }")
	p.Out()
	p.P("}")
	methods := service.Methods()
	for i := 0; i < methods.Len(); i++ {
		g.printClientMethod(p, methods.Get(i), clientModulePath)
	}
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
}

func (g *generator) printClientMethod(p *printer, method protoreflect.MethodDescriptor, modulePath []string) {
	input := g.resolver.typePath(method.Input(), modulePath)
	output := g.resolver.typePath(method.Output(), modulePath)
	service := method.Parent().(protoreflect.ServiceDescriptor)

	var requestType, responseType, intoRequest, call string
	switch {
	case method.IsStreamingClient() && method.IsStreamingServer():
		requestType = "impl tonic::IntoStreamingRequest<Message = " + input + ">"
		responseType = "tonic::codec::Streaming<" + output + ">"
		intoRequest, call = "into_streaming_request", "streaming"
	case method.IsStreamingClient():
		requestType = "impl tonic::IntoStreamingRequest<Message = " + input + ">"
		responseType = output
		intoRequest, call = "into_streaming_request", "client_streaming"
	case method.IsStreamingServer():
		requestType = "impl tonic::IntoRequest<" + input + ">"
		responseType = "tonic::codec::Streaming<" + output + ">"
		intoRequest, call = "into_request", "server_streaming"
	default:
		requestType = "impl tonic::IntoRequest<" + input + ">"
		responseType = output
		intoRequest, call = "into_request", "unary"
	}

	p.Comments(leadingComments(method))
	if isDeprecated(method) {
		p.P("#[deprecated]")
	}
	p.P("pub async fn ", fieldName(string(method.Name())), "(")
	p.In()
	p.P("&mut self,")
	p.P("request: ", requestType, ",")
	p.Out()
	p.P(") -> std::result::Result<tonic::Response<", responseType, ">, tonic::Status> {")
	p.In()
	p.P("self.inner")
	p.In()
	p.P(".ready()")
	p.P(".await")
	p.P(".map_err(|e| {")
	p.In()
	p.P(`tonic::Status::unknown(format!("Service was not ready: {}", e.into()))`)
	p.Out()
	p.P("})?;")
	p.Out()
	p.P("let codec = tonic::codec::ProstCodec::default();")
	p.P(`let path = http::uri::PathAndQuery::from_static("/`, service.FullName(), "/", method.Name(), `");`)
	p.P("let mut req = request.", intoRequest, "();")
	p.P(`req.extensions_mut().insert(GrpcMethod::new("`, service.FullName(), `", "`, method.Name(), `"));`)
	p.P("self.inner.", call, "(req, path, codec).await")
	p.Out()
	p.P("}")
}

func (g *generator) printServer(p *printer, service protoreflect.ServiceDescriptor, modulePath []string) {
	serverModule := moduleName(string(service.Name())) + "_server"
	traitName := typeName(string(service.Name()))
	serverName := traitName + "Server"
	serverModulePath := append(modulePath[:len(modulePath):len(modulePath)], serverModule)

	p.P("/// Generated server implementations.")
	p.P("pub mod ", serverModule, " {")
	p.In()
	p.P(allowLints)
	p.P("use tonic::codegen::*;")
	p.P("/// Generated trait containing gRPC methods that should be implemented for use with ", serverName, ".")
	p.P("#[async_trait]")
	p.P("pub trait ", traitName, ": std::marker::Send + std::marker::Sync + 'static {")
	p.In()
	methods := service.Methods()
	for i := 0; i < methods.Len(); i++ {
		g.printServerMethod(p, methods.Get(i), serverModulePath)
	}
	p.Out()
	p.P("}")
	p.Comments(leadingComments(service))
	p.P("#[derive(Debug)]")
	p.P("pub struct ", serverName, "<T> {")
	p.In()
	p.P("inner: Arc<T>,")
	p.Out()
	p.P("}")
	p.P("impl<T> ", serverName, "<T> {")
	p.In()
	p.P("pub fn new(inner: T) -> Self {")
	p.In()
	p.P("Self::from_arc(Arc::new(inner))")
	p.Out()
	p.P("}")
	p.P("pub fn from_arc(inner: Arc<T>) -> Self {")
	p.In()
	p.P("Self { inner }")
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
	p.P("impl<T> Clone for ", serverName, "<T> {")
	p.In()
	p.P("fn clone(&self) -> Self {")
	p.In()
	p.P("Self { inner: self.inner.clone() }")
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
	p.P("/// Generated gRPC service name")
	p.P(`pub const SERVICE_NAME: &str = "`, service.FullName(), `";`)
	p.P("impl<T> tonic::server::NamedService for ", serverName, "<T> {")
	p.In()
	p.P("const NAME: &'static str = SERVICE_NAME;")
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
}

func (g *generator) printServerMethod(p *printer, method protoreflect.MethodDescriptor, modulePath []string) {
	input := g.resolver.typePath(method.Input(), modulePath)
	output := g.resolver.typePath(method.Output(), modulePath)
	name := fieldName(string(method.Name()))

	requestType := input
	if method.IsStreamingClient() {
		requestType = "tonic::Streaming<" + input + ">"
	}
	responseType := output
	if method.IsStreamingServer() {
		streamName := typeName(string(method.Name())) + "Stream"
		p.P("/// Server streaming response type for the ", method.Name(), " method.")
		p.P("type ", streamName, ": tonic::codegen::tokio_stream::Stream<")
		p.In()
		p.P("Item = std::result::Result<", output, ", tonic::Status>,")
		p.Out()
		p.P(">")
		p.In()
		p.P("+ std::marker::Send")
		p.P("+ 'static;")
		p.Out()
		responseType = "Self::" + streamName
	}
	p.Comments(leadingComments(method))
	if isDeprecated(method) {
		p.P("#[deprecated]")
	}
	p.P("async fn ", name, "(")
	p.In()
	p.P("&self,")
	p.P("request: tonic::Request<", requestType, ">,")
	p.Out()
	p.P(") -> std::result::Result<tonic::Response<", responseType, ">, tonic::Status>;")
}
