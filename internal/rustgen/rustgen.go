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

// Package rustgen generates prost and tonic flavored Rust code from proto files.
//
// One file is generated per proto package, named after the package with the segments
// joined by ".", as expected by modtree. Messages become prost::Message structs, enums
// become prost::Enumeration enums, and services optionally produce tonic client
// structs and server traits.
package rustgen

import (
	"fmt"
	"strings"

	"github.com/bufbuild/protoc-gen-rust/internal/config"
	"github.com/bufbuild/protoc-gen-rust/internal/modtree"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// Options are the options for Generate.
type Options struct {
	// GenerateClient says to generate a tonic client for each service.
	GenerateClient bool
	// GenerateServer says to generate a tonic server trait for each service.
	GenerateServer bool
	// ExternPaths map proto paths to existing Rust paths, in addition to the defaults
	// for the well-known types.
	ExternPaths []config.ExternPath
	// PluginVersion is printed in the header of each file, if set.
	PluginVersion string
	// CompilerVersion is printed in the header of each file, if set.
	CompilerVersion string
	// ModuleHierarchy says the files will be arranged into a module hierarchy by
	// modtree, with each package segment as a module.
	//
	// The empty package then gets its own module, EmptyPackageModule, instead of being
	// the crate root, since "_" is not a valid module name.
	ModuleHierarchy bool
}

// EmptyPackageModule is the module of the empty package when Options.ModuleHierarchy is set.
const EmptyPackageModule = "_root"

// Generate generates one file per package of the given files, in the order the
// packages are first seen.
//
// If a file uses a feature that cannot be generated, the returned response has its
// error set and no files.
func Generate(files []protoreflect.FileDescriptor, options Options) *pluginpb.CodeGeneratorResponse {
	var emptyPackageModule string
	if options.ModuleHierarchy {
		emptyPackageModule = EmptyPackageModule
	}
	generator := &generator{
		options:  options,
		resolver: newResolver(options.ExternPaths, emptyPackageModule),
		graph:    newMessageGraph(),
	}
	var packageNames []protoreflect.FullName
	packageNameToFiles := make(map[protoreflect.FullName][]protoreflect.FileDescriptor)
	for _, file := range files {
		packageName := file.Package()
		if _, ok := packageNameToFiles[packageName]; !ok {
			packageNames = append(packageNames, packageName)
		}
		packageNameToFiles[packageName] = append(packageNameToFiles[packageName], file)
	}
	response := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	for _, packageName := range packageNames {
		content, err := generator.generatePackage(packageName, packageNameToFiles[packageName])
		if err != nil {
			response.Error = proto.String(err.Error())
			response.File = nil
			return response
		}
		response.File = append(
			response.File,
			&pluginpb.CodeGeneratorResponse_File{
				Name:    proto.String(generator.fileName(packageName)),
				Content: proto.String(content),
			},
		)
	}
	return response
}

// *** PRIVATE ***

type generator struct {
	options  Options
	resolver *resolver
	graph    *messageGraph
}

// fileName returns the name of the file generated for the package, the module path
// joined by ".".
//
// Outside of a module hierarchy, the file for the empty package is named "_.rs".
func (g *generator) fileName(packageName protoreflect.FullName) string {
	modulePath := g.resolver.packageModulePath(packageName)
	if len(modulePath) == 0 {
		return "_" + modtree.FileExtension
	}
	return strings.Join(modulePath, ".") + modtree.FileExtension
}

func (g *generator) generatePackage(packageName protoreflect.FullName, files []protoreflect.FileDescriptor) (string, error) {
	p := &printer{}
	g.printHeader(p, files)
	modulePath := g.resolver.packageModulePath(packageName)
	for _, file := range files {
		messages := file.Messages()
		for i := 0; i < messages.Len(); i++ {
			p.P()
			if err := g.printMessage(p, messages.Get(i), modulePath); err != nil {
				return "", err
			}
		}
		enums := file.Enums()
		for i := 0; i < enums.Len(); i++ {
			p.P()
			g.printEnum(p, enums.Get(i))
		}
		services := file.Services()
		for i := 0; i < services.Len(); i++ {
			if g.options.GenerateClient {
				p.P()
				g.printClient(p, services.Get(i), modulePath)
			}
			if g.options.GenerateServer {
				p.P()
				g.printServer(p, services.Get(i), modulePath)
			}
		}
	}
	return p.String(), nil
}

func (g *generator) printHeader(p *printer, files []protoreflect.FileDescriptor) {
	if g.options.PluginVersion != "" {
		p.P("// @generated by protoc-gen-rust v", g.options.PluginVersion, ". DO NOT EDIT.")
	} else {
		p.P("// @generated by protoc-gen-rust. DO NOT EDIT.")
	}
	if g.options.CompilerVersion != "" {
		p.P("// protoc v", g.options.CompilerVersion)
	}
	for _, file := range files {
		p.P("// source: ", file.Path())
	}
}

func newUnsupportedGroupError(field protoreflect.FieldDescriptor) error {
	return fmt.Errorf("%s: %s: group fields are not supported", field.ParentFile().Path(), field.FullName())
}

func leadingComments(descriptor protoreflect.Descriptor) string {
	return descriptor.ParentFile().SourceLocations().ByDescriptor(descriptor).LeadingComments
}

func isDeprecated(descriptor protoreflect.Descriptor) bool {
	switch options := descriptor.Options().(type) {
	case *descriptorpb.MessageOptions:
		return options.GetDeprecated()
	case *descriptorpb.FieldOptions:
		return options.GetDeprecated()
	case *descriptorpb.EnumOptions:
		return options.GetDeprecated()
	case *descriptorpb.EnumValueOptions:
		return options.GetDeprecated()
	case *descriptorpb.MethodOptions:
		return options.GetDeprecated()
	default:
		return false
	}
}
