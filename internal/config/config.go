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

// Package config parses the parameter string given to protoc-gen-rust.
//
// Parameters are passed to the plugin as a comma-separated list with --rust_opt:
//
//	protoc --rust_out=gen --rust_opt=grpc,no-flat-modules,extern-path=.acme.money=::money foo.proto
package config

import (
	"fmt"
	"strings"
)

const (
	// OptionGRPC enables generation of both gRPC clients and servers.
	OptionGRPC = "grpc"
	// OptionGRPCClient enables generation of gRPC clients.
	OptionGRPCClient = "grpc-client"
	// OptionGRPCServer enables generation of gRPC servers.
	OptionGRPCServer = "grpc-server"
	// OptionNoFlatModules requests the hierarchical module layout.
	OptionNoFlatModules = "no-flat-modules"
	// OptionExternPath maps a proto path to an existing Rust path.
	//
	// The value is of the form <proto-path>=<rust-path>.
	OptionExternPath = "extern-path"
)

// Config is the code generation configuration.
type Config struct {
	// GenerateClient says to generate gRPC clients for services.
	GenerateClient bool
	// GenerateServer says to generate gRPC server traits for services.
	GenerateServer bool
	// FlatModules says to output one file per package, named by the dotted package.
	//
	// If false, the files are reorganized into a module hierarchy.
	FlatModules bool
	// ExternPaths are the extern paths, in the order they were given.
	ExternPaths []ExternPath
	// Unrecognized are the options that were not recognized, in the order they were given.
	//
	// Unrecognized options are ignored.
	Unrecognized []string
}

// ExternPath maps a fully-qualified proto path to a Rust path.
type ExternPath struct {
	// ProtoPath is the fully-qualified proto package or type, always with a leading ".".
	ProtoPath string
	// RustPath is the Rust path the proto path maps to, such as "::prost_types".
	RustPath string
}

// Parse parses the comma-separated parameter string.
//
// Empty options are ignored. An error is returned if an extern-path option does not
// have both a proto path and a Rust path.
func Parse(parameter string) (*Config, error) {
	config := &Config{
		FlatModules: true,
	}
	for _, option := range strings.Split(parameter, ",") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}
		key, value, hasValue := strings.Cut(option, "=")
		switch key {
		case OptionGRPC:
			config.GenerateClient = true
			config.GenerateServer = true
		case OptionGRPCClient:
			config.GenerateClient = true
		case OptionGRPCServer:
			config.GenerateServer = true
		case OptionNoFlatModules:
			config.FlatModules = false
		case OptionExternPath:
			if !hasValue {
				return nil, newInvalidExternPathError(option)
			}
			externPath, err := parseExternPath(option, value)
			if err != nil {
				return nil, err
			}
			config.ExternPaths = append(config.ExternPaths, externPath)
		default:
			config.Unrecognized = append(config.Unrecognized, option)
		}
	}
	return config, nil
}

// *** PRIVATE ***

func parseExternPath(option string, value string) (ExternPath, error) {
	protoPath, rustPath, ok := strings.Cut(value, "=")
	if !ok {
		return ExternPath{}, newInvalidExternPathError(option)
	}
	protoPath = strings.TrimSpace(protoPath)
	rustPath = strings.TrimSpace(rustPath)
	if protoPath == "" || protoPath == "." || rustPath == "" {
		return ExternPath{}, newInvalidExternPathError(option)
	}
	if !strings.HasPrefix(protoPath, ".") {
		protoPath = "." + protoPath
	}
	return ExternPath{
		ProtoPath: protoPath,
		RustPath:  rustPath,
	}, nil
}

func newInvalidExternPathError(option string) error {
	return fmt.Errorf("invalid option %q: %s must be of the form %s=<proto-path>=<rust-path>", option, OptionExternPath, OptionExternPath)
}
