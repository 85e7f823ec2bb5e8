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

// Package plugin implements the protoc-gen-rust handler.
//
// The handler generates one Rust file per proto package and, unless the
// no-flat-modules option is given, returns those files as is. With no-flat-modules,
// the files are rearranged into a module hierarchy with modtree.
package plugin

import (
	"bytes"
	"context"

	"github.com/bufbuild/protoc-gen-rust/internal/config"
	"github.com/bufbuild/protoc-gen-rust/internal/modtree"
	"github.com/bufbuild/protoc-gen-rust/internal/protoplugin"
	"github.com/bufbuild/protoc-gen-rust/internal/rustgen"
	"github.com/sirupsen/logrus"
)

const (
	// Version is the version of protoc-gen-rust.
	Version = "0.1.0"
	// LogLevelEnvKey is the environment variable that sets the log level.
	//
	// The value is a logrus level name. The default is warn.
	LogLevelEnvKey = "PROTOC_GEN_RUST_LOG_LEVEL"
)

// Handle is the protoplugin.HandlerFunc for protoc-gen-rust.
func Handle(
	_ context.Context,
	handlerEnv protoplugin.HandlerEnv,
	responseWriter *protoplugin.ResponseWriter,
	request protoplugin.Request,
) error {
	logger := newLogger(handlerEnv)
	pluginConfig, err := config.Parse(request.Parameter())
	if err != nil {
		return err
	}
	for _, option := range pluginConfig.Unrecognized {
		logger.WithField("option", option).Warn("ignoring unrecognized option")
	}
	fileDescriptors, err := request.FileDescriptorsToGenerate()
	if err != nil {
		return err
	}
	response := rustgen.Generate(
		fileDescriptors,
		rustgen.Options{
			GenerateClient:  pluginConfig.GenerateClient,
			GenerateServer:  pluginConfig.GenerateServer,
			ExternPaths:     pluginConfig.ExternPaths,
			PluginVersion:   Version,
			CompilerVersion: request.CompilerVersion().String(),
			ModuleHierarchy: !pluginConfig.FlatModules,
		},
	)
	if response.GetError() != "" {
		logger.WithField("error", response.GetError()).Debug("generation failed")
	} else if !pluginConfig.FlatModules && logger.IsLevelEnabled(logrus.DebugLevel) {
		buffer := bytes.NewBuffer(nil)
		if err := modtree.Render(buffer, modtree.Build(response.GetFile())); err != nil {
			return err
		}
		logger.Debug("module tree:\n" + buffer.String())
	}
	response = modtree.Modularize(response, pluginConfig.FlatModules)
	logger.WithFields(
		logrus.Fields{
			"files":        len(response.GetFile()),
			"flat_modules": pluginConfig.FlatModules,
		},
	).Debug("generated")

	responseWriter.AddCodeGeneratorResponseFiles(response.GetFile()...)
	responseWriter.SetError(response.GetError())
	responseWriter.SetSupportedFeatures(response.GetSupportedFeatures())
	return nil
}

// *** PRIVATE ***

func newLogger(handlerEnv protoplugin.HandlerEnv) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(handlerEnv.Stderr)
	logger.SetFormatter(
		&logrus.TextFormatter{
			DisableTimestamp: true,
		},
	)
	logger.SetLevel(logrus.WarnLevel)
	if value := handlerEnv.Getenv(LogLevelEnvKey); value != "" {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			logger.WithField(LogLevelEnvKey, value).Warn("invalid log level, using warn")
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}
