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
	"io"
	"strings"
)

// Env is the environment a plugin runs within.
//
// Main uses os.Args[1:], os.Environ(), os.Stdin, os.Stdout, and os.Stderr.
type Env struct {
	// Args are the program arguments, not including the program name.
	Args []string
	// Environ are the environment variables, in the form "key=value".
	Environ []string
	// Stdin is where the CodeGeneratorRequest is read from.
	Stdin io.Reader
	// Stdout is where the CodeGeneratorResponse is written to.
	Stdout io.Writer
	// Stderr is where warnings and diagnostics are written to.
	Stderr io.Writer
}

// HandlerEnv is the environment a Handler runs within.
//
// A Handler does not have access to stdin, stdout, or the args, as these are
// owned by Run.
type HandlerEnv struct {
	// Environ are the environment variables, in the form "key=value".
	Environ []string
	// Stderr is where diagnostics are written to.
	Stderr io.Writer
}

// Getenv returns the value of the environment variable named by key, or empty
// if it is not set. If the variable is set more than once, the last value wins.
func (h HandlerEnv) Getenv(key string) string {
	var value string
	for _, keyValue := range h.Environ {
		if k, v, ok := strings.Cut(keyValue, "="); ok && k == key {
			value = v
		}
	}
	return value
}
