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

// MainOption is an option for Main.
//
// All MainOptions are also RunOptions.
type MainOption interface {
	RunOption

	applyMainOption(runOptions *runOptions)
}

// RunOption is an option for Run.
type RunOption interface {
	applyRunOption(runOptions *runOptions)
}

// WithVersion returns a new MainOption that makes the plugin print the given version
// and exit when invoked with --version as its only argument.
//
// Without this option, --version is an unknown argument.
func WithVersion(version string) MainOption {
	return &versionOption{version: version}
}

// WithWarningHandler returns a new MainOption that handles warnings with the given function.
//
// The default is to write warnings to stderr. Errors passed to warningHandlerFunc are
// non-nil and have non-empty values for err.Error().
func WithWarningHandler(warningHandlerFunc func(error)) MainOption {
	return &warningHandlerOption{warningHandlerFunc: warningHandlerFunc}
}

// *** PRIVATE ***

type runOptions struct {
	version            string
	warningHandlerFunc func(error)
}

func newRunOptions() *runOptions {
	return &runOptions{}
}

type versionOption struct {
	version string
}

func (v *versionOption) applyMainOption(runOptions *runOptions) {
	v.applyRunOption(runOptions)
}

func (v *versionOption) applyRunOption(runOptions *runOptions) {
	runOptions.version = v.version
}

type warningHandlerOption struct {
	warningHandlerFunc func(error)
}

func (w *warningHandlerOption) applyMainOption(runOptions *runOptions) {
	w.applyRunOption(runOptions)
}

func (w *warningHandlerOption) applyRunOption(runOptions *runOptions) {
	runOptions.warningHandlerFunc = w.warningHandlerFunc
}
