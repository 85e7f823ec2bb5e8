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

// Package protoplugin runs protoc plugins.
//
// It reads a CodeGeneratorRequest from stdin, validates it, passes it to a Handler,
// validates and normalizes the CodeGeneratorResponse the Handler built, and writes
// it to stdout.
package protoplugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

var interruptSignals = []os.Signal{os.Interrupt}

// Main runs the Handler with the stdio, args and environment of the current process.
//
// Main handles interrupt signals, and exits with a non-zero exit code if the Handler
// returns an error.
//
//	func main() {
//	  protoplugin.Main(protoplugin.HandlerFunc(handle))
//	}
func Main(handler Handler, options ...MainOption) {
	ctx, cancel := withCancelInterruptSignal(context.Background())
	runOptions := make([]RunOption, len(options))
	for i, option := range options {
		runOptions[i] = option
	}
	if err := Run(
		ctx,
		Env{
			Args:    os.Args[1:],
			Environ: os.Environ(),
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		},
		handler,
		runOptions...,
	); err != nil {
		exitError := &exec.ExitError{}
		if errors.As(err, &exitError) {
			cancel()
			// Swallow error message - it was printed via os.Stderr redirection.
			os.Exit(exitError.ExitCode())
		}
		if errString := err.Error(); errString != "" {
			_, _ = fmt.Fprintln(os.Stderr, errString)
		}
		cancel()
		os.Exit(1)
	}
	cancel()
}

// Run runs the Handler within the given Env.
//
// Run does not handle interrupts. This is what Main calls, and is useful for tests.
func Run(
	ctx context.Context,
	env Env,
	handler Handler,
	options ...RunOption,
) error {
	runOptions := newRunOptions()
	for _, option := range options {
		option.applyRunOption(runOptions)
	}
	return run(ctx, env, handler, runOptions)
}

// *** PRIVATE ***

func run(
	ctx context.Context,
	env Env,
	handler Handler,
	runOptions *runOptions,
) error {
	switch len(env.Args) {
	case 0:
	case 1:
		if runOptions.version != "" && env.Args[0] == "--version" {
			_, err := fmt.Fprintln(env.Stdout, runOptions.version)
			return err
		}
		return newUnknownArgumentsError(env.Args)
	default:
		return newUnknownArgumentsError(env.Args)
	}

	warningHandlerFunc := runOptions.warningHandlerFunc
	if warningHandlerFunc == nil {
		warningHandlerFunc = func(err error) { _, _ = fmt.Fprintln(env.Stderr, err.Error()) }
	}

	input, err := io.ReadAll(env.Stdin)
	if err != nil {
		return err
	}
	codeGeneratorRequest := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(input, codeGeneratorRequest); err != nil {
		return err
	}
	request, err := NewRequest(codeGeneratorRequest)
	if err != nil {
		return err
	}
	responseWriter := newResponseWriter(warningHandlerFunc)
	if err := handler.Handle(
		ctx,
		HandlerEnv{
			Environ: env.Environ,
			Stderr:  env.Stderr,
		},
		responseWriter,
		request,
	); err != nil {
		return err
	}
	codeGeneratorResponse, err := responseWriter.toCodeGeneratorResponse()
	if err != nil {
		return err
	}
	data, err := proto.Marshal(codeGeneratorResponse)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}

// withCancelInterruptSignal returns a context that is cancelled if interrupt signals are sent.
func withCancelInterruptSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	interruptSignalC, closer := newInterruptSignalChannel()
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		<-interruptSignalC
		closer()
		cancel()
	}()
	return ctx, cancel
}

// newInterruptSignalChannel returns a new channel for interrupt signals.
//
// Call the returned function to cancel sending to this channel.
func newInterruptSignalChannel() (<-chan os.Signal, func()) {
	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, interruptSignals...)
	return signalC, func() {
		signal.Stop(signalC)
		close(signalC)
	}
}
