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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testParse(
		t,
		"",
		&Config{
			FlatModules: true,
		},
	)
	testParse(
		t,
		"grpc",
		&Config{
			GenerateClient: true,
			GenerateServer: true,
			FlatModules:    true,
		},
	)
	testParse(
		t,
		"grpc-client",
		&Config{
			GenerateClient: true,
			FlatModules:    true,
		},
	)
	testParse(
		t,
		"grpc-server,no-flat-modules",
		&Config{
			GenerateServer: true,
		},
	)
	testParse(
		t,
		" grpc-client , ,grpc-server,",
		&Config{
			GenerateClient: true,
			GenerateServer: true,
			FlatModules:    true,
		},
	)
	testParse(
		t,
		"extern-path=.google.protobuf=::pbjson_types,extern-path=acme.money=::money::v1",
		&Config{
			FlatModules: true,
			ExternPaths: []ExternPath{
				{
					ProtoPath: ".google.protobuf",
					RustPath:  "::pbjson_types",
				},
				{
					ProtoPath: ".acme.money",
					RustPath:  "::money::v1",
				},
			},
		},
	)
	testParse(
		t,
		"paths=source_relative,grpc,verbose",
		&Config{
			GenerateClient: true,
			GenerateServer: true,
			FlatModules:    true,
			Unrecognized:   []string{"paths=source_relative", "verbose"},
		},
	)
}

func TestParseInvalidExternPath(t *testing.T) {
	t.Parallel()

	for _, parameter := range []string{
		"extern-path",
		"extern-path=.foo",
		"grpc,extern-path=.foo=",
		"extern-path==::foo",
		"extern-path=.=::foo",
	} {
		parameter := parameter
		t.Run(parameter, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(parameter)
			require.Error(t, err)
			require.Contains(t, err.Error(), "extern-path=<proto-path>=<rust-path>")
		})
	}
}

func testParse(t *testing.T, parameter string, expected *Config) {
	actual, err := Parse(parameter)
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}
