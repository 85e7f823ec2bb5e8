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
	"strings"
	"unicode"

	"google.golang.org/protobuf/reflect/protoreflect"
)

func (g *generator) printEnum(p *printer, enum protoreflect.EnumDescriptor) {
	name := typeName(string(enum.Name()))
	values := enumValues(enum)
	p.Comments(leadingComments(enum))
	if isDeprecated(enum) {
		p.P("#[deprecated]")
	}
	p.P("#[derive(Clone, Copy, Debug, PartialEq, Eq, Hash, PartialOrd, Ord, ::prost::Enumeration)]")
	p.P("#[repr(i32)]")
	p.P("pub enum ", name, " {")
	p.In()
	for _, value := range values {
		p.Comments(leadingComments(value))
		if isDeprecated(value) {
			p.P("#[deprecated]")
		}
		p.P(enumVariantName(enum, value), " = ", value.Number(), ",")
	}
	p.Out()
	p.P("}")
	p.P("impl ", name, " {")
	p.In()
	p.P("/// String value of the enum field names used in the ProtoBuf definition.")
	p.P("///")
	p.P("/// The values are not transformed in any way and thus are considered stable")
	p.P("/// (if the ProtoBuf definition does not change) and safe for programmatic use.")
	p.P("pub fn as_str_name(&self) -> &'static str {")
	p.In()
	p.P("match self {")
	p.In()
	for _, value := range values {
		p.P("Self::", enumVariantName(enum, value), ` => "`, value.Name(), `",`)
	}
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
	p.P("/// Creates an enum from field names used in the ProtoBuf definition.")
	p.P("pub fn from_str_name(value: &str) -> ::core::option::Option<Self> {")
	p.In()
	p.P("match value {")
	p.In()
	for _, value := range values {
		p.P(`"`, value.Name(), `" => Some(Self::`, enumVariantName(enum, value), "),")
	}
	p.P("_ => None,")
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
	p.Out()
	p.P("}")
}

// enumValues returns the values of the enum, skipping aliases of an earlier number.
func enumValues(enum protoreflect.EnumDescriptor) []protoreflect.EnumValueDescriptor {
	values := enum.Values()
	seen := make(map[protoreflect.EnumNumber]struct{}, values.Len())
	result := make([]protoreflect.EnumValueDescriptor, 0, values.Len())
	for i := 0; i < values.Len(); i++ {
		value := values.Get(i)
		if _, ok := seen[value.Number()]; ok {
			continue
		}
		seen[value.Number()] = struct{}{}
		result = append(result, value)
	}
	return result
}

// enumVariantName returns the UpperCamelCase name of the value with the enum name
// stripped as a prefix, unless that would leave nothing or a leading digit.
func enumVariantName(enum protoreflect.EnumDescriptor, value protoreflect.EnumValueDescriptor) string {
	variant := toUpperCamelCase(string(value.Name()))
	if stripped, ok := strings.CutPrefix(variant, toUpperCamelCase(string(enum.Name()))); ok &&
		stripped != "" && !unicode.IsDigit([]rune(stripped)[0]) {
		variant = stripped
	}
	return escapeIdent(variant)
}
