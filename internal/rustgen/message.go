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
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

func (g *generator) printMessage(p *printer, message protoreflect.MessageDescriptor, modulePath []string) error {
	p.Comments(leadingComments(message))
	if isDeprecated(message) {
		p.P("#[deprecated]")
	}
	p.P("#[derive(Clone, PartialEq, ::prost::Message)]")
	p.P("pub struct ", typeName(string(message.Name())), " {")
	p.In()
	fields := message.Fields()
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		if field.Kind() == protoreflect.GroupKind {
			return newUnsupportedGroupError(field)
		}
		if oneof := field.ContainingOneof(); oneof != nil && !oneof.IsSynthetic() {
			continue
		}
		g.printField(p, message, field, modulePath)
	}
	oneofs := message.Oneofs()
	for i := 0; i < oneofs.Len(); i++ {
		if oneof := oneofs.Get(i); !oneof.IsSynthetic() {
			g.printOneofField(p, message, oneof)
		}
	}
	p.Out()
	p.P("}")

	if !hasNestedModule(message) {
		return nil
	}
	nestedModule := moduleName(string(message.Name()))
	nestedModulePath := append(modulePath[:len(modulePath):len(modulePath)], nestedModule)
	p.P("/// Nested message and enum types in `", message.Name(), "`.")
	p.P("pub mod ", nestedModule, " {")
	p.In()
	separate := newSeparator(p)
	messages := message.Messages()
	for i := 0; i < messages.Len(); i++ {
		if nested := messages.Get(i); !nested.IsMapEntry() {
			separate()
			if err := g.printMessage(p, nested, nestedModulePath); err != nil {
				return err
			}
		}
	}
	enums := message.Enums()
	for i := 0; i < enums.Len(); i++ {
		separate()
		g.printEnum(p, enums.Get(i))
	}
	for i := 0; i < oneofs.Len(); i++ {
		if oneof := oneofs.Get(i); !oneof.IsSynthetic() {
			separate()
			g.printOneof(p, message, oneof, nestedModulePath)
		}
	}
	p.Out()
	p.P("}")
	return nil
}

func (g *generator) printField(
	p *printer,
	message protoreflect.MessageDescriptor,
	field protoreflect.FieldDescriptor,
	modulePath []string,
) {
	p.Comments(leadingComments(field))
	if isDeprecated(field) {
		p.P("#[deprecated]")
	}
	attributes, rustType := g.fieldAttributesAndType(message, field, modulePath)
	p.P("#[prost(", attributes, ")]")
	p.P("pub ", fieldName(string(field.Name())), ": ", rustType, ",")
}

func (g *generator) fieldAttributesAndType(
	message protoreflect.MessageDescriptor,
	field protoreflect.FieldDescriptor,
	modulePath []string,
) (string, string) {
	tag := fmt.Sprintf(`tag = "%d"`, field.Number())
	if field.IsMap() {
		keyKind := field.MapKey().Kind()
		valueAttribute, valueType := g.mapValueAttributeAndType(field.MapValue(), modulePath)
		return fmt.Sprintf(`map = "%s, %s", %s`, keyKind, valueAttribute, tag),
			"::std::collections::HashMap<" + scalarType(keyKind) + ", " + valueType + ">"
	}
	kindAttribute, rustType := g.kindAttributeAndType(field, modulePath)
	attributes := []string{kindAttribute}
	switch {
	case field.IsList():
		attributes = append(attributes, "repeated")
		rustType = "::prost::alloc::vec::Vec<" + rustType + ">"
	case field.Kind() == protoreflect.MessageKind:
		required := field.Cardinality() == protoreflect.Required
		if required {
			attributes = append(attributes, "required")
		} else {
			attributes = append(attributes, "optional")
		}
		if g.graph.isBoxed(message, field) {
			attributes = append(attributes, "boxed")
			rustType = "::prost::alloc::boxed::Box<" + rustType + ">"
		}
		if !required {
			rustType = "::core::option::Option<" + rustType + ">"
		}
	case field.Cardinality() == protoreflect.Required:
		attributes = append(attributes, "required")
	case field.HasPresence():
		attributes = append(attributes, "optional")
		rustType = "::core::option::Option<" + rustType + ">"
	}
	attributes = append(attributes, tag)
	return strings.Join(attributes, ", "), rustType
}

func (g *generator) kindAttributeAndType(field protoreflect.FieldDescriptor, modulePath []string) (string, string) {
	switch field.Kind() {
	case protoreflect.MessageKind:
		return "message", g.resolver.typePath(field.Message(), modulePath)
	case protoreflect.EnumKind:
		return `enumeration = "` + g.resolver.typePath(field.Enum(), modulePath) + `"`, "i32"
	case protoreflect.BytesKind:
		return `bytes = "vec"`, scalarType(protoreflect.BytesKind)
	default:
		return field.Kind().String(), scalarType(field.Kind())
	}
}

func (g *generator) mapValueAttributeAndType(value protoreflect.FieldDescriptor, modulePath []string) (string, string) {
	switch value.Kind() {
	case protoreflect.MessageKind:
		return "message", g.resolver.typePath(value.Message(), modulePath)
	case protoreflect.EnumKind:
		return "enumeration(" + g.resolver.typePath(value.Enum(), modulePath) + ")", "i32"
	default:
		return value.Kind().String(), scalarType(value.Kind())
	}
}

func (g *generator) printOneofField(p *printer, message protoreflect.MessageDescriptor, oneof protoreflect.OneofDescriptor) {
	enumPath := moduleName(string(message.Name())) + "::" + typeName(string(oneof.Name()))
	fields := oneof.Fields()
	tags := make([]string, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		tags[i] = strconv.Itoa(int(fields.Get(i).Number()))
	}
	p.Comments(leadingComments(oneof))
	p.P(`#[prost(oneof = "`, enumPath, `", tags = "`, strings.Join(tags, ", "), `")]`)
	p.P("pub ", fieldName(string(oneof.Name())), ": ::core::option::Option<", enumPath, ">,")
}

func (g *generator) printOneof(
	p *printer,
	message protoreflect.MessageDescriptor,
	oneof protoreflect.OneofDescriptor,
	modulePath []string,
) {
	p.Comments(leadingComments(oneof))
	p.P("#[derive(Clone, PartialEq, ::prost::Oneof)]")
	p.P("pub enum ", typeName(string(oneof.Name())), " {")
	p.In()
	fields := oneof.Fields()
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		kindAttribute, rustType := g.kindAttributeAndType(field, modulePath)
		if g.graph.isBoxed(message, field) {
			kindAttribute += ", boxed"
			rustType = "::prost::alloc::boxed::Box<" + rustType + ">"
		}
		p.Comments(leadingComments(field))
		p.P("#[prost(", kindAttribute, `, tag = "`, field.Number(), `")]`)
		p.P(typeName(string(field.Name())), "(", rustType, "),")
	}
	p.Out()
	p.P("}")
}

// hasNestedModule returns true if the message needs a module for its nested types or oneofs.
func hasNestedModule(message protoreflect.MessageDescriptor) bool {
	if message.Enums().Len() > 0 {
		return true
	}
	messages := message.Messages()
	for i := 0; i < messages.Len(); i++ {
		if !messages.Get(i).IsMapEntry() {
			return true
		}
	}
	oneofs := message.Oneofs()
	for i := 0; i < oneofs.Len(); i++ {
		if !oneofs.Get(i).IsSynthetic() {
			return true
		}
	}
	return false
}

func scalarType(kind protoreflect.Kind) string {
	switch kind {
	case protoreflect.DoubleKind:
		return "f64"
	case protoreflect.FloatKind:
		return "f32"
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return "i32"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return "i64"
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return "u32"
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return "u64"
	case protoreflect.BoolKind:
		return "bool"
	case protoreflect.StringKind:
		return "::prost::alloc::string::String"
	case protoreflect.BytesKind:
		return "::prost::alloc::vec::Vec<u8>"
	case protoreflect.EnumKind:
		return "i32"
	default:
		panic(fmt.Sprintf("not a scalar kind: %v", kind))
	}
}

func newSeparator(p *printer) func() {
	first := true
	return func() {
		if !first {
			p.P()
		}
		first = false
	}
}
