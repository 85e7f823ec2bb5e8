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

// messageGraph tracks which messages can contain which other messages inline, that is
// through singular message fields, including oneof fields. Repeated and map fields
// allocate their elements and do not count.
//
// A field that lets a message contain itself again must be boxed, or the Rust type
// would have infinite size.
type messageGraph struct {
	// Keyed by {from, to}.
	reachable map[[2]protoreflect.FullName]bool
}

func newMessageGraph() *messageGraph {
	return &messageGraph{
		reachable: make(map[[2]protoreflect.FullName]bool),
	}
}

// isBoxed returns true if the field of parent is a singular message field whose
// message can contain parent, directly or through other messages.
func (m *messageGraph) isBoxed(parent protoreflect.MessageDescriptor, field protoreflect.FieldDescriptor) bool {
	if !isInlineMessageField(field) {
		return false
	}
	return m.reaches(field.Message(), parent)
}

// reaches returns true if from is to, or from contains to inline.
func (m *messageGraph) reaches(from protoreflect.MessageDescriptor, to protoreflect.MessageDescriptor) bool {
	key := [2]protoreflect.FullName{from.FullName(), to.FullName()}
	if reachable, ok := m.reachable[key]; ok {
		return reachable
	}
	reachable := search(from, to.FullName(), make(map[protoreflect.FullName]struct{}))
	m.reachable[key] = reachable
	return reachable
}

func search(
	from protoreflect.MessageDescriptor,
	target protoreflect.FullName,
	visited map[protoreflect.FullName]struct{},
) bool {
	if from.FullName() == target {
		return true
	}
	if _, ok := visited[from.FullName()]; ok {
		return false
	}
	visited[from.FullName()] = struct{}{}
	fields := from.Fields()
	for i := 0; i < fields.Len(); i++ {
		if field := fields.Get(i); isInlineMessageField(field) && search(field.Message(), target, visited) {
			return true
		}
	}
	return false
}

func isInlineMessageField(field protoreflect.FieldDescriptor) bool {
	return field.Kind() == protoreflect.MessageKind && !field.IsList() && !field.IsMap()
}
