/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package protoloader flattens protobuf messages into rows. Messages are
// parsed dynamically against a registry of descriptors, so no generated code
// is needed for the data being listed.
package protoloader

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Loader parses messages using a pre-populated registry.
type Loader struct {
	registry *protoregistry.Files
}

// NewLoader creates a new Loader with the given proto registry.
// The registry should be pre-populated with all required message descriptors.
func NewLoader(registry *protoregistry.Files) *Loader {
	return &Loader{
		registry: registry,
	}
}

// MessageDescriptor looks up a message descriptor by its fully qualified name
func (l *Loader) MessageDescriptor(messageName string) (protoreflect.MessageDescriptor, error) {
	desc, err := l.registry.FindDescriptorByName(protoreflect.FullName(messageName))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", messageName, err)
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", messageName)
	}
	return msgDesc, nil
}

// ParseTextproto parses textproto data into a dynamic protobuf message.
func (l *Loader) ParseTextproto(data []byte, messageName string) (protoreflect.Message, error) {
	msgDesc, err := l.MessageDescriptor(messageName)
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(msgDesc)

	// Use a resolver that can resolve types from our registry
	opts := prototext.UnmarshalOptions{
		Resolver: l,
	}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// ParseBinaryProto parses wire-format data into a dynamic protobuf message.
func (l *Loader) ParseBinaryProto(data []byte, messageName string) (protoreflect.Message, error) {
	msgDesc, err := l.MessageDescriptor(messageName)
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(msgDesc)

	opts := proto.UnmarshalOptions{
		Resolver: l,
	}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse binary proto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// FindMessageByName implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error) {
	msgDesc, err := l.MessageDescriptor(string(name))
	if err != nil {
		return nil, protoregistry.NotFound
	}
	return dynamicpb.NewMessageType(msgDesc), nil
}

// FindMessageByURL implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByURL(url string) (protoreflect.MessageType, error) {
	name := url
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		name = url[i+1:]
	}
	return l.FindMessageByName(protoreflect.FullName(name))
}

// FindExtensionByName implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByName(name protoreflect.FullName) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// FindExtensionByNumber implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// HierarchyLevel represents one level in a linear message hierarchy.
type HierarchyLevel struct {
	// FieldDesc is the repeated message field leading to the next level (nil for leaf)
	FieldDesc protoreflect.FieldDescriptor
	// ScalarFields are non-message fields at this level
	ScalarFields []protoreflect.FieldDescriptor
}

// FindLinearHierarchy walks a message descriptor down its repeated message
// fields. The last repeated message field of a level leads to the next one.
// Returns the hierarchy levels from root to leaf.
func FindLinearHierarchy(msgDesc protoreflect.MessageDescriptor) []HierarchyLevel {
	var levels []HierarchyLevel
	current := msgDesc

	for current != nil {
		level := HierarchyLevel{}
		var nextLevel protoreflect.MessageDescriptor

		fields := current.Fields()
		for i := 0; i < fields.Len(); i++ {
			fd := fields.Get(i)
			switch {
			case fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind:
				if fd.Cardinality() == protoreflect.Repeated && !fd.IsMap() {
					level.FieldDesc = fd
					nextLevel = fd.Message()
				}
			case fd.Cardinality() != protoreflect.Repeated:
				level.ScalarFields = append(level.ScalarFields, fd)
			}
		}

		levels = append(levels, level)
		current = nextLevel
	}

	return levels
}

// Column is a flattened column and the field it is read from
type Column struct {
	Name  string
	Field protoreflect.FieldDescriptor
}

// RowBuilder accumulates denormalized rows from a hierarchical message.
// Values are strings; a field cleared because its level has no message is "".
type RowBuilder struct {
	columns        []Column
	rows           [][]string
	current        map[string]string
	columnsByLevel [][]string
}

// newRowBuilder creates a new RowBuilder with columns derived from hierarchy levels.
func newRowBuilder(hierarchy []HierarchyLevel) *RowBuilder {
	rb := &RowBuilder{
		current:        make(map[string]string),
		columnsByLevel: make([][]string, len(hierarchy)),
	}

	seen := make(map[string]bool)
	for i, level := range hierarchy {
		for _, fd := range level.ScalarFields {
			name := string(fd.Name())
			// a child field shadowing a parent field gets the child's message name as prefix
			if seen[name] {
				name = strings.ToLower(string(fd.Parent().Name())) + "_" + name
			}
			seen[name] = true
			rb.columns = append(rb.columns, Column{Name: name, Field: fd})
			rb.columnsByLevel[i] = append(rb.columnsByLevel[i], name)
		}
	}

	return rb
}

// FlattenedColumns returns the columns ExtractRows produces for hierarchy
func FlattenedColumns(hierarchy []HierarchyLevel) []Column {
	return newRowBuilder(hierarchy).columns
}

// Columns returns the flattened columns in order
func (rb *RowBuilder) Columns() []Column {
	return rb.columns
}

// Rows returns the extracted rows; values follow the order of Columns
func (rb *RowBuilder) Rows() [][]string {
	return rb.rows
}

// clearFromLevel clears all column values at and below the given hierarchy level.
func (rb *RowBuilder) clearFromLevel(level int) {
	for i := level; i < len(rb.columnsByLevel); i++ {
		for _, col := range rb.columnsByLevel[i] {
			rb.current[col] = ""
		}
	}
}

// emitRow adds the current row state to the rows list.
func (rb *RowBuilder) emitRow() {
	row := make([]string, len(rb.columns))
	for i, col := range rb.columns {
		row[i] = rb.current[col.Name]
	}
	rb.rows = append(rb.rows, row)
}

// ExtractRows walks a message hierarchy and extracts one row per leaf message.
// A parent without children still yields a row with empty child values.
func ExtractRows(msg protoreflect.Message, hierarchy []HierarchyLevel) *RowBuilder {
	rb := newRowBuilder(hierarchy)
	walkHierarchy(msg, hierarchy, 0, rb)
	return rb
}

// walkHierarchy recursively walks the message hierarchy, extracting values.
func walkHierarchy(msg protoreflect.Message, hierarchy []HierarchyLevel, depth int, rb *RowBuilder) {
	if depth >= len(hierarchy) {
		return
	}

	level := hierarchy[depth]
	for i, fd := range level.ScalarFields {
		rb.current[rb.columnsByLevel[depth][i]] = formatValue(msg.Get(fd), fd)
	}

	if level.FieldDesc == nil {
		rb.emitRow()
		return
	}

	list := msg.Get(level.FieldDesc).List()
	if list.Len() == 0 {
		rb.clearFromLevel(depth + 1)
		rb.emitRow()
		return
	}

	for i := 0; i < list.Len(); i++ {
		// Clear child fields before each iteration to avoid stale data
		rb.clearFromLevel(depth + 1)
		walkHierarchy(list.Get(i).Message(), hierarchy, depth+1, rb)
	}
}

// formatValue converts a protoreflect.Value to its string representation.
func formatValue(val protoreflect.Value, fd protoreflect.FieldDescriptor) string {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return strconv.FormatBool(val.Bool())
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return strconv.FormatInt(val.Int(), 10)
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return strconv.FormatUint(val.Uint(), 10)
	case protoreflect.FloatKind:
		return strconv.FormatFloat(val.Float(), 'f', -1, 32)
	case protoreflect.DoubleKind:
		return strconv.FormatFloat(val.Float(), 'f', -1, 64)
	case protoreflect.StringKind:
		return val.String()
	case protoreflect.BytesKind:
		return string(val.Bytes())
	case protoreflect.EnumKind:
		// Return enum name if available
		if enumVal := fd.Enum().Values().ByNumber(val.Enum()); enumVal != nil {
			return string(enumVal.Name())
		}
		return strconv.FormatInt(int64(val.Enum()), 10)
	default:
		return val.String()
	}
}

// GetRegisteredMessages returns all top-level message names registered in the loader.
func (l *Loader) GetRegisteredMessages() []string {
	var messages []string
	l.registry.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		msgs := fd.Messages()
		for i := 0; i < msgs.Len(); i++ {
			messages = append(messages, string(msgs.Get(i).FullName()))
		}
		return true
	})
	return messages
}
