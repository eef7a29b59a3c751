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

package datasources

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/protoloader"
	"github.com/google/grouplist/core/tables"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ProtoLoader implements DataSourceLoader for protobuf files. Nested
// repeated messages are flattened to one row per leaf message.
//
// Required options:
//   - proto_file: Path to the data file (.textproto or .binpb)
//   - message_type: Fully qualified proto message name
//
// Optional options:
//   - descriptor_set: Path to the .pb descriptor set file
//   - format: "textproto" or "binary" (inferred from extension if not specified)
type ProtoLoader struct {
	mu        sync.RWMutex
	registry  *protoregistry.Files
	loader    *protoloader.Loader
	formatter *columns.Formatter

	// Track loaded descriptor sets to avoid duplicates
	loadedDescriptors map[string]bool
}

// NewProtoLoader creates a new proto loader.
func NewProtoLoader(formatter *columns.Formatter) *ProtoLoader {
	registry := new(protoregistry.Files)
	return &ProtoLoader{
		registry:          registry,
		loader:            protoloader.NewLoader(registry),
		formatter:         formatter,
		loadedDescriptors: make(map[string]bool),
	}
}

// SourceType returns "proto".
func (l *ProtoLoader) SourceType() string {
	return "proto"
}

func (l *ProtoLoader) messageDescriptor(config SourceConfig) (protoreflect.MessageDescriptor, error) {
	messageType := config.Options["message_type"]
	if messageType == "" {
		return nil, fmt.Errorf("message_type is required")
	}

	if descriptorSet := config.Options["descriptor_set"]; descriptorSet != "" {
		if err := l.LoadDescriptorSet(descriptorSet); err != nil {
			return nil, fmt.Errorf("failed to load descriptor set: %w", err)
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loader.MessageDescriptor(messageType)
}

// DiscoverSchema discovers the table schema from the proto descriptor.
func (l *ProtoLoader) DiscoverSchema(config SourceConfig) (*TableSchema, error) {
	msgDesc, err := l.messageDescriptor(config)
	if err != nil {
		return nil, err
	}

	schema := &TableSchema{}
	for _, col := range protoloader.FlattenedColumns(protoloader.FindLinearHierarchy(msgDesc)) {
		schema.Columns = append(schema.Columns, &ColumnSchema{
			Name: col.Name,
			Type: protoKindToType(col.Field.Kind()),
		})
	}
	return schema, nil
}

// protoKindToType maps a field kind to the column type holding its values
func protoKindToType(k protoreflect.Kind) ColumnType {
	switch k {
	case protoreflect.BoolKind:
		return TypeBool
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return TypeInt64
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return TypeDecimal
	default:
		// strings, bytes, enums and uint64 which may not fit an int64
		return TypeString
	}
}

// Load loads a protobuf file and returns a DataTable.
func (l *ProtoLoader) Load(config SourceConfig, enrichedColumns []*EnrichedColumn) (*tables.DataTable, error) {
	protoFile := config.Options["proto_file"]
	if protoFile == "" {
		return nil, fmt.Errorf("proto_file is required")
	}
	if _, err := l.messageDescriptor(config); err != nil {
		return nil, err
	}

	// Determine format
	format := config.Options["format"]
	if format == "" {
		if strings.HasSuffix(protoFile, ".textproto") || strings.HasSuffix(protoFile, ".txtpb") {
			format = "textproto"
		} else {
			format = "binary"
		}
	}

	data, err := os.ReadFile(protoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read proto file: %w", err)
	}

	messageType := config.Options["message_type"]
	l.mu.RLock()
	var msg protoreflect.Message
	switch format {
	case "textproto":
		msg, err = l.loader.ParseTextproto(data, messageType)
	case "binary":
		msg, err = l.loader.ParseBinaryProto(data, messageType)
	default:
		err = fmt.Errorf("unknown format: %s (expected 'textproto' or 'binary')", format)
	}
	l.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	rb := protoloader.ExtractRows(msg, protoloader.FindLinearHierarchy(msg.Descriptor()))
	if len(rb.Rows()) == 0 {
		return nil, fmt.Errorf("no rows extracted from protobuf")
	}
	return BuildTable(enrichedColumns, rb.Rows(), l.formatter)
}

// LoadDescriptorSet loads a .pb descriptor set file into the registry.
func (l *ProtoLoader) LoadDescriptorSet(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Skip if already loaded
	if l.loadedDescriptors[path] {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read descriptor set: %w", err)
	}

	if err := l.loadDescriptorSetFromBytes(data); err != nil {
		return err
	}

	l.loadedDescriptors[path] = true
	return nil
}

// LoadDescriptorSetFromBytes loads a descriptor set from raw bytes.
func (l *ProtoLoader) LoadDescriptorSetFromBytes(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadDescriptorSetFromBytes(data)
}

func (l *ProtoLoader) loadDescriptorSetFromBytes(data []byte) error {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("failed to unmarshal descriptor set: %w", err)
	}

	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return fmt.Errorf("failed to create file descriptors: %w", err)
	}

	// Register each file in our registry
	var registerErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		// Check if already registered to avoid duplicates
		if _, err := l.registry.FindFileByPath(fd.Path()); err == nil {
			return true
		}
		if err := l.registry.RegisterFile(fd); err != nil {
			registerErr = err
			return false
		}
		return true
	})

	return registerErr
}

// GetRegisteredMessages returns all message names registered in the loader.
func (l *ProtoLoader) GetRegisteredMessages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loader.GetRegisteredMessages()
}
