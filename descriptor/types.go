// Package descriptor decodes google.protobuf.FileDescriptorSet payloads (as
// produced by protoc and delivered to a protoc plugin via
// CodeGeneratorRequest) into plain Go structs, recognizing the protomon
// field-option extensions alongside the standard descriptor fields.
//
// This is a hand-written mini-decoder rather than a generated one: it only
// understands the subset of descriptor.proto the generator actually
// consumes, following original_source/protomon-build/src/descriptor's split
// between "types.rs"-style plain structs and "decode.rs"-style manual wire
// parsing.
package descriptor

// FileDescriptorSet is the top-level container protoc hands to a plugin.
type FileDescriptorSet struct {
	File []*FileDescriptorProto
}

// FileDescriptorProto describes one .proto file.
type FileDescriptorProto struct {
	Name           *string
	Package        *string
	Dependency     []string
	MessageType    []*DescriptorProto
	EnumType       []*EnumDescriptorProto
	Syntax         *string
	SourceCodeInfo *SourceCodeInfo
}

// SourceCodeInfo carries the comments protoc attaches to each descriptor
// path, following google.protobuf.SourceCodeInfo; only the subset the
// generator's doc-comment extraction consumes (path + leading comment) is
// decoded.
type SourceCodeInfo struct {
	Location []*SourceCodeInfoLocation
}

// SourceCodeInfoLocation is one google.protobuf.SourceCodeInfo.Location
// entry: a descriptor path plus the comment immediately preceding it in the
// .proto source.
type SourceCodeInfoLocation struct {
	Path            []int32
	LeadingComments *string
}

func (l *SourceCodeInfoLocation) GetLeadingComments() string {
	if l == nil || l.LeadingComments == nil {
		return ""
	}
	return *l.LeadingComments
}

func (m *FileDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *FileDescriptorProto) GetPackage() string {
	if m == nil || m.Package == nil {
		return ""
	}
	return *m.Package
}

// GetSyntax returns "proto2" when unset, matching protobuf's own default.
func (m *FileDescriptorProto) GetSyntax() string {
	if m == nil || m.Syntax == nil || *m.Syntax == "" {
		return "proto2"
	}
	return *m.Syntax
}

// DescriptorProto describes a message type, possibly nested.
type DescriptorProto struct {
	Name       *string
	Field      []*FieldDescriptorProto
	NestedType []*DescriptorProto
	EnumType   []*EnumDescriptorProto
	Options    *MessageOptions
	OneofDecl  []*OneofDescriptorProto
}

func (m *DescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

// IsMapEntry reports whether this message is the compiler-synthesized entry
// type for a map<K, V> field (options.map_entry == true).
func (m *DescriptorProto) IsMapEntry() bool {
	return m != nil && m.Options != nil && m.Options.MapEntry != nil && *m.Options.MapEntry
}

// FieldType mirrors google.protobuf.FieldDescriptorProto.Type's numeric
// values; the decoder stores the raw int32 and callers that need the
// symbolic meaning compare against these constants.
type FieldType int32

const (
	TypeDouble   FieldType = 1
	TypeFloat    FieldType = 2
	TypeInt64    FieldType = 3
	TypeUint64   FieldType = 4
	TypeInt32    FieldType = 5
	TypeFixed64  FieldType = 6
	TypeFixed32  FieldType = 7
	TypeBool     FieldType = 8
	TypeString   FieldType = 9
	TypeGroup    FieldType = 10
	TypeMessage  FieldType = 11
	TypeBytes    FieldType = 12
	TypeUint32   FieldType = 13
	TypeEnum     FieldType = 14
	TypeSfixed32 FieldType = 15
	TypeSfixed64 FieldType = 16
	TypeSint32   FieldType = 17
	TypeSint64   FieldType = 18
)

// FieldLabel mirrors google.protobuf.FieldDescriptorProto.Label.
type FieldLabel int32

const (
	LabelOptional FieldLabel = 1
	LabelRequired FieldLabel = 2
	LabelRepeated FieldLabel = 3
)

// FieldDescriptorProto describes one message field.
type FieldDescriptorProto struct {
	Name           *string
	Number         *int32
	Label          *int32
	Type           *int32
	TypeName       *string
	DefaultValue   *string
	Options        *FieldOptions
	OneofIndex     *int32
	JsonName       *string
	Proto3Optional *bool
}

func (m *FieldDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *FieldDescriptorProto) GetNumber() int32 {
	if m == nil || m.Number == nil {
		return 0
	}
	return *m.Number
}

func (m *FieldDescriptorProto) GetType() FieldType {
	if m == nil || m.Type == nil {
		return 0
	}
	return FieldType(*m.Type)
}

func (m *FieldDescriptorProto) GetLabel() FieldLabel {
	if m == nil || m.Label == nil {
		return LabelOptional
	}
	return FieldLabel(*m.Label)
}

func (m *FieldDescriptorProto) GetTypeName() string {
	if m == nil || m.TypeName == nil {
		return ""
	}
	return *m.TypeName
}

func (m *FieldDescriptorProto) IsRepeated() bool { return m.GetLabel() == LabelRepeated }

// FieldOptions is google.protobuf.FieldOptions extended with protomon's
// reserved field numbers: vec (50001), boxed (50002), lazy
// (50003), fixed_array (50004). map_type is this port's own extension,
// documented in DESIGN.md as an open-question resolution.
type FieldOptions struct {
	Vec        bool
	Boxed      bool
	Lazy       bool
	FixedArray uint32
	MapType    *string
}

// EnumDescriptorProto describes an enum type.
type EnumDescriptorProto struct {
	Name  *string
	Value []*EnumValueDescriptorProto
}

func (m *EnumDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

// EnumValueDescriptorProto describes one enum value.
type EnumValueDescriptorProto struct {
	Name   *string
	Number *int32
}

func (m *EnumValueDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *EnumValueDescriptorProto) GetNumber() int32 {
	if m == nil || m.Number == nil {
		return 0
	}
	return *m.Number
}

// OneofDescriptorProto describes a oneof group.
type OneofDescriptorProto struct {
	Name    *string
	Options *OneofOptions
}

func (m *OneofDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

// OneofOptions carries protomon's nullable extension (field 50000).
type OneofOptions struct {
	Nullable *bool
}

func (m *OneofOptions) GetNullable() bool {
	return m != nil && m.Nullable != nil && *m.Nullable
}

// MessageOptions is google.protobuf.MessageOptions, restricted to the one
// field this generator consults.
type MessageOptions struct {
	MapEntry *bool
}
