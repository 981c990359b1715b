// Package genid names the descriptor.proto field numbers the descriptor
// decoder and code generator switch on, following golang-protobuf's own
// internal/genid convention of naming wire field numbers instead of leaving
// bare integers scattered through decode switches.
package genid

// FileDescriptorProto field numbers.
const (
	FileDescriptorProto_Name_field_number        = 1
	FileDescriptorProto_Package_field_number      = 2
	FileDescriptorProto_Dependency_field_number   = 3
	FileDescriptorProto_MessageType_field_number  = 4
	FileDescriptorProto_EnumType_field_number     = 5
	FileDescriptorProto_Syntax_field_number       = 12
	FileDescriptorProto_SourceCodeInfo_field_number = 9
)

// SourceCodeInfo / SourceCodeInfo.Location field numbers.
const (
	SourceCodeInfo_Location_field_number            = 1
	SourceCodeInfo_Location_Path_field_number        = 1
	SourceCodeInfo_Location_LeadingComments_field_number = 3
)

// DescriptorProto (message type) field numbers.
const (
	DescriptorProto_Name_field_number       = 1
	DescriptorProto_Field_field_number      = 2
	DescriptorProto_NestedType_field_number = 3
	DescriptorProto_EnumType_field_number   = 4
	DescriptorProto_Options_field_number    = 7
	DescriptorProto_OneofDecl_field_number  = 8
)

// FieldDescriptorProto field numbers.
const (
	FieldDescriptorProto_Name_field_number           = 1
	FieldDescriptorProto_Number_field_number         = 3
	FieldDescriptorProto_Label_field_number          = 4
	FieldDescriptorProto_Type_field_number            = 5
	FieldDescriptorProto_TypeName_field_number        = 6
	FieldDescriptorProto_DefaultValue_field_number    = 7
	FieldDescriptorProto_Options_field_number         = 8
	FieldDescriptorProto_OneofIndex_field_number       = 9
	FieldDescriptorProto_JsonName_field_number         = 10
	FieldDescriptorProto_Proto3Optional_field_number  = 17
)

// EnumDescriptorProto field numbers.
const (
	EnumDescriptorProto_Name_field_number  = 1
	EnumDescriptorProto_Value_field_number = 2
)

// EnumValueDescriptorProto field numbers.
const (
	EnumValueDescriptorProto_Name_field_number   = 1
	EnumValueDescriptorProto_Number_field_number = 2
)

// OneofDescriptorProto field numbers.
const (
	OneofDescriptorProto_Name_field_number    = 1
	OneofDescriptorProto_Options_field_number = 2
)

// MessageOptions field numbers (only the subset this decoder cares about).
const (
	MessageOptions_MapEntry_field_number = 7
)

// Reserved protomon extension field numbers, matching
// proto/protomon/extensions.proto's declared extend blocks.
const (
	ExtFieldVec_field_number       = 50001
	ExtFieldBoxed_field_number     = 50002
	ExtFieldLazy_field_number      = 50003
	ExtFieldFixedArray_field_number = 50004
	ExtOneofNullable_field_number  = 50000

	// ExtFieldMapType_field_number is not part of the original reserved table;
	// original_source/protomon-build/src/codegen/field.rs reads a
	// FieldOptions.map_type string the decoder never actually produces (a
	// latent gap in the original crate). We resolve the open question by
	// reserving the next unused protomon extension number for it.
	ExtFieldMapType_field_number = 50005
)
