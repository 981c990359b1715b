package gen

import (
	"encoding/binary"

	"github.com/protomon/protomon/descriptor"
	"github.com/protomon/protomon/internal/genid"
)

// Path is a descriptor path: a sequence of (field_number, index, ...) pairs
// locating a declaration inside a FileDescriptorProto, matching
// google.protobuf.SourceCodeInfo.Location.path. Ported in spirit from
// original_source/protomon-build/src/codegen/comments.rs's DescriptorPath,
// expressed here as free functions building a []int32 rather than a
// dedicated path-segment enum, since Go callers just need the final slice.
type Path []int32

// Append returns a new Path with extra path segments appended, leaving the
// receiver untouched (paths are built top-down as the generator walks into
// nested declarations).
func (p Path) Append(extra ...int32) Path {
	out := make(Path, 0, len(p)+len(extra))
	out = append(out, p...)
	out = append(out, extra...)
	return out
}

// TopLevelMessage builds the path to the i'th top-level message in a file.
func TopLevelMessage(i int) Path {
	return Path{genid.FileDescriptorProto_MessageType_field_number, int32(i)}
}

// TopLevelEnum builds the path to the i'th top-level enum in a file.
func TopLevelEnum(i int) Path {
	return Path{genid.FileDescriptorProto_EnumType_field_number, int32(i)}
}

// NestedMessage extends a message's path to its i'th nested message.
func (p Path) NestedMessage(i int) Path {
	return p.Append(genid.DescriptorProto_NestedType_field_number, int32(i))
}

// NestedEnum extends a message's path to its i'th nested enum.
func (p Path) NestedEnum(i int) Path {
	return p.Append(genid.DescriptorProto_EnumType_field_number, int32(i))
}

// Field extends a message's path to its i'th field.
func (p Path) Field(i int) Path {
	return p.Append(genid.DescriptorProto_Field_field_number, int32(i))
}

// Oneof extends a message's path to its i'th oneof declaration.
func (p Path) Oneof(i int) Path {
	return p.Append(genid.DescriptorProto_OneofDecl_field_number, int32(i))
}

// EnumValue extends an enum's path to its i'th value.
func (p Path) EnumValue(i int) Path {
	return p.Append(genid.EnumDescriptorProto_Value_field_number, int32(i))
}

// key renders a path as a comparable map key, matching
// protogen's own pathKey convention (little-endian int32 bytes
// concatenated, since []int32 is not itself comparable/hashable).
func (p Path) key() string {
	buf := make([]byte, 4*len(p))
	for i, x := range p {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(x))
	}
	return string(buf)
}

// CommentMap indexes a file's SourceCodeInfo by descriptor path, letting the
// generator look up the leading comment for any message/field/enum/value it
// emits in O(1), grounded on comments.rs's CommentMap plus
// protogen.File.sourceInfo's equivalent map-by-path-key.
type CommentMap map[string]string

// BuildCommentMap walks a FileDescriptorProto's SourceCodeInfo (absent on
// files compiled without --include_source_info) into a CommentMap. Returns
// an empty, non-nil map when sci is nil so lookups are always safe.
func BuildCommentMap(sci *descriptor.SourceCodeInfo) CommentMap {
	cm := make(CommentMap)
	if sci == nil {
		return cm
	}
	for _, loc := range sci.Location {
		comment := loc.GetLeadingComments()
		if comment == "" {
			continue
		}
		cm[Path(loc.Path).key()] = comment
	}
	return cm
}

// Lookup returns the leading comment recorded at path, if any.
func (cm CommentMap) Lookup(path Path) (string, bool) {
	c, ok := cm[path.key()]
	return c, ok
}

// Printer is the sink per-file emission (message.go, field.go, oneof.go,
// enum.go) writes generated Go source text to. It is implemented by
// protogen.GeneratedFile; kept as a narrow interface here rather than
// importing package protogen directly, since protogen already imports gen
// for the registry/Path/CommentMap types and a direct import back would
// cycle.
type Printer interface {
	P(v ...interface{})
	PrintLeadingComments(cm CommentMap, path Path) bool
	// EnsureImport registers a named import (name, full path) on the
	// generated file even though nothing routes through QualifiedGoIdent for
	// it — emission writes bare "wire."/"codec."/"fmt." prefixes directly as
	// plain text rather than through protogen's ident-qualification path.
	EnsureImport(path, name string)
}
