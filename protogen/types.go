package protogen

import (
	"strings"

	"github.com/protomon/protomon/descriptor"
	"github.com/protomon/protomon/gen"
)

// A File describes a .proto source file and the Go types generated from it.
type File struct {
	Proto *descriptor.FileDescriptorProto

	GoPackageName GoPackageName
	GoImportPath  GoImportPath
	Messages      []*Message // top-level message declarations
	Enums         []*Enum    // top-level enum declarations
	Generate      bool       // true if protoc asked for this file's output

	// GeneratedFilenamePrefix constructs filenames for generated files
	// associated with this source file: "dir/foo.proto" yields a prefix of
	// "dir/foo"; appending ".pb.go" gives "dir/foo.pb.go".
	GeneratedFilenamePrefix string

	comments gen.CommentMap
}

func newFile(p *Plugin, fdp *descriptor.FileDescriptorProto, packageName GoPackageName, importPath GoImportPath) (*File, error) {
	f := &File{
		Proto:         fdp,
		GoPackageName: packageName,
		GoImportPath:  importPath,
		comments:      gen.BuildCommentMap(fdp.SourceCodeInfo),
	}

	prefix := fdp.GetName()
	if ext := pathExt(prefix); ext == ".proto" || ext == ".protodevel" {
		prefix = prefix[:len(prefix)-len(ext)]
	}
	f.GeneratedFilenamePrefix = prefix

	for i, msg := range fdp.MessageType {
		f.Messages = append(f.Messages, newMessage(p, f, nil, msg, gen.TopLevelMessage(i)))
	}
	for i, enum := range fdp.EnumType {
		f.Enums = append(f.Enums, newEnum(p, f, nil, enum, gen.TopLevelEnum(i)))
	}
	return f, nil
}

func pathExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// resolveFieldTypes computes every message field's Go type via the gen
// package's field-type resolver, deferred until every file in the request
// has registered its messages/enums (field resolution needs the
// whole-request type registry to resolve cross-file message references).
func (f *File) resolveFieldTypes(p *Plugin) error {
	for _, m := range f.Messages {
		if err := m.resolveFieldTypes(p); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) isProto3() bool {
	return f.Proto.Syntax == nil || *f.Proto.Syntax == "proto3"
}

// A Message describes a message declaration.
type Message struct {
	Proto *descriptor.DescriptorProto

	GoIdent  GoIdent    // name of the generated Go type
	Fields   []*Field   // field declarations, in declaration order
	Oneofs   []*Oneof   // oneof declarations
	Messages []*Message // nested message declarations
	Enums    []*Enum    // nested enum declarations
	Path     gen.Path   // descriptor path, for comment lookup

	file   *File
	parent *Message
}

// FQN is the fully-qualified proto name of this message, in the same
// "."-prefixed shape gen.Registry keys its type table by.
func (m *Message) FQN() string {
	return fqnOf(m.file, m.parent, m.Proto.GetName())
}

func fqnOf(f *File, parent *Message, name string) string {
	if parent != nil {
		return parent.FQN() + "." + name
	}
	pkg := f.Proto.GetPackage()
	if pkg == "" {
		return "." + name
	}
	return "." + pkg + "." + name
}

func newMessage(p *Plugin, f *File, parent *Message, desc *descriptor.DescriptorProto, path gen.Path) *Message {
	m := &Message{
		Proto:   desc,
		GoIdent: newGoIdent(f, parent, desc.GetName()),
		Path:    path,
		file:    f,
		parent:  parent,
	}
	for i, nested := range desc.NestedType {
		if nested.IsMapEntry() {
			continue // map-entry synthetics never get their own Go type
		}
		m.Messages = append(m.Messages, newMessage(p, f, m, nested, path.NestedMessage(i)))
	}
	for i, enum := range desc.EnumType {
		m.Enums = append(m.Enums, newEnum(p, f, m, enum, path.NestedEnum(i)))
	}
	for i, oneof := range desc.OneofDecl {
		m.Oneofs = append(m.Oneofs, newOneof(f, m, oneof, path.Oneof(i)))
	}
	for i, field := range desc.Field {
		fl := newField(f, m, field, path.Field(i))
		if field.OneofIndex != nil {
			fl.OneofType = m.Oneofs[*field.OneofIndex]
			fl.OneofType.Fields = append(fl.OneofType.Fields, fl)
		}
		m.Fields = append(m.Fields, fl)
	}
	p.messagesByName[m.FQN()] = m
	return m
}

func (m *Message) resolveFieldTypes(p *Plugin) error {
	for _, child := range m.Messages {
		if err := child.resolveFieldTypes(p); err != nil {
			return err
		}
	}
	for _, fl := range m.Fields {
		gt, err := gen.ResolveFieldType(p.registry, fl.Proto, m.file.isProto3(), p.registry.IsRecursiveField(m.FQN(), fl.Proto.GetName()))
		if err != nil {
			return err
		}
		fl.GoType = gt
	}
	return nil
}

// A Field describes a message field.
type Field struct {
	Proto *descriptor.FieldDescriptorProto

	// GoName is the base name of this field's Go struct field.
	GoName string

	ParentMessage *Message
	OneofType     *Oneof // containing oneof; nil if not part of one
	Path          gen.Path

	GoType gen.GoType // resolved once resolveFieldTypes runs
}

func newField(f *File, m *Message, desc *descriptor.FieldDescriptorProto, path gen.Path) *Field {
	return &Field{
		Proto:         desc,
		GoName:        camelCase(desc.GetName()),
		ParentMessage: m,
		Path:          path,
	}
}

// A Oneof describes a oneof declaration.
type Oneof struct {
	Proto *descriptor.OneofDescriptorProto

	GoName        string
	ParentMessage *Message
	Fields        []*Field
	Path          gen.Path
}

func newOneof(f *File, m *Message, desc *descriptor.OneofDescriptorProto, path gen.Path) *Oneof {
	return &Oneof{
		Proto:         desc,
		GoName:        camelCase(desc.GetName()),
		ParentMessage: m,
		Path:          path,
	}
}

// An Enum describes an enum declaration.
type Enum struct {
	Proto *descriptor.EnumDescriptorProto

	GoIdent  GoIdent
	Values   []*EnumValue
	Path     gen.Path

	file   *File
	parent *Message
}

func newEnum(p *Plugin, f *File, parent *Message, desc *descriptor.EnumDescriptorProto, path gen.Path) *Enum {
	e := &Enum{
		Proto:  desc,
		GoIdent: newGoIdent(f, parent, desc.GetName()),
		Path:   path,
		file:   f,
		parent: parent,
	}
	for i, v := range desc.Value {
		e.Values = append(e.Values, newEnumValue(f, e, v, path.EnumValue(i)))
	}
	p.enumsByName[fqnOf(f, parent, desc.GetName())] = e
	return e
}

// An EnumValue describes one enum value.
type EnumValue struct {
	Proto *descriptor.EnumValueDescriptorProto

	GoIdent GoIdent
	Path    gen.Path
}

func newEnumValue(f *File, e *Enum, desc *descriptor.EnumValueDescriptorProto, path gen.Path) *EnumValue {
	name := e.GoIdent.GoName + "_" + desc.GetName()
	return &EnumValue{
		Proto:   desc,
		GoIdent: f.GoImportPath.Ident(name),
		Path:    path,
	}
}
