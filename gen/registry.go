// Package gen implements the schema-to-code generator: given a decoded
// FileDescriptorSet it resolves proto type names to Go identifiers, detects
// recursive message cycles that need pointer indirection, and emits one Go
// source file per input .proto file. Grounded in spirit on
// original_source/protomon-build/src/{context,codegen}.rs.
package gen

import (
	"strings"
	"unicode"

	"github.com/protomon/protomon/descriptor"
)

// TypeInfo records where a proto type (message or enum) was declared and
// what Go identifiers/imports it resolves to, grounded on
// original_source/protomon-build/src/context.rs's TypeInfo.
type TypeInfo struct {
	FileName     string
	IsMessage    bool
	IsEnum       bool
	GoPackage    string // the Go package name this type is generated into
	GoImportPath string
}

// Registry is the generation-wide type table plus extern-path overrides and
// the map-entry/recursion side-tables computed from the same descriptor
// set, mirroring context.rs's GenerationContext.
type Registry struct {
	Types          map[string]*TypeInfo
	ExternPaths    map[string]string // proto FQN -> fully-qualified external Go identifier
	ExternImports  map[string]descriptor.WellKnownGoType
	MapEntries     map[string]descriptor.MapEntryInfo
	RecursiveEdges map[RecursiveField]struct{}
}

// RecursiveField names one (containing message, field) pair whose Go field
// type must be a pointer to break a cycle, grounded on
// codegen/recursion.rs's RecursiveField.
type RecursiveField struct {
	MessageFQN string
	FieldName  string
}

// NewRegistry builds the type registry, map-entry index, and recursive-field
// set from a decoded FileDescriptorSet in one call (each is its own walk
// over the set), following
// context.rs::GenerationContext::new.
func NewRegistry(fds *descriptor.FileDescriptorSet, externPaths map[string]string) *Registry {
	if externPaths == nil {
		externPaths = make(map[string]string)
	}
	externImports := make(map[string]descriptor.WellKnownGoType, len(descriptor.WellKnownGoTypes))
	for fqn, wk := range descriptor.WellKnownGoTypes {
		externImports[fqn] = wk
		if _, overridden := externPaths[fqn]; !overridden {
			externPaths[fqn] = wk.GoType
		}
	}
	reg := &Registry{
		Types:         make(map[string]*TypeInfo),
		ExternPaths:   externPaths,
		ExternImports: externImports,
		MapEntries:    descriptor.CollectMapEntries(fds),
	}
	for _, file := range fds.File {
		fileName := file.GetName()
		pkg := file.GetPackage()
		goPkg := packageToGoName(pkg)
		prefix := "."
		if pkg != "" {
			prefix = "." + pkg + "."
		}
		for _, msg := range file.MessageType {
			registerMessage(reg.Types, fileName, goPkg, prefix, msg)
		}
		for _, enum := range file.EnumType {
			if enum.GetName() == "" {
				continue
			}
			fqn := prefix + enum.GetName()
			reg.Types[fqn] = &TypeInfo{FileName: fileName, IsEnum: true, GoPackage: goPkg}
		}
	}
	reg.RecursiveEdges = FindRecursiveFields(fds)
	return reg
}

func registerMessage(types map[string]*TypeInfo, fileName, goPkg, prefix string, msg *descriptor.DescriptorProto) {
	name := msg.GetName()
	if name == "" {
		return
	}
	fqn := prefix + name
	types[fqn] = &TypeInfo{FileName: fileName, IsMessage: true, GoPackage: goPkg}

	nestedPrefix := fqn + "."
	for _, nested := range msg.NestedType {
		registerMessage(types, fileName, goPkg, nestedPrefix, nested)
	}
	for _, enum := range msg.EnumType {
		if enum.GetName() == "" {
			continue
		}
		types[nestedPrefix+enum.GetName()] = &TypeInfo{FileName: fileName, IsEnum: true, GoPackage: goPkg}
	}
}

// ExternImportFor returns the import path/name to register when a field
// resolves to an extern-wired well-known type, so the emitter can call
// Printer.EnsureImport instead of leaving the reference unimportable.
func (r *Registry) ExternImportFor(protoTypeName string) (path, name string, ok bool) {
	wk, ok := r.ExternImports[protoTypeName]
	if !ok {
		return "", "", false
	}
	return wk.ImportPath, wk.ImportName, true
}

// ResolveType returns the Go identifier for proto FQN protoTypeName: an
// extern-path override wins, otherwise the registry's own type information
// is used to build a (possibly package-qualified) Go type name.
func (r *Registry) ResolveType(protoTypeName string) (string, bool) {
	if goType, ok := r.ExternPaths[protoTypeName]; ok {
		return goType, true
	}
	info, ok := r.Types[protoTypeName]
	if !ok {
		return "", false
	}
	return protoPathToGoType(protoTypeName), info.IsEnum || info.IsMessage
}

// IsEnum reports whether protoTypeName names a registered enum.
func (r *Registry) IsEnum(protoTypeName string) bool {
	info, ok := r.Types[protoTypeName]
	return ok && info.IsEnum
}

// IsRecursiveField reports whether messageFQN's fieldName needs pointer
// indirection to break a reference cycle.
func (r *Registry) IsRecursiveField(messageFQN, fieldName string) bool {
	_, ok := r.RecursiveEdges[RecursiveField{MessageFQN: messageFQN, FieldName: fieldName}]
	return ok
}

// packageToGoName mirrors context.rs's package_to_module, replacing dots
// with underscores to build a flat Go package-name-ish token; the actual Go
// package name generated code uses is the proto package's last path
// component, following protoc-gen-go's own convention.
func packageToGoName(pkg string) string {
	if pkg == "" {
		return ""
	}
	return strings.ReplaceAll(pkg, ".", "_")
}

// protoPathToGoType strips package components off a fully-qualified proto
// type name and joins the remaining (possibly nested) components with "_",
// following Go's lack of nested-type namespacing (Go has no "::"-style
// nested path; generated nested message types are flattened with an
// underscore, matching protoc-gen-go's own NestedMessage -> Outer_Nested
// convention).
func protoPathToGoType(protoPath string) string {
	trimmed := strings.TrimPrefix(protoPath, ".")
	parts := strings.Split(trimmed, ".")
	// Find where the type components begin: any component starting with an
	// uppercase letter marks the first type segment. (proto package names
	// are conventionally all-lowercase, mirroring protoc-gen-go's own
	// detection of package-vs-type components.)
	start := 0
	for i, p := range parts {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			start = i
			break
		}
	}
	typeParts := parts[start:]
	if len(typeParts) == 0 {
		return parts[len(parts)-1]
	}
	return strings.Join(typeParts, "_")
}
