package gen

import (
	"testing"

	"github.com/protomon/protomon/descriptor"
)

func sampleFDS() *descriptor.FileDescriptorSet {
	return &descriptor.FileDescriptorSet{
		File: []*descriptor.FileDescriptorProto{
			{
				Name:    strPtr("a.proto"),
				Package: strPtr("pkg.a"),
				MessageType: []*descriptor.DescriptorProto{
					{
						Name: strPtr("Outer"),
						NestedType: []*descriptor.DescriptorProto{
							{Name: strPtr("Inner")},
						},
						EnumType: []*descriptor.EnumDescriptorProto{
							{Name: strPtr("Color")},
						},
					},
				},
				EnumType: []*descriptor.EnumDescriptorProto{
					{Name: strPtr("Status")},
				},
			},
		},
	}
}

func TestRegistry_ResolveType_Message(t *testing.T) {
	reg := NewRegistry(sampleFDS(), nil)
	got, ok := reg.ResolveType(".pkg.a.Outer")
	if !ok {
		t.Fatal("expected .pkg.a.Outer to resolve")
	}
	if got != "Outer" {
		t.Fatalf("ResolveType(.pkg.a.Outer) = %q, want Outer", got)
	}
}

func TestRegistry_ResolveType_NestedMessage(t *testing.T) {
	reg := NewRegistry(sampleFDS(), nil)
	got, ok := reg.ResolveType(".pkg.a.Outer.Inner")
	if !ok {
		t.Fatal("expected .pkg.a.Outer.Inner to resolve")
	}
	if got != "Outer_Inner" {
		t.Fatalf("ResolveType(.pkg.a.Outer.Inner) = %q, want Outer_Inner", got)
	}
}

func TestRegistry_IsEnum(t *testing.T) {
	reg := NewRegistry(sampleFDS(), nil)
	if !reg.IsEnum(".pkg.a.Status") {
		t.Fatal("expected .pkg.a.Status to be registered as an enum")
	}
	if !reg.IsEnum(".pkg.a.Outer.Color") {
		t.Fatal("expected nested enum .pkg.a.Outer.Color to be registered")
	}
	if reg.IsEnum(".pkg.a.Outer") {
		t.Fatal("message type must not be reported as an enum")
	}
}

func TestRegistry_ExternPathOverride(t *testing.T) {
	reg := NewRegistry(sampleFDS(), map[string]string{".pkg.a.Outer": "other.Outer"})
	got, ok := reg.ResolveType(".pkg.a.Outer")
	if !ok || got != "other.Outer" {
		t.Fatalf("ResolveType with extern override = (%q, %v), want (other.Outer, true)", got, ok)
	}
}

func TestRegistry_ExternImportFor_FieldMask(t *testing.T) {
	reg := NewRegistry(sampleFDS(), nil)
	path, name, ok := reg.ExternImportFor(".google.protobuf.FieldMask")
	if !ok {
		t.Fatal("expected .google.protobuf.FieldMask to resolve to an extern import")
	}
	if path != "google.golang.org/genproto/protobuf/field_mask" || name != "field_mask" {
		t.Fatalf("ExternImportFor(FieldMask) = (%q, %q), want (google.golang.org/genproto/protobuf/field_mask, field_mask)", path, name)
	}

	// FieldMask also resolves through ResolveType as a plain type reference.
	goType, ok := reg.ResolveType(".google.protobuf.FieldMask")
	if !ok || goType != "field_mask.FieldMask" {
		t.Fatalf("ResolveType(FieldMask) = (%q, %v), want (field_mask.FieldMask, true)", goType, ok)
	}
}

func TestRegistry_ExternImportFor_Unknown(t *testing.T) {
	reg := NewRegistry(sampleFDS(), nil)
	if _, _, ok := reg.ExternImportFor(".pkg.a.Outer"); ok {
		t.Fatal("expected an ordinary message type to have no extern import")
	}
}

func TestRegistry_ResolveType_Unregistered(t *testing.T) {
	reg := NewRegistry(sampleFDS(), nil)
	if _, ok := reg.ResolveType(".pkg.a.DoesNotExist"); ok {
		t.Fatal("expected unregistered type to fail to resolve")
	}
}
