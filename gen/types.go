package gen

import (
	"fmt"
	"strings"

	"github.com/protomon/protomon/descriptor"
	"github.com/protomon/protomon/internal/errors"
)

// GoType describes the Go type a proto field maps to, before wrapper
// composition (repeated/optional/boxed), grounded on
// codegen/types.rs::RustType.
type GoType struct {
	BaseType        string
	IsOptional      bool
	IsRepeated      bool
	UseLazyRepeated bool // false selects a plain []T ("vec" option) over Repeated[T]
	IsBoxed         bool
}

// ResolveFieldType computes the GoType for one field, validating the
// protomon extension options exactly as
// codegen/types.rs::proto_type_to_rust does. isProto3 selects proto3's
// implicit-presence rule for scalars; autoBox is true when the registry's
// recursion pass marked this field as needing pointer indirection.
func ResolveFieldType(reg *Registry, field *descriptor.FieldDescriptorProto, isProto3, autoBox bool) (GoType, error) {
	protoType := field.GetType()
	label := field.GetLabel()
	isRepeated := label == descriptor.LabelRepeated

	proto3Optional := field.Proto3Optional != nil && *field.Proto3Optional

	var isOptional bool
	switch {
	case isProto3 && label == descriptor.LabelOptional && proto3Optional:
		isOptional = true
	case isProto3 && label == descriptor.LabelOptional && !proto3Optional && protoType == descriptor.TypeMessage:
		isOptional = true
	case isProto3 && label == descriptor.LabelOptional:
		isOptional = false
	case isProto3 && label == descriptor.LabelRequired:
		isOptional = false
	case !isProto3 && label == descriptor.LabelOptional:
		isOptional = true
	case !isProto3 && label == descriptor.LabelRequired:
		isOptional = false
	case label == descriptor.LabelRepeated:
		isOptional = false
	}

	opts := field.Options
	useVec := opts != nil && opts.Vec
	explicitBoxed := opts != nil && opts.Boxed
	isLazy := opts != nil && opts.Lazy
	var fixedArray uint32
	if opts != nil {
		fixedArray = opts.FixedArray
	}

	// Message-typed fields always resolve to a pointer element: ProtoMessage
	// methods have pointer receivers, so a by-value Foo could never satisfy
	// DecodeMessageField/EncodeMessageField. LazyMessage[T] already carries
	// its own pointer internally and is excluded.
	isMessageKind := protoType == descriptor.TypeMessage && !isLazy
	isBoxed := explicitBoxed || autoBox || isMessageKind

	if useVec && !isRepeated && protoType != descriptor.TypeBytes {
		return GoType{}, errors.NewGenError(field.GetName(), "[(protomon.vec) = true] can only be used on repeated fields or bytes fields")
	}
	if isLazy && protoType != descriptor.TypeMessage {
		return GoType{}, errors.NewGenError(field.GetName(), "[(protomon.lazy) = true] can only be used on message-type fields")
	}
	if fixedArray > 0 && protoType != descriptor.TypeBytes {
		return GoType{}, errors.NewGenError(field.GetName(), "[(protomon.fixed_array) = N] can only be used on bytes fields")
	}
	if fixedArray > 32 {
		return GoType{}, errors.NewGenError(field.GetName(), fmt.Sprintf("[(protomon.fixed_array) = %d] exceeds maximum size of 32", fixedArray))
	}

	base, err := scalarTypeToGo(reg, protoType, field.GetTypeName(), isLazy, fixedArray, useVec)
	if err != nil {
		return GoType{}, err
	}

	return GoType{
		BaseType:        base,
		IsOptional:      isOptional,
		IsRepeated:      isRepeated,
		UseLazyRepeated: !useVec,
		IsBoxed:         isBoxed,
	}, nil
}

// MapKeyTypeToGo maps a map field's key type to a Go `comparable` type,
// grounded on codegen/types.rs::map_key_type_to_rust. Map keys may only be
// integral types, bool, or string.
func MapKeyTypeToGo(protoType descriptor.FieldType) (string, error) {
	switch protoType {
	case descriptor.TypeInt32:
		return "int32", nil
	case descriptor.TypeInt64:
		return "int64", nil
	case descriptor.TypeUint32:
		return "uint32", nil
	case descriptor.TypeUint64:
		return "uint64", nil
	case descriptor.TypeSint32:
		return "codec.Sint32", nil
	case descriptor.TypeSint64:
		return "codec.Sint64", nil
	case descriptor.TypeFixed32:
		return "codec.Fixed32", nil
	case descriptor.TypeFixed64:
		return "codec.Fixed64", nil
	case descriptor.TypeSfixed32:
		return "codec.Sfixed32", nil
	case descriptor.TypeSfixed64:
		return "codec.Sfixed64", nil
	case descriptor.TypeBool:
		return "bool", nil
	case descriptor.TypeString:
		return "string", nil
	default:
		return "", errors.NewGenError("", fmt.Sprintf("invalid map key type %v: map keys must be integral types, bool, or string", protoType))
	}
}

// ScalarTypeToGo is the public entry point used by map-value resolution,
// where none of the protomon wrapper options apply.
func ScalarTypeToGo(reg *Registry, protoType descriptor.FieldType, typeName string) (string, error) {
	return scalarTypeToGo(reg, protoType, typeName, false, 0, false)
}

func scalarTypeToGo(reg *Registry, protoType descriptor.FieldType, typeName string, isLazy bool, fixedArray uint32, useVec bool) (string, error) {
	switch protoType {
	case descriptor.TypeInt32:
		return "int32", nil
	case descriptor.TypeInt64:
		return "int64", nil
	case descriptor.TypeUint32:
		return "uint32", nil
	case descriptor.TypeUint64:
		return "uint64", nil
	case descriptor.TypeSint32:
		return "codec.Sint32", nil
	case descriptor.TypeSint64:
		return "codec.Sint64", nil
	case descriptor.TypeFixed32:
		return "codec.Fixed32", nil
	case descriptor.TypeFixed64:
		return "codec.Fixed64", nil
	case descriptor.TypeSfixed32:
		return "codec.Sfixed32", nil
	case descriptor.TypeSfixed64:
		return "codec.Sfixed64", nil
	case descriptor.TypeFloat:
		return "float32", nil
	case descriptor.TypeDouble:
		return "float64", nil
	case descriptor.TypeBool:
		return "bool", nil
	case descriptor.TypeString:
		return "codec.ProtoString", nil
	case descriptor.TypeBytes:
		switch {
		case fixedArray > 0:
			return fmt.Sprintf("[%d]byte", fixedArray), nil
		case useVec:
			return "[]byte", nil
		default:
			return "codec.ProtoBytes", nil
		}
	case descriptor.TypeMessage:
		if typeName == "" {
			return "", errors.NewGenError("", "message type must have type_name")
		}
		path := resolveMessageGoType(reg, typeName)
		if isLazy {
			// LazyMessage[T ProtoMessage] requires T itself to implement
			// ProtoMessage; generated message methods have pointer
			// receivers, so T must be the pointer type, not the bare
			// struct name BuildFullType otherwise wraps in a pointer.
			return "codec.LazyMessage[*" + path + "]", nil
		}
		return path, nil
	case descriptor.TypeEnum:
		if typeName == "" {
			return "", errors.NewGenError("", "enum type must have type_name")
		}
		return resolveMessageGoType(reg, typeName), nil
	case descriptor.TypeGroup:
		return "", errors.NewGenError("", "group types are not supported")
	default:
		return "", errors.NewGenError("", fmt.Sprintf("unrecognized proto field type %v", protoType))
	}
}

func resolveMessageGoType(reg *Registry, typeName string) string {
	if goType, ok := reg.ResolveType(typeName); ok {
		return goType
	}
	// Fallback: the last path component, matching types.rs's own fallback
	// when the type isn't found in the registry or extern-path table.
	parts := strings.Split(typeName, ".")
	return parts[len(parts)-1]
}

// BuildFullType composes the final Go field type from a resolved GoType,
// applying pointer (boxed), slice/Repeated (repeated), and pointer
// (optional) wrappers in that order, grounded on
// codegen/types.rs::build_full_type. Go has no distinct Option<T>/Box<T>:
// both collapse to a leading `*`, so an optional-and-boxed field is simply
// `*T` (never `**T`).
func BuildFullType(t GoType) string {
	inner := t.BaseType
	if t.IsBoxed {
		inner = "*" + inner
	}

	switch {
	case t.IsRepeated:
		if t.UseLazyRepeated {
			return "codec.Repeated[" + inner + "]"
		}
		return "[]" + inner
	case t.IsOptional:
		if strings.HasPrefix(inner, "codec.LazyMessage[") {
			// LazyMessage already encodes absence via a nil raw buffer;
			// proto3's implicit "message fields are always optional" rule
			// needs no further pointer indirection on top of it.
			return inner
		}
		if t.IsBoxed {
			// already pointer-wrapped above; avoid a doubled "**T".
			return inner
		}
		return "*" + inner
	default:
		return inner
	}
}
