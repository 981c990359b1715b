package gen

import (
	"fmt"

	"github.com/protomon/protomon/descriptor"
)

// oneofField mirrors the slice of fields EmitOneof needs for one oneof
// declaration: the field's descriptor plus its already-resolved Go type
// (oneof members are always singular, so GoType.BaseType needs no further
// repeated/optional wrapping here — protobuf itself forbids repeated or
// map fields inside a oneof).
type oneofField struct {
	Proto  *descriptor.FieldDescriptorProto
	GoType string
}

// EmitOneof writes, for one oneof declaration, an interface type (the Go
// analogue of a tagged-union Enum), one variant struct per member
// field implementing codec.Oneof, and a decode-dispatch function switching
// on tag — grounded on codegen/oneof.rs's generated glue plus
// codec/oneof.rs's ProtoOneof trait this module already ports as
// codec.Oneof/codec.OneofDecoder.
func EmitOneof(w Printer, msgGoIdent, oneofGoName string, fields []oneofField, nullable bool) {
	ifaceName := msgGoIdent + "_" + oneofGoName
	w.P("type ", ifaceName, " interface {")
	w.P("codec.Oneof")
	w.P("is", ifaceName, "()")
	w.P("}")
	w.P()

	for _, f := range fields {
		variantName := msgGoIdent + "_" + fieldGoName(f.Proto.GetName())
		k := classify(f.Proto.GetType())
		w.P("type ", variantName, " struct {")
		w.P(fieldGoName(f.Proto.GetName()), " ", f.GoType)
		w.P("}")
		w.P()
		w.P("func (*", variantName, ") is", ifaceName, "() {}")
		w.P("func (v *", variantName, ") VariantTag() uint32 { return ", f.Proto.GetNumber(), " }")
		w.P("func (v *", variantName, ") VariantWireType() wire.Type { return ", k.wireTypeExpr(), " }")
		w.P(variantEncodeMethod(variantName, fieldGoName(f.Proto.GetName()), k, f.GoType))
		w.P(variantLenMethod(variantName, fieldGoName(f.Proto.GetName()), k, f.GoType))
		w.P()
	}

	decoderName := "decode" + ifaceName
	w.P("func ", decoderName, "(tag uint32, wt wire.Type, buf *[]byte, offset int) (", ifaceName, ", bool, error) {")
	w.P("switch tag {")
	for _, f := range fields {
		variantName := msgGoIdent + "_" + fieldGoName(f.Proto.GetName())
		gname := fieldGoName(f.Proto.GetName())
		k := classify(f.Proto.GetType())
		w.P("case ", f.Proto.GetNumber(), ":")
		w.P("if wt != ", k.wireTypeExpr(), " { return nil, false, fmt.Errorf(\"protomon: invalid wire type %d for field %d\", wt, tag) }")
		w.P(variantDecodeStatement(variantName, gname, k, f.GoType))
	}
	w.P("default:")
	w.P("return nil, false, nil")
	w.P("}")
	w.P("}")
	w.P()
}

func variantDecodeStatement(variantName, fieldName string, k elemKind, goType string) string {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("var v %s; if err := v.DecodeInto(buf, offset); err != nil { return nil, false, err }; return &%s{%s: v}, true, nil",
			goType, variantName, fieldName)
	case kEnum:
		return fmt.Sprintf("raw, err := codec.DecodeEnum(buf); if err != nil { return nil, false, err }; return &%s{%s: %s(raw)}, true, nil",
			variantName, fieldName, goType)
	case kMessage:
		return fmt.Sprintf("vv := new(%s); if err := codec.DecodeMessageField(buf, vv); err != nil { return nil, false, err }; return &%s{%s: vv}, true, nil",
			trimStar(goType), variantName, fieldName)
	default: // direct free-function kinds
		decode, _, _, _ := directFuncs(k)
		return fmt.Sprintf("v, err := %s(buf); if err != nil { return nil, false, err }; return &%s{%s: v}, true, nil",
			decode, variantName, fieldName)
	}
}

func variantEncodeMethod(variantName, fieldName string, k elemKind, goType string) string {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("func (v *%s) EncodeVariant(b []byte) []byte { return v.%s.Encode(b) }", variantName, fieldName)
	case kEnum:
		return fmt.Sprintf("func (v *%s) EncodeVariant(b []byte) []byte { return codec.EncodeEnum(b, int32(v.%s)) }", variantName, fieldName)
	case kMessage:
		return fmt.Sprintf("func (v *%s) EncodeVariant(b []byte) []byte { return codec.EncodeMessageField(b, v.%s) }", variantName, fieldName)
	default:
		_, encode, _, _ := directFuncs(k)
		return fmt.Sprintf("func (v *%s) EncodeVariant(b []byte) []byte { return %s(b, v.%s) }", variantName, encode, fieldName)
	}
}

func variantLenMethod(variantName, fieldName string, k elemKind, goType string) string {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("func (v *%s) EncodedVariantLen() int { return v.%s.EncodedLen() }", variantName, fieldName)
	case kEnum:
		return fmt.Sprintf("func (v *%s) EncodedVariantLen() int { return codec.EncodedLenEnum(int32(v.%s)) }", variantName, fieldName)
	case kMessage:
		return fmt.Sprintf("func (v *%s) EncodedVariantLen() int { return codec.EncodedMessageFieldLen(v.%s) }", variantName, fieldName)
	default:
		_, _, length, _ := directFuncs(k)
		return fmt.Sprintf("func (v *%s) EncodedVariantLen() int { return %s(v.%s) }", variantName, length, fieldName)
	}
}
