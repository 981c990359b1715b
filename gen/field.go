package gen

import (
	"fmt"

	"github.com/protomon/protomon/descriptor"
)

// elemKind classifies a field's proto wire-level type, driving which codec
// package entry points EmitField and EmitMessage splice into decode/encode
// bodies. Ported in spirit from codegen/field.rs's own type-kind dispatch.
type elemKind int

const (
	kInt32 elemKind = iota
	kInt64
	kUint32
	kUint64
	kSint32
	kSint64
	kFixed32
	kFixed64
	kSfixed32
	kSfixed64
	kBool
	kFloat
	kDouble
	kString
	kBytes
	kEnum
	kMessage
)

func classify(t descriptor.FieldType) elemKind {
	switch t {
	case descriptor.TypeInt32:
		return kInt32
	case descriptor.TypeInt64:
		return kInt64
	case descriptor.TypeUint32:
		return kUint32
	case descriptor.TypeUint64:
		return kUint64
	case descriptor.TypeSint32:
		return kSint32
	case descriptor.TypeSint64:
		return kSint64
	case descriptor.TypeFixed32:
		return kFixed32
	case descriptor.TypeFixed64:
		return kFixed64
	case descriptor.TypeSfixed32:
		return kSfixed32
	case descriptor.TypeSfixed64:
		return kSfixed64
	case descriptor.TypeBool:
		return kBool
	case descriptor.TypeFloat:
		return kFloat
	case descriptor.TypeDouble:
		return kDouble
	case descriptor.TypeString:
		return kString
	case descriptor.TypeBytes:
		return kBytes
	case descriptor.TypeEnum:
		return kEnum
	default:
		return kMessage
	}
}

func (k elemKind) wireTypeExpr() string {
	switch k {
	case kInt32, kInt64, kUint32, kUint64, kSint32, kSint64, kBool, kEnum:
		return "wire.VarintType"
	case kFixed32, kSfixed32, kFloat:
		return "wire.I32Type"
	case kFixed64, kSfixed64, kDouble:
		return "wire.I64Type"
	default: // kString, kBytes, kMessage
		return "wire.LenType"
	}
}

// directFuncs reports the codec package's free-function names for the
// seven scalar kinds that already match ElementCodec[T]'s function-value
// shapes exactly (see codec/scalar.go's "free functions" section), letting
// the generator reference them directly instead of writing an adapter
// closure.
func directFuncs(k elemKind) (decode, encode, length string, ok bool) {
	switch k {
	case kInt32:
		return "codec.DecodeInt32", "codec.EncodeInt32", "codec.EncodedLenInt32", true
	case kInt64:
		return "codec.DecodeInt64", "codec.EncodeInt64", "codec.EncodedLenInt64", true
	case kUint32:
		return "codec.DecodeUint32", "codec.EncodeUint32", "codec.EncodedLenUint32", true
	case kUint64:
		return "codec.DecodeUint64", "codec.EncodeUint64", "codec.EncodedLenUint64", true
	case kBool:
		return "codec.DecodeBool", "codec.EncodeBool", "codec.EncodedLenBool", true
	case kFloat:
		return "codec.DecodeFloat", "codec.EncodeFloat", "codec.EncodedLenFloat", true
	case kDouble:
		return "codec.DecodeDouble", "codec.EncodeDouble", "codec.EncodedLenDouble", true
	default:
		return "", "", "", false
	}
}

// elementCodecLiteral renders a `codec.ElementCodec[elemGoType]{...}`
// composite literal for use as a repeated field's per-element codec or
// inline in a map's key/value codec construction.
func elementCodecLiteral(k elemKind, elemGoType string) string {
	if decode, encode, length, ok := directFuncs(k); ok {
		return fmt.Sprintf("codec.ElementCodec[%s]{WireType: %s, Decode: %s, Encode: %s, EncodedLen: %s}",
			elemGoType, k.wireTypeExpr(), decode, encode, length)
	}
	decode, encode, length := wrapperClosures(k, elemGoType)
	return fmt.Sprintf("codec.ElementCodec[%s]{WireType: %s, Decode: %s, Encode: %s, EncodedLen: %s}",
		elemGoType, k.wireTypeExpr(), decode, encode, length)
}

// wrapperClosures builds adapter closures for the kinds whose codec type
// exposes a pointer-receiver DecodeInto/value-receiver Encode/EncodedLen
// trio (codec.Sint32 and siblings, codec.ProtoString, codec.ProtoBytes),
// plus enum (stored as a named int32 type, needs explicit conversions
// around codec.*Enum) and message (needs an addressable local to satisfy
// ProtoMessage's pointer-receiver method set).
func wrapperClosures(k elemKind, elemGoType string) (decode, encode, length string) {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		decode = fmt.Sprintf("func(buf *[]byte) (%s, error) { var v %s; err := v.DecodeInto(buf, 0); return v, err }", elemGoType, elemGoType)
		encode = fmt.Sprintf("func(b []byte, v %s) []byte { return v.Encode(b) }", elemGoType)
		length = fmt.Sprintf("func(v %s) int { return v.EncodedLen() }", elemGoType)
	case kEnum:
		decode = fmt.Sprintf("func(buf *[]byte) (%s, error) { v, err := codec.DecodeEnum(buf); return %s(v), err }", elemGoType, elemGoType)
		encode = fmt.Sprintf("func(b []byte, v %s) []byte { return codec.EncodeEnum(b, int32(v)) }", elemGoType)
		length = fmt.Sprintf("func(v %s) int { return codec.EncodedLenEnum(int32(v)) }", elemGoType)
	case kMessage:
		decode = fmt.Sprintf("func(buf *[]byte) (%s, error) { v := new(%s); if err := codec.DecodeMessageField(buf, v); err != nil { var zero %s; return zero, err }; return %s, nil }",
			elemGoType, trimStar(elemGoType), elemGoType, messageResult(elemGoType))
		encode = fmt.Sprintf("func(b []byte, v %s) []byte { return codec.EncodeMessageField(b, %s) }", elemGoType, messageArg(elemGoType))
		length = fmt.Sprintf("func(v %s) int { return codec.EncodedMessageFieldLen(%s) }", elemGoType, messageArg(elemGoType))
	}
	return decode, encode, length
}

// trimStar strips a single leading "*" so new(T) allocates the pointed-to
// struct rather than a pointer-to-pointer.
func trimStar(t string) string {
	if len(t) > 0 && t[0] == '*' {
		return t[1:]
	}
	return t
}

// messageResult/messageArg adapt the `v := new(Foo)` local (always a *Foo)
// to the element type the caller actually wants: itself when elemGoType is
// already pointer-shaped, or a dereferenced copy when the field stores
// messages by value.
func messageResult(elemGoType string) string {
	if len(elemGoType) > 0 && elemGoType[0] == '*' {
		return "v"
	}
	return "*v"
}
func messageArg(elemGoType string) string {
	if len(elemGoType) > 0 && elemGoType[0] == '*' {
		return "v"
	}
	return "&v"
}

// isPointerType reports whether full is a single level of pointer
// indirection, the shape BuildFullType produces for optional/boxed
// non-repeated, non-LazyMessage fields.
func isPointerType(full string) bool {
	return len(full) > 0 && full[0] == '*'
}
