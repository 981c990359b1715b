package codec

import "github.com/protomon/protomon/wire"

// Oneof is implemented by every generated oneof enum type (one
// implementation per concrete variant, following Go's "interface +
// concrete variant structs" idiom for what Rust expresses as an enum with
// payload-carrying variants).
type Oneof interface {
	VariantTag() uint32
	VariantWireType() wire.Type
	EncodeVariant(b []byte) []byte
	EncodedVariantLen() int
}

// OneofDecoder is generated per oneof type: given a field's tag and wire
// type, it returns the decoded variant and true if tag belongs to this
// oneof, or ok=false for an unrecognized tag (an unknown field, not an
// error), or a decode error on a wire-type mismatch.
type OneofDecoder[T Oneof] func(tag uint32, wt wire.Type, buf *[]byte, offset int) (value T, ok bool, err error)

// DecodeOneofField implements "last one wins" semantics: a later variant
// replaces dst wholesale, matching original_source/protomon/src/codec/oneof.rs's
// decode_oneof_field.
func DecodeOneofField[T Oneof](dst *T, tag uint32, wt wire.Type, buf *[]byte, offset int, decode OneofDecoder[T]) (bool, error) {
	v, ok, err := decode(tag, wt, buf, offset)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	*dst = v
	return true, nil
}

// EncodeOneofField emits the active variant (a nullable oneof's dst may be
// the zero value of an interface, i.e. nil; nothing is emitted for nil).
func EncodeOneofField[T Oneof](b []byte, dst T) []byte {
	if isNilOneof(dst) {
		return b
	}
	b = wire.AppendTag(b, dst.VariantTag(), dst.VariantWireType())
	return dst.EncodeVariant(b)
}

func EncodedOneofFieldLen[T Oneof](dst T) int {
	if isNilOneof(dst) {
		return 0
	}
	return wire.SizeTag(dst.VariantTag()) + dst.EncodedVariantLen()
}

func isNilOneof[T Oneof](v T) bool {
	var zero T
	// Oneof enum fields are generated as interface types; the nullable case
	// (spec's Option<Enum>) is represented by a nil interface value.
	return any(v) == any(zero)
}
