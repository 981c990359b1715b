package codec

import (
	"testing"

	"github.com/protomon/protomon/wire"
)

// testOneof mimics a two-variant generated oneof: Choice{A int32} / Choice{B string}.
type testOneofA struct{ V int32 }

func (v testOneofA) VariantTag() uint32          { return 1 }
func (v testOneofA) VariantWireType() wire.Type  { return wire.VarintType }
func (v testOneofA) EncodeVariant(b []byte) []byte { return EncodeInt32(b, v.V) }
func (v testOneofA) EncodedVariantLen() int        { return EncodedLenInt32(v.V) }

type testOneofB struct{ V string }

func (v testOneofB) VariantTag() uint32          { return 2 }
func (v testOneofB) VariantWireType() wire.Type  { return wire.LenType }
func (v testOneofB) EncodeVariant(b []byte) []byte { return NewProtoString(v.V).Encode(b) }
func (v testOneofB) EncodedVariantLen() int        { return NewProtoString(v.V).EncodedLen() }

func testOneofDecoder(tag uint32, wt wire.Type, buf *[]byte, offset int) (Oneof, bool, error) {
	switch tag {
	case 1:
		v, err := DecodeInt32(buf)
		if err != nil {
			return nil, false, err
		}
		return testOneofA{V: v}, true, nil
	case 2:
		var s ProtoString
		if err := s.DecodeInto(buf, offset); err != nil {
			return nil, false, err
		}
		return testOneofB{V: s.String()}, true, nil
	default:
		return nil, false, nil
	}
}

func TestOneofLastOneWins(t *testing.T) {
	var dst Oneof

	buf1 := EncodeInt32(nil, 11)
	ok, err := DecodeOneofField(&dst, 1, wire.VarintType, &buf1, 0, testOneofDecoder)
	if err != nil || !ok {
		t.Fatalf("decode variant A: ok=%v err=%v", ok, err)
	}
	if a, isA := dst.(testOneofA); !isA || a.V != 11 {
		t.Fatalf("dst = %#v, want testOneofA{11}", dst)
	}

	buf2 := NewProtoString("hi").Encode(nil)
	ok, err = DecodeOneofField(&dst, 2, wire.LenType, &buf2, 0, testOneofDecoder)
	if err != nil || !ok {
		t.Fatalf("decode variant B: ok=%v err=%v", ok, err)
	}
	if b, isB := dst.(testOneofB); !isB || b.V != "hi" {
		t.Fatalf("dst = %#v, want testOneofB{hi} (last one wins)", dst)
	}
}

func TestOneofUnknownTagNotOk(t *testing.T) {
	var dst Oneof
	buf := EncodeInt32(nil, 1)
	ok, err := DecodeOneofField(&dst, 99, wire.VarintType, &buf, 0, testOneofDecoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a tag outside the oneof")
	}
	if dst != nil {
		t.Fatalf("dst should remain unset, got %#v", dst)
	}
}

func TestOneofNilEncodesToNothing(t *testing.T) {
	var dst Oneof
	if got := EncodeOneofField(nil, dst); len(got) != 0 {
		t.Fatalf("expected no bytes for nil oneof, got % X", got)
	}
	if got := EncodedOneofFieldLen(dst); got != 0 {
		t.Fatalf("EncodedOneofFieldLen(nil) = %d, want 0", got)
	}
}

func TestOneofEncodeRoundTrip(t *testing.T) {
	dst := Oneof(testOneofA{V: 5})
	b := EncodeOneofField(nil, dst)

	tag, wt, n, err := wire.ConsumeTag(b)
	if err != nil {
		t.Fatalf("ConsumeTag: %v", err)
	}
	b = b[n:]

	var got Oneof
	ok, err := DecodeOneofField(&got, tag, wt, &b, 0, testOneofDecoder)
	if err != nil || !ok {
		t.Fatalf("decode round trip: ok=%v err=%v", ok, err)
	}
	if a, isA := got.(testOneofA); !isA || a.V != 5 {
		t.Fatalf("got = %#v, want testOneofA{5}", got)
	}
}
