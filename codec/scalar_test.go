package codec

import (
	"testing"

	"github.com/protomon/protomon/wire"
)

func TestZigZagScenarios(t *testing.T) {
	cases := []struct {
		v    Sint32
		want []byte
	}{
		{-1, []byte{0x01}},
		{2147483647, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}
	for _, c := range cases {
		got := c.v.Encode(nil)
		if string(got) != string(c.want) {
			t.Errorf("Sint32(%d).Encode() = % X, want % X", c.v, got, c.want)
		}
		var out Sint32
		buf := append([]byte(nil), got...)
		if err := out.DecodeInto(&buf, 0); err != nil || out != c.v {
			t.Errorf("decode(%d) = (%d, %v)", c.v, out, err)
		}
	}
}

func TestFixed32RoundTrip(t *testing.T) {
	v := Fixed32(0xDEADBEEF)
	b := v.Encode(nil)
	if len(b) != 4 {
		t.Fatalf("len = %d, want 4", len(b))
	}
	var got Fixed32
	buf := append([]byte(nil), b...)
	if err := got.DecodeInto(&buf, 0); err != nil || got != v {
		t.Fatalf("roundtrip = (%v, %v)", got, err)
	}
}

func TestTinyRoundTripScenario(t *testing.T) {
	// message P { string n=1; int32 i=2; } value {n="Alice", i=123}
	// expected: 0A 05 "Alice" 10 7B
	var b []byte
	b = wire.AppendTag(b, 1, wire.LenType)
	name := NewProtoString("Alice")
	b = name.Encode(b)
	b = wire.AppendTag(b, 2, wire.VarintType)
	b = EncodeInt32(b, 123)

	want := append([]byte{0x0A, 0x05}, []byte("Alice")...)
	want = append(want, 0x10, 0x7B)
	if string(b) != string(want) {
		t.Fatalf("got % X, want % X", b, want)
	}
}

func TestProtoStringInvalidUtf8(t *testing.T) {
	buf := []byte{0x02, 0xFF, 0xFE}
	var s ProtoString
	err := s.DecodeInto(&buf, 0)
	if err == nil {
		t.Fatal("expected InvalidUtf8 error")
	}
}

func TestProtoStringTruncated(t *testing.T) {
	buf := []byte{0x05, 'h', 'e', 'l'}
	var s ProtoString
	if err := s.DecodeInto(&buf, 0); err == nil {
		t.Fatal("expected UnexpectedEndOfBuffer")
	}
}
