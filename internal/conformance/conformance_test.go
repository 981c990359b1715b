package conformance

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/protomon/protomon/codec"
	"github.com/protomon/protomon/internal/errors"
	"github.com/protomon/protomon/wire"
)

// TestTinyRoundTrip exercises message P { string n=1; int32 i=2; } with
// {n="Alice", i=123}, which must encode to exactly 0A 05 "Alice" 10 7B.
func TestTinyRoundTrip(t *testing.T) {
	p := person{Name: "Alice", ID: 123}
	want := []byte{0x0A, 0x05, 'A', 'l', 'i', 'c', 'e', 0x10, 0x7B}

	got := encodePerson(p)
	if !bytes.Equal(got, want) {
		t.Fatalf("encodePerson(%+v) = % X, want % X", p, got, want)
	}
	if len(got) != 9 {
		t.Fatalf("len(encoded) = %d, want 9", len(got))
	}

	decoded, err := decodePerson(got)
	if err != nil {
		t.Fatalf("decodePerson: %v", err)
	}
	if decoded != p {
		t.Fatalf("decodePerson(encodePerson(p)) = %+v, want %+v", decoded, p)
	}
}

// TestVarintEdge pins down the boundary behavior of the maximal varint:
// u64::MAX encodes to nine 0xFF continuation bytes followed by 0x01, and
// setting the continuation bit on that tenth byte and appending an eleventh
// byte must fail InvalidVarInt.
func TestVarintEdge(t *testing.T) {
	const maxU64 = ^uint64(0)
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}

	got := wire.AppendVarint(nil, maxU64)
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendVarint(MAX) = % X, want % X", got, want)
	}
	if n := wire.SizeVarint(maxU64); n != 10 {
		t.Fatalf("SizeVarint(MAX) = %d, want 10", n)
	}

	v, n, err := wire.ConsumeVarint(got)
	if err != nil || v != maxU64 || n != 10 {
		t.Fatalf("ConsumeVarint(golden) = (%d, %d, %v), want (%d, 10, nil)", v, n, err, maxU64)
	}

	overlong := append(append([]byte{}, got[:9]...), 0x81, 0x01)
	if _, _, err := wire.ConsumeVarint(overlong); !errors.Is(err, errors.KindInvalidVarInt) {
		t.Fatalf("ConsumeVarint(overlong) error = %v, want InvalidVarInt", err)
	}
}

// TestZigZag pins down the three ZigZag scenarios: -1, the largest positive
// sint32, and the smallest (most negative) sint32.
func TestZigZag(t *testing.T) {
	for _, tt := range []struct {
		v    codec.Sint32
		want []byte
	}{
		{v: -1, want: []byte{0x01}},
		{v: 2147483647, want: []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x0F}},
		{v: -2147483648, want: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	} {
		got := tt.v.Encode(nil)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Sint32(%d).Encode() = % X, want % X", tt.v, got, tt.want)
		}
		var back codec.Sint32
		buf := got
		if err := back.DecodeInto(&buf, 0); err != nil {
			t.Errorf("Sint32(%d) DecodeInto: %v", tt.v, err)
		}
		if back != tt.v {
			t.Errorf("Sint32(%d) round-trip = %d", tt.v, back)
		}
	}
}

// TestLazyRepeatedScan builds the wire stream for
// [(tag=1,int32=42), (tag=2,string="hi"), (tag=1,int32=99), (tag=2,string="bye")]
// and checks that a lazily-scanned Repeated[string] on tag 2 records
// count=2 and yields ["hi", "bye"] on iteration, matching an eagerly
// decoded sequence over the same bytes.
func TestLazyRepeatedScan(t *testing.T) {
	var msg []byte
	msg = wire.AppendTag(msg, 1, wire.VarintType)
	msg = codec.EncodeInt32(msg, 42)
	msg = wire.AppendTag(msg, 2, wire.LenType)
	msg = codec.NewProtoString("hi").Encode(msg)
	msg = wire.AppendTag(msg, 1, wire.VarintType)
	msg = codec.EncodeInt32(msg, 99)
	msg = wire.AppendTag(msg, 2, wire.LenType)
	msg = codec.NewProtoString("bye").Encode(msg)

	elem := codec.ElementCodec[string]{
		WireType: wire.LenType,
		Decode: func(buf *[]byte) (string, error) {
			var s codec.ProtoString
			if err := s.DecodeInto(buf, 0); err != nil {
				return "", err
			}
			return s.String(), nil
		},
		Encode:     func(b []byte, v string) []byte { return codec.NewProtoString(v).Encode(b) },
		EncodedLen: func(v string) int { return codec.NewProtoString(v).EncodedLen() },
	}

	var xs codec.Repeated[string]
	xs.InitLazy(elem, msg, 2)

	buf := msg
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			t.Fatal(err)
		}
		offset := len(msg) - len(buf) + n
		buf = buf[n:]
		if tag == 2 {
			if err := xs.DecodeInto(&buf, offset); err != nil {
				t.Fatal(err)
			}
		} else {
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				t.Fatal(err)
			}
			buf = rest
		}
	}

	if xs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", xs.Len())
	}
	vals, err := xs.Values()
	if err != nil {
		t.Fatalf("Values(): %v", err)
	}
	if want := []string{"hi", "bye"}; !reflect.DeepEqual(vals, want) {
		t.Fatalf("Values() = %v, want %v", vals, want)
	}
}

// TestMapLastWins decodes two map<string,int32> entries sharing key "k"
// with values 10 then 20; the decoded map must contain only {"k": 20}.
func TestMapLastWins(t *testing.T) {
	entryCodec := codec.MapEntryCodec[string, int32]{
		KeyWireType:   wire.LenType,
		ValueWireType: wire.VarintType,
		DecodeKey: func(buf *[]byte) (string, error) {
			var s codec.ProtoString
			if err := s.DecodeInto(buf, 0); err != nil {
				return "", err
			}
			return s.String(), nil
		},
		DecodeValue: func(buf *[]byte) (int32, error) { return codec.DecodeInt32(buf) },
		EncodeKey:   func(b []byte, k string) []byte { return codec.NewProtoString(k).Encode(b) },
		EncodeValue: func(b []byte, v int32) []byte { return codec.EncodeInt32(b, v) },
		KeyLen:      func(k string) int { return codec.NewProtoString(k).EncodedLen() },
		ValueLen:    func(v int32) int { return codec.EncodedLenInt32(v) },
	}

	entry := func(key string, val int32) []byte {
		var b []byte
		b = wire.AppendTag(b, 1, wire.LenType)
		b = codec.NewProtoString(key).Encode(b)
		b = wire.AppendTag(b, 2, wire.VarintType)
		b = codec.EncodeInt32(b, val)
		return b
	}

	m := map[string]int32{}
	if err := codec.DecodeMapEntryInto(entry("k", 10), m, entryCodec); err != nil {
		t.Fatalf("entry 1: %v", err)
	}
	if err := codec.DecodeMapEntryInto(entry("k", 20), m, entryCodec); err != nil {
		t.Fatalf("entry 2: %v", err)
	}

	if len(m) != 1 || m["k"] != 20 {
		t.Fatalf("decoded map = %v, want {k: 20}", m)
	}
}

// TestDefaultElision checks that a proto3 scalar field holding its
// type-zero default is absent from the encoded bytes.
func TestDefaultElision(t *testing.T) {
	got := encodePerson(person{})
	if len(got) != 0 {
		t.Fatalf("encodePerson(zero value) = % X, want empty", got)
	}
}

// TestBoundaryBehaviors covers the remaining boundary rejections: an
// oversized 32-bit varint, a non-UTF-8 string payload, and a packed fixed32
// payload whose length is not a multiple of 4.
func TestBoundaryBehaviors(t *testing.T) {
	t.Run("varint32 bits above bit 32 rejected", func(t *testing.T) {
		overflowing := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
		if _, _, err := wire.ConsumeVarint32(overflowing); !errors.Is(err, errors.KindInvalidVarInt) {
			t.Fatalf("ConsumeVarint32(overflow) error = %v, want InvalidVarInt", err)
		}
	})

	t.Run("non-UTF-8 string rejected", func(t *testing.T) {
		var s codec.ProtoString
		buf := []byte{0x02, 0xFF, 0xFE}
		if err := s.DecodeInto(&buf, 0); !errors.Is(err, errors.KindInvalidUtf8) {
			t.Fatalf("ProtoString.DecodeInto(invalid utf-8) error = %v, want InvalidUtf8", err)
		}
	})

	t.Run("packed fixed32 length not a multiple of 4 rejected", func(t *testing.T) {
		_, err := codec.DecodeFixed32Batch([]byte{0, 0, 0})
		if !errors.Is(err, errors.KindInvalidPackedLength) {
			t.Fatalf("DecodeFixed32Batch(3 bytes) error = %v, want InvalidPackedLength", err)
		}
	})
}
