package codec

import (
	"testing"

	"github.com/protomon/protomon/wire"
)

func stringUint32MapCodec() MapEntryCodec[string, uint32] {
	return MapEntryCodec[string, uint32]{
		KeyWireType:   wire.LenType,
		ValueWireType: wire.VarintType,
		DecodeKey: func(buf *[]byte) (string, error) {
			var s ProtoString
			if err := s.DecodeInto(buf, 0); err != nil {
				return "", err
			}
			return s.String(), nil
		},
		DecodeValue: func(buf *[]byte) (uint32, error) { return DecodeUint32(buf) },
		EncodeKey:   func(b []byte, k string) []byte { return NewProtoString(k).Encode(b) },
		EncodeValue: func(b []byte, v uint32) []byte { return EncodeUint32(b, v) },
		KeyLen:      func(k string) int { return NewProtoString(k).EncodedLen() },
		ValueLen:    func(v uint32) int { return EncodedLenUint32(v) },
	}
}

func buildMapEntryBody(key string, val uint32) []byte {
	var b []byte
	b = wire.AppendTag(b, 1, wire.LenType)
	b = NewProtoString(key).Encode(b)
	b = wire.AppendTag(b, 2, wire.VarintType)
	b = EncodeUint32(b, val)
	return b
}

func TestDecodeMapEntrySingle(t *testing.T) {
	m := map[string]uint32{}
	entry := buildMapEntryBody("a", 1)
	if err := DecodeMapEntryInto(entry, m, stringUint32MapCodec()); err != nil {
		t.Fatalf("DecodeMapEntryInto: %v", err)
	}
	if m["a"] != 1 {
		t.Fatalf("m[a] = %d, want 1", m["a"])
	}
}

// TestMapLastWins exercises duplicate-key last-wins map semantics: when the
// same key appears twice across separate map entries on the wire, the later
// occurrence's value wins.
func TestMapLastWins(t *testing.T) {
	m := map[string]uint32{}
	codec := stringUint32MapCodec()

	if err := DecodeMapEntryInto(buildMapEntryBody("k", 1), m, codec); err != nil {
		t.Fatalf("entry 1: %v", err)
	}
	if err := DecodeMapEntryInto(buildMapEntryBody("other", 9), m, codec); err != nil {
		t.Fatalf("entry 2: %v", err)
	}
	if err := DecodeMapEntryInto(buildMapEntryBody("k", 2), m, codec); err != nil {
		t.Fatalf("entry 3: %v", err)
	}

	if m["k"] != 2 {
		t.Fatalf(`m["k"] = %d, want 2 (last-wins)`, m["k"])
	}
	if m["other"] != 9 {
		t.Fatalf(`m["other"] = %d, want 9`, m["other"])
	}
	if len(m) != 2 {
		t.Fatalf("len(m) = %d, want 2", len(m))
	}
}

func TestMapEntryMissingFieldsDefault(t *testing.T) {
	m := map[string]uint32{}
	// An entry with neither tag present: both key and value default to zero.
	if err := DecodeMapEntryInto(nil, m, stringUint32MapCodec()); err != nil {
		t.Fatalf("DecodeMapEntryInto(empty): %v", err)
	}
	if v, ok := m[""]; !ok || v != 0 {
		t.Fatalf(`m[""] = (%d, %v), want (0, true)`, v, ok)
	}
}

func TestEncodeMapEntryRoundTrip(t *testing.T) {
	codec := stringUint32MapCodec()
	b := EncodeMapEntry(nil, 5, "x", 7, codec)

	tag, wt, n, err := wire.ConsumeTag(b)
	if err != nil {
		t.Fatalf("ConsumeTag: %v", err)
	}
	if tag != 5 || wt != wire.LenType {
		t.Fatalf("tag/wt = %d/%v, want 5/Len", tag, wt)
	}
	b = b[n:]
	length, n, err := wire.ConsumeLen(b)
	if err != nil {
		t.Fatalf("ConsumeLen: %v", err)
	}
	b = b[n:]
	entry := b[:length]

	m := map[string]uint32{}
	if err := DecodeMapEntryInto(entry, m, codec); err != nil {
		t.Fatalf("DecodeMapEntryInto: %v", err)
	}
	if m["x"] != 7 {
		t.Fatalf(`m["x"] = %d, want 7`, m["x"])
	}

	wantLen := EncodedMapEntryLen(5, "x", uint32(7), codec)
	if got := len(EncodeMapEntry(nil, 5, "x", 7, codec)); got != wantLen {
		t.Fatalf("EncodedMapEntryLen = %d, actual = %d", wantLen, got)
	}
}
