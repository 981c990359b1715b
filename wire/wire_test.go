package wire

import (
	"bytes"
	"testing"

	"github.com/protomon/protomon/internal/errors"
)

func TestVarintRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1, ^uint64(0)}
	for _, v := range vals {
		b := AppendVarint(nil, v)
		got, n, err := ConsumeVarint(b)
		if err != nil {
			t.Fatalf("ConsumeVarint(%d) error: %v", v, err)
		}
		if got != v || n != len(b) {
			t.Fatalf("roundtrip(%d) = (%d, %d), want (%d, %d)", v, got, n, v, len(b))
		}
		if len(b) != SizeVarint(v) {
			t.Fatalf("SizeVarint(%d) = %d, want %d", v, SizeVarint(v), len(b))
		}
	}
}

func TestVarintMaxU64(t *testing.T) {
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	v, n, err := ConsumeVarint(b)
	if err != nil || v != ^uint64(0) || n != 10 {
		t.Fatalf("ConsumeVarint(maxU64 bytes) = (%d, %d, %v)", v, n, err)
	}
	if SizeVarint(v) != 10 {
		t.Fatalf("SizeVarint(max) = %d, want 10", SizeVarint(v))
	}
}

func TestVarintOverflow(t *testing.T) {
	// 10th byte has a bit above bit 0 set -> overflow.
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02}
	_, _, err := ConsumeVarint(b)
	if !errors.Is(err, errors.KindInvalidVarInt) {
		t.Fatalf("ConsumeVarint overflow: got %v, want InvalidVarInt", err)
	}
}

func TestVarintContinuationOnFinalByte(t *testing.T) {
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x81, 0x00}
	_, _, err := ConsumeVarint(b)
	if !errors.Is(err, errors.KindInvalidVarInt) {
		t.Fatalf("expected InvalidVarInt, got %v", err)
	}
}

func TestVarintTruncated(t *testing.T) {
	_, _, err := ConsumeVarint([]byte{0x80})
	if !errors.Is(err, errors.KindUnexpectedEndOfBuffer) {
		t.Fatalf("expected UnexpectedEndOfBuffer, got %v", err)
	}
	_, _, err = ConsumeVarint(nil)
	if !errors.Is(err, errors.KindUnexpectedEndOfBuffer) {
		t.Fatalf("expected UnexpectedEndOfBuffer, got %v", err)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	cases := []struct {
		tag uint32
		wt  Type
	}{
		{1, VarintType}, {2, LenType}, {19000, I64Type}, {MaximumTag, I32Type},
	}
	for _, c := range cases {
		b := AppendTag(nil, c.tag, c.wt)
		tag, wt, n, err := ConsumeTag(b)
		if err != nil || tag != c.tag || wt != c.wt || n != len(b) {
			t.Fatalf("roundtrip(%d,%v) = (%d,%v,%d,%v)", c.tag, c.wt, tag, wt, n, err)
		}
	}
}

func TestDecodeKeyExamples(t *testing.T) {
	// Field 1, wire type 0: key = (1<<3)|0 = 8
	tag, wt, _, err := ConsumeTag([]byte{0x08})
	if err != nil || tag != 1 || wt != VarintType {
		t.Fatalf("got (%d,%v,%v)", tag, wt, err)
	}
	// Field 2, wire type 2: key = (2<<3)|2 = 18
	tag, wt, _, err = ConsumeTag([]byte{0x12})
	if err != nil || tag != 2 || wt != LenType {
		t.Fatalf("got (%d,%v,%v)", tag, wt, err)
	}
}

func TestConsumeLenExamples(t *testing.T) {
	cases := []struct {
		b    []byte
		want int
	}{
		{[]byte{0}, 0},
		{[]byte{127}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xAC, 0x02}, 300},
	}
	for _, c := range cases {
		got, _, err := ConsumeLen(c.b)
		if err != nil || got != c.want {
			t.Fatalf("ConsumeLen(%v) = (%d, %v), want %d", c.b, got, err, c.want)
		}
	}
}

func TestSkipField(t *testing.T) {
	rest, err := SkipField([]byte{42, 99}, VarintType)
	if err != nil || !bytes.Equal(rest, []byte{99}) {
		t.Fatalf("skip varint: rest=%v err=%v", rest, err)
	}
	rest, err = SkipField([]byte{1, 2, 3, 4, 99}, I32Type)
	if err != nil || !bytes.Equal(rest, []byte{99}) {
		t.Fatalf("skip i32: rest=%v err=%v", rest, err)
	}
	rest, err = SkipField([]byte{1, 2, 3, 4, 5, 6, 7, 8, 99}, I64Type)
	if err != nil || !bytes.Equal(rest, []byte{99}) {
		t.Fatalf("skip i64: rest=%v err=%v", rest, err)
	}
	rest, err = SkipField([]byte{3, 1, 2, 3, 99}, LenType)
	if err != nil || !bytes.Equal(rest, []byte{99}) {
		t.Fatalf("skip len: rest=%v err=%v", rest, err)
	}
	if _, err := SkipField(nil, SGroupType); !errors.Is(err, errors.KindDeprecatedGroupEncoding) {
		t.Fatalf("expected DeprecatedGroupEncoding, got %v", err)
	}
	if _, err := SkipField(nil, EGroupType); !errors.Is(err, errors.KindDeprecatedGroupEncoding) {
		t.Fatalf("expected DeprecatedGroupEncoding, got %v", err)
	}
}
