package codec

import (
	"testing"

	"github.com/protomon/protomon/wire"
)

// testLeaf is a minimal hand-written ProtoMessage used only to exercise
// LazyMessage[T] without depending on the generator.
type testLeaf struct {
	Value int32
}

func (m *testLeaf) DecodeMessage(buf []byte) error {
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
		switch tag {
		case 1:
			v, err := DecodeInt32(&buf)
			if err != nil {
				return err
			}
			m.Value = v
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return err
			}
			buf = rest
		}
	}
	return nil
}

func (m *testLeaf) EncodeMessage(b []byte) []byte {
	if !IsInt32Default(m.Value) {
		b = wire.AppendTag(b, 1, wire.VarintType)
		b = EncodeInt32(b, m.Value)
	}
	return b
}

func (m *testLeaf) EncodedMessageLen() int {
	if IsInt32Default(m.Value) {
		return 0
	}
	return wire.SizeTag(1) + EncodedLenInt32(m.Value)
}

func TestLazyMessageRoundTrip(t *testing.T) {
	inner := &testLeaf{Value: 7}
	var outer []byte
	outer = EncodeMessageField(outer, inner)

	var lm LazyMessage[*testLeaf]
	buf := outer
	if err := lm.DecodeInto(&buf, 0); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	got, err := lm.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Value != 7 {
		t.Fatalf("Value = %d, want 7", got.Value)
	}
}

func TestLazyMessageDecodeIsIdempotent(t *testing.T) {
	inner := &testLeaf{Value: 42}
	var outer []byte
	outer = EncodeMessageField(outer, inner)

	var lm LazyMessage[*testLeaf]
	buf := outer
	if err := lm.DecodeInto(&buf, 0); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	first, err := lm.Decode()
	if err != nil {
		t.Fatalf("Decode (1st): %v", err)
	}
	second, err := lm.Decode()
	if err != nil {
		t.Fatalf("Decode (2nd): %v", err)
	}
	if first.Value != second.Value {
		t.Fatalf("Decode not idempotent: %d != %d", first.Value, second.Value)
	}
	if first == second {
		t.Fatal("expected distinct instances from repeated Decode calls, got same pointer")
	}
}

func TestLazyMessageDefaultIsAbsent(t *testing.T) {
	var lm LazyMessage[*testLeaf]
	if !lm.IsProtoDefault() {
		t.Fatal("zero-value LazyMessage should be default/absent")
	}
	if len(lm.Encode(nil)) != 0 {
		t.Fatal("absent LazyMessage must encode to nothing")
	}
	got, err := lm.Decode()
	if err != nil {
		t.Fatalf("Decode on absent: %v", err)
	}
	if got.Value != 0 {
		t.Fatalf("Decode on absent should yield zero value, got %d", got.Value)
	}
}
