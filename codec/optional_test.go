package codec

import "testing"

func TestDecodeOptional(t *testing.T) {
	var dst *int32
	calls := 0
	decode := func() (int32, error) {
		calls++
		return 7, nil
	}
	if err := DecodeOptional(&dst, decode); err != nil {
		t.Fatalf("DecodeOptional: %v", err)
	}
	if dst == nil || *dst != 7 {
		t.Fatalf("dst = %v, want pointer to 7", dst)
	}
	if calls != 1 {
		t.Fatalf("decode called %d times, want 1", calls)
	}

	// A second decode overwrites (last-wins), not appends.
	decode2 := func() (int32, error) { return 9, nil }
	if err := DecodeOptional(&dst, decode2); err != nil {
		t.Fatalf("DecodeOptional (second): %v", err)
	}
	if dst == nil || *dst != 9 {
		t.Fatalf("dst after overwrite = %v, want pointer to 9", dst)
	}
}

func TestDecodeOptionalError(t *testing.T) {
	var dst *int32
	wantErr := errUnexpectedEOF()
	err := DecodeOptional(&dst, func() (int32, error) { return 0, wantErr })
	if err != wantErr {
		t.Fatalf("DecodeOptional error = %v, want %v", err, wantErr)
	}
	if dst != nil {
		t.Fatalf("dst = %v, want nil on decode error", dst)
	}
}

func TestEncodeOptionalAbsent(t *testing.T) {
	var v *int32
	called := false
	got := EncodeOptional(nil, v, func(b []byte, val int32) []byte {
		called = true
		return append(b, byte(val))
	})
	if called {
		t.Fatal("encode called for a nil (absent) value")
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestEncodeOptionalPresent(t *testing.T) {
	v := int32(42)
	got := EncodeOptional(nil, &v, func(b []byte, val int32) []byte {
		return append(b, byte(val))
	})
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("got %v, want [42]", got)
	}
}

func TestEncodedOptionalLen(t *testing.T) {
	if n := EncodedOptionalLen[int32](nil, func(int32) int { return 100 }); n != 0 {
		t.Fatalf("EncodedOptionalLen(nil) = %d, want 0", n)
	}
	v := int32(5)
	if n := EncodedOptionalLen(&v, func(val int32) int { return int(val) + 1 }); n != 6 {
		t.Fatalf("EncodedOptionalLen(&5) = %d, want 6", n)
	}
}
