// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"strings"
	"testing"
)

func TestDecodeErrorMessages(t *testing.T) {
	tests := []struct {
		label string
		err   error
		want  string
	}{
		{"InvalidWireType", InvalidWireType(6), "invalid wire type 6"},
		{"InvalidKey", InvalidKey("empty buffer"), "invalid field key: empty buffer"},
		{"InvalidVarInt", InvalidVarInt(), "invalid varint"},
		{"UnexpectedEndOfBuffer", UnexpectedEndOfBuffer(), "unexpected end of buffer"},
		{"DeprecatedGroupEncoding", DeprecatedGroupEncoding(), "deprecated group"},
		{"InvalidUtf8", InvalidUtf8(), "invalid UTF-8"},
		{"InvalidPackedLength", InvalidPackedLength(4, 6), "not a multiple of 4"},
		{"MissingRequiredOneof", MissingRequiredOneof("widget"), `"widget"`},
		{"ProgrammingError", ProgrammingError("bad state"), "bad state"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.HasPrefix(got, "proto:") {
				t.Errorf("missing proto: prefix in %q", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := InvalidVarInt()
	if !Is(err, KindInvalidVarInt) {
		t.Errorf("Is(err, KindInvalidVarInt) = false, want true")
	}
	if Is(err, KindInvalidUtf8) {
		t.Errorf("Is(err, KindInvalidUtf8) = true, want false")
	}
	if Is(nil, KindInvalidVarInt) {
		t.Errorf("Is(nil, ...) = true, want false")
	}
}

func TestNewPrefix(t *testing.T) {
	e1 := New("abc")
	got := e1.Error()
	if !strings.HasPrefix(got, "proto:") {
		t.Errorf("missing \"proto:\" prefix in %q", got)
	}
	if !strings.Contains(got, "abc") {
		t.Errorf("missing text \"abc\" in %q", got)
	}

	e2 := New("%v", e1)
	got = e2.Error()
	if !strings.HasPrefix(got, "proto:") {
		t.Errorf("missing \"proto:\" prefix in %q", got)
	}
	if strings.Contains(strings.TrimPrefix(got, "proto:"), "proto:") {
		t.Errorf("prefix \"proto:\" not elided in embedded error: %q", got)
	}
}
