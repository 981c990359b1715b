package codec

import (
	"unicode/utf8"

	"github.com/protomon/protomon/internal/errors"
	"github.com/protomon/protomon/wire"
)

// ProtoString stores a borrowed (zero-copy) slice of the decode buffer,
// grounded on original_source/protomon/src/codec/delimited.rs's ProtoString.
// Go's garbage collector keeps the backing array alive as long as this
// slice references it, so no explicit refcounting is needed to reproduce
// the Rust bytes::Bytes sharing semantics (see DESIGN.md).
type ProtoString struct {
	b []byte
}

func NewProtoString(s string) ProtoString { return ProtoString{b: []byte(s)} }

func (ProtoString) WireType() wire.Type { return wire.LenType }

func (s ProtoString) String() string { return string(s.b) }

func (s ProtoString) Encode(b []byte) []byte {
	b = wire.AppendVarint(b, uint64(len(s.b)))
	return append(b, s.b...)
}

func (s ProtoString) EncodedLen() int {
	return wire.SizeVarint(uint64(len(s.b))) + len(s.b)
}

func (s ProtoString) IsProtoDefault() bool { return len(s.b) == 0 }

// DecodeInto reads a length prefix, borrows that many bytes from buf
// (zero-copy), and validates UTF-8 before exposing the value.
func (s *ProtoString) DecodeInto(buf *[]byte, offset int) error {
	length, n, err := wire.ConsumeLen(*buf)
	if err != nil {
		return err
	}
	rest := (*buf)[n:]
	if len(rest) < length {
		return errors.UnexpectedEndOfBuffer()
	}
	data := rest[:length]
	if !utf8.Valid(data) {
		return errors.InvalidUtf8()
	}
	s.b = data
	*buf = rest[length:]
	return nil
}

// ProtoBytes is ProtoString's raw-bytes sibling: same borrow-and-advance
// shape, no UTF-8 validation.
type ProtoBytes struct {
	b []byte
}

func NewProtoBytes(b []byte) ProtoBytes { return ProtoBytes{b: b} }

func (ProtoBytes) WireType() wire.Type { return wire.LenType }

func (b ProtoBytes) Bytes() []byte { return b.b }

func (b ProtoBytes) Encode(dst []byte) []byte {
	dst = wire.AppendVarint(dst, uint64(len(b.b)))
	return append(dst, b.b...)
}

func (b ProtoBytes) EncodedLen() int {
	return wire.SizeVarint(uint64(len(b.b))) + len(b.b)
}

func (b ProtoBytes) IsProtoDefault() bool { return len(b.b) == 0 }

func (b *ProtoBytes) DecodeInto(buf *[]byte, offset int) error {
	length, n, err := wire.ConsumeLen(*buf)
	if err != nil {
		return err
	}
	rest := (*buf)[n:]
	if len(rest) < length {
		return errors.UnexpectedEndOfBuffer()
	}
	b.b = rest[:length]
	*buf = rest[length:]
	return nil
}
