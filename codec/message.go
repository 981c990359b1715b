package codec

import (
	"reflect"

	"github.com/protomon/protomon/wire"
)

// ProtoMessage is implemented by every generated message type: it can parse
// its fields from a message body (the bytes after the length prefix) and
// re-encode itself.
type ProtoMessage interface {
	DecodeMessage(buf []byte) error
	EncodeMessage(b []byte) []byte
	EncodedMessageLen() int
}

// DecodeMessageField reads a length prefix, borrows the inner slice
// (zero-copy), and eagerly decodes it into dst. This is the "eager" nested
// message mode.
func DecodeMessageField(buf *[]byte, dst ProtoMessage) error {
	length, n, err := wire.ConsumeLen(*buf)
	if err != nil {
		return err
	}
	rest := (*buf)[n:]
	if len(rest) < length {
		return errUnexpectedEOF()
	}
	inner := rest[:length]
	*buf = rest[length:]
	return dst.DecodeMessage(inner)
}

// EncodeMessageField writes a length-prefixed encoding of m to b. Unlike a
// marshaler that reserves a speculative one-byte length and shifts the
// body if it guessed wrong, this codec's EncodedMessageLen is always exact
// up front, so the length varint is written directly with no speculative
// shift-and-fix step.
func EncodeMessageField(b []byte, m ProtoMessage) []byte {
	b = wire.AppendVarint(b, uint64(m.EncodedMessageLen()))
	return m.EncodeMessage(b)
}

func EncodedMessageFieldLen(m ProtoMessage) int {
	l := m.EncodedMessageLen()
	return wire.SizeVarint(uint64(l)) + l
}

// LazyMessage defers nested-message parsing until Decode is explicitly
// called, grounded on original_source/protomon/src/codec/message.rs's
// LazyMessage<T>.
type LazyMessage[T ProtoMessage] struct {
	raw []byte // the borrowed message body; nil means "not yet set" (default)
}

func (LazyMessage[T]) WireType() wire.Type { return wire.LenType }

// DecodeInto reads the length prefix and stores the inner bytes without
// parsing them.
func (m *LazyMessage[T]) DecodeInto(buf *[]byte, offset int) error {
	length, n, err := wire.ConsumeLen(*buf)
	if err != nil {
		return err
	}
	rest := (*buf)[n:]
	if len(rest) < length {
		return errUnexpectedEOF()
	}
	m.raw = rest[:length]
	*buf = rest[length:]
	return nil
}

// Decode parses the stored bytes into a fresh T. It may be called
// repeatedly; each call re-parses from the stored buffer (idempotent, no
// cached result — matching the Rust source's "a later .decode() call parses
// on demand and may be called repeatedly").
func (m LazyMessage[T]) Decode() (T, error) {
	// T is a pointer-shaped ProtoMessage in generated code (methods have
	// pointer receivers, e.g. *Node); allocate a fresh zero value of the
	// pointed-to struct via reflection, since Go generics have no "new T"
	// operator for pointer-shaped type parameters.
	out := newZero[T]()
	if m.raw == nil {
		return out, nil
	}
	if err := out.DecodeMessage(m.raw); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// newZero allocates a fresh instance of T, which is expected to be a
// pointer-shaped ProtoMessage (e.g. *Node). Falls back to the bare zero
// value for non-pointer T.
func newZero[T ProtoMessage]() T {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface().(T)
	}
	return zero
}

// Raw exposes the stored (possibly nil) message body.
func (m LazyMessage[T]) Raw() []byte { return m.raw }

func (m LazyMessage[T]) Encode(b []byte) []byte {
	if m.raw == nil {
		return b
	}
	b = wire.AppendVarint(b, uint64(len(m.raw)))
	return append(b, m.raw...)
}

func (m LazyMessage[T]) EncodedLen() int {
	if m.raw == nil {
		return 0
	}
	return wire.SizeVarint(uint64(len(m.raw))) + len(m.raw)
}

func (m LazyMessage[T]) IsProtoDefault() bool { return m.raw == nil }
