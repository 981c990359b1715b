package codec

import "github.com/protomon/protomon/wire"

// ElementCodec bundles the wire-type and encode/decode functions for one
// repeated field's element type. Go has no trait objects, so generated code
// passes these as plain closures rather than requiring T to implement an
// interface with a pointer-receiver DecodeInto method — the Go-idiomatic
// equivalent of Rust's per-type ProtoDecode/ProtoEncode impls.
type ElementCodec[T any] struct {
	WireType   wire.Type
	Decode     func(buf *[]byte) (T, error)
	Encode     func(b []byte, v T) []byte
	EncodedLen func(v T) int
}

// lazyRepeatedState is the "Lazy" variant of Repeated[T], grounded on
// original_source/protomon/src/codec/repeated.rs's Repeated<T>::Lazy.
type lazyRepeatedState struct {
	buf       []byte // the whole parent message buffer
	tag       uint32
	count     int
	minOffset int // -1 until the first occurrence is recorded
	valuesLen int
}

// Repeated is a tagged union: after decoding, it holds only occurrence
// metadata (Lazy) and scans for values on demand; when built up
// programmatically for encoding, it holds owned values directly (Owned).
type Repeated[T any] struct {
	codec ElementCodec[T]
	owned []T
	lazy  *lazyRepeatedState
}

// NewRepeated constructs an empty Owned Repeated[T] ready for Append, for
// callers building a message to encode.
func NewRepeated[T any](codec ElementCodec[T]) Repeated[T] {
	return Repeated[T]{codec: codec}
}

// InitLazy switches r into the Lazy variant against the given parent
// message buffer and field tag. Called once per field at the top of a
// generated message decoder ("Repeated fields take the
// whole buffer").
func (r *Repeated[T]) InitLazy(codec ElementCodec[T], msgBuf []byte, tag uint32) {
	r.codec = codec
	r.lazy = &lazyRepeatedState{buf: msgBuf, tag: tag, minOffset: -1}
	r.owned = nil
}

// DecodeInto is called once per occurrence of the field's tag during the
// single decode pass. In the Lazy variant it does not decode the value: it
// skips over it (advancing buf) and records count/min_offset/values_len.
// It is a ProgrammingError to call DecodeInto on an Owned Repeated.
func (r *Repeated[T]) DecodeInto(buf *[]byte, offset int) error {
	if r.lazy == nil {
		return errProgrammingErrorDecodeIntoOwned()
	}
	n, err := wire.ConsumeFieldValue(r.codec.WireType, *buf)
	if err != nil {
		return err
	}
	if r.lazy.minOffset == -1 || offset < r.lazy.minOffset {
		r.lazy.minOffset = offset
	}
	r.lazy.count++
	r.lazy.valuesLen += n
	*buf = (*buf)[n:]
	return nil
}

// Append adds v to the Owned variant, switching r to Owned if it was the
// zero value. Mixing Append into a Lazy-decoded Repeated is a programming
// error.
func (r *Repeated[T]) Append(v T) error {
	if r.lazy != nil {
		return errProgrammingErrorAppendLazy()
	}
	r.owned = append(r.owned, v)
	return nil
}

// Len reports the number of elements without decoding any of them: O(1) in
// both variants.
func (r Repeated[T]) Len() int {
	if r.lazy != nil {
		return r.lazy.count
	}
	return len(r.owned)
}

// Values decodes (for Lazy) or returns (for Owned) every element in
// encounter order. This is the "single iterator abstraction"
// describes unifying consumption across both variants.
func (r Repeated[T]) Values() ([]T, error) {
	if r.lazy == nil {
		out := make([]T, len(r.owned))
		copy(out, r.owned)
		return out, nil
	}
	return scanForField(r.codec, r.lazy)
}

// scanForField implements the lazy-scan algorithm: min_offset is the offset
// of the first recorded value (just past its key), so that value is decoded
// first; from there, read keys and skip non-matching fields until the next
// occurrence of the recorded tag is found, decoding each match via the
// element codec, continuing until count values have been produced.
func scanForField[T any](codec ElementCodec[T], st *lazyRepeatedState) ([]T, error) {
	out := make([]T, 0, st.count)
	if st.count == 0 {
		return out, nil
	}
	buf := st.buf[st.minOffset:]
	first, err := codec.Decode(&buf)
	if err != nil {
		return nil, err
	}
	out = append(out, first)
	for len(out) < st.count && len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		if tag != st.tag {
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
			continue
		}
		v, err := codec.Decode(&buf)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeTagged emits every element as a standalone field with the given
// tag (unpacked repeated encoding).
func (r Repeated[T]) EncodeTagged(b []byte, tag uint32) ([]byte, error) {
	vals, err := r.Values()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		b = wire.AppendTag(b, tag, r.codec.WireType)
		b = r.codec.Encode(b, v)
	}
	return b, nil
}

// EncodedTaggedLen reports the total encoded length of EncodeTagged's
// output.
func (r Repeated[T]) EncodedTaggedLen(tag uint32) (int, error) {
	vals, err := r.Values()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, v := range vals {
		total += wire.SizeTag(tag) + r.codec.EncodedLen(v)
	}
	return total, nil
}
