package codec

import (
	"encoding/binary"
	"math"

	"github.com/protomon/protomon/internal/errors"
	"github.com/protomon/protomon/wire"
)

// ProtoPacked stores the raw chunks of a packed repeated field. A packed
// field may legally appear more than once on the wire (each occurrence is
// its own LEN-wrapped chunk); this type accumulates chunks in order without
// copying, grounded on original_source/protomon/src/codec/packed.rs's
// ProtoPacked<T>.
type ProtoPacked[T any] struct {
	chunks [][]byte
	decode func(buf *[]byte) (T, error)
}

func NewProtoPacked[T any](decode func(buf *[]byte) (T, error)) ProtoPacked[T] {
	return ProtoPacked[T]{decode: decode}
}

func (ProtoPacked[T]) WireType() wire.Type { return wire.LenType }

// DecodeInto appends one more chunk (this occurrence's bytes) to the store.
func (p *ProtoPacked[T]) DecodeInto(buf *[]byte, offset int) error {
	length, n, err := wire.ConsumeLen(*buf)
	if err != nil {
		return err
	}
	rest := (*buf)[n:]
	if len(rest) < length {
		return errUnexpectedEOF()
	}
	p.chunks = append(p.chunks, rest[:length])
	*buf = rest[length:]
	return nil
}

// Values decodes every element across every stored chunk in order, via the
// general lazy per-element iterator (PackedIter in spec terms).
func (p ProtoPacked[T]) Values() ([]T, error) {
	var out []T
	for _, chunk := range p.chunks {
		buf := chunk
		for len(buf) > 0 {
			v, err := p.decode(&buf)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// --- PackedDecode: monomorphic batch decoders per element type, grounded on
// original_source/protomon/src/codec/packed.rs.

// DecodeFixed32Batch decodes a packed fixed32/sfixed32/float payload,
// validating len%4==0, using an unrolled 4-per-iteration little-endian
// read with a scalar tail.
func DecodeFixed32Batch(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, errors.InvalidPackedLength(4, len(b))
	}
	n := len(b) / 4
	out := make([]uint32, n)
	i := 0
	for ; i+4 <= n; i += 4 {
		off := i * 4
		out[i+0] = binary.LittleEndian.Uint32(b[off+0:])
		out[i+1] = binary.LittleEndian.Uint32(b[off+4:])
		out[i+2] = binary.LittleEndian.Uint32(b[off+8:])
		out[i+3] = binary.LittleEndian.Uint32(b[off+12:])
	}
	for ; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

// DecodeFixed64Batch is the 8-byte analogue, 2-per-iteration unrolled.
func DecodeFixed64Batch(b []byte) ([]uint64, error) {
	if len(b)%8 != 0 {
		return nil, errors.InvalidPackedLength(8, len(b))
	}
	n := len(b) / 8
	out := make([]uint64, n)
	i := 0
	for ; i+2 <= n; i += 2 {
		off := i * 8
		out[i+0] = binary.LittleEndian.Uint64(b[off+0:])
		out[i+1] = binary.LittleEndian.Uint64(b[off+8:])
	}
	for ; i < n; i++ {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return out, nil
}

func DecodeFloatBatch(b []byte) ([]float32, error) {
	raw, err := DecodeFixed32Batch(b)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw))
	for i, u := range raw {
		out[i] = math.Float32frombits(u)
	}
	return out, nil
}

func DecodeDoubleBatch(b []byte) ([]float64, error) {
	raw, err := DecodeFixed64Batch(b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, u := range raw {
		out[i] = math.Float64frombits(u)
	}
	return out, nil
}

// maxLebBytes bounds the fast/safe varint-batch switch in DecodeVarintBatch,
// matching original_source/protomon/src/leb128.rs's MAX_LEB_BYTES threshold.
const maxLebBytes = wire.MaxVarintBytes

// DecodeVarintBatch decodes every varint in a packed payload. While at
// least maxLebBytes bytes remain it invokes wire.ConsumeVarintFast directly
// (its precondition holds unconditionally in that case), avoiding the
// scratch-buffer copy wire.ConsumeVarint's safe entry point pays per
// element; once fewer than maxLebBytes bytes remain it falls back to the
// checked path for the final element(s).
func DecodeVarintBatch(b []byte) ([]uint64, error) {
	var out []uint64
	for len(b) > 0 {
		var v uint64
		var n int
		var err error
		if len(b) >= maxLebBytes {
			v, n, err = wire.ConsumeVarintFast(b)
		} else {
			v, n, err = wire.ConsumeVarint(b)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		b = b[n:]
	}
	return out, nil
}

// DecodeBoolBatch decodes a packed bool payload. Per the recorded
// open-question resolution, each varint is decoded as a full uint64 and
// compared against zero (the wire format permits a multi-byte encoding of
// "true").
func DecodeBoolBatch(b []byte) ([]bool, error) {
	raw, err := DecodeVarintBatch(b)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(raw))
	for i, v := range raw {
		out[i] = v != 0
	}
	return out, nil
}
