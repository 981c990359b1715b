// Package codec implements the protobuf value codec: scalars,
// length-delimited strings/bytes, nested messages (eager and lazy),
// repeated fields (lazy-scan and eager), packed repeated fields, maps,
// oneofs, and optional/default-elision rules. Ported in spirit from
// original_source/protomon/src/codec/*.rs.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/protomon/protomon/wire"
)

// ProtoType declares the on-the-wire wire type for a value codec.
type ProtoType interface {
	WireType() wire.Type
}

// Sint32 is a marker type enforcing ZigZag encoding for a 32-bit signed
// integer, mirroring original_source's Sint32 wrapper struct.
type Sint32 int32

func (Sint32) WireType() wire.Type { return wire.VarintType }

func (v Sint32) Encode(b []byte) []byte {
	return wire.AppendVarint(b, zigzagEncode32(int32(v)))
}

func (v Sint32) EncodedLen() int { return wire.SizeVarint(zigzagEncode32(int32(v))) }

func (v *Sint32) DecodeInto(buf *[]byte, offset int) error {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return err
	}
	*v = Sint32(zigzagDecode32(uint32(u)))
	*buf = (*buf)[n:]
	return nil
}

// Sint64 is the 64-bit analogue of Sint32.
type Sint64 int64

func (Sint64) WireType() wire.Type { return wire.VarintType }

func (v Sint64) Encode(b []byte) []byte {
	return wire.AppendVarint(b, zigzagEncode64(int64(v)))
}

func (v Sint64) EncodedLen() int { return wire.SizeVarint(zigzagEncode64(int64(v))) }

func (v *Sint64) DecodeInto(buf *[]byte, offset int) error {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return err
	}
	*v = Sint64(zigzagDecode64(u))
	*buf = (*buf)[n:]
	return nil
}

func zigzagEncode32(n int32) uint64 { return uint64(uint32((n << 1) ^ (n >> 31))) }
func zigzagDecode32(u uint32) int32 { return int32(u>>1) ^ -int32(u&1) }

func zigzagEncode64(n int64) uint64 { return uint64(n<<1) ^ uint64(n>>63) }
func zigzagDecode64(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

// Fixed32 is a marker type enforcing little-endian I32 encoding for an
// unsigned 32-bit integer.
type Fixed32 uint32

func (Fixed32) WireType() wire.Type { return wire.I32Type }

func (v Fixed32) Encode(b []byte) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return append(b, tmp[:]...)
}

func (Fixed32) EncodedLen() int { return 4 }

func (v *Fixed32) DecodeInto(buf *[]byte, offset int) error {
	if len(*buf) < 4 {
		return errUnexpectedEOF()
	}
	*v = Fixed32(binary.LittleEndian.Uint32(*buf))
	*buf = (*buf)[4:]
	return nil
}

// Fixed64 is the 64-bit analogue of Fixed32.
type Fixed64 uint64

func (Fixed64) WireType() wire.Type { return wire.I64Type }

func (v Fixed64) Encode(b []byte) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(b, tmp[:]...)
}

func (Fixed64) EncodedLen() int { return 8 }

func (v *Fixed64) DecodeInto(buf *[]byte, offset int) error {
	if len(*buf) < 8 {
		return errUnexpectedEOF()
	}
	*v = Fixed64(binary.LittleEndian.Uint64(*buf))
	*buf = (*buf)[8:]
	return nil
}

// Sfixed32/Sfixed64 are the signed analogues; same wire shape as Fixed32/64.
type Sfixed32 int32

func (Sfixed32) WireType() wire.Type { return wire.I32Type }
func (v Sfixed32) Encode(b []byte) []byte { return Fixed32(v).Encode(b) }
func (Sfixed32) EncodedLen() int          { return 4 }
func (v *Sfixed32) DecodeInto(buf *[]byte, offset int) error {
	var f Fixed32
	if err := f.DecodeInto(buf, offset); err != nil {
		return err
	}
	*v = Sfixed32(f)
	return nil
}

type Sfixed64 int64

func (Sfixed64) WireType() wire.Type { return wire.I64Type }
func (v Sfixed64) Encode(b []byte) []byte { return Fixed64(v).Encode(b) }
func (Sfixed64) EncodedLen() int          { return 8 }
func (v *Sfixed64) DecodeInto(buf *[]byte, offset int) error {
	var f Fixed64
	if err := f.DecodeInto(buf, offset); err != nil {
		return err
	}
	*v = Sfixed64(f)
	return nil
}

// --- free functions for the built-in scalar kinds (int32, int64, uint32,
// uint64, bool, float32, float64), used directly by generated code since Go
// cannot attach methods to built-in types.

func EncodeInt32(b []byte, v int32) []byte   { return wire.AppendVarint(b, uint64(uint32(v))) }
func EncodeInt64(b []byte, v int64) []byte   { return wire.AppendVarint(b, uint64(v)) }
func EncodeUint32(b []byte, v uint32) []byte { return wire.AppendVarint(b, uint64(v)) }
func EncodeUint64(b []byte, v uint64) []byte { return wire.AppendVarint(b, v) }
func EncodeBool(b []byte, v bool) []byte {
	if v {
		return wire.AppendVarint(b, 1)
	}
	return wire.AppendVarint(b, 0)
}
func EncodeEnum(b []byte, v int32) []byte { return EncodeInt32(b, v) }

func EncodedLenInt32(v int32) int   { return wire.SizeVarint(uint64(uint32(v))) }
func EncodedLenInt64(v int64) int   { return wire.SizeVarint(uint64(v)) }
func EncodedLenUint32(v uint32) int { return wire.SizeVarint(uint64(v)) }
func EncodedLenUint64(v uint64) int { return wire.SizeVarint(v) }
func EncodedLenBool(v bool) int {
	if v {
		return 1
	}
	return 1
}
func EncodedLenEnum(v int32) int { return EncodedLenInt32(v) }

func DecodeInt32(buf *[]byte) (int32, error) {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return 0, err
	}
	*buf = (*buf)[n:]
	return int32(uint32(u)), nil
}

func DecodeInt64(buf *[]byte) (int64, error) {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return 0, err
	}
	*buf = (*buf)[n:]
	return int64(u), nil
}

func DecodeUint32(buf *[]byte) (uint32, error) {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return 0, err
	}
	*buf = (*buf)[n:]
	return uint32(u), nil
}

func DecodeUint64(buf *[]byte) (uint64, error) {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return 0, err
	}
	*buf = (*buf)[n:]
	return u, nil
}

func DecodeBool(buf *[]byte) (bool, error) {
	u, n, err := wire.ConsumeVarint(*buf)
	if err != nil {
		return false, err
	}
	*buf = (*buf)[n:]
	// The packed bool batch decoder (see packed.go) decodes each varint as a
	// full 64-bit value and compares to zero; this scalar path follows the
	// same interpretation.
	return u != 0, nil
}

func DecodeEnum(buf *[]byte) (int32, error) { return DecodeInt32(buf) }

func EncodeFloat(b []byte, v float32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	return append(b, tmp[:]...)
}
func EncodedLenFloat(float32) int { return 4 }
func DecodeFloat(buf *[]byte) (float32, error) {
	if len(*buf) < 4 {
		return 0, errUnexpectedEOF()
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(*buf))
	*buf = (*buf)[4:]
	return v, nil
}

func EncodeDouble(b []byte, v float64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	return append(b, tmp[:]...)
}
func EncodedLenDouble(float64) int { return 8 }
func DecodeDouble(buf *[]byte) (float64, error) {
	if len(*buf) < 8 {
		return 0, errUnexpectedEOF()
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(*buf))
	*buf = (*buf)[8:]
	return v, nil
}
