// Package wire implements the LEB128 varint codec and the field-key/
// length-prefix/skip primitives of the protobuf binary wire format.
package wire

import "github.com/protomon/protomon/internal/errors"

// maxVarintBytes is the maximum number of bytes a 64-bit LEB128 varint can
// occupy on the wire.
const maxVarintBytes = 10

// maxVarintBytes32 is the maximum number of bytes a 32-bit LEB128 varint can
// occupy on the wire.
const maxVarintBytes32 = 5

// lz64ToLen maps leading_zeros(v) (0..64) to the number of bytes
// AppendVarint would write for a uint64 with that many leading zeros.
// Index 64 (v == 0) -> 1 byte; index 0 -> 10 bytes.
var lz64ToLen = [65]int{
	// lz = 0      -> 10 bytes (bit 63 set)
	10,
	// lz = 1..7   -> 9 bytes
	9, 9, 9, 9, 9, 9, 9,
	// lz = 8..14  -> 8 bytes
	8, 8, 8, 8, 8, 8, 8,
	// lz = 15..21 -> 7 bytes
	7, 7, 7, 7, 7, 7, 7,
	// lz = 22..28 -> 6 bytes
	6, 6, 6, 6, 6, 6, 6,
	// lz = 29..35 -> 5 bytes
	5, 5, 5, 5, 5, 5, 5,
	// lz = 36..42 -> 4 bytes
	4, 4, 4, 4, 4, 4, 4,
	// lz = 43..49 -> 3 bytes
	3, 3, 3, 3, 3, 3, 3,
	// lz = 50..56 -> 2 bytes
	2, 2, 2, 2, 2, 2, 2,
	// lz = 57..63 -> 1 byte
	1, 1, 1, 1, 1, 1, 1,
	// lz = 64 (v == 0) -> 1 byte
	1,
}

// lz32ToLen is the 32-bit analogue of lz64ToLen.
var lz32ToLen = [33]int{
	5, 5, 5, 5, // lz 0..3
	4, 4, 4, 4, 4, 4, 4, // lz 4..10
	3, 3, 3, 3, 3, 3, 3, // lz 11..17
	2, 2, 2, 2, 2, 2, 2, // lz 18..24
	1, 1, 1, 1, 1, 1, 1, // lz 25..31
	1, // lz 32 (v == 0)
}

func leadingZeros64(v uint64) int {
	n := 0
	if v == 0 {
		return 64
	}
	for v&(1<<63) == 0 {
		v <<= 1
		n++
	}
	return n
}

func leadingZeros32(v uint32) int {
	n := 0
	if v == 0 {
		return 32
	}
	for v&(1<<31) == 0 {
		v <<= 1
		n++
	}
	return n
}

// SizeVarint returns the number of bytes AppendVarint would write for v,
// computed in O(1) via a leading-zeros lookup table.
func SizeVarint(v uint64) int {
	return lz64ToLen[leadingZeros64(v)]
}

// SizeVarint32 returns the number of bytes AppendVarint32 would write for v.
func SizeVarint32(v uint32) int {
	return lz32ToLen[leadingZeros32(v)]
}

// AppendVarint appends the LEB128 encoding of v to b and returns the
// extended slice.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// scratchLen bounds the copy ConsumeVarint makes into a local array before
// handing off to the unchecked fast path, per spec §5's "copies up to 16
// bytes into a scratch buffer before invoking the fast path."
const scratchLen = 16

// ConsumeVarint decodes a LEB128 varint from the front of b. It returns the
// decoded value, the number of bytes consumed, and an error.
//
// This is the "safe" entry point: it has no precondition on the length or
// contents of b. It copies at most scratchLen bytes of b into a local
// array, confirms consumeVarintFast's precondition holds for that copy (the
// copy is already maxVarintBytes long, or a terminator byte is present
// within it), and only then dispatches into the unchecked fast path -
// buffers too short to satisfy either is the mid-varint truncation case and
// is rejected here, before the fast path would ever see it.
func ConsumeVarint(b []byte) (v uint64, n int, err error) {
	lim := len(b)
	if lim > scratchLen {
		lim = scratchLen
	}
	var scratch [scratchLen]byte
	copy(scratch[:lim], b[:lim])
	if lim < maxVarintBytes && !hasVarintTerminator(scratch[:lim]) {
		return 0, 0, errors.UnexpectedEndOfBuffer()
	}
	return consumeVarintFast(scratch[:lim])
}

// hasVarintTerminator reports whether b contains a byte with its
// continuation bit clear, i.e. whether b holds a complete varint.
func hasVarintTerminator(b []byte) bool {
	for _, c := range b {
		if c&0x80 == 0 {
			return true
		}
	}
	return false
}

// ConsumeVarint32 decodes a LEB128 varint known to fit in 32 bits.
func ConsumeVarint32(b []byte) (v uint32, n int, err error) {
	var result uint32
	for i := 0; i < maxVarintBytes32; i++ {
		if i >= len(b) {
			return 0, 0, errors.UnexpectedEndOfBuffer()
		}
		c := b[i]
		if i == maxVarintBytes32-1 && c&0xF0 != 0 {
			return 0, 0, errors.InvalidVarInt()
		}
		result |= uint32(c&0x7F) << (7 * uint(i))
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, 0, errors.InvalidVarInt()
}

// consumeVarintFast is the unsafe-precondition fast path: the caller must
// guarantee len(b) >= maxVarintBytes or that b contains a terminator
// (top-bit-clear) byte before the end. It performs no bounds checks beyond
// what the precondition already guarantees, so it never re-derives the
// length check ConsumeVarint already did.
func consumeVarintFast(b []byte) (v uint64, n int, err error) {
	var result uint64
	for i := 0; i < maxVarintBytes; i++ {
		c := b[i]
		// The 10th byte (shift == 63) may only have its lowest bit set;
		// any higher bit would overflow a 64-bit result.
		if i == maxVarintBytes-1 && c&0x7E != 0 {
			return 0, 0, errors.InvalidVarInt()
		}
		result |= uint64(c&0x7F) << (7 * uint(i))
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, 0, errors.InvalidVarInt()
}

// ConsumeVarintFast is consumeVarintFast's exported form, for callers
// outside this package (codec's packed-batch decoder) that can themselves
// establish the precondition - here, "at least maxVarintBytes remain" -
// before looping over many varints in a packed payload without paying
// ConsumeVarint's scratch-copy on every element.
//
// Precondition: len(b) >= MaxVarintBytes. Violating it may panic.
func ConsumeVarintFast(b []byte) (v uint64, n int, err error) {
	return consumeVarintFast(b)
}

// MaxVarintBytes is the maximum number of bytes a 64-bit LEB128 varint can
// occupy on the wire, and the minimum buffer length ConsumeVarintFast's
// precondition requires.
const MaxVarintBytes = maxVarintBytes
