package wire

import "github.com/protomon/protomon/internal/errors"

// Type denotes the wire type of a field's payload.
type Type uint8

const (
	VarintType Type = 0
	I64Type    Type = 1
	LenType    Type = 2
	SGroupType Type = 3
	EGroupType Type = 4
	I32Type    Type = 5

	maxType = I32Type
)

// MinimumTag and MaximumTag bound the legal values of a protobuf field tag.
const (
	MinimumTag uint32 = 1
	MaximumTag uint32 = 1<<29 - 1
)

func typeFromByte(v byte) (Type, error) {
	if v > byte(maxType) {
		return 0, errors.InvalidWireType(v)
	}
	return Type(v), nil
}

// AppendTag appends the LEB128-encoded field key (tag<<3 | wireType) to b.
func AppendTag(b []byte, tag uint32, wt Type) []byte {
	key := uint64(tag)<<3 | uint64(wt)
	return AppendVarint(b, key)
}

// SizeTag returns the number of bytes AppendTag would write for tag.
func SizeTag(tag uint32) int {
	return SizeVarint(uint64(tag) << 3)
}

// ConsumeTag decodes a field key from the front of b, returning the tag,
// wire type, and number of bytes consumed.
func ConsumeTag(b []byte) (tag uint32, wt Type, n int, err error) {
	if len(b) == 0 {
		return 0, 0, 0, errors.InvalidKey("empty buffer")
	}
	key, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, 0, err
	}
	wt, err = typeFromByte(byte(key & 0x7))
	if err != nil {
		return 0, 0, 0, err
	}
	tag = uint32(key >> 3)
	return tag, wt, n, nil
}

// ConsumeLengthDelimited reads a LEN-prefixed payload off b, returning the
// payload (inner) and the remainder of b (rest). Used by generated code
// wherever it needs to isolate one length-delimited field's bytes (a map
// entry, a oneof message variant) without the generator emitting its own
// bounds-checking arithmetic inline.
func ConsumeLengthDelimited(b []byte) (inner []byte, rest []byte, err error) {
	length, n, err := ConsumeLen(b)
	if err != nil {
		return nil, nil, err
	}
	b = b[n:]
	if len(b) < length {
		return nil, nil, errors.UnexpectedEndOfBuffer()
	}
	return b[:length], b[length:], nil
}

// ConsumeLen decodes a length-delimited field's length prefix.
func ConsumeLen(b []byte) (length int, n int, err error) {
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, err
	}
	return int(v), n, nil
}

// ConsumeFieldValue returns the number of bytes occupied by one field's
// value (not including the key that precedes it), so the caller can skip
// unknown fields or copy their bytes verbatim into an unknown-fields buffer.
func ConsumeFieldValue(wt Type, b []byte) (n int, err error) {
	switch wt {
	case VarintType:
		_, n, err := ConsumeVarint(b)
		return n, err
	case I64Type:
		if len(b) < 8 {
			return 0, errors.UnexpectedEndOfBuffer()
		}
		return 8, nil
	case LenType:
		length, ln, err := ConsumeLen(b)
		if err != nil {
			return 0, err
		}
		if len(b[ln:]) < length {
			return 0, errors.UnexpectedEndOfBuffer()
		}
		return ln + length, nil
	case I32Type:
		if len(b) < 4 {
			return 0, errors.UnexpectedEndOfBuffer()
		}
		return 4, nil
	case SGroupType, EGroupType:
		return 0, errors.DeprecatedGroupEncoding()
	default:
		return 0, errors.InvalidWireType(byte(wt))
	}
}

// SkipField advances past one field value (the value only, not its
// preceding key) according to wt, returning the remainder of b.
func SkipField(b []byte, wt Type) ([]byte, error) {
	n, err := ConsumeFieldValue(wt, b)
	if err != nil {
		return nil, err
	}
	return b[n:], nil
}
