package codec

// Optional wraps the *T presence-tracking rule: DecodeInto
// overwrites as a present pointer; Encode emits nothing when absent.
// Grounded on original_source/protomon/src/codec/optional.rs.
//
// Generated code represents an "optional" scalar/message field as *T
// directly rather than a dedicated Optional[T] wrapper struct, since Go's
// nil pointer already expresses "absent" without extra indirection; these
// free functions are what generated decode/encode bodies call for such
// fields.

// DecodeOptional decodes one value via decode and stores it as *dst,
// replacing any previously-set value (last-wins, matching scalar merge
// semantics).
func DecodeOptional[T any](dst **T, decode func() (T, error)) error {
	v, err := decode()
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

// EncodeOptional emits nothing when v is nil (absent); otherwise delegates
// to encode.
func EncodeOptional[T any](b []byte, v *T, encode func(b []byte, val T) []byte) []byte {
	if v == nil {
		return b
	}
	return encode(b, *v)
}

func EncodedOptionalLen[T any](v *T, encodedLen func(val T) int) int {
	if v == nil {
		return 0
	}
	return encodedLen(*v)
}
