package codec

import (
	"github.com/protomon/protomon/ordmap"
	"github.com/protomon/protomon/wire"
)

// MapEntryCodec bundles per-type decode/encode for one map field's key and
// value, grounded on original_source/protomon/src/codec/map.rs's
// decode_map_entry plus golang-protobuf's proto/decode.go::unmarshalMap /
// proto/encode.go::marshalMap wire-format shape (a two-field LEN
// sub-message, key at tag 1, value at tag 2).
type MapEntryCodec[K comparable, V any] struct {
	KeyWireType   wire.Type
	ValueWireType wire.Type
	DecodeKey     func(buf *[]byte) (K, error)
	DecodeValue   func(buf *[]byte) (V, error)
	EncodeKey     func(b []byte, k K) []byte
	EncodeValue   func(b []byte, v V) []byte
	KeyLen        func(k K) int
	ValueLen      func(v V) int
}

// DecodeMapEntryInto parses one occurrence of a map field (the body of the
// length-delimited entry message already isolated by the caller) and
// inserts it into m. Map semantics are last-wins on duplicate keys, which
// falls out of repeated calls performing a plain Go map assignment.
func DecodeMapEntryInto[K comparable, V any](entry []byte, m map[K]V, codec MapEntryCodec[K, V]) error {
	var key K
	var val V
	haveKey, haveVal := false, false

	buf := entry
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
		switch tag {
		case 1:
			if wt != codec.KeyWireType {
				return errInvalidWireTypeFor(wt)
			}
			key, err = codec.DecodeKey(&buf)
			if err != nil {
				return err
			}
			haveKey = true
		case 2:
			if wt != codec.ValueWireType {
				return errInvalidWireTypeFor(wt)
			}
			val, err = codec.DecodeValue(&buf)
			if err != nil {
				return err
			}
			haveVal = true
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return err
			}
			buf = rest
		}
	}
	_ = haveKey // missing key/value default to the type's zero value (proto3 rule)
	_ = haveVal
	m[key] = val
	return nil
}

// DecodeMapEntryIntoOrdered is DecodeMapEntryInto's counterpart for a map
// field marked [(protomon.map_type) = "btree"]: it inserts into an
// ordmap.Map (via its Set method) instead of a native Go map, preserving
// ascending-key iteration order on encode.
func DecodeMapEntryIntoOrdered[K comparable, V any](entry []byte, m *ordmap.Map[K, V], codec MapEntryCodec[K, V]) error {
	var key K
	var val V

	buf := entry
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
		switch tag {
		case 1:
			if wt != codec.KeyWireType {
				return errInvalidWireTypeFor(wt)
			}
			key, err = codec.DecodeKey(&buf)
			if err != nil {
				return err
			}
		case 2:
			if wt != codec.ValueWireType {
				return errInvalidWireTypeFor(wt)
			}
			val, err = codec.DecodeValue(&buf)
			if err != nil {
				return err
			}
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return err
			}
			buf = rest
		}
	}
	m.Set(key, val)
	return nil
}

// EncodeMapEntry emits one map entry as a LEN field at tag with a two-field
// body (key at 1, value at 2).
func EncodeMapEntry[K comparable, V any](b []byte, tag uint32, k K, v V, codec MapEntryCodec[K, V]) []byte {
	bodyLen := wire.SizeTag(1) + codec.KeyLen(k) + wire.SizeTag(2) + codec.ValueLen(v)
	b = wire.AppendTag(b, tag, wire.LenType)
	b = wire.AppendVarint(b, uint64(bodyLen))
	b = wire.AppendTag(b, 1, codec.KeyWireType)
	b = codec.EncodeKey(b, k)
	b = wire.AppendTag(b, 2, codec.ValueWireType)
	b = codec.EncodeValue(b, v)
	return b
}

func EncodedMapEntryLen[K comparable, V any](tag uint32, k K, v V, codec MapEntryCodec[K, V]) int {
	bodyLen := wire.SizeTag(1) + codec.KeyLen(k) + wire.SizeTag(2) + codec.ValueLen(v)
	return wire.SizeTag(tag) + wire.SizeVarint(uint64(bodyLen)) + bodyLen
}

func errInvalidWireTypeFor(wt wire.Type) error {
	return errInvalidWireType(byte(wt))
}
