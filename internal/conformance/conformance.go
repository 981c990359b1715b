// Package conformance holds golden byte-sequence vectors exercising the
// wire, codec, and descriptor packages end to end. Unlike the package-local
// _test.go files, which test one primitive at a time, these vectors pin down
// fixed byte sequences a reader can check by hand against the wire format,
// the way protomon-conformance does for the original implementation.
package conformance

import (
	"github.com/protomon/protomon/codec"
	"github.com/protomon/protomon/wire"
)

// person is the hand-rolled equivalent of `message P { string n=1; int32 i=2; }`,
// decoded and encoded without going through generated code, so the golden
// vectors exercise the codec primitives directly.
type person struct {
	Name string
	ID   int32
}

func encodePerson(p person) []byte {
	var b []byte
	if !codec.IsStringDefault(codec.NewProtoString(p.Name)) {
		b = wire.AppendTag(b, 1, wire.LenType)
		b = codec.NewProtoString(p.Name).Encode(b)
	}
	if p.ID != 0 {
		b = wire.AppendTag(b, 2, wire.VarintType)
		b = codec.EncodeInt32(b, p.ID)
	}
	return b
}

func decodePerson(buf []byte) (person, error) {
	var p person
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return p, err
		}
		buf = buf[n:]
		switch tag {
		case 1:
			var s codec.ProtoString
			if err := s.DecodeInto(&buf, 0); err != nil {
				return p, err
			}
			p.Name = s.String()
		case 2:
			v, err := codec.DecodeInt32(&buf)
			if err != nil {
				return p, err
			}
			p.ID = v
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return p, err
			}
			buf = rest
		}
	}
	return p, nil
}
