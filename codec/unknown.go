package codec

import "github.com/protomon/protomon/wire"

// UnknownFields is the opaque append-only buffer a message type may declare
// to preserve bytes for tags it doesn't recognize, so that decode->encode
// round-trips losslessly.
type UnknownFields struct {
	b []byte
}

// AppendRaw re-emits the key for tag/wt and copies valueBytes (the already
// length-consumed raw bytes of the field's value) verbatim, preserving
// original encounter order across multiple unknown fields.
func (u *UnknownFields) AppendRaw(tag uint32, wt wire.Type, valueBytes []byte) {
	u.b = wire.AppendTag(u.b, tag, wt)
	u.b = append(u.b, valueBytes...)
}

func (u UnknownFields) Bytes() []byte { return u.b }

func (u UnknownFields) Encode(b []byte) []byte { return append(b, u.b...) }

func (u UnknownFields) EncodedLen() int { return len(u.b) }

// CaptureUnknownField reads the key-less field value starting at buf (buf
// must already be positioned just past the key) and appends the complete
// key+value record to u, advancing buf past the value.
func CaptureUnknownField(u *UnknownFields, tag uint32, wt wire.Type, buf *[]byte) error {
	n, err := wire.ConsumeFieldValue(wt, *buf)
	if err != nil {
		return err
	}
	u.AppendRaw(tag, wt, (*buf)[:n])
	*buf = (*buf)[n:]
	return nil
}
