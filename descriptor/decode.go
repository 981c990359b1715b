package descriptor

import (
	"unicode/utf8"

	"github.com/protomon/protomon/internal/errors"
	"github.com/protomon/protomon/internal/genid"
	"github.com/protomon/protomon/wire"
)

// maxMessageSize bounds any single length-delimited sub-message this decoder
// will accept, guarding against a malicious or corrupt length value forcing
// an outsized allocation, grounded on
// original_source/protomon-build/src/descriptor/decode.rs's MAX_MESSAGE_SIZE.
const maxMessageSize = 64 * 1024 * 1024

// DecodeFileDescriptorSet parses a serialized google.protobuf.FileDescriptorSet.
func DecodeFileDescriptorSet(data []byte) (*FileDescriptorSet, error) {
	fds := &FileDescriptorSet{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case 1:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			fdp, err := decodeFileDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			fds.File = append(fds.File, fdp)
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return fds, nil
}

// DecodeFileDescriptorProto parses a single serialized
// google.protobuf.FileDescriptorProto, exported so callers decoding a larger
// enclosing message (such as a plugin CodeGeneratorRequest) can reuse this
// decoder for its embedded proto_file entries.
func DecodeFileDescriptorProto(data []byte) (*FileDescriptorProto, error) {
	return decodeFileDescriptorProto(data)
}

func decodeFileDescriptorProto(data []byte) (*FileDescriptorProto, error) {
	fdp := &FileDescriptorProto{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.FileDescriptorProto_Name_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.Name, buf = &s, rest
		case genid.FileDescriptorProto_Package_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.Package, buf = &s, rest
		case genid.FileDescriptorProto_Dependency_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.Dependency, buf = append(fdp.Dependency, s), rest
		case genid.FileDescriptorProto_MessageType_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			dp, err := decodeDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			fdp.MessageType = append(fdp.MessageType, dp)
		case genid.FileDescriptorProto_EnumType_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			edp, err := decodeEnumDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			fdp.EnumType = append(fdp.EnumType, edp)
		case genid.FileDescriptorProto_Syntax_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.Syntax, buf = &s, rest
		case genid.FileDescriptorProto_SourceCodeInfo_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			sci, err := decodeSourceCodeInfo(msg)
			if err != nil {
				return nil, err
			}
			fdp.SourceCodeInfo = sci
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return fdp, nil
}

func decodeDescriptorProto(data []byte) (*DescriptorProto, error) {
	dp := &DescriptorProto{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.DescriptorProto_Name_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			dp.Name, buf = &s, rest
		case genid.DescriptorProto_Field_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			fd, err := decodeFieldDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			dp.Field = append(dp.Field, fd)
		case genid.DescriptorProto_NestedType_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			nested, err := decodeDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			dp.NestedType = append(dp.NestedType, nested)
		case genid.DescriptorProto_EnumType_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			edp, err := decodeEnumDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			dp.EnumType = append(dp.EnumType, edp)
		case genid.DescriptorProto_Options_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			opts, err := decodeMessageOptions(msg)
			if err != nil {
				return nil, err
			}
			dp.Options = opts
		case genid.DescriptorProto_OneofDecl_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			od, err := decodeOneofDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			dp.OneofDecl = append(dp.OneofDecl, od)
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return dp, nil
}

func decodeFieldDescriptorProto(data []byte) (*FieldDescriptorProto, error) {
	fdp := &FieldDescriptorProto{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.FieldDescriptorProto_Name_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.Name, buf = &s, rest
		case genid.FieldDescriptorProto_Number_field_number:
			v, rest, err := decodeVarintInt32(buf)
			if err != nil {
				return nil, err
			}
			fdp.Number, buf = &v, rest
		case genid.FieldDescriptorProto_Label_field_number:
			v, rest, err := decodeVarintInt32(buf)
			if err != nil {
				return nil, err
			}
			fdp.Label, buf = &v, rest
		case genid.FieldDescriptorProto_Type_field_number:
			v, rest, err := decodeVarintInt32(buf)
			if err != nil {
				return nil, err
			}
			fdp.Type, buf = &v, rest
		case genid.FieldDescriptorProto_TypeName_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.TypeName, buf = &s, rest
		case genid.FieldDescriptorProto_DefaultValue_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.DefaultValue, buf = &s, rest
		case genid.FieldDescriptorProto_Options_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			opts, err := decodeFieldOptions(msg)
			if err != nil {
				return nil, err
			}
			fdp.Options = opts
		case genid.FieldDescriptorProto_OneofIndex_field_number:
			v, rest, err := decodeVarintInt32(buf)
			if err != nil {
				return nil, err
			}
			fdp.OneofIndex, buf = &v, rest
		case genid.FieldDescriptorProto_JsonName_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			fdp.JsonName, buf = &s, rest
		case genid.FieldDescriptorProto_Proto3Optional_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			b := u != 0
			fdp.Proto3Optional, buf = &b, buf[n:]
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return fdp, nil
}

// decodeFieldOptions recognizes the protomon extensions inline,
// skipping every standard google.protobuf.FieldOptions field it doesn't
// otherwise need.
func decodeFieldOptions(data []byte) (*FieldOptions, error) {
	opts := &FieldOptions{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.ExtFieldVec_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			opts.Vec, buf = u != 0, buf[n:]
		case genid.ExtFieldBoxed_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			opts.Boxed, buf = u != 0, buf[n:]
		case genid.ExtFieldLazy_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			opts.Lazy, buf = u != 0, buf[n:]
		case genid.ExtFieldFixedArray_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			opts.FixedArray, buf = uint32(u), buf[n:]
		case genid.ExtFieldMapType_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			opts.MapType, buf = &s, rest
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return opts, nil
}

// decodeSourceCodeInfo decodes google.protobuf.SourceCodeInfo, keeping only
// the path and leading-comments fields of each Location the generator's
// doc-comment extraction (gen/comments.go) consumes.
func decodeSourceCodeInfo(data []byte) (*SourceCodeInfo, error) {
	sci := &SourceCodeInfo{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.SourceCodeInfo_Location_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			loc, err := decodeSourceCodeInfoLocation(msg)
			if err != nil {
				return nil, err
			}
			sci.Location = append(sci.Location, loc)
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return sci, nil
}

func decodeSourceCodeInfoLocation(data []byte) (*SourceCodeInfoLocation, error) {
	loc := &SourceCodeInfoLocation{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.SourceCodeInfo_Location_Path_field_number:
			if wt == wire.LenType {
				msg, rest, err := consumeSubMessage(buf)
				if err != nil {
					return nil, err
				}
				buf = rest
				path, err := decodePackedInt32(msg)
				if err != nil {
					return nil, err
				}
				loc.Path = append(loc.Path, path...)
				continue
			}
			v, rest, err := decodeVarintInt32(buf)
			if err != nil {
				return nil, err
			}
			loc.Path, buf = append(loc.Path, v), rest
		case genid.SourceCodeInfo_Location_LeadingComments_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			loc.LeadingComments, buf = &s, rest
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return loc, nil
}

// decodePackedInt32 decodes a packed-varint repeated int32 field body, used
// for SourceCodeInfo.Location.path (always packed in practice).
func decodePackedInt32(data []byte) ([]int32, error) {
	var out []int32
	buf := data
	for len(buf) > 0 {
		v, n, err := wire.ConsumeVarint(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, int32(uint32(v)))
		buf = buf[n:]
	}
	return out, nil
}

func decodeEnumDescriptorProto(data []byte) (*EnumDescriptorProto, error) {
	edp := &EnumDescriptorProto{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.EnumDescriptorProto_Name_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			edp.Name, buf = &s, rest
		case genid.EnumDescriptorProto_Value_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			evdp, err := decodeEnumValueDescriptorProto(msg)
			if err != nil {
				return nil, err
			}
			edp.Value = append(edp.Value, evdp)
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return edp, nil
}

func decodeEnumValueDescriptorProto(data []byte) (*EnumValueDescriptorProto, error) {
	evdp := &EnumValueDescriptorProto{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.EnumValueDescriptorProto_Name_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			evdp.Name, buf = &s, rest
		case genid.EnumValueDescriptorProto_Number_field_number:
			v, rest, err := decodeVarintInt32(buf)
			if err != nil {
				return nil, err
			}
			evdp.Number, buf = &v, rest
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return evdp, nil
}

func decodeOneofDescriptorProto(data []byte) (*OneofDescriptorProto, error) {
	odp := &OneofDescriptorProto{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.OneofDescriptorProto_Name_field_number:
			s, rest, err := decodeString(buf)
			if err != nil {
				return nil, err
			}
			odp.Name, buf = &s, rest
		case genid.OneofDescriptorProto_Options_field_number:
			msg, rest, err := consumeSubMessage(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			opts, err := decodeOneofOptions(msg)
			if err != nil {
				return nil, err
			}
			odp.Options = opts
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return odp, nil
}

func decodeOneofOptions(data []byte) (*OneofOptions, error) {
	opts := &OneofOptions{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.ExtOneofNullable_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			b := u != 0
			opts.Nullable, buf = &b, buf[n:]
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return opts, nil
}

func decodeMessageOptions(data []byte) (*MessageOptions, error) {
	mo := &MessageOptions{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case genid.MessageOptions_MapEntry_field_number:
			u, n, err := wire.ConsumeVarint(buf)
			if err != nil {
				return nil, err
			}
			b := u != 0
			mo.MapEntry, buf = &b, buf[n:]
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return mo, nil
}

// consumeSubMessage reads a length prefix off buf, validates it against
// maxMessageSize, and returns the inner bytes plus buf advanced past them.
func consumeSubMessage(buf []byte) (inner []byte, rest []byte, err error) {
	return ConsumeLengthDelimited(buf)
}

// ConsumeLengthDelimited reads a LEN-prefixed payload off buf, validating it
// against the same 64 MiB cap as every other length-delimited field this
// decoder accepts. Exported for reuse by callers decoding an enclosing wire
// message that embeds FileDescriptorProto-shaped payloads, such as a plugin
// CodeGeneratorRequest's proto_file field.
func ConsumeLengthDelimited(buf []byte) (inner []byte, rest []byte, err error) {
	length, n, err := wire.ConsumeLen(buf)
	if err != nil {
		return nil, nil, err
	}
	if uint64(length) > maxMessageSize {
		return nil, nil, errors.New("descriptor: message size %d exceeds maximum %d", length, maxMessageSize)
	}
	buf = buf[n:]
	if len(buf) < length {
		return nil, nil, errors.UnexpectedEndOfBuffer()
	}
	return buf[:length], buf[length:], nil
}

func decodeString(buf []byte) (string, []byte, error) {
	inner, rest, err := consumeSubMessage(buf)
	if err != nil {
		return "", nil, err
	}
	if !utf8.Valid(inner) {
		return "", nil, errors.InvalidUtf8()
	}
	return string(inner), rest, nil
}

func decodeVarintInt32(buf []byte) (int32, []byte, error) {
	u, n, err := wire.ConsumeVarint(buf)
	if err != nil {
		return 0, nil, err
	}
	return int32(uint32(u)), buf[n:], nil
}
