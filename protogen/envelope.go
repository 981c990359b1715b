package protogen

import (
	"github.com/protomon/protomon/descriptor"
	"github.com/protomon/protomon/wire"
)

// CodeGeneratorRequest is the subset of
// google.protobuf.compiler.CodeGeneratorRequest this plugin scaffolding
// reads: which files to generate, the raw parameter string, and the
// FileDescriptorProto for every file protoc resolved (the file set to
// generate plus everything it transitively imports). compiler_version
// (field 3) is accepted on the wire but not decoded into a field — nothing
// downstream of this plugin consults it.
type CodeGeneratorRequest struct {
	FileToGenerate []string
	Parameter      string
	ProtoFile      []*descriptor.FileDescriptorProto
}

// CodeGeneratorResponse is the subset of
// google.protobuf.compiler.CodeGeneratorResponse this plugin scaffolding
// writes: either an error string (generation failed) or the generated
// files.
type CodeGeneratorResponse struct {
	Error *string
	File  []*CodeGeneratorResponse_File
}

// CodeGeneratorResponse_File is one generated output file.
type CodeGeneratorResponse_File struct {
	Name    string
	Content string
}

// Real google.protobuf.compiler wire field numbers, matching plugin.proto.
const (
	fieldFileToGenerate = 1
	fieldParameter      = 2
	fieldProtoFile      = 15

	fieldRespError = 1
	fieldRespFile  = 15

	fieldRespFileName    = 1
	fieldRespFileContent = 15
)

func decodeCodeGeneratorRequest(data []byte) (*CodeGeneratorRequest, error) {
	req := &CodeGeneratorRequest{}
	buf := data
	for len(buf) > 0 {
		tag, wt, n, err := wire.ConsumeTag(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		switch tag {
		case fieldFileToGenerate:
			s, rest, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			req.FileToGenerate = append(req.FileToGenerate, s)
			buf = rest
		case fieldParameter:
			s, rest, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			req.Parameter, buf = s, rest
		case fieldProtoFile:
			inner, rest, err := descriptor.ConsumeLengthDelimited(buf)
			if err != nil {
				return nil, err
			}
			buf = rest
			fdp, err := descriptor.DecodeFileDescriptorProto(inner)
			if err != nil {
				return nil, err
			}
			req.ProtoFile = append(req.ProtoFile, fdp)
		default:
			rest, err := wire.SkipField(buf, wt)
			if err != nil {
				return nil, err
			}
			buf = rest
		}
	}
	return req, nil
}

func consumeString(buf []byte) (string, []byte, error) {
	inner, rest, err := descriptor.ConsumeLengthDelimited(buf)
	if err != nil {
		return "", nil, err
	}
	return string(inner), rest, nil
}

// encodeCodeGeneratorResponse serializes resp in declaration order,
// matching the encoder convention used throughout this module (fields
// written in the order the message declares them).
func encodeCodeGeneratorResponse(resp *CodeGeneratorResponse) []byte {
	var b []byte
	if resp.Error != nil {
		b = appendLenField(b, fieldRespError, []byte(*resp.Error))
	}
	for _, f := range resp.File {
		b = appendLenField(b, fieldRespFile, encodeResponseFile(f))
	}
	return b
}

func encodeResponseFile(f *CodeGeneratorResponse_File) []byte {
	var b []byte
	b = appendLenField(b, fieldRespFileName, []byte(f.Name))
	b = appendLenField(b, fieldRespFileContent, []byte(f.Content))
	return b
}

func appendLenField(b []byte, tag uint32, payload []byte) []byte {
	b = wire.AppendTag(b, tag, wire.LenType)
	b = wire.AppendVarint(b, uint64(len(payload)))
	b = append(b, payload...)
	return b
}
