// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors implements the closed decode-error taxonomy shared by the
// wire, codec, and descriptor packages, plus code-generator diagnostics.
package errors

import "fmt"

// Kind enumerates the closed decode-error taxonomy.
type Kind int

const (
	KindInvalidWireType Kind = iota
	KindInvalidKey
	KindInvalidVarInt
	KindUnexpectedEndOfBuffer
	KindDeprecatedGroupEncoding
	KindInvalidUtf8
	KindInvalidPackedLength
	KindMissingRequiredOneof
	KindProgrammingError
)

// DecodeError is the single error type for every member of the closed
// taxonomy; kind-specific detail lives in the named fields below.
type DecodeError struct {
	Kind Kind

	Value            byte   // KindInvalidWireType
	Reason           string // KindInvalidKey, KindProgrammingError
	ExpectedMultiple int    // KindInvalidPackedLength
	Actual           int    // KindInvalidPackedLength
	Field            string // KindMissingRequiredOneof
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindInvalidWireType:
		return fmt.Sprintf("proto: invalid wire type %d", e.Value)
	case KindInvalidKey:
		return fmt.Sprintf("proto: invalid field key: %s", e.Reason)
	case KindInvalidVarInt:
		return "proto: invalid varint"
	case KindUnexpectedEndOfBuffer:
		return "proto: unexpected end of buffer"
	case KindDeprecatedGroupEncoding:
		return "proto: deprecated group wire type encountered"
	case KindInvalidUtf8:
		return "proto: invalid UTF-8"
	case KindInvalidPackedLength:
		return fmt.Sprintf("proto: packed payload length %d is not a multiple of %d", e.Actual, e.ExpectedMultiple)
	case KindMissingRequiredOneof:
		return fmt.Sprintf("proto: required oneof %q has no variant set", e.Field)
	case KindProgrammingError:
		return fmt.Sprintf("proto: programming error: %s", e.Reason)
	default:
		return "proto: unknown decode error"
	}
}

func InvalidWireType(v byte) error { return &DecodeError{Kind: KindInvalidWireType, Value: v} }

func InvalidKey(reason string) error { return &DecodeError{Kind: KindInvalidKey, Reason: reason} }

func InvalidVarInt() error { return &DecodeError{Kind: KindInvalidVarInt} }

func UnexpectedEndOfBuffer() error { return &DecodeError{Kind: KindUnexpectedEndOfBuffer} }

func DeprecatedGroupEncoding() error { return &DecodeError{Kind: KindDeprecatedGroupEncoding} }

func InvalidUtf8() error { return &DecodeError{Kind: KindInvalidUtf8} }

func InvalidPackedLength(expectedMultiple, actual int) error {
	return &DecodeError{Kind: KindInvalidPackedLength, ExpectedMultiple: expectedMultiple, Actual: actual}
}

func MissingRequiredOneof(field string) error {
	return &DecodeError{Kind: KindMissingRequiredOneof, Field: field}
}

func ProgrammingError(reason string) error {
	return &DecodeError{Kind: KindProgrammingError, Reason: reason}
}

// Is reports whether err is a *DecodeError of the given kind.
func Is(err error, kind Kind) bool {
	de, ok := err.(*DecodeError)
	return ok && de.Kind == kind
}

// New formats a string according to the format specifier and arguments and
// returns an error that has a "proto" prefix, avoiding double-prefixing when
// chained. Used by packages outside the closed decode taxonomy (the
// generator) that still want the same error-prefix convention.
func New(f string, x ...interface{}) error {
	for i := 0; i < len(x); i++ {
		if e, ok := x[i].(*prefixError); ok {
			x[i] = e.s
		}
	}
	return &prefixError{s: fmt.Sprintf(f, x...)}
}

type prefixError struct{ s string }

func (e *prefixError) Error() string { return "proto: " + e.s }

// GenError is a code-generator diagnostic: generator errors halt code
// emission and are reported with file/message context, matching the
// teacher's convention of a plugin-level error surfaced through
// CodeGeneratorResponse.error.
type GenError struct {
	Context string
	Reason  string
}

func (e *GenError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("protomon-gen: %s", e.Reason)
	}
	return fmt.Sprintf("protomon-gen: %s: %s", e.Context, e.Reason)
}

func NewGenError(context, reason string) error {
	return &GenError{Context: context, Reason: reason}
}
