package codec

import "github.com/protomon/protomon/internal/errors"

func errUnexpectedEOF() error { return errors.UnexpectedEndOfBuffer() }

func errProgrammingErrorDecodeIntoOwned() error {
	return errors.ProgrammingError("DecodeInto called on an Owned-variant Repeated")
}

func errProgrammingErrorAppendLazy() error {
	return errors.ProgrammingError("Append called on a Lazy-variant Repeated")
}

func errInvalidWireType(v byte) error { return errors.InvalidWireType(v) }

// ErrMissingRequiredOneof reports that a required oneof's wire bytes held
// no variant. internal/errors is unreachable from generated code living
// outside this module's own import path, so generated decoders call this
// exported wrapper instead of constructing the closed taxonomy's
// *errors.DecodeError directly, keeping MissingRequiredOneof identifiable
// via errors.As/errors.Is for every caller, generated or hand-written.
func ErrMissingRequiredOneof(field string) error {
	return errors.MissingRequiredOneof(field)
}
