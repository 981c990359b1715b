package codec

// IsProtoDefault predicates implement "default-value elision":
// on encode, a proto3 scalar field equal to its type-zero is omitted. Each
// predicate is a direct equality/length check rather than constructing a
// zero value for comparison, grounded on
// original_source/protomon/src/codec/default_check.rs.

func IsInt32Default(v int32) bool     { return v == 0 }
func IsInt64Default(v int64) bool     { return v == 0 }
func IsUint32Default(v uint32) bool   { return v == 0 }
func IsUint64Default(v uint64) bool   { return v == 0 }
func IsBoolDefault(v bool) bool       { return !v }
func IsFloatDefault(v float32) bool   { return v == 0 }
func IsDoubleDefault(v float64) bool  { return v == 0 }
func IsEnumDefault(v int32) bool      { return v == 0 }
func IsSint32Default(v Sint32) bool   { return v == 0 }
func IsSint64Default(v Sint64) bool   { return v == 0 }
func IsFixed32Default(v Fixed32) bool { return v == 0 }
func IsFixed64Default(v Fixed64) bool { return v == 0 }
func IsSfixed32Default(v Sfixed32) bool { return v == 0 }
func IsSfixed64Default(v Sfixed64) bool { return v == 0 }
func IsStringDefault(v ProtoString) bool { return v.IsProtoDefault() }
func IsBytesDefault(v ProtoBytes) bool   { return v.IsProtoDefault() }
