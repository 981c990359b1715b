package descriptor

// WellKnownGoType names the already-compiled Go type a well-known
// google.protobuf.* message routes to instead of being (re-)generated, the
// same extern-type short-circuit protomon-build's Config::extern_paths
// performs for well-known types.
type WellKnownGoType struct {
	ImportPath string
	ImportName string
	GoType     string // package-qualified, e.g. "field_mask.FieldMask"
}

// WellKnownGoTypes maps the fully-qualified proto name of every well-known
// type this generator special-cases to the pre-existing Go type a
// message-typed field referencing it should resolve to. FieldMask routes to
// the genproto package the wider example corpus ships
// (google.golang.org/genproto/protobuf/field_mask), the one well-known type
// the retrieved pack carries a real generated Go struct for. Timestamp,
// Duration, and the wrapper types are deliberately NOT special-cased here:
// the only teacher sources for them (ptypes/timestamp.go, ptypes/duration.go)
// operate on *tspb.Timestamp/*durpb.Duration structs from
// github.com/golang/protobuf/ptypes/{timestamp,duration} whose struct
// definitions were never retrieved into the pack (a gap analogous to the
// missing map_type FieldOptions field noted in DESIGN.md) — special-casing
// them would mean inventing a generated-type shape rather than grounding one
// on retrieved source, so field references to them fall through to ordinary
// message generation instead.
var WellKnownGoTypes = map[string]WellKnownGoType{
	".google.protobuf.FieldMask": {
		ImportPath: "google.golang.org/genproto/protobuf/field_mask",
		ImportName: "field_mask",
		GoType:     "field_mask.FieldMask",
	},
}
