package gen

import (
	"github.com/protomon/protomon/descriptor"
)

// EmitEnum writes the Go declaration for one enum type: a named int32 type
// plus one constant per declared value, grounded on
// codegen/enumeration.rs's enum emission (variant type + from/into-integer
// conversions — Go's named-int32-plus-constants idiom covers both
// directions without separate conversion functions, since a named integer
// type converts to/from its underlying type for free).
func EmitEnum(w Printer, cm CommentMap, desc *descriptor.EnumDescriptorProto, protoPath string, path Path) {
	goName := goIdentFor(protoPath)
	w.PrintLeadingComments(cm, path)
	w.P("type ", goName, " int32")
	w.P()
	w.P("const (")
	for i, v := range desc.Value {
		w.PrintLeadingComments(cm, path.EnumValue(i))
		w.P(goName, "_", v.GetName(), " ", goName, " = ", v.GetNumber())
	}
	w.P(")")
	w.P()
}
