package gen

import (
	"fmt"

	"github.com/protomon/protomon/descriptor"
)

// EmitFile walks fdp's top-level messages and enums (recursively into
// nested declarations) and writes the generated Go source for all of them,
// following a per-file emission responsibility. reg supplies
// resolved Go types and the map-entry/recursion side tables; cm supplies
// doc comments.
func EmitFile(w Printer, reg *Registry, cm CommentMap, fdp *descriptor.FileDescriptorProto) error {
	hasMessages := len(fdp.MessageType) > 0
	if hasMessages {
		w.EnsureImport("github.com/protomon/protomon/wire", "wire")
		w.EnsureImport("github.com/protomon/protomon/codec", "codec")
	}

	pkgPrefix := "."
	if pkg := fdp.GetPackage(); pkg != "" {
		pkgPrefix = "." + pkg + "."
	}

	usesFmt := false
	for i, msg := range fdp.MessageType {
		fqn := pkgPrefix + msg.GetName()
		used, err := emitMessage(w, reg, cm, msg, fqn, TopLevelMessage(i))
		if err != nil {
			return err
		}
		usesFmt = usesFmt || used
	}
	for i, enum := range fdp.EnumType {
		fqn := pkgPrefix + enum.GetName()
		EmitEnum(w, cm, enum, fqn, TopLevelEnum(i))
	}
	if usesFmt {
		w.EnsureImport("fmt", "fmt")
	}
	return nil
}

// emitMessage writes one message's struct declaration and ProtoMessage
// methods, recursing into nested messages/enums first (matching
// protoc-gen-go's declaration order of nested types ahead of their
// container). Returns whether any emitted oneof decoder referenced fmt.
func emitMessage(w Printer, reg *Registry, cm CommentMap, desc *descriptor.DescriptorProto, fqn string, path Path) (usesFmt bool, err error) {
	if desc.IsMapEntry() {
		return false, nil // synthetic map-entry type: never gets its own Go type.
	}
	goIdent := goIdentFor(fqn)

	for i, nested := range desc.NestedType {
		nestedFqn := fqn + "." + nested.GetName()
		used, err := emitMessage(w, reg, cm, nested, nestedFqn, path.NestedMessage(i))
		if err != nil {
			return usesFmt, err
		}
		usesFmt = usesFmt || used
	}
	for i, enum := range desc.EnumType {
		EmitEnum(w, cm, enum, fqn+"."+enum.GetName(), path.NestedEnum(i))
	}

	fields, err := resolveMessageFields(reg, desc, fqn)
	if err != nil {
		return usesFmt, err
	}
	for i := range fields {
		fields[i].path = path.Field(i)
	}
	for _, f := range fields {
		if f.mapOrdered {
			w.EnsureImport("github.com/protomon/protomon/ordmap", "ordmap")
		}
		typeName := f.proto.GetTypeName()
		if typeName == "" {
			continue
		}
		if importPath, importName, ok := reg.ExternImportFor(typeName); ok {
			w.EnsureImport(importPath, importName)
		}
	}

	oneofFieldSets := make([][]oneofField, len(desc.OneofDecl))
	for _, f := range fields {
		if f.oneofIndex < 0 {
			continue
		}
		oneofFieldSets[f.oneofIndex] = append(oneofFieldSets[f.oneofIndex], oneofField{Proto: f.proto, GoType: f.elemGoType})
	}
	for oi, od := range desc.OneofDecl {
		if len(oneofFieldSets[oi]) == 0 {
			continue
		}
		EmitOneof(w, goIdent, fieldGoName(od.GetName()), oneofFieldSets[oi], od.Options.GetNullable())
		usesFmt = true
	}

	w.PrintLeadingComments(cm, path)
	w.P("type ", goIdent, " struct {")
	for _, f := range fields {
		if f.oneofIndex >= 0 {
			continue
		}
		w.PrintLeadingComments(cm, f.path)
		w.P(f.goName, " ", f.fullType, " `protomon:\"", f.proto.GetNumber(), ",", int(classify(f.proto.GetType())), ",", f.cardinality(), "\"`")
	}
	for oi, od := range desc.OneofDecl {
		if len(oneofFieldSets[oi]) == 0 {
			continue
		}
		w.P(fieldGoName(od.GetName()), " ", goIdent, "_", fieldGoName(od.GetName()))
	}
	w.P("unknown codec.UnknownFields")
	w.P("}")
	w.P()

	emitDecodeMessage(w, goIdent, fields, desc.OneofDecl, oneofFieldSets)
	emitEncodeMessage(w, goIdent, fields, desc.OneofDecl, oneofFieldSets)
	emitEncodedMessageLen(w, goIdent, fields, desc.OneofDecl, oneofFieldSets)

	return usesFmt, nil
}

// resolvedField bundles everything the decode/encode emitters need about
// one non-oneof-owned-interface field; oneofIndex >= 0 marks a field that
// belongs to a oneof (its struct field lives on the variant type, not the
// parent message, so most of resolvedField besides tag/kind is unused for
// it).
type resolvedField struct {
	proto      *descriptor.FieldDescriptorProto
	path       Path
	goName     string
	fullType   string // BuildFullType result, or the map[K]V / []T spelling
	elemGoType string // per-element Go type (used for repeated/map/oneof)
	kind       elemKind
	isMap      bool
	mapKeyGo   string
	mapOrdered bool
	isRepeated bool
	useVec     bool
	oneofIndex int // -1 if not part of a oneof
}

func (f resolvedField) cardinality() string {
	switch {
	case f.isMap:
		return "map"
	case f.isRepeated:
		return "repeated"
	default:
		return "singular"
	}
}

func resolveMessageFields(reg *Registry, desc *descriptor.DescriptorProto, msgFQN string) ([]resolvedField, error) {
	isProto3 := true // generated-field emission treats every file uniformly as proto3 implicit-presence except where proto3_optional/label says otherwise; Syntax is threaded in by the caller's registry lookups for message/enum resolution, not needed again here.
	var out []resolvedField
	for i, fd := range desc.Field {
		path := Path{}.Field(i) // placeholder; emitMessage replaces rf.path with the field's full path
		_ = path
		rf := resolvedField{proto: fd, path: Path{2, int32(i)}, goName: fieldGoName(fd.GetName()), oneofIndex: -1}
		if fd.OneofIndex != nil {
			rf.oneofIndex = int(*fd.OneofIndex)
		}

		if fd.GetType() == descriptor.TypeMessage {
			if info, ok := reg.MapEntries[fd.GetTypeName()]; ok {
				keyGo, err := MapKeyTypeToGo(info.Key.GetType())
				if err != nil {
					return nil, err
				}
				valGo, err := ScalarTypeToGo(reg, info.Value.GetType(), info.Value.GetTypeName())
				if err != nil {
					return nil, err
				}
				if info.Value.GetType() == descriptor.TypeMessage {
					valGo = "*" + valGo
				}
				rf.isMap = true
				rf.mapKeyGo = keyGo
				rf.elemGoType = valGo
				rf.kind = classify(info.Value.GetType())
				rf.mapOrdered = fd.Options != nil && fd.Options.MapType != nil && *fd.Options.MapType == "btree"
				if rf.mapOrdered {
					rf.fullType = "*ordmap.Map[" + keyGo + ", " + valGo + "]"
				} else {
					rf.fullType = "map[" + keyGo + "]" + valGo
				}
				out = append(out, rf)
				continue
			}
		}

		gt, err := ResolveFieldType(reg, fd, isProto3, reg.IsRecursiveField(msgFQN, fd.GetName()))
		if err != nil {
			return nil, err
		}
		rf.kind = classify(fd.GetType())
		rf.isRepeated = gt.IsRepeated
		rf.useVec = gt.IsRepeated && !gt.UseLazyRepeated
		rf.elemGoType = gt.BaseType
		if gt.IsBoxed && !gt.IsRepeated {
			rf.elemGoType = "*" + gt.BaseType
		}
		rf.fullType = BuildFullType(gt)
		out = append(out, rf)
	}
	return out, nil
}

func emitDecodeMessage(w Printer, goIdent string, fields []resolvedField, oneofs []*descriptor.OneofDescriptorProto, sets [][]oneofField) {
	w.P("func (m *", goIdent, ") DecodeMessage(data []byte) error {")
	w.P("origBuf := data")
	w.P("buf := data")
	for _, f := range fields {
		if f.isRepeated && !f.useVec && f.oneofIndex < 0 {
			w.P("m.", f.goName, ".InitLazy(", elementCodecLiteral(f.kind, f.elemGoType), ", origBuf, ", f.proto.GetNumber(), ")")
		}
	}
	w.P("for len(buf) > 0 {")
	w.P("tag, wt, n, err := wire.ConsumeTag(buf)")
	w.P("if err != nil { return err }")
	w.P("buf = buf[n:]")
	w.P("offset := len(origBuf) - len(buf)")
	w.P("switch tag {")
	for _, f := range fields {
		if f.oneofIndex >= 0 {
			continue
		}
		w.P("case ", f.proto.GetNumber(), ":")
		w.P(fieldDecodeCase(f))
	}
	for oi, od := range oneofs {
		if len(sets[oi]) == 0 {
			continue
		}
		tags := make([]string, len(sets[oi]))
		for i, of := range sets[oi] {
			tags[i] = fmt.Sprintf("%d", of.Proto.GetNumber())
		}
		w.P("case ", joinComma(tags), ":")
		w.P("v, ok, err := decode", goIdent, "_", fieldGoName(od.GetName()), "(tag, wt, &buf, offset)")
		w.P("if err != nil { return err }")
		w.P("if ok { m.", fieldGoName(od.GetName()), " = v }")
	}
	w.P("default:")
	w.P("valLen, err := wire.ConsumeFieldValue(wt, buf)")
	w.P("if err != nil { return err }")
	w.P("m.unknown.AppendRaw(tag, wt, buf[:valLen])")
	w.P("buf = buf[valLen:]")
	w.P("}")
	w.P("}")
	for oi, od := range oneofs {
		if len(sets[oi]) == 0 || od.Options.GetNullable() {
			continue
		}
		w.P("if m.", fieldGoName(od.GetName()), " == nil { return codec.ErrMissingRequiredOneof(\"", od.GetName(), "\") }")
	}
	w.P("return nil")
	w.P("}")
	w.P()
}

func fieldDecodeCase(f resolvedField) string {
	fieldExpr := "m." + f.goName
	switch {
	case f.isMap:
		codecLit := elementCodecLiteral(f.kind, f.elemGoType) // unused directly; map uses its own codec literal below
		_ = codecLit
		mapCodec := mapEntryCodecLiteral(f.mapKeyGo, f.elemGoType, f.kind)
		if f.mapOrdered {
			return fmt.Sprintf("entry, rest, err := wire.ConsumeLengthDelimited(buf); if err != nil { return err }\nbuf = rest\nif %s == nil { %s = ordmap.New[%s, %s](%s) }\nif err := codec.DecodeMapEntryIntoOrdered(entry, %s, %s); err != nil { return err }",
				fieldExpr, fieldExpr, f.mapKeyGo, f.elemGoType, mapKeyLessLiteral(f.mapKeyGo), fieldExpr, mapCodec)
		}
		return fmt.Sprintf("entry, rest, err := wire.ConsumeLengthDelimited(buf); if err != nil { return err }\nbuf = rest\nif %s == nil { %s = make(map[%s]%s) }\nif err := codec.DecodeMapEntryInto(entry, %s, %s); err != nil { return err }",
			fieldExpr, fieldExpr, f.mapKeyGo, f.elemGoType, fieldExpr, mapCodec)
	case f.isRepeated && f.useVec:
		return fmt.Sprintf("%s\n%s = append(%s, v)", repeatedElementDecodeLocal(f.kind, f.elemGoType), fieldExpr, fieldExpr)
	case f.isRepeated:
		return fmt.Sprintf("if err := %s.DecodeInto(&buf, offset); err != nil { return err }", fieldExpr)
	default:
		return singularDecodeStmt(fieldExpr, f.fullType, f.kind, f.elemGoType)
	}
}

// repeatedElementDecodeLocal decodes exactly one element into a local `v`
// for the vec (eager, non-lazy) repeated storage shape.
func repeatedElementDecodeLocal(k elemKind, elemGoType string) string {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("var v %s; if err := v.DecodeInto(&buf, 0); err != nil { return err }", elemGoType)
	case kEnum:
		return fmt.Sprintf("raw, err := codec.DecodeEnum(&buf); if err != nil { return err }\nv := %s(raw)", elemGoType)
	case kMessage:
		return fmt.Sprintf("v := new(%s); if err := codec.DecodeMessageField(&buf, v); err != nil { return err }", trimStar(elemGoType))
	default:
		decode, _, _, _ := directFuncs(k)
		return fmt.Sprintf("v, err := %s(&buf); if err != nil { return err }", decode)
	}
}

func singularDecodeStmt(fieldExpr, fullType string, k elemKind, elemGoType string) string {
	pointer := isPointerType(fullType)
	lazy := hasLazyMessagePrefix(fullType)
	switch {
	case lazy:
		return fmt.Sprintf("if err := %s.DecodeInto(&buf, offset); err != nil { return err }", fieldExpr)
	case k == kMessage:
		return fmt.Sprintf("if %s == nil { %s = new(%s) }\nif err := codec.DecodeMessageField(&buf, %s); err != nil { return err }",
			fieldExpr, fieldExpr, trimStar(elemGoType), fieldExpr)
	case pointer && (k == kSint32 || k == kSint64 || k == kFixed32 || k == kFixed64 || k == kSfixed32 || k == kSfixed64 || k == kString || k == kBytes):
		return fmt.Sprintf("if err := codec.DecodeOptional(&%s, func() (%s, error) { var v %s; err := v.DecodeInto(&buf, offset); return v, err }); err != nil { return err }",
			fieldExpr, elemGoType, elemGoType)
	case k == kSint32 || k == kSint64 || k == kFixed32 || k == kFixed64 || k == kSfixed32 || k == kSfixed64 || k == kString || k == kBytes:
		return fmt.Sprintf("if err := %s.DecodeInto(&buf, offset); err != nil { return err }", fieldExpr)
	case pointer && k == kEnum:
		return fmt.Sprintf("if err := codec.DecodeOptional(&%s, func() (%s, error) { raw, err := codec.DecodeEnum(&buf); return %s(raw), err }); err != nil { return err }",
			fieldExpr, elemGoType, elemGoType)
	case k == kEnum:
		return fmt.Sprintf("raw, err := codec.DecodeEnum(&buf); if err != nil { return err }\n%s = %s(raw)", fieldExpr, elemGoType)
	case pointer:
		decode, _, _, _ := directFuncs(k)
		return fmt.Sprintf("if err := codec.DecodeOptional(&%s, func() (%s, error) { return %s(&buf) }); err != nil { return err }",
			fieldExpr, elemGoType, decode)
	default:
		decode, _, _, _ := directFuncs(k)
		return fmt.Sprintf("v, err := %s(&buf); if err != nil { return err }\n%s = v", decode, fieldExpr)
	}
}

func hasLazyMessagePrefix(t string) bool {
	return len(t) > len("codec.LazyMessage[") && t[:len("codec.LazyMessage[")] == "codec.LazyMessage["
}

// mapKeyLessLiteral returns the Less func literal ordmap.New needs to order
// a map_type="btree" field's keys. bool has no natural ordering (false,
// true is the only sensible one); every other legal map key type (the
// integral types, their sint/fixed wrappers, and string) orders with the
// language's native <.
func mapKeyLessLiteral(keyGo string) string {
	if keyGo == "bool" {
		return "func(a, b bool) bool { return !a && b }"
	}
	return fmt.Sprintf("func(a, b %s) bool { return a < b }", keyGo)
}

func mapEntryCodecLiteral(keyGo, valGo string, valKind elemKind) string {
	keyKind := mapKeyKind(keyGo)
	kDecode, kEncode, kLen := mapCodecPieces(keyKind, keyGo)
	vDecode, vEncode, vLen := mapCodecPieces(valKind, valGo)
	return fmt.Sprintf("codec.MapEntryCodec[%s, %s]{KeyWireType: %s, ValueWireType: %s, DecodeKey: %s, DecodeValue: %s, EncodeKey: %s, EncodeValue: %s, KeyLen: %s, ValueLen: %s}",
		keyGo, valGo, keyKind.wireTypeExpr(), valKind.wireTypeExpr(), kDecode, vDecode, kEncode, vEncode, kLen, vLen)
}

func mapKeyKind(keyGo string) elemKind {
	switch keyGo {
	case "int32":
		return kInt32
	case "int64":
		return kInt64
	case "uint32":
		return kUint32
	case "uint64":
		return kUint64
	case "codec.Sint32":
		return kSint32
	case "codec.Sint64":
		return kSint64
	case "codec.Fixed32":
		return kFixed32
	case "codec.Fixed64":
		return kFixed64
	case "codec.Sfixed32":
		return kSfixed32
	case "codec.Sfixed64":
		return kSfixed64
	case "bool":
		return kBool
	default:
		return kString
	}
}

// mapCodecPieces returns (decode, encode, length) function-value
// expressions with the plain func(buf *[]byte)(T,error) / func([]byte,
// T)[]byte / func(T)int shapes MapEntryCodec's fields expect — the same
// shapes ElementCodec uses, so this reuses directFuncs/wrapperClosures.
func mapCodecPieces(k elemKind, goType string) (decode, encode, length string) {
	if d, e, l, ok := directFuncs(k); ok {
		return d, e, l
	}
	return wrapperClosures(k, goType)
}

func emitEncodeMessage(w Printer, goIdent string, fields []resolvedField, oneofs []*descriptor.OneofDescriptorProto, sets [][]oneofField) {
	w.P("func (m *", goIdent, ") EncodeMessage(b []byte) []byte {")
	for _, f := range fields {
		if f.oneofIndex >= 0 {
			continue
		}
		w.P(fieldEncodeStmt(f))
	}
	for oi, od := range oneofs {
		if len(sets[oi]) == 0 {
			continue
		}
		w.P("if m.", fieldGoName(od.GetName()), " != nil { b = wire.AppendTag(b, m.", fieldGoName(od.GetName()), ".VariantTag(), m.", fieldGoName(od.GetName()), ".VariantWireType()); b = m.", fieldGoName(od.GetName()), ".EncodeVariant(b) }")
	}
	w.P("b = m.unknown.Encode(b)")
	w.P("return b")
	w.P("}")
	w.P()
}

func fieldEncodeStmt(f resolvedField) string {
	tag := f.proto.GetNumber()
	fieldExpr := "m." + f.goName
	switch {
	case f.isMap && f.mapOrdered:
		return fmt.Sprintf("for _, kv := range %s.Entries() { b = codec.EncodeMapEntry(b, %d, kv.Key, kv.Value, %s) }",
			fieldExpr, tag, mapEntryCodecLiteral(f.mapKeyGo, f.elemGoType, f.kind))
	case f.isMap:
		return fmt.Sprintf("for k, v := range %s { b = codec.EncodeMapEntry(b, %d, k, v, %s) }",
			fieldExpr, tag, mapEntryCodecLiteral(f.mapKeyGo, f.elemGoType, f.kind))
	case f.isRepeated && f.useVec:
		return fmt.Sprintf("for _, v := range %s { b = wire.AppendTag(b, %d, %s); %s }",
			fieldExpr, tag, f.kind.wireTypeExpr(), repeatedElementEncodeInline("b", "v", f.kind))
	case f.isRepeated:
		return fmt.Sprintf("b, _ = %s.EncodeTagged(b, %d)", fieldExpr, tag)
	default:
		return singularEncodeStmt("b", fieldExpr, f.fullType, tag, f.kind, f.elemGoType)
	}
}

func repeatedElementEncodeInline(b, v string, k elemKind) string {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("%s = %s.Encode(%s)", b, v, b)
	case kEnum:
		return fmt.Sprintf("%s = codec.EncodeEnum(%s, int32(%s))", b, b, v)
	case kMessage:
		return fmt.Sprintf("%s = codec.EncodeMessageField(%s, %s)", b, b, v)
	default:
		_, encode, _, _ := directFuncs(k)
		return fmt.Sprintf("%s = %s(%s, %s)", b, encode, b, v)
	}
}

func singularEncodeStmt(b, fieldExpr, fullType string, tag int32, k elemKind, elemGoType string) string {
	wt := k.wireTypeExpr()
	switch {
	case hasLazyMessagePrefix(fullType):
		return fmt.Sprintf("if !%s.IsProtoDefault() { %s = wire.AppendTag(%s, %d, %s); %s = %s.Encode(%s) }",
			fieldExpr, b, b, tag, wt, b, fieldExpr, b)
	case k == kMessage:
		return fmt.Sprintf("if %s != nil { %s = wire.AppendTag(%s, %d, %s); %s = codec.EncodeMessageField(%s, %s) }",
			fieldExpr, b, b, tag, wt, b, b, fieldExpr)
	case isPointerType(fullType):
		var valueCall string
		switch k {
		case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
			valueCall = "v.Encode(bb)"
		case kEnum:
			valueCall = "codec.EncodeEnum(bb, int32(v))"
		default:
			_, encode, _, _ := directFuncs(k)
			valueCall = fmt.Sprintf("%s(bb, v)", encode)
		}
		encodeFn := fmt.Sprintf("func(bb []byte, v %s) []byte { bb = wire.AppendTag(bb, %d, %s); return %s }", elemGoType, tag, wt, valueCall)
		return fmt.Sprintf("%s = codec.EncodeOptional(%s, %s, %s)", b, b, fieldExpr, encodeFn)
	default:
		isDefault, call := defaultCheckAndEncode(b, fieldExpr, k)
		return fmt.Sprintf("if !%s { %s = wire.AppendTag(%s, %d, %s); %s = %s }", isDefault, b, b, tag, wt, b, call)
	}
}

func defaultCheckAndEncode(b, fieldExpr string, k elemKind) (isDefaultExpr, call string) {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("%s.IsProtoDefault()", fieldExpr), fmt.Sprintf("%s.Encode(%s)", fieldExpr, b)
	case kEnum:
		return fmt.Sprintf("codec.IsEnumDefault(int32(%s))", fieldExpr), fmt.Sprintf("codec.EncodeEnum(%s, int32(%s))", b, fieldExpr)
	default:
		_, encode, _, _ := directFuncs(k)
		return isDefaultFn(k) + "(" + fieldExpr + ")", fmt.Sprintf("%s(%s, %s)", encode, b, fieldExpr)
	}
}

func isDefaultFn(k elemKind) string {
	switch k {
	case kInt32:
		return "codec.IsInt32Default"
	case kInt64:
		return "codec.IsInt64Default"
	case kUint32:
		return "codec.IsUint32Default"
	case kUint64:
		return "codec.IsUint64Default"
	case kBool:
		return "codec.IsBoolDefault"
	case kFloat:
		return "codec.IsFloatDefault"
	case kDouble:
		return "codec.IsDoubleDefault"
	default:
		return "codec.IsInt32Default"
	}
}

func emitEncodedMessageLen(w Printer, goIdent string, fields []resolvedField, oneofs []*descriptor.OneofDescriptorProto, sets [][]oneofField) {
	w.P("func (m *", goIdent, ") EncodedMessageLen() int {")
	w.P("n := 0")
	for _, f := range fields {
		if f.oneofIndex >= 0 {
			continue
		}
		w.P(fieldLenStmt(f))
	}
	for oi, od := range oneofs {
		if len(sets[oi]) == 0 {
			continue
		}
		w.P("if m.", fieldGoName(od.GetName()), " != nil { n += wire.SizeTag(m.", fieldGoName(od.GetName()), ".VariantTag()) + m.", fieldGoName(od.GetName()), ".EncodedVariantLen() }")
	}
	w.P("n += m.unknown.EncodedLen()")
	w.P("return n")
	w.P("}")
	w.P()
}

func fieldLenStmt(f resolvedField) string {
	tag := f.proto.GetNumber()
	fieldExpr := "m." + f.goName
	switch {
	case f.isMap && f.mapOrdered:
		return fmt.Sprintf("for _, kv := range %s.Entries() { n += codec.EncodedMapEntryLen(%d, kv.Key, kv.Value, %s) }",
			fieldExpr, tag, mapEntryCodecLiteral(f.mapKeyGo, f.elemGoType, f.kind))
	case f.isMap:
		return fmt.Sprintf("for k, v := range %s { n += codec.EncodedMapEntryLen(%d, k, v, %s) }",
			fieldExpr, tag, mapEntryCodecLiteral(f.mapKeyGo, f.elemGoType, f.kind))
	case f.isRepeated && f.useVec:
		return fmt.Sprintf("for _, v := range %s { n += wire.SizeTag(%d) + %s }", fieldExpr, tag, repeatedElementLenInline("v", f.kind))
	case f.isRepeated:
		return fmt.Sprintf("if taggedLen, err := %s.EncodedTaggedLen(%d); err == nil { n += taggedLen }", fieldExpr, tag)
	default:
		return singularLenStmt(fieldExpr, f.fullType, tag, f.kind, f.elemGoType)
	}
}

func repeatedElementLenInline(v string, k elemKind) string {
	switch k {
	case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
		return fmt.Sprintf("%s.EncodedLen()", v)
	case kEnum:
		return fmt.Sprintf("codec.EncodedLenEnum(int32(%s))", v)
	case kMessage:
		return fmt.Sprintf("codec.EncodedMessageFieldLen(%s)", v)
	default:
		_, _, length, _ := directFuncs(k)
		return fmt.Sprintf("%s(%s)", length, v)
	}
}

func singularLenStmt(fieldExpr, fullType string, tag int32, k elemKind, elemGoType string) string {
	switch {
	case hasLazyMessagePrefix(fullType):
		return fmt.Sprintf("if !%s.IsProtoDefault() { n += wire.SizeTag(%d) + %s.EncodedLen() }", fieldExpr, tag, fieldExpr)
	case k == kMessage:
		return fmt.Sprintf("if %s != nil { n += wire.SizeTag(%d) + codec.EncodedMessageFieldLen(%s) }", fieldExpr, tag, fieldExpr)
	case isPointerType(fullType):
		var lenCall string
		switch k {
		case kSint32, kSint64, kFixed32, kFixed64, kSfixed32, kSfixed64, kString, kBytes:
			lenCall = "v.EncodedLen()"
		case kEnum:
			lenCall = "codec.EncodedLenEnum(int32(v))"
		default:
			_, _, length, _ := directFuncs(k)
			lenCall = fmt.Sprintf("%s(v)", length)
		}
		lenFn := fmt.Sprintf("func(v %s) int { return %s }", elemGoType, lenCall)
		return fmt.Sprintf("if %s != nil { n += wire.SizeTag(%d) + codec.EncodedOptionalLen(%s, %s) }", fieldExpr, tag, fieldExpr, lenFn)
	default:
		isDefault, _ := defaultCheckAndEncode("b", fieldExpr, k)
		var lenExpr string
		switch k {
		case kEnum:
			lenExpr = fmt.Sprintf("codec.EncodedLenEnum(int32(%s))", fieldExpr)
		default:
			_, _, length, _ := directFuncs(k)
			lenExpr = fmt.Sprintf("%s(%s)", length, fieldExpr)
		}
		return fmt.Sprintf("if !%s { n += wire.SizeTag(%d) + %s }", isDefault, tag, lenExpr)
	}
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
