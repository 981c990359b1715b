package descriptor

// MapEntryInfo records the key/value field descriptors of a compiler-
// synthesized map-entry message, indexed by its fully-qualified name.
// original_source/protomon-build/src/descriptor/mod.rs built this as a
// second walk after decode, and so does this package: CollectMapEntries
// runs once over the decoded set (from gen.NewRegistry), so the generator
// never needs to re-walk the descriptor tree to recognize a map field's
// synthetic entry type.
type MapEntryInfo struct {
	Key   *FieldDescriptorProto
	Value *FieldDescriptorProto
}

// CollectMapEntries walks every message in every file (including nested
// messages, recursively) and returns a map from each map-entry message's
// fully-qualified name to its key/value fields.
func CollectMapEntries(fds *FileDescriptorSet) map[string]MapEntryInfo {
	out := make(map[string]MapEntryInfo)
	for _, file := range fds.File {
		pkg := file.GetPackage()
		for _, msg := range file.MessageType {
			collectMapEntriesInMessage(pkg, msg, out)
		}
	}
	return out
}

func collectMapEntriesInMessage(scope string, msg *DescriptorProto, out map[string]MapEntryInfo) {
	fqn := scope + "." + msg.GetName()
	if msg.IsMapEntry() {
		info := MapEntryInfo{}
		for _, f := range msg.Field {
			switch f.GetNumber() {
			case 1:
				info.Key = f
			case 2:
				info.Value = f
			}
		}
		out[fqn] = info
	}
	for _, nested := range msg.NestedType {
		collectMapEntriesInMessage(fqn, nested, out)
	}
}
