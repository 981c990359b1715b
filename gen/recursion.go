package gen

import "github.com/protomon/protomon/descriptor"

// messageEdge is one message-typed field reference, grounded on
// codegen/recursion.rs's (field_name, referenced_type) tuple.
type messageEdge struct {
	fieldName string
	targetFQN string
}

// FindRecursiveFields walks every message-typed field across the whole
// descriptor set and returns the set of (message, field) pairs that must be
// pointer-boxed in Go to break a reference cycle. Ported in spirit from
// codegen/recursion.rs::find_recursive_fields: build a message-reference
// graph, then run a DFS from every node tracking the current path, marking
// any edge that closes back to the DFS root.
func FindRecursiveFields(fds *descriptor.FileDescriptorSet) map[RecursiveField]struct{} {
	graph := make(map[string][]messageEdge)
	for _, file := range fds.File {
		pkg := file.GetPackage()
		prefix := "."
		if pkg != "" {
			prefix = "." + pkg + "."
		}
		for _, msg := range file.MessageType {
			collectMessageEdges(graph, prefix, msg)
		}
	}

	result := make(map[RecursiveField]struct{})
	for fqn := range graph {
		inPath := map[string]struct{}{fqn: {}}
		dfsFindCycles(graph, fqn, fqn, inPath, result)
	}
	return result
}

func collectMessageEdges(graph map[string][]messageEdge, prefix string, msg *descriptor.DescriptorProto) {
	name := msg.GetName()
	if name == "" {
		return
	}
	fqn := prefix + name

	var edges []messageEdge
	for _, field := range msg.Field {
		fieldName := field.GetName()
		if fieldName == "" {
			continue
		}
		if field.GetType() != descriptor.TypeMessage {
			continue
		}
		if field.GetTypeName() == "" {
			continue
		}
		edges = append(edges, messageEdge{fieldName: fieldName, targetFQN: field.GetTypeName()})
	}
	graph[fqn] = edges

	nestedPrefix := fqn + "."
	for _, nested := range msg.NestedType {
		if nested.IsMapEntry() {
			continue
		}
		collectMessageEdges(graph, nestedPrefix, nested)
	}
}

// dfsFindCycles searches for a path from current back to target, recording
// a RecursiveField whenever an edge closes the cycle. in_path guards
// against descending into a node already on the current DFS path, avoiding
// infinite loops in complex cycles.
func dfsFindCycles(graph map[string][]messageEdge, current, target string, inPath map[string]struct{}, result map[RecursiveField]struct{}) {
	edges, ok := graph[current]
	if !ok {
		return
	}
	for _, e := range edges {
		if e.targetFQN == target {
			result[RecursiveField{MessageFQN: current, FieldName: e.fieldName}] = struct{}{}
			continue
		}
		if _, inCurrentPath := inPath[e.targetFQN]; inCurrentPath {
			continue
		}
		inPath[e.targetFQN] = struct{}{}
		dfsFindCycles(graph, e.targetFQN, target, inPath, result)
		delete(inPath, e.targetFQN)
	}
}
