package gen

// camelCase converts a proto field/oneof name (snake_case by convention)
// into the Go exported identifier emitted for it, following the same rule
// protogen/names.go applies to full type paths. Duplicated here (rather
// than shared) because gen must not import protogen — see the Printer
// interface's doc comment in comments.go.
func camelCase(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' && i+1 < len(s) && isASCIILower(s[i+1]):
			// Skip over '_' in "_{{lowercase}}".
		case isASCIIDigit(c):
			b = append(b, c)
		default:
			if isASCIILower(c) {
				c -= 'a' - 'A'
			}
			b = append(b, c)
			for ; i+1 < len(s) && isASCIILower(s[i+1]); i++ {
				b = append(b, s[i+1])
			}
		}
	}
	return string(b)
}

func isASCIILower(c byte) bool { return 'a' <= c && c <= 'z' }
func isASCIIDigit(c byte) bool { return '0' <= c && c <= '9' }

// goIdentFor renders the fully-joined, camelCased Go identifier for a
// message/enum declared at protoPath (already "."-joined by the caller
// while walking the descriptor tree), reusing the same package-stripping
// rule the type registry indexes cross-references by.
func goIdentFor(protoPath string) string {
	return protoPathToGoType(protoPath)
}

// fieldGoName is the Go struct field name for a proto field/oneof name.
func fieldGoName(name string) string { return camelCase(name) }
