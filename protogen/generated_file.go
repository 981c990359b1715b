package protogen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/protomon/protomon/gen"
)

// A GeneratedFile is a single file under construction by the plugin.
type GeneratedFile struct {
	p                *Plugin
	skip             bool
	filename         string
	goImportPath     GoImportPath
	buf              bytes.Buffer
	packageNames     map[GoImportPath]GoPackageName
	usedPackageNames map[GoPackageName]bool
	manualImports    map[GoImportPath]bool
}

// NewGeneratedFile creates a new generated file with the given filename and
// import path, registering it with the plugin so it appears in the
// eventual CodeGeneratorResponse.
func (p *Plugin) NewGeneratedFile(filename string, goImportPath GoImportPath) *GeneratedFile {
	g := &GeneratedFile{
		p:                p,
		filename:         filename,
		goImportPath:     goImportPath,
		packageNames:     make(map[GoImportPath]GoPackageName),
		usedPackageNames: make(map[GoPackageName]bool),
		manualImports:    make(map[GoImportPath]bool),
	}
	// Go's predeclared identifiers are never used as import names.
	for _, s := range types.Universe.Names() {
		g.usedPackageNames[GoPackageName(s)] = true
	}
	p.genFiles = append(p.genFiles, g)
	return g
}

// P prints a line to the generated output, converting each argument to a
// string following fmt.Print's rules, with no inserted spacing between
// arguments — matching golang-protobuf's protogen.GeneratedFile.P, the
// idiom every per-file emitter in this generator (gen/message.go,
// gen/field.go, gen/oneof.go, gen/enum.go) writes against.
func (g *GeneratedFile) P(v ...interface{}) {
	for _, x := range v {
		switch x := x.(type) {
		case GoIdent:
			fmt.Fprint(&g.buf, g.QualifiedGoIdent(x))
		default:
			fmt.Fprint(&g.buf, x)
		}
	}
	fmt.Fprintln(&g.buf)
}

// PrintLeadingComments writes, as "//"-prefixed lines, the comment
// immediately preceding path in the originating .proto source (looked up in
// cm, the generating file's comment map), if any. It reports whether a
// comment was found. Takes a gen.CommentMap directly, rather than a *File,
// so the gen package's per-file emitters can call it through the
// gen.Printer interface without depending on package protogen.
func (g *GeneratedFile) PrintLeadingComments(cm gen.CommentMap, path gen.Path) (hasComment bool) {
	comment, ok := cm.Lookup(path)
	if !ok {
		return false
	}
	for _, line := range strings.Split(strings.TrimSuffix(comment, "\n"), "\n") {
		g.buf.WriteString("//")
		g.buf.WriteString(line)
		g.buf.WriteString("\n")
	}
	return true
}

// QualifiedGoIdent returns the string to use for a Go identifier. If the
// identifier belongs to a different Go package than the file being
// generated, the returned name is package-qualified and the package is
// recorded for import.
func (g *GeneratedFile) QualifiedGoIdent(ident GoIdent) string {
	if ident.GoImportPath == g.goImportPath {
		return ident.GoName
	}
	if packageName, ok := g.packageNames[ident.GoImportPath]; ok {
		return string(packageName) + "." + ident.GoName
	}
	packageName := cleanPackageName(baseName(string(ident.GoImportPath)))
	for i, orig := 1, packageName; g.usedPackageNames[packageName]; i++ {
		packageName = orig + GoPackageName(strconv.Itoa(i))
	}
	g.packageNames[ident.GoImportPath] = packageName
	g.usedPackageNames[packageName] = true
	return string(packageName) + "." + ident.GoName
}

// Import ensures a package is imported by the generated file even if no
// QualifiedGoIdent call ever references it (e.g. a blank import).
func (g *GeneratedFile) Import(importPath GoImportPath) {
	g.manualImports[importPath] = true
}

// EnsureImport registers a named import whose package-qualified identifier
// is written directly as text (e.g. "wire.AppendTag(...)") rather than
// through a GoIdent/QualifiedGoIdent call, so Content's import-insertion
// pass still picks it up. Used by gen's per-file emitters, which reference
// wire/codec/fmt by their conventional package names throughout the bodies
// they print.
func (g *GeneratedFile) EnsureImport(path, name string) {
	g.packageNames[GoImportPath(path)] = GoPackageName(name)
	g.usedPackageNames[GoPackageName(name)] = true
}

// Write implements io.Writer, so a GeneratedFile can be handed directly to
// anything that writes Go source text (text/template, fmt.Fprint, etc).
func (g *GeneratedFile) Write(p []byte) (n int, err error) {
	return g.buf.Write(p)
}

// Skip removes this file from the plugin's eventual output.
func (g *GeneratedFile) Skip() {
	g.skip = true
}

// Content returns the finished contents of the generated file: the raw
// token stream accumulated by P, with an import block inserted via
// astutil.AddNamedImport and the whole file re-formatted via go/format —
// mirroring golang-protobuf's own two-pass "emit raw tokens, then run
// through the Go formatter" GeneratedFile.Content, but using
// golang.org/x/tools' astutil for import insertion instead of constructing
// the *ast.GenDecl by hand.
func (g *GeneratedFile) Content() ([]byte, error) {
	if !strings.HasSuffix(g.filename, ".go") {
		return g.buf.Bytes(), nil
	}

	original := g.buf.Bytes()
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, g.filename, original, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%v: unparsable Go source: %v", g.filename, err)
	}

	type importEntry struct {
		name string
		path string
	}
	var imports []importEntry
	rewrite := func(importPath string) string {
		if f := g.p.opts.ImportRewriteFunc; f != nil {
			return string(f(GoImportPath(importPath)))
		}
		return importPath
	}
	for importPath, pkgName := range g.packageNames {
		imports = append(imports, importEntry{name: string(pkgName), path: rewrite(string(importPath))})
	}
	for importPath := range g.manualImports {
		if _, ok := g.packageNames[importPath]; !ok {
			imports = append(imports, importEntry{name: "_", path: rewrite(string(importPath))})
		}
	}
	for _, im := range imports {
		astutil.AddNamedImport(fset, astFile, im.name, im.path)
	}

	var out bytes.Buffer
	if err := format.Node(&out, fset, astFile); err != nil {
		return nil, fmt.Errorf("%v: cannot reformat Go source: %v", g.filename, err)
	}
	return format.Source(out.Bytes())
}
