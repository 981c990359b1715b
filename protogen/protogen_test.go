package protogen

import (
	"flag"
	"strings"
	"testing"

	"github.com/protomon/protomon/descriptor"
)

func TestPluginParameters(t *testing.T) {
	var flags flag.FlagSet
	value := flags.Int("integer", 0, "")
	opts := &Options{ParamFunc: flags.Set}
	const params = "integer=2"
	_, err := New(&CodeGeneratorRequest{Parameter: params}, opts)
	if err != nil {
		t.Errorf("New(generator parameters %q): %v", params, err)
	}
	if *value != 2 {
		t.Errorf("New(generator parameters %q): integer=%v, want 2", params, *value)
	}
}

func TestPluginParameterErrors(t *testing.T) {
	var flags flag.FlagSet
	flags.Bool("boolean", false, "")
	opts := &Options{ParamFunc: flags.Set}
	_, err := New(&CodeGeneratorRequest{Parameter: "boolean=notabool"}, opts)
	if err == nil {
		t.Errorf("New(generator parameters %q): want error, got nil", "boolean=notabool")
	}
}

func TestFiles(t *testing.T) {
	name := func(s string) *string { return &s }
	req := &CodeGeneratorRequest{
		ProtoFile: []*descriptor.FileDescriptorProto{
			{Name: name("dir/generated.proto"), Package: name("dir")},
			{Name: name("dir/dependency.proto"), Package: name("dir")},
		},
		FileToGenerate: []string{"dir/generated.proto"},
	}
	gen, err := New(req, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		path         string
		wantGenerate bool
	}{
		{path: "dir/generated.proto", wantGenerate: true},
		{path: "dir/dependency.proto", wantGenerate: false},
	} {
		f, ok := gen.FileByName(test.path)
		if !ok {
			t.Errorf("%q: not found by gen.FileByName", test.path)
			continue
		}
		if f.Generate != test.wantGenerate {
			t.Errorf("%q: Generate=%v, want %v", test.path, f.Generate, test.wantGenerate)
		}
	}
}

func TestPackageNamesAndPaths(t *testing.T) {
	name := func(s string) *string { return &s }
	const filename = "dir/filename.proto"

	for _, test := range []struct {
		desc               string
		parameter          string
		protoPackage       string
		wantPackageName    GoPackageName
		wantImportPath     GoImportPath
		wantFilenamePrefix string
	}{
		{
			desc:               "no parameters",
			protoPackage:       "proto.package",
			wantPackageName:    "proto_package",
			wantImportPath:     "dir",
			wantFilenamePrefix: "dir/filename",
		},
		{
			desc:               "M-param sets import path for a file",
			parameter:          "Mdir/filename.proto=golang.org/x/bar",
			protoPackage:       "proto.package",
			wantPackageName:    "proto_package",
			wantImportPath:     "golang.org/x/bar",
			wantFilenamePrefix: "dir/filename",
		},
		{
			desc:               "import_path parameter sets import path of generated files",
			parameter:          "import_path=golang.org/x/bar",
			protoPackage:       "proto.package",
			wantPackageName:    "proto_package",
			wantImportPath:     "golang.org/x/bar",
			wantFilenamePrefix: "dir/filename",
		},
	} {
		req := &CodeGeneratorRequest{
			Parameter: test.parameter,
			ProtoFile: []*descriptor.FileDescriptorProto{
				{Name: name(filename), Package: name(test.protoPackage)},
			},
			FileToGenerate: []string{filename},
		}
		gen, err := New(req, nil)
		if err != nil {
			t.Errorf("%v: New(req) = %v", test.desc, err)
			continue
		}
		f, ok := gen.FileByName(filename)
		if !ok {
			t.Errorf("%v: missing file info", test.desc)
			continue
		}
		if got, want := f.GoPackageName, test.wantPackageName; got != want {
			t.Errorf("%v: GoPackageName=%v, want %v", test.desc, got, want)
		}
		if got, want := f.GoImportPath, test.wantImportPath; got != want {
			t.Errorf("%v: GoImportPath=%v, want %v", test.desc, got, want)
		}
		if got, want := f.GeneratedFilenamePrefix, test.wantFilenamePrefix; got != want {
			t.Errorf("%v: GeneratedFilenamePrefix=%v, want %v", test.desc, got, want)
		}
	}
}

func TestExternPathParameter(t *testing.T) {
	name := func(s string) *string { return &s }
	req := &CodeGeneratorRequest{
		Parameter: "extern_path=.google.protobuf.Timestamp=time.Time",
		ProtoFile: []*descriptor.FileDescriptorProto{
			{Name: name("dir/a.proto"), Package: name("a")},
		},
		FileToGenerate: []string{"dir/a.proto"},
	}
	gen, err := New(req, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := gen.registry.ResolveType(".google.protobuf.Timestamp")
	if !ok || got != "time.Time" {
		t.Errorf("ResolveType(.google.protobuf.Timestamp) = %q, %v; want time.Time, true", got, ok)
	}
}

func TestImports(t *testing.T) {
	gen, err := New(&CodeGeneratorRequest{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := gen.NewGeneratedFile("foo.go", "golang.org/x/foo")
	g.P("package foo")
	g.P()
	for _, importPath := range []GoImportPath{
		"golang.org/x/foo",
		"golang.org/x/bar",
		"golang.org/x/bar",
		"golang.org/y/bar",
		"golang.org/x/baz",
		"golang.org/z/string",
	} {
		g.P("var _ = ", GoIdent{GoName: "X", GoImportPath: importPath}, " // ", importPath)
	}
	want := `package foo

import (
	bar "golang.org/x/bar"
	baz "golang.org/x/baz"
	bar1 "golang.org/y/bar"
	string1 "golang.org/z/string"
)

var _ = X         // "golang.org/x/foo"
var _ = bar.X     // "golang.org/x/bar"
var _ = bar.X     // "golang.org/x/bar"
var _ = bar1.X    // "golang.org/y/bar"
var _ = baz.X     // "golang.org/x/baz"
var _ = string1.X // "golang.org/z/string"
`
	got, err := g.Content()
	if err != nil {
		t.Fatalf("g.Content() = %v", err)
	}
	if want != string(got) {
		t.Fatalf("want:\n==========\n%v\n==========\n\ngot:\n==========\n%v\n==========", want, string(got))
	}
}

func TestImportRewrites(t *testing.T) {
	gen, err := New(&CodeGeneratorRequest{}, &Options{
		ImportRewriteFunc: func(i GoImportPath) GoImportPath {
			return "prefix/" + i
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	g := gen.NewGeneratedFile("foo.go", "golang.org/x/foo")
	g.P("package foo")
	g.P("var _ = ", GoIdent{GoName: "X", GoImportPath: "golang.org/x/bar"})
	want := `package foo

import bar "prefix/golang.org/x/bar"

var _ = bar.X
`
	got, err := g.Content()
	if err != nil {
		t.Fatalf("g.Content() = %v", err)
	}
	if want != string(got) {
		t.Fatalf("want:\n==========\n%v\n==========\n\ngot:\n==========\n%v\n==========", want, string(got))
	}
}

func TestGenerateFiles(t *testing.T) {
	name := func(s string) *string { return &s }
	typ := int32(descriptor.TypeInt32)
	label := int32(descriptor.LabelOptional)
	tag := int32(1)
	req := &CodeGeneratorRequest{
		ProtoFile: []*descriptor.FileDescriptorProto{
			{
				Name:    name("dir/thing.proto"),
				Package: name("dir"),
				Syntax:  name("proto3"),
				MessageType: []*descriptor.DescriptorProto{
					{
						Name: name("Thing"),
						Field: []*descriptor.FieldDescriptorProto{
							{Name: name("count"), Number: &tag, Type: &typ, Label: &label},
						},
					},
				},
			},
		},
		FileToGenerate: []string{"dir/thing.proto"},
	}
	p, err := New(req, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.GenerateFiles(); err != nil {
		t.Fatalf("GenerateFiles() = %v", err)
	}
	resp := p.Response()
	if resp.Error != nil {
		t.Fatalf("Response().Error = %v", *resp.Error)
	}
	if len(resp.File) != 1 {
		t.Fatalf("len(resp.File) = %d, want 1", len(resp.File))
	}
	if resp.File[0].Name != "dir/thing.pb.go" {
		t.Errorf("resp.File[0].Name = %q, want dir/thing.pb.go", resp.File[0].Name)
	}
	if want := "type Thing struct"; !strings.Contains(resp.File[0].Content, want) {
		t.Errorf("generated content missing %q:\n%s", want, resp.File[0].Content)
	}
}
