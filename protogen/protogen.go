// Package protogen provides support for writing protoc plugins for
// protomon. Plugins for protoc, the Protocol Buffers Compiler, are programs
// which read a CodeGeneratorRequest protocol buffer from standard input and
// write a CodeGeneratorResponse protocol buffer to standard output. This
// package provides the scaffolding a plugin needs to walk a decoded
// descriptor set and assemble Go source text, ported from
// golang-protobuf's protogen package and narrowed to the messages/enums/
// oneofs this generator actually emits (no services/extensions — out of
// this module's scope).
package protogen

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/protomon/protomon/descriptor"
	"github.com/protomon/protomon/gen"
	"github.com/protomon/protomon/internal/errors"
)

// Run executes f as a protoc plugin: it reads a CodeGeneratorRequest from
// os.Stdin, invokes f, and writes a CodeGeneratorResponse to os.Stdout. On
// failure to read or write the plugin envelope itself (as opposed to a
// generation error, which is reported inside the response) it prints to
// os.Stderr and exits 1, matching protoc's convention that a plugin which
// cannot even produce a response has failed in a way protoc itself must
// report.
func Run(opts *Options, f func(*Plugin) error) {
	if err := run(opts, f); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
}

func run(opts *Options, f func(*Plugin) error) error {
	if len(os.Args) > 1 {
		return fmt.Errorf("unknown argument %q (this program should be run by protoc, not directly)", os.Args[1])
	}
	in, err := readAll(os.Stdin)
	if err != nil {
		return err
	}
	req, err := decodeCodeGeneratorRequest(in)
	if err != nil {
		return err
	}
	plugin, err := New(req, opts)
	if err != nil {
		return err
	}
	if err := f(plugin); err != nil {
		plugin.Error(err)
	}
	resp := plugin.Response()
	if _, err := os.Stdout.Write(encodeCodeGeneratorResponse(resp)); err != nil {
		return err
	}
	return nil
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(f)
	return buf.Bytes(), err
}

// A Plugin is a protoc plugin invocation.
type Plugin struct {
	Request *CodeGeneratorRequest

	// Files is the set of files described by the request, in the order
	// protoc supplied them. Files appear in topological order: each file
	// appears before any file that imports it.
	Files       []*File
	filesByName map[string]*File

	messagesByName map[string]*Message
	enumsByName    map[string]*Enum
	registry       *gen.Registry

	pathType pathType
	genFiles []*GeneratedFile
	opts     *Options
	err      error
}

// Options are optional parameters to New.
type Options struct {
	// ParamFunc, if non-nil, is called with each generator parameter this
	// package does not itself interpret (anything other than import_path,
	// paths, extern_path, or an M<file>=<path> mapping), following the
	// --<lang>_out=<param1>=<value1>,<param2>=<value2>: convention.
	ParamFunc func(name, value string) error

	// ImportRewriteFunc, if non-nil, is called with the import path of each
	// package imported by a generated file, and returns the path to use.
	ImportRewriteFunc func(GoImportPath) GoImportPath
}

// New returns a new Plugin for req. Passing a nil Options is equivalent to
// passing a zero-valued one.
func New(req *CodeGeneratorRequest, opts *Options) (*Plugin, error) {
	if opts == nil {
		opts = &Options{}
	}
	p := &Plugin{
		Request:        req,
		filesByName:    make(map[string]*File),
		messagesByName: make(map[string]*Message),
		enumsByName:    make(map[string]*Enum),
		opts:           opts,
	}

	importPaths := make(map[string]GoImportPath) // filename -> import path
	externPaths := make(map[string]string)       // proto FQN -> Go identifier
	var packageImportPath GoImportPath
	for _, param := range strings.Split(req.Parameter, ",") {
		var value string
		name := param
		if i := strings.Index(param, "="); i >= 0 {
			value = param[i+1:]
			name = param[:i]
		}
		switch name {
		case "":
			// Ignore.
		case "import_path":
			packageImportPath = GoImportPath(value)
		case "paths":
			switch value {
			case "import":
				p.pathType = pathTypeImport
			case "source_relative":
				p.pathType = pathTypeSourceRelative
			default:
				return nil, fmt.Errorf(`unknown path type %q: want "import" or "source_relative"`, value)
			}
		case "extern_path":
			// extern_path=<proto FQN>=<Go identifier>, e.g.
			// extern_path=.google.protobuf.Timestamp=time.Time. Ported from
			// original_source/protomon-build's Config::extern_paths,
			// carried on the same --go_out parameter string other
			// protoc plugins use for M<file>=<path> mappings.
			i := strings.Index(value, "=")
			if i < 0 {
				return nil, fmt.Errorf(`bad extern_path %q: want "<proto.Type>=<go.Ident>"`, value)
			}
			externPaths[value[:i]] = value[i+1:]
		default:
			if name[0] == 'M' {
				importPaths[name[1:]] = GoImportPath(value)
				continue
			}
			if opts.ParamFunc != nil {
				if err := opts.ParamFunc(name, value); err != nil {
					return nil, err
				}
			}
		}
	}

	generatedFileNames := make(map[string]bool)
	for _, name := range req.FileToGenerate {
		generatedFileNames[name] = true
	}

	for _, fdp := range req.ProtoFile {
		filename := fdp.GetName()
		if _, ok := importPaths[filename]; !ok {
			if generatedFileNames[filename] && packageImportPath != "" {
				importPaths[filename] = packageImportPath
			} else {
				importPaths[filename] = GoImportPath(path.Dir(filename))
			}
		}
	}

	p.registry = gen.NewRegistry(&descriptor.FileDescriptorSet{File: req.ProtoFile}, externPaths)

	for _, fdp := range req.ProtoFile {
		filename := fdp.GetName()
		if p.filesByName[filename] != nil {
			return nil, errGen(filename, "duplicate file name")
		}
		packageName := cleanPackageName(basePackageName(fdp))
		f, err := newFile(p, fdp, packageName, importPaths[filename])
		if err != nil {
			return nil, err
		}
		p.Files = append(p.Files, f)
		p.filesByName[filename] = f
	}
	for _, filename := range req.FileToGenerate {
		f, ok := p.FileByName(filename)
		if !ok {
			return nil, fmt.Errorf("no descriptor for generated file: %v", filename)
		}
		f.Generate = true
	}
	for _, f := range p.Files {
		if err := f.resolveFieldTypes(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func basePackageName(fdp *descriptor.FileDescriptorProto) string {
	if fdp.GetPackage() != "" {
		return fdp.GetPackage()
	}
	return baseName(fdp.GetName())
}

// Error records an error in code generation. The generator reports it back
// to protoc via the response and produces no output.
func (p *Plugin) Error(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Response returns the generator's output envelope.
func (p *Plugin) Response() *CodeGeneratorResponse {
	resp := &CodeGeneratorResponse{}
	if p.err != nil {
		msg := p.err.Error()
		resp.Error = &msg
		return resp
	}
	for _, g := range p.genFiles {
		if g.skip {
			continue
		}
		content, err := g.Content()
		if err != nil {
			msg := err.Error()
			return &CodeGeneratorResponse{Error: &msg}
		}
		resp.File = append(resp.File, &CodeGeneratorResponse_File{
			Name:    g.filename,
			Content: string(content),
		})
	}
	return resp
}

// FileByName returns the file with the given proto source name.
func (p *Plugin) FileByName(name string) (f *File, ok bool) {
	f, ok = p.filesByName[name]
	return f, ok
}

type pathType int

const (
	pathTypeImport pathType = iota
	pathTypeSourceRelative
)

// errGen is a convenience constructor matching this package's existing
// error-reporting idiom (internal/errors.NewGenError), used when protogen
// itself (rather than the gen package) detects a malformed request.
func errGen(context, reason string) error {
	return errors.NewGenError(context, reason)
}
