package protogen

import (
	"github.com/protomon/protomon/gen"
)

// GenerateFiles emits one "<prefix>.pb.go" GeneratedFile per requested
// input file, delegating the struct/method bodies to gen.EmitFile and
// fanning the per-file emission out through gen.Compile. This generator
// only ever emits messages/enums/oneofs (no services/extensions, out of
// this module's scope), so the whole per-file driver collapses to this one
// function instead of a dedicated internal_gengo package.
func (p *Plugin) GenerateFiles() error {
	var units []gen.Unit
	for _, f := range p.Files {
		if !f.Generate {
			continue
		}
		g := p.NewGeneratedFile(f.GeneratedFilenamePrefix+".pb.go", f.GoImportPath)
		g.P("// Code generated by protomon-gen-go. DO NOT EDIT.")
		g.P("// source: ", f.Proto.GetName())
		g.P()
		g.P("package ", f.GoPackageName)
		g.P()
		units = append(units, gen.Unit{
			Proto:    f.Proto,
			Comments: f.comments,
			Sink:     g,
		})
	}
	return gen.Compile(p.registry, units)
}
