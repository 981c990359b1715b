package gen

import (
	"golang.org/x/sync/errgroup"

	"github.com/protomon/protomon/descriptor"
)

// Unit is one file's emission work: a target sink plus the descriptor and
// comment map to emit into it. The driver (package protogen) builds the
// sink list up front, sequentially, since allocating a *protogen.GeneratedFile
// mutates shared plugin state; only the per-file emission below — each
// unit writes into its own sink's buffer — is safe to fan out.
type Unit struct {
	Proto    *descriptor.FileDescriptorProto
	Comments CommentMap
	Sink     Printer
}

// Compile emits Go source for every unit concurrently, aggregating the
// first error encountered. A generator run over a FileDescriptorSet
// compiles every file independently — no unit mutates another's output or
// the shared Registry — so fanning the per-file emission out across an
// errgroup shortens wall-clock time for requests naming many files,
// mirroring the concurrent-fan-out-with-first-error idiom golang-protobuf's
// own build tooling uses x/sync/errgroup for.
func Compile(reg *Registry, units []Unit) error {
	var g errgroup.Group
	for _, u := range units {
		u := u
		g.Go(func() error {
			return EmitFile(u.Sink, reg, u.Comments, u.Proto)
		})
	}
	return g.Wait()
}
